package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answerBody struct {
	Answer string `json:"answer" validate:"required,max=64"`
	Level  int    `json:"level" validate:"omitempty,min=1,max=10"`
}

type nested struct {
	Log struct {
		Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	} `mapstructure:"log"`
}

func TestStruct_Valid(t *testing.T) {
	v := New("json")
	assert.NoError(t, v.Struct(answerBody{Answer: "7"}))
	assert.NoError(t, v.Struct(answerBody{Answer: "7", Level: 10}))
}

func TestStruct_FieldsError(t *testing.T) {
	v := New("json")
	err := v.Struct(answerBody{Level: 11})
	require.Error(t, err)

	var fe *FieldsError
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe.Fields, 2)
	assert.Contains(t, fe.Fields["answer"], "required")
	assert.Contains(t, fe.Fields["level"], "10")
}

func TestStruct_NestedPath(t *testing.T) {
	v := New("mapstructure")
	var n nested
	n.Log.Level = "verbose"

	err := v.Struct(n)
	var fe *FieldsError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Fields, "log.level")
	assert.True(t, strings.HasPrefix(fe.Error(), "invalid fields: log.level:"))
}

func TestFieldsError_SortedMessage(t *testing.T) {
	fe := NewFieldsError(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "invalid fields: a: one; b: two", fe.Error())
}
