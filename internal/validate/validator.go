package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps go-playground/validator with English messages keyed by
// the field name from a struct tag.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New returns a Validator that names fields after tagName ("json" for
// request bodies, "mapstructure" for configuration).
func New(tagName string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v, trans: trans}
}

// Struct validates s. Field failures are returned as *FieldsError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return NewFieldsError(v.translateError(errs))
}

func (v *Validator) translateError(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[fieldPath(e.Namespace())] = e.Translate(v.trans)
	}
	return fields
}

// fieldPath drops the root struct name from a namespace, so
// "Config.log.level" becomes "log.level".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
