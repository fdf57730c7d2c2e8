package session

import (
	"strings"
	"unicode/utf8"
)

// InputBuffer accumulates the learner's keystrokes for the live question.
//
// Accepted runes:
//   - digits
//   - '.' at most once per number
//   - '-' only as the first rune of a number
//   - ',' between numbers of a multi-value answer
//
// A sentinel phrase is set whole with SetPhrase, never typed rune by rune.
type InputBuffer struct {
	text   string
	phrase bool
}

// Apply appends r if it keeps the buffer well-formed and reports whether it
// was accepted. Typing over a phrase replaces it.
func (b *InputBuffer) Apply(r rune) bool {
	if b.phrase {
		b.text = ""
		b.phrase = false
	}

	seg := b.segment()
	switch {
	case r >= '0' && r <= '9':
	case r == '.':
		if strings.ContainsRune(seg, '.') {
			return false
		}
	case r == '-':
		if seg != "" {
			return false
		}
	case r == ',':
		if !strings.ContainsAny(seg, "0123456789") {
			return false
		}
	default:
		return false
	}

	b.text += string(r)
	return true
}

// Backspace removes the last rune, or the whole phrase.
func (b *InputBuffer) Backspace() {
	if b.phrase {
		b.Clear()
		return
	}
	if b.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text)
	b.text = b.text[:len(b.text)-size]
}

// SetPhrase replaces the buffer with a fixed answer phrase.
func (b *InputBuffer) SetPhrase(phrase string) {
	b.text = phrase
	b.phrase = true
}

// IsPhrase reports whether the buffer holds a phrase set by SetPhrase.
func (b *InputBuffer) IsPhrase() bool {
	return b.phrase
}

// Clear empties the buffer.
func (b *InputBuffer) Clear() {
	b.text = ""
	b.phrase = false
}

// String returns the accumulated text.
func (b *InputBuffer) String() string {
	return b.text
}

// Empty reports whether nothing has been typed.
func (b *InputBuffer) Empty() bool {
	return b.text == ""
}

// segment returns the number currently being typed.
func (b *InputBuffer) segment() string {
	if i := strings.LastIndexByte(b.text, ','); i >= 0 {
		return b.text[i+1:]
	}
	return b.text
}
