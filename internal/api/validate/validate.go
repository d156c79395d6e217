package validate

import (
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Add appends ef when it is non-nil.
func (e Errs) Add(ef *ErrField) Errs {
	if ef == nil {
		return e
	}
	return append(e, *ef)
}

// Required reports a missing (absent or null) JSON field. Empty strings are values.
func Required[T any](field string, v *T) *ErrField {
	if v == nil {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}
