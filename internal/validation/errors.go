// Package validation は入力値の検証とフィールド単位のエラーを提供します。
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError は1つのフィールドに対する検証エラーです。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError は検証エラーの集まりです。
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return "validation error: " + ve.Errors[0].Error()
	}
	msgs := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "validation errors: " + strings.Join(msgs, "; ")
}

// Add はフィールドエラーを追加します。
func (ve *ValidationError) Add(field, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Message: message})
}

// HasErrors はエラーが1つ以上あるかを返します。
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// OrNil はエラーが無ければ nil を返します。
func (ve *ValidationError) OrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// AsValidationError は err が ValidationError ならそれを返します。
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
