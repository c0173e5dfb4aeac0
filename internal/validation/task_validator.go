package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MinPasswordLength    = 8
	MaxNameLength        = 100
)

// ValidateTask はタスクのタイトルと説明を検証します。長さは文字数 (rune) で数えます。
func ValidateTask(title string, description *string) error {
	ve := &ValidationError{}
	switch {
	case strings.TrimSpace(title) == "":
		ve.Add("title", "title is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		ve.Add("title", fmt.Sprintf("title must be at most %d characters long", MaxTitleLength))
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		ve.Add("description", fmt.Sprintf("description must be at most %d characters long", MaxDescriptionLength))
	}
	return ve.OrNil()
}

// ValidateRegistration はユーザー登録の入力を検証します。
func ValidateRegistration(email, password, firstName, lastName string) error {
	ve := &ValidationError{}
	if email == "" {
		ve.Add("email", "email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		ve.Add("email", "email has invalid format")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		ve.Add("password", fmt.Sprintf("password must be at least %d characters long", MinPasswordLength))
	}
	if utf8.RuneCountInString(firstName) > MaxNameLength {
		ve.Add("firstName", fmt.Sprintf("firstName must be at most %d characters long", MaxNameLength))
	}
	if utf8.RuneCountInString(lastName) > MaxNameLength {
		ve.Add("lastName", fmt.Sprintf("lastName must be at most %d characters long", MaxNameLength))
	}
	return ve.OrNil()
}
