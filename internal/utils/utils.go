package utils

import (
	"unicode/utf8"

	"github.com/ctchan-dev/ctchan/internal/errors"
)

const (
	maxSubjectLen = 100
	maxNameLen    = 50
	maxTextLen    = 10_000
)

// PostValidator bounds the user-supplied fields of threads and replies.
// Callers trim whitespace before validating, so emptiness here means the
// input was blank or whitespace-only.
type PostValidator struct{}

func (e *PostValidator) Subject(subject string) error {
	if len(subject) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Subject is required", StatusCode: 400}
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return &errors.ErrorWithStatusCode{Message: "Subject is too long", StatusCode: 400}
	}
	return nil
}

func (e *PostValidator) Text(text string) error {
	if len(text) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Message is required", StatusCode: 400}
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return &errors.ErrorWithStatusCode{Message: "Message is too long", StatusCode: 400}
	}
	return nil
}

func (e *PostValidator) Name(name string) error {
	if utf8.RuneCountInString(name) > maxNameLen {
		return &errors.ErrorWithStatusCode{Message: "Name is too long", StatusCode: 400}
	}
	return nil
}
