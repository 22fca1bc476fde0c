package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidID    = errors.New("invalid resource id format")
	ErrDuplicateKey = errors.New("duplicate entry")
	ErrForbidden    = errors.New("access forbidden")
)

// ValidationError carries one message per offending field. It is produced by
// the request validator and rendered as a 400 with the messages listed in the
// response envelope.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
