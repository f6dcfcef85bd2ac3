package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrForbidden indicates the caller is neither the reporter nor an admin.
	ErrForbidden = errors.New("not authorized to modify this item")

	// ErrDuplicateTicket indicates the ticket number is already taken.
	ErrDuplicateTicket = errors.New("duplicate ticket number")

	// ErrInvalidItem is wrapped by every ValidationError.
	ErrInvalidItem = errors.New("invalid item")
)

// Field messages used in ValidationError.
const (
	MsgRequired = "This field is required"
)

// ValidationError lists the offending input fields and a message for each.
// errors.Is(err, ErrInvalidItem) holds for every ValidationError.
type ValidationError struct {
	Fields map[string]string
}

// Add records a problem with field. The first message for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e when it holds at least one field, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldNames returns the offending fields in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidItem, strings.Join(e.FieldNames(), ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidItem
}
