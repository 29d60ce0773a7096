// Package fault defines the error taxonomy shared by every service:
// validation failures detected before persistence, missing references, and
// storage failures. Handlers format these to single-line messages at the
// boundary; everything in between propagates them unchanged.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input. It is always
// produced before any persistence call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalidf builds a ValidationError from a format string.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// NotFound builds a NotFoundError for an integer key.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprintf("%d", id)}
}

// NotFoundName builds a NotFoundError for a string key.
func NotFoundName(entity, name string) error {
	return &NotFoundError{Entity: entity, Key: name}
}

// PersistenceError wraps an underlying storage failure with the operation
// that issued it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError. A nil err returns nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}

	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
