package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/testgen/internal/common"
)

// Error reports why a generation request could not be completed.
// Kind is one of the common.Err* generation sentinels and is matched by errors.Is.
type Error struct {
	Kind     error
	Err      error
	Category string
	// Name is the requested test name, set for invalid names.
	Name string
	// Path is the file system path the failure concerns.
	Path  string
	Op    string
	Valid []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case common.ErrUnknownCategory:
		return fmt.Sprintf("%v %q (valid categories: %s)", e.Kind, e.Category, strings.Join(e.Valid, ", "))
	case common.ErrInvalidName:
		return fmt.Sprintf("%v %q: %v", e.Kind, e.Name, e.Err)
	case common.ErrTemplateMissing, common.ErrOutputExists:
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	default:
		if e.Err == nil {
			return fmt.Sprintf("%v: %s %s", e.Kind, e.Op, e.Path)
		}
		return fmt.Sprintf("%v: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
	}
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidName(name, reason string) error {
	return &Error{Kind: common.ErrInvalidName, Name: name, Err: errors.New(reason)}
}

func unknownCategory(category string, valid []string) error {
	return &Error{Kind: common.ErrUnknownCategory, Category: category, Valid: valid}
}

func templateMissing(category, path string) error {
	return &Error{Kind: common.ErrTemplateMissing, Category: category, Path: path}
}

func outputExists(category, path string) error {
	return &Error{Kind: common.ErrOutputExists, Category: category, Path: path}
}

func generationFailed(category, op, path string, err error) error {
	return &Error{Kind: common.ErrGenerationFailed, Category: category, Op: op, Path: path, Err: err}
}
