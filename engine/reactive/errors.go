package reactive

import (
	"fmt"

	"github.com/npillmayer/rfont/core"
	"github.com/npillmayer/rfont/engine/ecs"
)

// ErrorKind classifies resolution errors.
type ErrorKind int

// Kinds of resolution errors.
const (
	// CannotFindFont: the text has no UsingFont reference and there is no DefaultFont.
	CannotFindFont ErrorKind = iota + 1
	// InvalidFont: the referenced collection is not a FontCollection.
	InvalidFont
	// InvalidReactiveFont: the text lacks the components styling is written to.
	InvalidReactiveFont
)

func (k ErrorKind) String() string {
	switch k {
	case CannotFindFont:
		return "CannotFindFont"
	case InvalidFont:
		return "InvalidFont"
	case InvalidReactiveFont:
		return "InvalidReactiveFont"
	}
	return "undefined"
}

// FontError is an error resolving the styling of text entity Text.
// Err is the underlying lookup error, if any.
type FontError struct {
	Kind ErrorKind
	Text ecs.Entity
	Err  error
}

var _ core.AppError = (*FontError)(nil)

func (e *FontError) Error() string {
	switch e.Kind {
	case CannotFindFont:
		return fmt.Sprintf("unable to find font for %v: a font has not been specified and DefaultFont has not been set", e.Text)
	case InvalidFont:
		return fmt.Sprintf("invalid font collection for %v: %v", e.Text, e.Err)
	case InvalidReactiveFont:
		return fmt.Sprintf("invalid reactive font %v: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("font error for %v: %v", e.Text, e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}

// ErrorCode is part of core.AppError. Missing configuration is EMISSING,
// corrupted references are EINVALID.
func (e *FontError) ErrorCode() int {
	if e.Kind == CannotFindFont {
		return core.EMISSING
	}
	return core.EINVALID
}

// UserMessage is part of core.AppError.
func (e *FontError) UserMessage() string {
	switch e.Kind {
	case CannotFindFont:
		return "no font configured for text"
	case InvalidFont:
		return "text refers to something which is not a font collection"
	}
	return "text cannot be styled"
}
