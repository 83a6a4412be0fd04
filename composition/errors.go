package composition

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidImageURL      = errors.New("composition: image url is invalid")
	ErrMissingRequiredField = errors.New("composition: required field is missing")
	ErrInvalidBlockType     = errors.New("composition: block type is invalid")
	ErrSerialization        = errors.New("composition: serialization failed")
)

// InvalidImageURLError reports an Image block whose src does not conform to
// the accepted URL forms.
type InvalidImageURLError struct {
	URL string
}

func (e *InvalidImageURLError) Error() string {
	return fmt.Sprintf("composition: image url %q is invalid", e.URL)
}

func (e *InvalidImageURLError) Unwrap() error { return ErrInvalidImageURL }

// MissingRequiredFieldError is reserved for stricter validation modes where
// absent required props fail instead of defaulting.
type MissingRequiredFieldError struct {
	BlockType string
	Field     string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("composition: block %q is missing required field %q", e.BlockType, e.Field)
}

func (e *MissingRequiredFieldError) Unwrap() error { return ErrMissingRequiredField }

// InvalidBlockTypeError is reserved for strict modes that reject unknown
// block tags instead of passing them through.
type InvalidBlockTypeError struct {
	Type string
}

func (e *InvalidBlockTypeError) Error() string {
	return fmt.Sprintf("composition: block type %q is invalid", e.Type)
}

func (e *InvalidBlockTypeError) Unwrap() error { return ErrInvalidBlockType }

// SerializationError wraps failures while encoding or decoding a composition
// to its storage representation.
type SerializationError struct {
	Cause error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("composition: serialization failed: %v", e.Cause)
}

func (e *SerializationError) Unwrap() error { return ErrSerialization }
