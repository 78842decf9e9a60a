package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// kindError attaches one of the error kinds to a detailed error without changing its
// message chain.
type kindError struct {
	kind error
	err  error
}

// Tag marks err as belonging to kind. errors.Is(Tag(kind, err), kind) reports true,
// and errors.Is still sees everything err wraps. Tagging a nil error returns nil.
func Tag(kind, err error) error {
	if err == nil {
		return nil
	}
	var existing *kindError
	if errors.As(err, &existing) && existing.kind == kind {
		return err
	}
	return &kindError{kind: kind, err: err}
}

func (e *kindError) Error() string {
	return e.err.Error()
}

// Message returns the kind description; the detailed cause is reachable via Unwrap.
func (e *kindError) Message() string {
	return e.kind.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// KindOf returns the kind err was tagged with, or nil when it carries none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrIO,
		ErrParse,
		ErrMissingHash,
		ErrHashMismatch,
		ErrUnsupportedPlatform,
		ErrProcess,
		ErrValidation,
		ErrConfig,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Detail attaches key/value pairs to sentinel and keeps errors.Is(err, sentinel) true.
// The pairs live on an unnamed link wrapping sentinel; keys must be strings.
func Detail(sentinel error, kv ...any) error {
	err := zerr.Wrap(sentinel, "")
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		err = zerr.With(err, key, kv[i+1])
	}
	return err
}
