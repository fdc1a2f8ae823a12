// Package parsers reads line based inputs as a series of values.
package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// SeriesParser parses a series of `T`.
type SeriesParser[T any] interface {
	// Next advances the cursor and returns the next `T`, or an error.
	//
	// Errors after which no more calls to `Next` should be made are
	// of type `NonResumableError`; `io.EOF` ends the series that way.
	Next(context.Context) (T, error)

	// Position returns a user readable indication of where the cursor is.
	Position() string
}

// ForEach calls callback for every value of parser until the series ends.
//
// `io.EOF` is not reported. Any other error is returned with the parser's
// position prepended.
func ForEach[T any](ctx context.Context, parser SeriesParser[T], callback func(T) error) (rerr error) {
	defer func() {
		rerr = ErrWithPosition(parser, rerr)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := parser.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		if err := callback(res); err != nil {
			return err
		}
	}
}

// Collect reads the whole series into a slice
func Collect[T any](ctx context.Context, parser SeriesParser[T]) ([]T, error) {
	var res []T

	err := ForEach(ctx, parser, func(v T) error {
		res = append(res, v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// ErrWithPosition adds the `parser`'s position to the given `err`.
func ErrWithPosition[T any](parser SeriesParser[T], err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", parser.Position(), err)
}

// IsNonResumableErr checks if an error returned by a parser ends the series.
func IsNonResumableErr(err error) bool {
	var nonResumableError *NonResumableError

	return errors.As(err, &nonResumableError)
}

// NonResumableError represents an error from which a parser cannot recover.
type NonResumableError struct {
	inner error
}

// NewNonResumableError creates and returns a new `NonResumableError`.
func NewNonResumableError(inner error) error {
	return &NonResumableError{inner}
}

func (e *NonResumableError) Error() string {
	return fmt.Sprintf("non resumable parse error: %s", e.inner.Error())
}

func (e *NonResumableError) Unwrap() error {
	return e.inner
}
