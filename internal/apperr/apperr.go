/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package apperr holds the error taxonomy of the service in one place, so the
// mapping from failure class to HTTP status lives in code rather than in
// scattered handler branches.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

type Kind int

const (
	KindInternal        Kind = iota // unexpected failure, 500
	KindValidation                  // bad input shape, length or format, 400
	KindConflict                    // duplicate or already-in-state action, 400
	KindUnauthenticated             // no acting identity, 401
	KindForbidden                   // wrong actor for the target resource, 403
	KindNotFound                    // target entity missing, 404
	KindDependency                  // collaborator failure, caught and logged, never surfaced
)

// Error is a classified error. The message is what callers see verbatim in
// the JSON body.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Message is the caller-facing text, without the wrapped cause.
func (e *Error) Message() string { return e.Msg }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return newf(KindValidation, format, args...) }
func Conflictf(format string, args ...any) *Error   { return newf(KindConflict, format, args...) }
func Forbiddenf(format string, args ...any) *Error  { return newf(KindForbidden, format, args...) }
func NotFoundf(format string, args ...any) *Error   { return newf(KindNotFound, format, args...) }

func Unauthenticatedf(format string, args ...any) *Error {
	return newf(KindUnauthenticated, format, args...)
}

// Internal wraps an unexpected failure, keeping the cause for the logs while
// presenting a stable message to the caller.
func Internal(cause error, msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Cause: errors.WithStack(cause)}
}

// KindOf classifies any error. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to the HTTP status the API reports for it.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage is the text returned to the caller. Internal failures are
// masked; everything classified is surfaced verbatim.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "Internal Server Error"
}

// BestEffort runs a side-channel call whose failure must never fail the
// primary operation. The error is logged as a dependency failure and dropped.
func BestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		jww.WARN.Printf("best-effort %s failed: %+v", op, err)
	}
}
