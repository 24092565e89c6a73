/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad input"), http.StatusBadRequest},
		{Conflictf("already there"), http.StatusBadRequest},
		{Unauthenticatedf("who are you"), http.StatusUnauthorized},
		{Forbiddenf("not yours"), http.StatusForbidden},
		{NotFoundf("gone"), http.StatusNotFound},
		{Internal(fmt.Errorf("broken pipe"), "Internal Server Error"), http.StatusInternalServerError},
		{fmt.Errorf("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Status(tc.err))
	}
}

func TestUserMessageMasksInternals(t *testing.T) {
	err := Internal(fmt.Errorf("dial tcp: connection refused"), "Internal Server Error")
	require.Equal(t, "Internal Server Error", UserMessage(err))
	require.Contains(t, err.Error(), "connection refused") // the cause stays in the logs

	require.Equal(t, "gone", UserMessage(NotFoundf("gone")))
	require.Equal(t, "Internal Server Error", UserMessage(fmt.Errorf("raw failure")))
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NotFoundf("gone"), "loading thread")
	require.Equal(t, KindNotFound, KindOf(err))
	require.Equal(t, http.StatusNotFound, Status(err))
	require.Equal(t, "gone", UserMessage(err))
}
