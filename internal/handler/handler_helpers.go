/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	jww "github.com/spf13/jwalterweatherman"

	"tandem/internal/apperr"
	"tandem/internal/entity"
	"tandem/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		jww.ERROR.Printf("encoding response: %v", err)
	}
}

// writeError maps the error taxonomy to a status and a {message} body.
// Internal causes are logged and masked.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		jww.ERROR.Printf("request failed: %+v", err)
	}
	writeJSON(w, status, map[string]string{"message": apperr.UserMessage(err)})
}

// decodeJSON parses a request body, reporting a validation failure on
// malformed input.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validationf("Invalid request body")
	}
	return nil
}

// actingUser pulls the authenticated identity out of the request context.
// A missing identity means the middleware was bypassed; report 401.
func actingUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeError(w, apperr.Unauthenticatedf("Unauthorized - please log in"))
		return nil, false
	}
	return user, true
}

// pagination reads the page/limit query parameters with the feed defaults.
func pagination(r *http.Request) (page, limit int) {
	page, limit = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}
