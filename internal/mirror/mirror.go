/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package mirror syncs account profiles to the external chat/video provider.
// The mirror is a best-effort collaborator: every call site goes through
// apperr.BestEffort and a failure never fails the primary mutation.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Profile is the subset of an account the provider keeps.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"image"`
}

// Client upserts mirrored profiles on the provider.
type Client interface {
	UpsertProfile(ctx context.Context, p Profile) error
}

type httpClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient talks to a provider reachable at the given endpoint.
func NewHTTPClient(endpoint string) Client {
	return &httpClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *httpClient) UpsertProfile(ctx context.Context, p Profile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encoding mirror profile")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint+"/users/"+p.ID, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building mirror request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling mirror provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("mirror provider returned status %d", resp.StatusCode)
	}
	return nil
}

type noopClient struct{}

// NewNoopClient is used when no provider endpoint is configured.
func NewNoopClient() Client { return noopClient{} }

func (noopClient) UpsertProfile(context.Context, Profile) error { return nil }
