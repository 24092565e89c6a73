/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"tandem/internal/apperr"
)

func TestGetRecommendedExcludesSelfFriendsAndNotOnboarded(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")
	carol := env.makeUser(t, "carol")

	// Dan signed up but never onboarded.
	_, err := env.auth.Signup(context.Background(), "dan@example.com", "secret123", "dan")
	require.NoError(t, err)

	request, err := env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)
	require.NoError(t, env.friends.AcceptRequest(bob, request.UUID))

	recommended, err := env.user.GetRecommended(ada)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	require.Equal(t, carol.UUID, recommended[0].UUID)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	env.makeUser(t, "bob")

	// The blank query short-circuits without touching the database.
	results, err := env.user.Search(ada.UUID, "   ")
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = env.user.Search(ada.UUID, "bob")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "bob", results[0].FullName)

	// The searcher never shows up in its own results.
	results, err = env.user.Search(ada.UUID, "ada")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	_, err := env.threads.CreatePost(bob, "hello", nil, nil)
	require.NoError(t, err)

	profile, err := env.user.GetProfile(ada.UUID, bob.UUID)
	require.NoError(t, err)
	require.Equal(t, "bob", profile.FullName)
	require.False(t, profile.IsFriend)
	require.False(t, profile.HasPendingRequest)
	require.EqualValues(t, 1, profile.ThreadCount)
	require.Len(t, profile.Threads, 1)

	_, err = env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)
	profile, err = env.user.GetProfile(ada.UUID, bob.UUID)
	require.NoError(t, err)
	require.True(t, profile.HasPendingRequest)

	_, err = env.user.GetProfile(ada.UUID, "no-such-user")
	require.Equal(t, http.StatusNotFound, apperr.Status(err))
}
