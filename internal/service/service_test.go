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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"tandem/internal/entity"
	"tandem/internal/mirror"
	"tandem/internal/repository"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	users       repository.UserRepository
	requests    repository.FriendRequestRepository
	threadRepo  repository.ThreadRepository
	communities repository.CommunityRepository

	auth      AuthService
	friends   FriendService
	threads   ThreadService
	user      UserService
	community CommunityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.Open(":memory:")
	require.NoError(t, err)

	env := &testEnv{
		users:       repository.NewSQLiteUserRepository(db),
		requests:    repository.NewSQLiteFriendRequestRepository(db),
		threadRepo:  repository.NewSQLiteThreadRepository(db),
		communities: repository.NewSQLiteCommunityRepository(db),
	}
	env.auth = NewAuthService(env.users, mirror.NewNoopClient())
	env.friends = NewFriendService(env.requests, env.users)
	env.threads = NewThreadService(env.threadRepo, env.users, env.communities)
	env.user = NewUserService(env.users, env.requests, env.threads)
	env.community = NewCommunityService(env.communities, env.users, env.threads)
	return env
}

// makeUser registers and onboards a fresh account.
func (e *testEnv) makeUser(t *testing.T, name string) *entity.User {
	t.Helper()

	user, err := e.auth.Signup(context.Background(), fmt.Sprintf("%s@example.com", name), "secret123", name)
	require.NoError(t, err)

	user, err = e.auth.Onboard(context.Background(), user.UUID, OnboardInput{
		FullName:         name,
		Bio:              "learning out loud",
		NativeLanguage:   "english",
		LearningLanguage: "italian",
		Location:         "Pisa",
	})
	require.NoError(t, err)
	return user
}
