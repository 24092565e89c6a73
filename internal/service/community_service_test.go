/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"tandem/internal/apperr"
)

func TestCreateCommunity(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	view, err := env.community.Create(ada, CommunityInput{
		Name:     "Go Learners",
		Username: "GoLearners",
		Bio:      "a place to practice",
		Tags:     []string{" Go ", "LANGUAGE", ""},
	})
	require.NoError(t, err)
	require.Equal(t, "golearners", view.Username)
	require.Equal(t, []string{"go", "language"}, view.Tags)
	require.Equal(t, ada.UUID, view.CreatedBy.UUID)

	// The creator is the first member on both sides of the relation.
	require.True(t, view.IsMember)
	require.EqualValues(t, 1, view.MemberCount)

	profile, err := env.user.GetProfile(ada.UUID, ada.UUID)
	require.NoError(t, err)
	require.EqualValues(t, 1, profile.CommunityCount)
}

func TestCreateCommunityUsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	_, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners"})
	require.NoError(t, err)

	// Case differences don't make the handle available.
	_, err = env.community.Create(bob, CommunityInput{Name: "Other", Username: "GOLEARNERS"})
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))
	require.Equal(t, "Username is already taken", apperr.UserMessage(err))
}

func TestJoinAndLeaveCommunity(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	created, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners"})
	require.NoError(t, err)

	require.NoError(t, env.community.Join(bob, created.UUID))
	require.Equal(t, "You are already a member of this community", apperr.UserMessage(env.community.Join(bob, created.UUID)))

	view, err := env.community.Get(bob.UUID, created.UUID)
	require.NoError(t, err)
	require.True(t, view.IsMember)
	require.EqualValues(t, 2, view.MemberCount)
	require.Len(t, view.Members, 2)

	require.NoError(t, env.community.Leave(bob, created.UUID))
	require.Equal(t, "You are not a member of this community", apperr.UserMessage(env.community.Leave(bob, created.UUID)))

	view, err = env.community.Get(bob.UUID, created.UUID)
	require.NoError(t, err)
	require.False(t, view.IsMember)
	require.EqualValues(t, 1, view.MemberCount)
}

func TestCreatorCannotLeave(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	created, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners"})
	require.NoError(t, err)

	err = env.community.Leave(ada, created.UUID)
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))
	require.Equal(t, "Community creators cannot leave their own community", apperr.UserMessage(err))
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")
	eve := env.makeUser(t, "eve")

	created, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners"})
	require.NoError(t, err)
	require.NoError(t, env.community.Join(bob, created.UUID))

	// Only the creator may expel, and never itself.
	err = env.community.RemoveMember(bob, created.UUID, ada.UUID)
	require.Equal(t, http.StatusForbidden, apperr.Status(err))
	err = env.community.RemoveMember(ada, created.UUID, ada.UUID)
	require.Equal(t, "Cannot remove the community creator", apperr.UserMessage(err))
	err = env.community.RemoveMember(ada, created.UUID, eve.UUID)
	require.Equal(t, "User is not a member of this community", apperr.UserMessage(err))

	require.NoError(t, env.community.RemoveMember(ada, created.UUID, bob.UUID))
	view, err := env.community.Get(ada.UUID, created.UUID)
	require.NoError(t, err)
	require.EqualValues(t, 1, view.MemberCount)
}

func TestUpdateCommunityCreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	created, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners"})
	require.NoError(t, err)

	name := "Go Masters"
	_, err = env.community.Update(bob, created.UUID, CommunityUpdate{Name: &name})
	require.Equal(t, http.StatusForbidden, apperr.Status(err))

	view, err := env.community.Update(ada, created.UUID, CommunityUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Go Masters", view.Name)
	require.Equal(t, "golearners", view.Username) // the handle is immutable
}

func TestDeleteCommunityCascades(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	created, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners"})
	require.NoError(t, err)
	require.NoError(t, env.community.Join(bob, created.UUID))

	post, err := env.threads.CreatePost(bob, "community post", nil, &created.UUID)
	require.NoError(t, err)
	require.NotNil(t, post.Community)

	require.Equal(t, http.StatusForbidden, apperr.Status(env.community.Delete(bob, created.UUID)))
	require.NoError(t, env.community.Delete(ada, created.UUID))

	// The community, its membership rows and its registered threads are
	// gone in one sweep.
	_, err = env.community.Get(ada.UUID, created.UUID)
	require.Equal(t, http.StatusNotFound, apperr.Status(err))

	_, err = env.threads.GetThread(post.UUID)
	require.Equal(t, http.StatusNotFound, apperr.Status(err))

	profile, err := env.user.GetProfile(bob.UUID, bob.UUID)
	require.NoError(t, err)
	require.EqualValues(t, 0, profile.CommunityCount)
	require.EqualValues(t, 0, profile.ThreadCount)
	require.Empty(t, profile.Threads)
}

func TestSearchCommunities(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	_, err := env.community.Create(ada, CommunityInput{Name: "Go Learners", Username: "golearners", Tags: []string{"golang"}})
	require.NoError(t, err)
	_, err = env.community.Create(ada, CommunityInput{Name: "Rustaceans", Username: "rustaceans"})
	require.NoError(t, err)

	results := env.community.Search(ada.UUID, "golang", 1, 20)
	require.Len(t, results, 1)
	require.Equal(t, "golearners", results[0].Username)

	// An empty query lists everything, paged.
	results = env.community.Search(ada.UUID, "", 1, 1)
	require.Len(t, results, 1)
}
