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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tandem/internal/apperr"
)

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	_, err := env.threads.CreatePost(ada, "   ", nil, nil)
	require.Equal(t, "Content is required", apperr.UserMessage(err))

	_, err = env.threads.CreatePost(ada, strings.Repeat("x", 501), nil, nil)
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))

	unknown := "no-such-community"
	_, err = env.threads.CreatePost(ada, "hello", nil, &unknown)
	require.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestCreatePostAppearsInAuthorProfileAndFeed(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	view, err := env.threads.CreatePost(ada, "hello world", nil, nil)
	require.NoError(t, err)
	require.Equal(t, ada.UUID, view.Author.UUID)
	require.Empty(t, view.Images)
	require.Nil(t, view.ParentID)

	feed := env.threads.ListFeed(ada, FeedScopeAll, 1, 20)
	require.Len(t, feed, 1)
	require.Equal(t, view.UUID, feed[0].UUID)

	profile, err := env.user.GetProfile(ada.UUID, ada.UUID)
	require.NoError(t, err)
	require.Len(t, profile.Threads, 1)
	require.EqualValues(t, 1, profile.ThreadCount)
}

func TestRepliesKeepArrivalOrder(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	post, err := env.threads.CreatePost(ada, "root", nil, nil)
	require.NoError(t, err)

	first, err := env.threads.CreateReply(bob, post.UUID, "first")
	require.NoError(t, err)
	second, err := env.threads.CreateReply(ada, post.UUID, "second")
	require.NoError(t, err)
	require.Equal(t, &post.UUID, first.ParentID)

	// Replies never land on the author's or a community's thread list.
	profile, err := env.user.GetProfile(bob.UUID, bob.UUID)
	require.NoError(t, err)
	require.Empty(t, profile.Threads)

	full, err := env.threads.GetThread(post.UUID)
	require.NoError(t, err)
	require.Len(t, full.Children, 2)
	require.Equal(t, first.UUID, full.Children[0].UUID)
	require.Equal(t, second.UUID, full.Children[1].UUID)
}

func TestReplyToReplyExpandsTwoLevels(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	post, err := env.threads.CreatePost(ada, "root", nil, nil)
	require.NoError(t, err)
	reply, err := env.threads.CreateReply(ada, post.UUID, "level one")
	require.NoError(t, err)
	nested, err := env.threads.CreateReply(ada, reply.UUID, "level two")
	require.NoError(t, err)

	full, err := env.threads.GetThread(post.UUID)
	require.NoError(t, err)
	require.Len(t, full.Children, 1)
	require.Len(t, full.Children[0].Children, 1)
	require.Equal(t, nested.UUID, full.Children[0].Children[0].UUID)
	// The third level exists but is not expanded here.
	require.Empty(t, full.Children[0].Children[0].Children)
}

func TestToggleLikeIsMembershipNotCounter(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	post, err := env.threads.CreatePost(ada, "hello", nil, nil)
	require.NoError(t, err)

	view, added, err := env.threads.ToggleLike(bob, post.UUID)
	require.NoError(t, err)
	require.True(t, added)
	require.Len(t, view.Likes, 1)
	require.Equal(t, bob.UUID, view.Likes[0].UUID)

	// A second like from the same user removes the mark instead of
	// duplicating it.
	view, added, err = env.threads.ToggleLike(bob, post.UUID)
	require.NoError(t, err)
	require.False(t, added)
	require.Empty(t, view.Likes)
}

func TestRepostOwnThreadRefused(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	post, err := env.threads.CreatePost(ada, "hello", nil, nil)
	require.NoError(t, err)

	_, err = env.threads.ToggleRepost(ada, post.UUID)
	require.Equal(t, "You cannot repost your own thread", apperr.UserMessage(err))

	added, err := env.threads.ToggleRepost(bob, post.UUID)
	require.NoError(t, err)
	require.True(t, added)
}

func TestVoteDirectionsAreExclusive(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	post, err := env.threads.CreatePost(ada, "hello", nil, nil)
	require.NoError(t, err)

	_, err = env.threads.Vote(bob, post.UUID, "sideways")
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))

	result, err := env.threads.Vote(bob, post.UUID, "upvote")
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Upvotes)
	require.Equal(t, "upvote", result.UserVote)

	// Switching direction displaces the previous vote atomically.
	result, err = env.threads.Vote(bob, post.UUID, "downvote")
	require.NoError(t, err)
	require.EqualValues(t, 0, result.Upvotes)
	require.EqualValues(t, 1, result.Downvotes)
	require.Equal(t, "downvote", result.UserVote)

	// Repeating the current direction clears it.
	result, err = env.threads.Vote(bob, post.UUID, "downvote")
	require.NoError(t, err)
	require.EqualValues(t, 0, result.Downvotes)
	require.Equal(t, "", result.UserVote)
}

func TestEditArchivesReplacedRevisions(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	post, err := env.threads.CreatePost(ada, "version one", nil, nil)
	require.NoError(t, err)

	_, err = env.threads.Edit(bob, post.UUID, "hijacked")
	require.Equal(t, "You can only edit your own threads", apperr.UserMessage(err))

	edited, err := env.threads.Edit(ada, post.UUID, "version two")
	require.NoError(t, err)
	require.True(t, edited.IsEdited)
	require.Equal(t, "version two", edited.Content)

	_, err = env.threads.Edit(ada, post.UUID, "version three")
	require.NoError(t, err)

	// Two edits leave exactly two archived revisions, oldest first, each
	// holding the content it replaced. The first is stamped with the
	// thread's creation time.
	full, err := env.threads.GetThread(post.UUID)
	require.NoError(t, err)
	require.Equal(t, "version three", full.Content)
	require.Len(t, full.EditHistory, 2)
	require.Equal(t, "version one", full.EditHistory[0].Content)
	require.Equal(t, "version two", full.EditHistory[1].Content)
	require.Equal(t, full.CreatedAt, full.EditHistory[0].EditedAt)
	require.True(t, full.EditHistory[1].EditedAt.After(full.EditHistory[0].EditedAt))
}

func TestSoftDeleteKeepsRepliesReachable(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	post, err := env.threads.CreatePost(ada, "root", nil, nil)
	require.NoError(t, err)
	reply, err := env.threads.CreateReply(bob, post.UUID, "still here")
	require.NoError(t, err)

	require.Equal(t, http.StatusForbidden, apperr.Status(env.threads.SoftDelete(bob, post.UUID)))
	require.NoError(t, env.threads.SoftDelete(ada, post.UUID))

	// Gone from the feed and the author's list, still loadable directly
	// with its reply subtree intact.
	feed := env.threads.ListFeed(ada, FeedScopeAll, 1, 20)
	require.Empty(t, feed)

	profile, err := env.user.GetProfile(ada.UUID, ada.UUID)
	require.NoError(t, err)
	require.Empty(t, profile.Threads)

	full, err := env.threads.GetThread(post.UUID)
	require.NoError(t, err)
	require.True(t, full.IsDeleted)
	require.Len(t, full.Children, 1)
	require.Equal(t, reply.UUID, full.Children[0].UUID)
}

func TestFollowingFeedScopesToViewerAndFriends(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")
	carol := env.makeUser(t, "carol")

	_, err := env.threads.CreatePost(ada, "from ada", nil, nil)
	require.NoError(t, err)
	_, err = env.threads.CreatePost(bob, "from bob", nil, nil)
	require.NoError(t, err)
	_, err = env.threads.CreatePost(carol, "from carol", nil, nil)
	require.NoError(t, err)

	request, err := env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)
	require.NoError(t, env.friends.AcceptRequest(bob, request.UUID))

	all := env.threads.ListFeed(ada, FeedScopeAll, 1, 20)
	require.Len(t, all, 3)

	following := env.threads.ListFeed(ada, FeedScopeFollowing, 1, 20)
	require.Len(t, following, 2)
	for _, view := range following {
		require.Contains(t, []string{ada.UUID, bob.UUID}, view.Author.UUID)
	}
}
