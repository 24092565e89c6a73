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
	"tandem/internal/entity"
)

func TestSendRequestRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	_, err := env.friends.SendRequest(ada, ada.UUID)
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))
	require.Equal(t, "You can't send a friend request to yourself", apperr.UserMessage(err))
}

func TestSendRequestUnknownRecipient(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")

	_, err := env.friends.SendRequest(ada, "no-such-user")
	require.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestSendRequestIsUniquePerPair(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	_, err := env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)

	// Same direction and the reverse direction both collide.
	_, err = env.friends.SendRequest(ada, bob.UUID)
	require.Equal(t, "A friend request already exists between you and this user", apperr.UserMessage(err))

	_, err = env.friends.SendRequest(bob, ada.UUID)
	require.Equal(t, "A friend request already exists between you and this user", apperr.UserMessage(err))
}

func TestAcceptRequestCreatesSymmetricFriendship(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")

	request, err := env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)
	require.Equal(t, entity.FriendRequestPending, request.Status)

	require.NoError(t, env.friends.AcceptRequest(bob, request.UUID))

	// Both directions hold at once.
	adaSide, err := env.users.AreFriends(ada.UUID, bob.UUID)
	require.NoError(t, err)
	bobSide, err := env.users.AreFriends(bob.UUID, ada.UUID)
	require.NoError(t, err)
	require.True(t, adaSide)
	require.True(t, bobSide)

	// A new request between established friends is refused.
	_, err = env.friends.SendRequest(bob, ada.UUID)
	require.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestAcceptRequestOnlyByRecipient(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")
	eve := env.makeUser(t, "eve")

	request, err := env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)

	// Neither the sender nor a third party may accept.
	err = env.friends.AcceptRequest(ada, request.UUID)
	require.Equal(t, http.StatusForbidden, apperr.Status(err))
	err = env.friends.AcceptRequest(eve, request.UUID)
	require.Equal(t, http.StatusForbidden, apperr.Status(err))

	friends, err := env.users.AreFriends(ada.UUID, bob.UUID)
	require.NoError(t, err)
	require.False(t, friends)
}

func TestRequestListings(t *testing.T) {
	env := newTestEnv(t)
	ada := env.makeUser(t, "ada")
	bob := env.makeUser(t, "bob")
	carol := env.makeUser(t, "carol")

	sent, err := env.friends.SendRequest(ada, bob.UUID)
	require.NoError(t, err)
	_, err = env.friends.SendRequest(carol, ada.UUID)
	require.NoError(t, err)

	incoming, err := env.friends.ListIncoming(bob.UUID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	require.Equal(t, sent.UUID, incoming[0].UUID)
	require.NotNil(t, incoming[0].Sender)
	require.Equal(t, ada.UUID, incoming[0].Sender.UUID)

	outgoing, err := env.friends.ListOutgoing(ada.UUID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	require.NotNil(t, outgoing[0].Recipient)
	require.Equal(t, bob.UUID, outgoing[0].Recipient.UUID)

	// Acceptance moves the request off the pending lists and onto the
	// sender's accepted list.
	require.NoError(t, env.friends.AcceptRequest(bob, sent.UUID))

	incoming, err = env.friends.ListIncoming(bob.UUID)
	require.NoError(t, err)
	require.Empty(t, incoming)

	accepted, err := env.friends.ListAccepted(ada.UUID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Equal(t, string(entity.FriendRequestAccepted), accepted[0].Status)
}
