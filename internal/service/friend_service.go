/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tandem/internal/apperr"
	"tandem/internal/entity"
	"tandem/internal/repository"
)

// Service handling the friend request lifecycle: a directed pending request
// converging to a symmetric friendship edge on acceptance.
type FriendService interface {
	SendRequest(sender *entity.User, recipientUUID string) (*entity.FriendRequest, error)
	AcceptRequest(actor *entity.User, requestUUID string) error
	ListIncoming(userUUID string) ([]*FriendRequestView, error)  // Pending requests addressed to the user, sender expanded
	ListOutgoing(userUUID string) ([]*FriendRequestView, error)  // Pending requests the user sent, recipient expanded
	ListAccepted(userUUID string) ([]*FriendRequestView, error)  // Accepted requests the user sent, recipient expanded
}

type friendService struct {
	requests repository.FriendRequestRepository
	users    repository.UserRepository
}

func NewFriendService(requests repository.FriendRequestRepository, users repository.UserRepository) FriendService {
	return &friendService{requests: requests, users: users}
}

func (s *friendService) SendRequest(sender *entity.User, recipientUUID string) (*entity.FriendRequest, error) {
	if sender.UUID == recipientUUID {
		return nil, apperr.Conflictf("You can't send a friend request to yourself")
	}

	if _, err := s.users.GetByUUID(recipientUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Recipient not found")
		}
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	alreadyFriends, err := s.users.AreFriends(recipientUUID, sender.UUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	if alreadyFriends {
		return nil, apperr.Conflictf("You are already friends with this user")
	}

	// One request per unordered pair, either direction, any status.
	existing, err := s.requests.FindBetween(sender.UUID, recipientUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	if existing != nil {
		return nil, apperr.Conflictf("A friend request already exists between you and this user")
	}

	request := &entity.FriendRequest{
		UUID:          uuid.New().String(),
		SenderUUID:    sender.UUID,
		RecipientUUID: recipientUUID,
		Status:        entity.FriendRequestPending,
		CreatedAt:     time.Now(),
	}
	if err := s.requests.Create(request); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return request, nil
}

func (s *friendService) AcceptRequest(actor *entity.User, requestUUID string) error {
	request, err := s.requests.GetByUUID(requestUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("Friend request not found")
		}
		return apperr.Internal(err, "Internal Server Error")
	}

	if request.RecipientUUID != actor.UUID {
		return apperr.Forbiddenf("You are not authorized to accept this request")
	}

	// The status flip and both friendship edges land in one transaction.
	// Re-accepting is a no-op on the edges.
	if err := s.requests.Accept(request); err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	return nil
}

func (s *friendService) ListIncoming(userUUID string) ([]*FriendRequestView, error) {
	requests, err := s.requests.ListIncoming(userUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.expand(requests, true)
}

func (s *friendService) ListOutgoing(userUUID string) ([]*FriendRequestView, error) {
	requests, err := s.requests.ListOutgoing(userUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.expand(requests, false)
}

func (s *friendService) ListAccepted(userUUID string) ([]*FriendRequestView, error) {
	requests, err := s.requests.ListAcceptedFrom(userUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.expand(requests, false)
}

// expand attaches the counterpart's summary to each request: the sender on
// incoming lists, the recipient on outgoing ones.
func (s *friendService) expand(requests []*entity.FriendRequest, withSender bool) ([]*FriendRequestView, error) {
	views := make([]*FriendRequestView, 0, len(requests))
	for _, request := range requests {
		view := &FriendRequestView{
			UUID:      request.UUID,
			Status:    string(request.Status),
			CreatedAt: request.CreatedAt,
		}
		counterpartUUID := request.RecipientUUID
		if withSender {
			counterpartUUID = request.SenderUUID
		}
		counterpart, err := s.users.GetByUUID(counterpartUUID)
		if err != nil {
			return nil, apperr.Internal(err, "Internal Server Error")
		}
		summary := summarize(counterpart)
		if withSender {
			view.Sender = &summary
		} else {
			view.Recipient = &summary
		}
		views = append(views, view)
	}
	return views, nil
}
