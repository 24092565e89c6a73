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

	"gorm.io/gorm"

	"tandem/internal/apperr"
	"tandem/internal/entity"
	"tandem/internal/repository"
)

const searchResultLimit = 20

// Service for the read side of the identity store: recommendations, friend
// lists, search and public profiles.
type UserService interface {
	GetRecommended(viewer *entity.User) ([]UserSummary, error)      // Onboarded users minus the viewer and the viewer's friends
	GetFriends(viewerUUID string) ([]UserSummary, error)            // The viewer's friend set, expanded
	Search(viewerUUID, q string) ([]UserSummary, error)             // Substring match on name, email and bio; empty query yields an empty result
	GetProfile(viewerUUID, targetUUID string) (*UserProfile, error) // Public profile with counters and the target's registered threads
}

type userService struct {
	users    repository.UserRepository
	requests repository.FriendRequestRepository
	threads  ThreadService
}

func NewUserService(users repository.UserRepository, requests repository.FriendRequestRepository, threads ThreadService) UserService {
	return &userService{users: users, requests: requests, threads: threads}
}

func (s *userService) GetRecommended(viewer *entity.User) ([]UserSummary, error) {
	users, err := s.users.GetRecommended(viewer.UUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return summarizeAll(users), nil
}

func (s *userService) GetFriends(viewerUUID string) ([]UserSummary, error) {
	friends, err := s.users.GetFriends(viewerUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return summarizeAll(friends), nil
}

func (s *userService) Search(viewerUUID, q string) ([]UserSummary, error) {
	q = normalizeQuery(q)
	if q == "" {
		return []UserSummary{}, nil
	}
	users, err := s.users.Search(q, viewerUUID, searchResultLimit)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return summarizeAll(users), nil
}

func (s *userService) GetProfile(viewerUUID, targetUUID string) (*UserProfile, error) {
	target, err := s.users.GetByUUID(targetUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("User not found")
		}
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	isFriend, err := s.users.AreFriends(targetUUID, viewerUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	hasPending, err := s.requests.HasPendingFrom(viewerUUID, targetUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	threadCount, friendCount, communityCount, err := s.users.Counts(targetUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	registered, err := s.users.GetThreads(targetUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	views := make([]*ThreadView, 0, len(registered))
	for _, thread := range registered {
		view, err := s.threads.BuildView(thread, 0)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	summary := summarize(target)
	return &UserProfile{
		UUID:              target.UUID,
		FullName:          target.FullName,
		Bio:               target.Bio,
		Location:          target.Location,
		NativeLanguage:    target.NativeLanguage,
		LearningLanguage:  target.LearningLanguage,
		ProfilePic:        summary.ProfilePic,
		IsFriend:          isFriend,
		HasPendingRequest: hasPending,
		ThreadCount:       threadCount,
		FriendCount:       friendCount,
		CommunityCount:    communityCount,
		Threads:           views,
		CreatedAt:         target.CreatedAt,
	}, nil
}
