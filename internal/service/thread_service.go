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
	"strings"
	"time"

	"github.com/google/uuid"
	jww "github.com/spf13/jwalterweatherman"
	"gorm.io/gorm"

	"tandem/internal/apperr"
	"tandem/internal/entity"
	"tandem/internal/repository"
)

// Feed scopes.
const (
	FeedScopeAll       = "all"
	FeedScopeFollowing = "following"
)

// Service for the thread tree: composition, engagement, edits, deletion and
// the feed. Every operation loads its target by id and reports NotFound when
// the id is unknown; soft-deleted threads stay loadable.
type ThreadService interface {
	CreatePost(author *entity.User, content string, images []string, communityUUID *string) (*ThreadView, error)
	CreateReply(author *entity.User, parentUUID, content string) (*ThreadView, error)

	ToggleLike(actor *entity.User, threadUUID string) (*ThreadView, bool, error) // Returns the refreshed view and whether the like was added
	ToggleRepost(actor *entity.User, threadUUID string) (bool, error)            // Fails when the actor authored the thread
	ToggleBookmark(actor *entity.User, threadUUID string) (bool, error)
	Vote(actor *entity.User, threadUUID, direction string) (*VoteResult, error)

	Edit(actor *entity.User, threadUUID, content string) (*ThreadView, error)
	SoftDelete(actor *entity.User, threadUUID string) error

	GetThread(threadUUID string) (*ThreadView, error)                         // Expands two reply levels and the edit history
	ListFeed(viewer *entity.User, scope string, page, limit int) []*ThreadView // Degrades to an empty result on internal failure

	BuildView(thread *entity.Thread, depth int) (*ThreadView, error) // Assembles the denormalized view, expanding depth reply levels
}

type threadService struct {
	threads     repository.ThreadRepository
	users       repository.UserRepository
	communities repository.CommunityRepository
}

func NewThreadService(threads repository.ThreadRepository, users repository.UserRepository, communities repository.CommunityRepository) ThreadService {
	return &threadService{threads: threads, users: users, communities: communities}
}

// validateContent trims and bounds post/reply/edit content.
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Validationf("Content is required")
	}
	if len(content) > entity.MaxThreadContentLength {
		return "", apperr.Validationf("Content must be at most %d characters", entity.MaxThreadContentLength)
	}
	return content, nil
}

func (s *threadService) load(threadUUID string) (*entity.Thread, error) {
	thread, err := s.threads.GetByUUID(threadUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Thread not found")
		}
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return thread, nil
}

func (s *threadService) CreatePost(author *entity.User, content string, images []string, communityUUID *string) (*ThreadView, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if communityUUID != nil {
		if _, err := s.communities.GetByUUID(*communityUUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("Community not found")
			}
			return nil, apperr.Internal(err, "Internal Server Error")
		}
	}
	if images == nil {
		images = []string{}
	}

	thread := &entity.Thread{
		UUID:          uuid.New().String(),
		Content:       content,
		AuthorUUID:    author.UUID,
		CommunityUUID: communityUUID,
		Images:        images,
		CreatedAt:     time.Now(),
	}
	if err := s.threads.CreatePost(thread); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.BuildView(thread, 0)
}

func (s *threadService) CreateReply(author *entity.User, parentUUID, content string) (*ThreadView, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.load(parentUUID); err != nil {
		return nil, err
	}

	reply := &entity.Thread{
		UUID:       uuid.New().String(),
		Content:    content,
		AuthorUUID: author.UUID,
		ParentUUID: &parentUUID,
		Images:     []string{},
		CreatedAt:  time.Now(),
	}
	if err := s.threads.CreateReply(reply); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.BuildView(reply, 0)
}

func (s *threadService) ToggleLike(actor *entity.User, threadUUID string) (*ThreadView, bool, error) {
	thread, err := s.load(threadUUID)
	if err != nil {
		return nil, false, err
	}
	added, err := s.threads.Toggle(thread.UUID, actor.UUID, entity.EngagementLike)
	if err != nil {
		return nil, false, apperr.Internal(err, "Internal Server Error")
	}
	view, err := s.BuildView(thread, 0)
	if err != nil {
		return nil, false, err
	}
	return view, added, nil
}

func (s *threadService) ToggleRepost(actor *entity.User, threadUUID string) (bool, error) {
	thread, err := s.load(threadUUID)
	if err != nil {
		return false, err
	}
	if thread.AuthorUUID == actor.UUID {
		return false, apperr.Conflictf("You cannot repost your own thread")
	}
	added, err := s.threads.Toggle(thread.UUID, actor.UUID, entity.EngagementRepost)
	if err != nil {
		return false, apperr.Internal(err, "Internal Server Error")
	}
	return added, nil
}

func (s *threadService) ToggleBookmark(actor *entity.User, threadUUID string) (bool, error) {
	thread, err := s.load(threadUUID)
	if err != nil {
		return false, err
	}
	added, err := s.threads.Toggle(thread.UUID, actor.UUID, entity.EngagementBookmark)
	if err != nil {
		return false, apperr.Internal(err, "Internal Server Error")
	}
	return added, nil
}

func (s *threadService) Vote(actor *entity.User, threadUUID, direction string) (*VoteResult, error) {
	var kind entity.EngagementKind
	switch direction {
	case "upvote":
		kind = entity.EngagementUpvote
	case "downvote":
		kind = entity.EngagementDownvote
	default:
		return nil, apperr.Validationf("voteType must be 'upvote' or 'downvote'")
	}

	thread, err := s.load(threadUUID)
	if err != nil {
		return nil, err
	}

	state, err := s.threads.Vote(thread.UUID, actor.UUID, kind)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	upvotes, err := s.threads.CountEngagements(thread.UUID, entity.EngagementUpvote)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	downvotes, err := s.threads.CountEngagements(thread.UUID, entity.EngagementDownvote)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	return &VoteResult{
		Message:   "Vote updated successfully",
		Upvotes:   upvotes,
		Downvotes: downvotes,
		UserVote:  string(state),
	}, nil
}

func (s *threadService) Edit(actor *entity.User, threadUUID, content string) (*ThreadView, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	thread, err := s.load(threadUUID)
	if err != nil {
		return nil, err
	}
	if thread.AuthorUUID != actor.UUID {
		return nil, apperr.Forbiddenf("You can only edit your own threads")
	}

	if err := s.threads.Edit(thread, content, time.Now()); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.BuildView(thread, 0)
}

func (s *threadService) SoftDelete(actor *entity.User, threadUUID string) error {
	thread, err := s.load(threadUUID)
	if err != nil {
		return err
	}
	if thread.AuthorUUID != actor.UUID {
		return apperr.Forbiddenf("You can only delete your own threads")
	}

	// The thread is unregistered from its author's and community's lists but
	// keeps its place in the parent's children list, and its replies are left
	// alone.
	if err := s.threads.SoftDelete(thread); err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	return nil
}

func (s *threadService) GetThread(threadUUID string) (*ThreadView, error) {
	thread, err := s.load(threadUUID)
	if err != nil {
		return nil, err
	}
	view, err := s.BuildView(thread, 2)
	if err != nil {
		return nil, err
	}

	revisions, err := s.threads.ListRevisions(thread.UUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	for _, revision := range revisions {
		view.EditHistory = append(view.EditHistory, RevisionView{
			Content:  revision.Content,
			EditedAt: revision.EditedAt,
		})
	}
	return view, nil
}

func (s *threadService) ListFeed(viewer *entity.User, scope string, page, limit int) []*ThreadView {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var threads []*entity.Thread
	var err error
	if scope == FeedScopeFollowing {
		friends, ferr := s.users.GetFriends(viewer.UUID)
		if ferr != nil {
			jww.WARN.Printf("feed query failed, returning empty feed: %+v", ferr)
			return []*ThreadView{}
		}
		authors := make([]string, 0, len(friends)+1)
		authors = append(authors, viewer.UUID)
		for _, friend := range friends {
			authors = append(authors, friend.UUID)
		}
		threads, err = s.threads.ListTopLevelByAuthors(authors, offset, limit)
	} else {
		threads, err = s.threads.ListTopLevel(offset, limit)
	}
	if err != nil {
		jww.WARN.Printf("feed query failed, returning empty feed: %+v", err)
		return []*ThreadView{}
	}

	// A broken join degrades to an empty feed rather than a 500; the feed is
	// the one read path that must never break the page.
	views := make([]*ThreadView, 0, len(threads))
	for _, thread := range threads {
		view, err := s.BuildView(thread, 1)
		if err != nil {
			jww.WARN.Printf("feed expansion failed, returning empty feed: %+v", err)
			return []*ThreadView{}
		}
		views = append(views, view)
	}
	return views
}

func (s *threadService) BuildView(thread *entity.Thread, depth int) (*ThreadView, error) {
	author, err := s.users.GetByUUID(thread.AuthorUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	view := &ThreadView{
		UUID:      thread.UUID,
		Content:   thread.Content,
		Author:    summarize(author),
		ParentID:  thread.ParentUUID,
		Children:  []*ThreadView{},
		Images:    thread.Images,
		IsEdited:  thread.IsEdited,
		IsDeleted: thread.IsDeleted,
		CreatedAt: thread.CreatedAt,
		UpdatedAt: thread.UpdatedAt,
	}
	if view.Images == nil {
		view.Images = []string{}
	}

	if thread.CommunityUUID != nil {
		community, err := s.communities.GetByUUID(*thread.CommunityUUID)
		if err == nil {
			view.Community = summarizeCommunity(community)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err, "Internal Server Error")
		}
	}

	for _, expansion := range []struct {
		kind entity.EngagementKind
		dst  *[]UserRef
	}{
		{entity.EngagementLike, &view.Likes},
		{entity.EngagementRepost, &view.Reposts},
		{entity.EngagementUpvote, &view.Upvotes},
		{entity.EngagementDownvote, &view.Downvotes},
		{entity.EngagementBookmark, &view.Bookmarks},
	} {
		users, err := s.threads.ListEngagedUsers(thread.UUID, expansion.kind)
		if err != nil {
			return nil, apperr.Internal(err, "Internal Server Error")
		}
		*expansion.dst = refAll(users)
	}

	if depth > 0 {
		children, err := s.threads.ListChildren(thread.UUID)
		if err != nil {
			return nil, apperr.Internal(err, "Internal Server Error")
		}
		for _, child := range children {
			childView, err := s.BuildView(child, depth-1)
			if err != nil {
				return nil, err
			}
			view.Children = append(view.Children, childView)
		}
	}
	return view, nil
}
