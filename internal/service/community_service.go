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

// CommunityInput is the creation payload.
type CommunityInput struct {
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Bio       string   `json:"bio"`
	Image     string   `json:"image"`
	Tags      []string `json:"tags"`
	IsPrivate bool     `json:"isPrivate"`
}

// CommunityUpdate carries the editable fields; nil means "leave as is".
type CommunityUpdate struct {
	Name      *string   `json:"name"`
	Bio       *string   `json:"bio"`
	Tags      *[]string `json:"tags"`
	IsPrivate *bool     `json:"isPrivate"`
}

// Service for the community registry. Join and leave are idempotent-guarded,
// update/delete/removeMember are creator-only, and deletion cascades to the
// community's threads and to every member's community list.
type CommunityService interface {
	Create(creator *entity.User, in CommunityInput) (*CommunityView, error)
	Update(actor *entity.User, communityUUID string, in CommunityUpdate) (*CommunityView, error)
	Delete(actor *entity.User, communityUUID string) error

	Join(actor *entity.User, communityUUID string) error
	Leave(actor *entity.User, communityUUID string) error
	RemoveMember(actor *entity.User, communityUUID, memberUUID string) error

	Get(viewerUUID, communityUUID string) (*CommunityView, error)            // Expands creator, members and registered threads
	Search(viewerUUID, q string, page, limit int) []*CommunityView           // Degrades to an empty result on internal failure
}

type communityService struct {
	communities repository.CommunityRepository
	users       repository.UserRepository
	threads     ThreadService
}

func NewCommunityService(communities repository.CommunityRepository, users repository.UserRepository, threads ThreadService) CommunityService {
	return &communityService{communities: communities, users: users, threads: threads}
}

// normalizeTags lowercases and trims every tag, dropping empties.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (s *communityService) load(communityUUID string) (*entity.Community, error) {
	community, err := s.communities.GetByUUID(communityUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Community not found")
		}
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return community, nil
}

func (s *communityService) Create(creator *entity.User, in CommunityInput) (*CommunityView, error) {
	name := strings.TrimSpace(in.Name)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if name == "" || username == "" {
		return nil, apperr.Validationf("Name and username are required")
	}
	if len(name) > entity.MaxCommunityNameLength {
		return nil, apperr.Validationf("Name must be at most %d characters", entity.MaxCommunityNameLength)
	}
	if len(username) > entity.MaxCommunityUsernameLength {
		return nil, apperr.Validationf("Username must be at most %d characters", entity.MaxCommunityUsernameLength)
	}
	if len(in.Bio) > entity.MaxCommunityBioLength {
		return nil, apperr.Validationf("Bio must be at most %d characters", entity.MaxCommunityBioLength)
	}

	existing, err := s.communities.GetByUsername(username)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	if existing != nil {
		return nil, apperr.Conflictf("Username is already taken")
	}

	community := &entity.Community{
		UUID:      uuid.New().String(),
		Name:      name,
		Username:  username,
		Bio:       strings.TrimSpace(in.Bio),
		Image:     in.Image,
		CreatedBy: creator.UUID,
		IsPrivate: in.IsPrivate,
		Tags:      normalizeTags(in.Tags),
		CreatedAt: time.Now(),
	}
	if err := s.communities.Create(community); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	jww.INFO.Printf("community %s (%s) created by %s", community.UUID, community.Username, creator.UUID)
	return s.buildView(community, creator.UUID, false)
}

func (s *communityService) Update(actor *entity.User, communityUUID string, in CommunityUpdate) (*CommunityView, error) {
	community, err := s.load(communityUUID)
	if err != nil {
		return nil, err
	}
	if community.CreatedBy != actor.UUID {
		return nil, apperr.Forbiddenf("Only the community creator can update the community")
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		community.Name = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		community.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Tags != nil {
		community.Tags = normalizeTags(*in.Tags)
	}
	if in.IsPrivate != nil {
		community.IsPrivate = *in.IsPrivate
	}

	if err := s.communities.Update(community); err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	return s.buildView(community, actor.UUID, true)
}

func (s *communityService) Delete(actor *entity.User, communityUUID string) error {
	community, err := s.load(communityUUID)
	if err != nil {
		return err
	}
	if community.CreatedBy != actor.UUID {
		return apperr.Forbiddenf("Only the community creator can delete the community")
	}

	if err := s.communities.Delete(community.UUID); err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	jww.INFO.Printf("community %s deleted by %s", community.UUID, actor.UUID)
	return nil
}

func (s *communityService) Join(actor *entity.User, communityUUID string) error {
	community, err := s.load(communityUUID)
	if err != nil {
		return err
	}

	isMember, err := s.communities.IsMember(community.UUID, actor.UUID)
	if err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	if isMember {
		return apperr.Conflictf("You are already a member of this community")
	}

	if err := s.communities.AddMember(community.UUID, actor.UUID); err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	return nil
}

func (s *communityService) Leave(actor *entity.User, communityUUID string) error {
	community, err := s.load(communityUUID)
	if err != nil {
		return err
	}

	isMember, err := s.communities.IsMember(community.UUID, actor.UUID)
	if err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	if !isMember {
		return apperr.Conflictf("You are not a member of this community")
	}
	// The creator can only be removed by deleting the whole community.
	if community.CreatedBy == actor.UUID {
		return apperr.Conflictf("Community creators cannot leave their own community")
	}

	if err := s.communities.RemoveMember(community.UUID, actor.UUID); err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	return nil
}

func (s *communityService) RemoveMember(actor *entity.User, communityUUID, memberUUID string) error {
	community, err := s.load(communityUUID)
	if err != nil {
		return err
	}
	if community.CreatedBy != actor.UUID {
		return apperr.Forbiddenf("Only the community creator can remove members")
	}

	isMember, err := s.communities.IsMember(community.UUID, memberUUID)
	if err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	if !isMember {
		return apperr.Conflictf("User is not a member of this community")
	}
	if memberUUID == community.CreatedBy {
		return apperr.Conflictf("Cannot remove the community creator")
	}

	if err := s.communities.RemoveMember(community.UUID, memberUUID); err != nil {
		return apperr.Internal(err, "Internal Server Error")
	}
	return nil
}

func (s *communityService) Get(viewerUUID, communityUUID string) (*CommunityView, error) {
	community, err := s.load(communityUUID)
	if err != nil {
		return nil, err
	}
	return s.buildView(community, viewerUUID, true)
}

func (s *communityService) Search(viewerUUID, q string, page, limit int) []*CommunityView {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	communities, err := s.communities.Search(normalizeQuery(q), (page-1)*limit, limit)
	if err != nil {
		jww.WARN.Printf("community search failed, returning empty result: %+v", err)
		return []*CommunityView{}
	}

	views := make([]*CommunityView, 0, len(communities))
	for _, community := range communities {
		view, err := s.buildView(community, viewerUUID, false)
		if err != nil {
			jww.WARN.Printf("community expansion failed, returning empty result: %+v", err)
			return []*CommunityView{}
		}
		views = append(views, view)
	}
	return views
}

// buildView expands the creator and attaches the counters; detailed views
// also carry the member list and the registered threads, newest first.
func (s *communityService) buildView(community *entity.Community, viewerUUID string, detailed bool) (*CommunityView, error) {
	creator, err := s.users.GetByUUID(community.CreatedBy)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	memberCount, threadCount, err := s.communities.Counts(community.UUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	isMember, err := s.communities.IsMember(community.UUID, viewerUUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}

	tags := community.Tags
	if tags == nil {
		tags = []string{}
	}
	view := &CommunityView{
		UUID:        community.UUID,
		Name:        community.Name,
		Username:    community.Username,
		Bio:         community.Bio,
		Image:       community.Image,
		CreatedBy:   summarize(creator),
		IsPrivate:   community.IsPrivate,
		Tags:        tags,
		MemberCount: memberCount,
		ThreadCount: threadCount,
		IsMember:    isMember,
		CreatedAt:   community.CreatedAt,
	}

	if !detailed {
		return view, nil
	}

	members, err := s.communities.GetMembers(community.UUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	view.Members = summarizeAll(members)

	registered, err := s.communities.GetThreads(community.UUID)
	if err != nil {
		return nil, apperr.Internal(err, "Internal Server Error")
	}
	for _, thread := range registered {
		threadView, err := s.threads.BuildView(thread, 0)
		if err != nil {
			return nil, err
		}
		view.Threads = append(view.Threads, threadView)
	}
	return view, nil
}
