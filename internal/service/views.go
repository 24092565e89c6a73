/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"time"

	"tandem/internal/avatar"
	"tandem/internal/entity"
)

// View types are the denormalized shapes the read paths assemble at query
// time: entity ids expanded into author/community/engagement summaries.

// UserSummary is the public face of a user on feeds and member lists.
type UserSummary struct {
	UUID             string `json:"uuid"`
	FullName         string `json:"fullName"`
	ProfilePic       string `json:"profilePic"`
	NativeLanguage   string `json:"nativeLanguage,omitempty"`
	LearningLanguage string `json:"learningLanguage,omitempty"`
}

// UserRef is the minimal identifier used inside engagement sets.
type UserRef struct {
	UUID     string `json:"uuid"`
	FullName string `json:"fullName"`
}

// CommunitySummary is the compact community reference attached to threads.
type CommunitySummary struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// RevisionView is one prior version of a thread.
type RevisionView struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"editedAt"`
}

// ThreadView is a thread with every reference expanded.
type ThreadView struct {
	UUID        string            `json:"uuid"`
	Content     string            `json:"content"`
	Author      UserSummary       `json:"author"`
	Community   *CommunitySummary `json:"community,omitempty"`
	ParentID    *string           `json:"parentId"`
	Children    []*ThreadView     `json:"children"`
	Images      []string          `json:"images"`
	Likes       []UserRef         `json:"likes"`
	Reposts     []UserRef         `json:"reposts"`
	Upvotes     []UserRef         `json:"upvotes"`
	Downvotes   []UserRef         `json:"downvotes"`
	Bookmarks   []UserRef         `json:"bookmarks"`
	IsEdited    bool              `json:"isEdited"`
	EditHistory []RevisionView    `json:"editHistory,omitempty"`
	IsDeleted   bool              `json:"isDeleted"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// VoteResult reports the post-mutation tallies and the caller's vote state.
type VoteResult struct {
	Message   string `json:"message"`
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
	UserVote  string `json:"userVote"` // "upvote", "downvote" or ""
}

// CommunityView is a community with its creator expanded and its counters
// attached. Members and Threads are filled only on the single-community read.
type CommunityView struct {
	UUID        string        `json:"uuid"`
	Name        string        `json:"name"`
	Username    string        `json:"username"`
	Bio         string        `json:"bio"`
	Image       string        `json:"image"`
	CreatedBy   UserSummary   `json:"createdBy"`
	IsPrivate   bool          `json:"isPrivate"`
	Tags        []string      `json:"tags"`
	MemberCount int64         `json:"memberCount"`
	ThreadCount int64         `json:"threadCount"`
	IsMember    bool          `json:"isMember"`
	Members     []UserSummary `json:"members,omitempty"`
	Threads     []*ThreadView `json:"threads,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// FriendRequestView is a request with a denormalized counterpart summary.
type FriendRequestView struct {
	UUID      string       `json:"uuid"`
	Status    string       `json:"status"`
	Sender    *UserSummary `json:"sender,omitempty"`
	Recipient *UserSummary `json:"recipient,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// UserProfile is the public profile page payload. Email and the raw friend
// and community lists are withheld; only their sizes are exposed.
type UserProfile struct {
	UUID              string        `json:"uuid"`
	FullName          string        `json:"fullName"`
	Bio               string        `json:"bio"`
	Location          string        `json:"location"`
	NativeLanguage    string        `json:"nativeLanguage"`
	LearningLanguage  string        `json:"learningLanguage"`
	ProfilePic        string        `json:"profilePic"`
	IsFriend          bool          `json:"isFriend"`
	HasPendingRequest bool          `json:"hasPendingRequest"`
	ThreadCount       int64         `json:"threadCount"`
	FriendCount       int64         `json:"friendCount"`
	CommunityCount    int64         `json:"communityCount"`
	Threads           []*ThreadView `json:"threads"`
	CreatedAt         time.Time     `json:"createdAt"`
}

func summarize(u *entity.User) UserSummary {
	return UserSummary{
		UUID:             u.UUID,
		FullName:         u.FullName,
		ProfilePic:       avatar.Resolve(u),
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}

func summarizeAll(users []*entity.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summarize(u))
	}
	return out
}

func refAll(users []*entity.User) []UserRef {
	out := make([]UserRef, 0, len(users))
	for _, u := range users {
		out = append(out, UserRef{UUID: u.UUID, FullName: u.FullName})
	}
	return out
}

func summarizeCommunity(c *entity.Community) *CommunitySummary {
	return &CommunitySummary{
		UUID:     c.UUID,
		Name:     c.Name,
		Username: c.Username,
		Image:    c.Image,
	}
}
