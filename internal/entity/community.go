/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

const (
	MaxCommunityNameLength     = 100
	MaxCommunityUsernameLength = 50
	MaxCommunityBioLength      = 500
)

// Community is a named, searchable group of users.
// The creator is always a member and can only be removed by deleting the
// whole community, which cascades to its threads and memberships.
type Community struct {
	UUID      string    `gorm:"primaryKey" json:"uuid"`
	Name      string    `gorm:"not null;index" json:"name"`
	Username  string    `gorm:"not null;uniqueIndex" json:"username"` // lowercase slug
	Bio       string    `json:"bio"`
	Image     string    `json:"image"`
	CreatedBy string    `gorm:"not null;index" json:"createdBy"`
	IsPrivate bool      `gorm:"default:false" json:"isPrivate"`
	Tags      []string  `gorm:"serializer:json" json:"tags"` // normalized to lowercase on write
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommunityMember is a membership edge. The same table is the user's
// community list and the community's member list, so the two views can never
// drift apart.
type CommunityMember struct {
	CommunityUUID string `gorm:"primaryKey"`
	UserUUID      string `gorm:"primaryKey;index"`
}

// CommunityThread registers a thread in a community's thread list.
// Soft deletion of the thread removes the row.
type CommunityThread struct {
	CommunityUUID string `gorm:"primaryKey"`
	ThreadUUID    string `gorm:"primaryKey;index"`
}
