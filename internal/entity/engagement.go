/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

type EngagementKind string

const (
	EngagementLike     EngagementKind = "like"
	EngagementRepost   EngagementKind = "repost"
	EngagementUpvote   EngagementKind = "upvote"
	EngagementDownvote EngagementKind = "downvote"
	EngagementBookmark EngagementKind = "bookmark"
)

// Engagement is one row per (thread, user, kind) instead of an unbounded list
// embedded in the thread record. Upvote and downvote are mutually exclusive
// for the same (thread, user); the other kinds are orthogonal.
type Engagement struct {
	ThreadUUID string         `gorm:"primaryKey" json:"thread"`
	UserUUID   string         `gorm:"primaryKey" json:"user"`
	Kind       EngagementKind `gorm:"primaryKey" json:"kind"`
	CreatedAt  time.Time      `gorm:"not null" json:"createdAt"`
}
