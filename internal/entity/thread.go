/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// MaxThreadContentLength bounds the content of posts and replies.
const MaxThreadContentLength = 500

// Thread is a post or a reply; a reply is a thread with a non-nil ParentUUID.
// The tree is stored as an adjacency list: children are the threads whose
// ParentUUID points here, ordered by ReplyOrdinal (insertion order).
// Threads are never physically removed. Deletion flips IsDeleted and
// unregisters the thread from its author's and community's lists, but the row
// and its replies stay fetchable by id.
type Thread struct {
	UUID          string    `gorm:"primaryKey" json:"uuid"`
	Content       string    `gorm:"not null" json:"content"`
	AuthorUUID    string    `gorm:"not null;index" json:"author"`
	CommunityUUID *string   `gorm:"index" json:"community"`
	ParentUUID    *string   `gorm:"index" json:"parentId"`
	ReplyOrdinal  int       `gorm:"default:0" json:"-"`
	Images        []string  `gorm:"serializer:json" json:"images"`
	IsEdited      bool      `gorm:"default:false" json:"isEdited"`
	IsDeleted     bool      `gorm:"default:false;index" json:"isDeleted"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EditRevision is one prior version of a thread's content, oldest first.
// The live content is never present here: the first edit stores the original
// content stamped with the thread's creation time, every later edit stores
// the content it replaced stamped with the edit time.
type EditRevision struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ThreadUUID string    `gorm:"not null;index" json:"-"`
	Ordinal    int       `gorm:"not null" json:"-"`
	Content    string    `gorm:"not null" json:"content"`
	EditedAt   time.Time `gorm:"not null" json:"editedAt"`
}
