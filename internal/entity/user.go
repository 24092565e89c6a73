/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import (
	"time"
)

// User is an account and its profile fields.
// The avatar is resolved through a chain of three fields: AvatarURL (explicit
// upload), ProfilePic (external photo, possibly a generated one kept for
// backward compatibility) and RandomAvatarURL (generated fallback).
type User struct {
	UUID             string    `gorm:"primaryKey" json:"uuid"`
	FullName         string    `gorm:"not null;index" json:"fullName"`
	Email            string    `gorm:"not null;uniqueIndex" json:"email,omitempty"`
	Bio              string    `json:"bio"`
	Location         string    `json:"location"`
	NativeLanguage   string    `json:"nativeLanguage"`
	LearningLanguage string    `json:"learningLanguage"`
	AvatarURL        string    `json:"avatarUrl"`
	ProfilePic       string    `json:"profilePic"`
	RandomAvatarURL  string    `json:"randomAvatarUrl"`
	IsOnboarded      bool      `gorm:"default:false" json:"isOnboarded"`
	CreatedAt        time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Secret UserSecret `gorm:"foreignKey:UserUUID;references:UUID" json:"-"`
}

// UserFriend is one direction of a friendship edge.
// An accepted friendship is stored as two rows, (A,B) and (B,A), written in
// the same transaction so the edge is symmetric by construction.
type UserFriend struct {
	UserUUID   string `gorm:"primaryKey"`
	FriendUUID string `gorm:"primaryKey;index"`
}

// UserThread registers a top-level thread in its author's thread list.
// Replies are never registered here; soft deletion removes the row while the
// thread itself stays fetchable.
type UserThread struct {
	UserUUID   string `gorm:"primaryKey"`
	ThreadUUID string `gorm:"primaryKey;index"`
}
