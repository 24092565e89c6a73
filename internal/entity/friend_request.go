/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// FriendRequest is a directed request between two users.
// At most one request may exist between any unordered pair, in either
// direction and regardless of status. Uniqueness is enforced by a pre-insert
// existence check in the service, not by a database constraint.
// The only transition is pending -> accepted; requests are never deleted.
type FriendRequest struct {
	UUID          string              `gorm:"primaryKey" json:"uuid"`
	SenderUUID    string              `gorm:"not null;index" json:"sender"`
	RecipientUUID string              `gorm:"not null;index" json:"recipient"`
	Status        FriendRequestStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt     time.Time           `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
