/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"errors"

	"gorm.io/gorm"

	"tandem/internal/entity"
)

// This repository manipulates friend requests. Requests are only ever created
// and accepted, never deleted; there is no declined state.
type FriendRequestRepository interface {
	Create(req *entity.FriendRequest) error                   // Inserts a pending request
	GetByUUID(uuid string) (*entity.FriendRequest, error)     // Retrieves the request with the given uuid
	FindBetween(a, b string) (*entity.FriendRequest, error)   // Finds a request between the pair in either direction, any status. Returns nil, nil when absent
	HasPendingFrom(sender, recipient string) (bool, error)    // Whether a pending request from sender to recipient exists

	ListIncoming(recipient string) ([]*entity.FriendRequest, error) // Pending requests addressed to the user, newest first
	ListOutgoing(sender string) ([]*entity.FriendRequest, error)    // Pending requests sent by the user, newest first
	ListAcceptedFrom(sender string) ([]*entity.FriendRequest, error) // Accepted requests the user sent, newest first

	Accept(req *entity.FriendRequest) error // Transitions the request to accepted and writes both friendship edges in one transaction
}

// Implementation of the repository using a SQLite DB
type SQLiteFriendRequestRepository struct {
	db *gorm.DB
}

func NewSQLiteFriendRequestRepository(db *gorm.DB) FriendRequestRepository {
	return &SQLiteFriendRequestRepository{db}
}

func (repo *SQLiteFriendRequestRepository) Create(req *entity.FriendRequest) error {
	return repo.db.Create(req).Error
}

func (repo *SQLiteFriendRequestRepository) GetByUUID(uuid string) (*entity.FriendRequest, error) {
	var req entity.FriendRequest
	err := repo.db.Where("uuid = ?", uuid).First(&req).Error
	return &req, err
}

func (repo *SQLiteFriendRequestRepository) FindBetween(a, b string) (*entity.FriendRequest, error) {
	var req entity.FriendRequest
	err := repo.db.
		Where("(sender_uuid = ? AND recipient_uuid = ?) OR (sender_uuid = ? AND recipient_uuid = ?)", a, b, b, a).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (repo *SQLiteFriendRequestRepository) HasPendingFrom(sender, recipient string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.FriendRequest{}).
		Where("sender_uuid = ? AND recipient_uuid = ? AND status = ?", sender, recipient, entity.FriendRequestPending).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteFriendRequestRepository) ListIncoming(recipient string) ([]*entity.FriendRequest, error) {
	var reqs []*entity.FriendRequest
	err := repo.db.
		Where("recipient_uuid = ? AND status = ?", recipient, entity.FriendRequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (repo *SQLiteFriendRequestRepository) ListOutgoing(sender string) ([]*entity.FriendRequest, error) {
	var reqs []*entity.FriendRequest
	err := repo.db.
		Where("sender_uuid = ? AND status = ?", sender, entity.FriendRequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (repo *SQLiteFriendRequestRepository) ListAcceptedFrom(sender string) ([]*entity.FriendRequest, error) {
	var reqs []*entity.FriendRequest
	err := repo.db.
		Where("sender_uuid = ? AND status = ?", sender, entity.FriendRequestAccepted).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (repo *SQLiteFriendRequestRepository) Accept(req *entity.FriendRequest) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.FriendRequest{}).
			Where("uuid = ?", req.UUID).
			Update("status", entity.FriendRequestAccepted).Error; err != nil {
			return err
		}
		return addFriendshipTx(tx, req.SenderUUID, req.RecipientUUID)
	})
}
