/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tandem/internal/entity"
)

// This repository manipulates users, their secrets and their friendship edges.
type UserRepository interface {
	Create(user *entity.User, secret *entity.UserSecret) error // Inserts a user with its secret in one transaction
	Update(user *entity.User) error                            // Persists profile changes

	GetByUUID(uuid string) (*entity.User, error)       // Retrieves the user with the given uuid
	GetByEmail(email string) (*entity.User, error)     // Retrieves the user with the given email
	GetSecret(userUUID string) (*entity.UserSecret, error) // Retrieves the password hash record of a user

	Search(q, excludeUUID string, limit int) ([]*entity.User, error) // Case-insensitive match on name, email and bio
	GetRecommended(forUUID string) ([]*entity.User, error)           // Onboarded users minus the given user and its friends

	GetFriends(uuid string) ([]*entity.User, error) // Users on the other end of this user's friendship edges
	AreFriends(a, b string) (bool, error)           // Whether a friendship edge exists from a to b

	GetThreads(uuid string) ([]*entity.Thread, error)                   // Registered top-level threads of the user, newest first
	Counts(uuid string) (threads, friends, communities int64, err error) // Sizes of the user's denormalized lists
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User, secret *entity.UserSecret) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(secret).Error
	})
}

func (repo *SQLiteUserRepository) Update(user *entity.User) error {
	return repo.db.Save(user).Error
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("uuid = ?", uuid).First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (repo *SQLiteUserRepository) GetSecret(userUUID string) (*entity.UserSecret, error) {
	var secret entity.UserSecret
	err := repo.db.Where("user_uuid = ?", userUUID).First(&secret).Error
	return &secret, err
}

func (repo *SQLiteUserRepository) Search(q, excludeUUID string, limit int) ([]*entity.User, error) {
	var users []*entity.User
	pattern := "%" + q + "%"
	err := repo.db.
		Where("uuid <> ?", excludeUUID).
		Where("full_name LIKE ? OR email LIKE ? OR bio LIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) GetRecommended(forUUID string) ([]*entity.User, error) {
	var users []*entity.User
	friendUUIDs := repo.db.Model(&entity.UserFriend{}).
		Select("friend_uuid").
		Where("user_uuid = ?", forUUID)
	err := repo.db.
		Where("uuid <> ?", forUUID).
		Where("is_onboarded = ?", true).
		Where("uuid NOT IN (?)", friendUUIDs).
		Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) GetFriends(uuid string) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.
		Joins("JOIN user_friends ON user_friends.friend_uuid = users.uuid").
		Where("user_friends.user_uuid = ?", uuid).
		Order("users.full_name").
		Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) AreFriends(a, b string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.UserFriend{}).
		Where("user_uuid = ? AND friend_uuid = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteUserRepository) GetThreads(uuid string) ([]*entity.Thread, error) {
	var threads []*entity.Thread
	err := repo.db.
		Joins("JOIN user_threads ON user_threads.thread_uuid = threads.uuid").
		Where("user_threads.user_uuid = ?", uuid).
		Order("threads.created_at DESC, threads.uuid DESC").
		Find(&threads).Error
	return threads, err
}

func (repo *SQLiteUserRepository) Counts(uuid string) (threads, friends, communities int64, err error) {
	if err = repo.db.Model(&entity.UserThread{}).Where("user_uuid = ?", uuid).Count(&threads).Error; err != nil {
		return
	}
	if err = repo.db.Model(&entity.UserFriend{}).Where("user_uuid = ?", uuid).Count(&friends).Error; err != nil {
		return
	}
	err = repo.db.Model(&entity.CommunityMember{}).Where("user_uuid = ?", uuid).Count(&communities).Error
	return
}

// addFriendshipTx inserts both directions of a friendship edge. It is
// idempotent so re-accepting an already accepted request is a no-op.
func addFriendshipTx(tx *gorm.DB, a, b string) error {
	edges := []entity.UserFriend{
		{UserUUID: a, FriendUUID: b},
		{UserUUID: b, FriendUUID: a},
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
}
