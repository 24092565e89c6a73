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

// This repository manipulates communities, their member sets and their thread
// registries. Membership rows double as the user's community list, so the two
// sides of that denormalized pair cannot drift.
type CommunityRepository interface {
	Create(community *entity.Community) error                  // Inserts the community and its creator's membership in one transaction
	Update(community *entity.Community) error                  // Persists field changes
	Delete(uuid string) error                                  // Cascades: hard-deletes the community's threads, memberships and registries

	GetByUUID(uuid string) (*entity.Community, error)          // Retrieves the community with the given uuid
	GetByUsername(username string) (*entity.Community, error)  // Retrieves the community with the given slug. Returns nil, nil when absent
	Search(q string, offset, limit int) ([]*entity.Community, error) // Case-insensitive match on name, username, bio and tags, newest first

	AddMember(communityUUID, userUUID string) error            // Adds a membership edge
	RemoveMember(communityUUID, userUUID string) error         // Removes a membership edge
	IsMember(communityUUID, userUUID string) (bool, error)     // Whether the user is in the member set
	GetMembers(communityUUID string) ([]*entity.User, error)   // Users in the member set

	GetThreads(communityUUID string) ([]*entity.Thread, error) // Registered threads, newest first
	Counts(communityUUID string) (members, threads int64, err error)
}

// Implementation of the repository using a SQLite DB
type SQLiteCommunityRepository struct {
	db *gorm.DB
}

func NewSQLiteCommunityRepository(db *gorm.DB) CommunityRepository {
	return &SQLiteCommunityRepository{db}
}

func (repo *SQLiteCommunityRepository) Create(community *entity.Community) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		// The creator is the sole initial member.
		return tx.Create(&entity.CommunityMember{
			CommunityUUID: community.UUID,
			UserUUID:      community.CreatedBy,
		}).Error
	})
}

func (repo *SQLiteCommunityRepository) Update(community *entity.Community) error {
	return repo.db.Save(community).Error
}

func (repo *SQLiteCommunityRepository) Delete(uuid string) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		// Threads scoped to the community are hard-removed, history and
		// engagements included. Reply rows keep their parent pointer but the
		// parents are gone, matching the source's deleteMany cascade.
		var threadUUIDs []string
		if err := tx.Model(&entity.Thread{}).
			Where("community_uuid = ?", uuid).
			Pluck("uuid", &threadUUIDs).Error; err != nil {
			return err
		}
		if len(threadUUIDs) > 0 {
			if err := tx.Where("thread_uuid IN ?", threadUUIDs).Delete(&entity.Engagement{}).Error; err != nil {
				return err
			}
			if err := tx.Where("thread_uuid IN ?", threadUUIDs).Delete(&entity.EditRevision{}).Error; err != nil {
				return err
			}
			if err := tx.Where("thread_uuid IN ?", threadUUIDs).Delete(&entity.UserThread{}).Error; err != nil {
				return err
			}
			if err := tx.Where("uuid IN ?", threadUUIDs).Delete(&entity.Thread{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("community_uuid = ?", uuid).Delete(&entity.CommunityThread{}).Error; err != nil {
			return err
		}
		// Dropping the membership rows is what pulls the community out of
		// every member's community list.
		if err := tx.Where("community_uuid = ?", uuid).Delete(&entity.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&entity.Community{}).Error
	})
}

func (repo *SQLiteCommunityRepository) GetByUUID(uuid string) (*entity.Community, error) {
	var community entity.Community
	err := repo.db.Where("uuid = ?", uuid).First(&community).Error
	return &community, err
}

func (repo *SQLiteCommunityRepository) GetByUsername(username string) (*entity.Community, error) {
	var community entity.Community
	err := repo.db.Where("username = ?", username).First(&community).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (repo *SQLiteCommunityRepository) Search(q string, offset, limit int) ([]*entity.Community, error) {
	var communities []*entity.Community
	query := repo.db.Model(&entity.Community{})
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"name LIKE ? OR username LIKE ? OR bio LIKE ? OR tags LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	err := query.
		Order("created_at DESC, uuid DESC").
		Offset(offset).
		Limit(limit).
		Find(&communities).Error
	return communities, err
}

func (repo *SQLiteCommunityRepository) AddMember(communityUUID, userUUID string) error {
	return repo.db.Create(&entity.CommunityMember{
		CommunityUUID: communityUUID,
		UserUUID:      userUUID,
	}).Error
}

func (repo *SQLiteCommunityRepository) RemoveMember(communityUUID, userUUID string) error {
	return repo.db.
		Where("community_uuid = ? AND user_uuid = ?", communityUUID, userUUID).
		Delete(&entity.CommunityMember{}).Error
}

func (repo *SQLiteCommunityRepository) IsMember(communityUUID, userUUID string) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.CommunityMember{}).
		Where("community_uuid = ? AND user_uuid = ?", communityUUID, userUUID).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteCommunityRepository) GetMembers(communityUUID string) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.
		Joins("JOIN community_members ON community_members.user_uuid = users.uuid").
		Where("community_members.community_uuid = ?", communityUUID).
		Order("users.full_name").
		Find(&users).Error
	return users, err
}

func (repo *SQLiteCommunityRepository) GetThreads(communityUUID string) ([]*entity.Thread, error) {
	var threads []*entity.Thread
	err := repo.db.
		Joins("JOIN community_threads ON community_threads.thread_uuid = threads.uuid").
		Where("community_threads.community_uuid = ?", communityUUID).
		Order("threads.created_at DESC, threads.uuid DESC").
		Find(&threads).Error
	return threads, err
}

func (repo *SQLiteCommunityRepository) Counts(communityUUID string) (members, threads int64, err error) {
	if err = repo.db.Model(&entity.CommunityMember{}).
		Where("community_uuid = ?", communityUUID).Count(&members).Error; err != nil {
		return
	}
	err = repo.db.Model(&entity.CommunityThread{}).
		Where("community_uuid = ?", communityUUID).Count(&threads).Error
	return
}
