/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"time"

	"gorm.io/gorm"

	"tandem/internal/entity"
)

// VoteState is the caller's vote on a thread after a vote mutation.
type VoteState string

const (
	VoteNone VoteState = ""
	VoteUp   VoteState = "upvote"
	VoteDown VoteState = "downvote"
)

// This repository manipulates the thread tree, its engagement relation and
// its edit history. Every mutation that touches more than one table runs in a
// single transaction.
type ThreadRepository interface {
	CreatePost(thread *entity.Thread) error  // Inserts a top-level thread and registers it with its author and, when scoped, its community
	CreateReply(reply *entity.Thread) error  // Inserts a reply, appending it to its parent's children list
	Save(thread *entity.Thread) error        // Persists field changes on the thread row alone

	GetByUUID(uuid string) (*entity.Thread, error)                          // Retrieves the thread with the given uuid, deleted or not
	ListTopLevel(offset, limit int) ([]*entity.Thread, error)               // Non-deleted top-level threads, newest first
	ListTopLevelByAuthors(authors []string, offset, limit int) ([]*entity.Thread, error) // Same, restricted to an author set
	ListChildren(parentUUID string) ([]*entity.Thread, error)               // Replies in insertion order

	SoftDelete(thread *entity.Thread) error // Flips IsDeleted and unregisters the thread from author and community lists. The parent's children list is untouched

	Toggle(threadUUID, userUUID string, kind entity.EngagementKind) (added bool, err error) // Symmetric add/remove keyed on current membership
	Vote(threadUUID, userUUID string, kind entity.EngagementKind) (VoteState, error)        // Toggle-off on repeat, swap on opposite
	HasEngagement(threadUUID, userUUID string, kind entity.EngagementKind) (bool, error)
	CountEngagements(threadUUID string, kind entity.EngagementKind) (int64, error)
	ListEngagedUsers(threadUUID string, kind entity.EngagementKind) ([]*entity.User, error) // Users in the engagement set, insertion order

	Edit(thread *entity.Thread, newContent string, now time.Time) error // Applies an edit, growing the history by exactly one revision
	ListRevisions(threadUUID string) ([]*entity.EditRevision, error)    // Prior versions, oldest first
}

// Implementation of the repository using a SQLite DB
type SQLiteThreadRepository struct {
	db *gorm.DB
}

func NewSQLiteThreadRepository(db *gorm.DB) ThreadRepository {
	return &SQLiteThreadRepository{db}
}

func (repo *SQLiteThreadRepository) CreatePost(thread *entity.Thread) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		if err := tx.Create(&entity.UserThread{
			UserUUID:   thread.AuthorUUID,
			ThreadUUID: thread.UUID,
		}).Error; err != nil {
			return err
		}
		if thread.CommunityUUID != nil {
			return tx.Create(&entity.CommunityThread{
				CommunityUUID: *thread.CommunityUUID,
				ThreadUUID:    thread.UUID,
			}).Error
		}
		return nil
	})
}

func (repo *SQLiteThreadRepository) CreateReply(reply *entity.Thread) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		// A reply's ordinal is its position in the parent's children list.
		// Replies are neither registered with their author nor with a
		// community; they are community-scoped through their ancestor.
		var siblings int64
		if err := tx.Model(&entity.Thread{}).
			Where("parent_uuid = ?", *reply.ParentUUID).
			Count(&siblings).Error; err != nil {
			return err
		}
		reply.ReplyOrdinal = int(siblings) + 1
		return tx.Create(reply).Error
	})
}

func (repo *SQLiteThreadRepository) Save(thread *entity.Thread) error {
	return repo.db.Save(thread).Error
}

func (repo *SQLiteThreadRepository) GetByUUID(uuid string) (*entity.Thread, error) {
	var thread entity.Thread
	err := repo.db.Where("uuid = ?", uuid).First(&thread).Error
	return &thread, err
}

func (repo *SQLiteThreadRepository) ListTopLevel(offset, limit int) ([]*entity.Thread, error) {
	var threads []*entity.Thread
	err := repo.db.
		Where("parent_uuid IS NULL AND is_deleted = ?", false).
		Order("created_at DESC, uuid DESC").
		Offset(offset).
		Limit(limit).
		Find(&threads).Error
	return threads, err
}

func (repo *SQLiteThreadRepository) ListTopLevelByAuthors(authors []string, offset, limit int) ([]*entity.Thread, error) {
	var threads []*entity.Thread
	err := repo.db.
		Where("parent_uuid IS NULL AND is_deleted = ?", false).
		Where("author_uuid IN ?", authors).
		Order("created_at DESC, uuid DESC").
		Offset(offset).
		Limit(limit).
		Find(&threads).Error
	return threads, err
}

func (repo *SQLiteThreadRepository) ListChildren(parentUUID string) ([]*entity.Thread, error) {
	var threads []*entity.Thread
	err := repo.db.
		Where("parent_uuid = ?", parentUUID).
		Order("reply_ordinal").
		Find(&threads).Error
	return threads, err
}

func (repo *SQLiteThreadRepository) SoftDelete(thread *entity.Thread) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Thread{}).
			Where("uuid = ?", thread.UUID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.
			Where("user_uuid = ? AND thread_uuid = ?", thread.AuthorUUID, thread.UUID).
			Delete(&entity.UserThread{}).Error; err != nil {
			return err
		}
		if thread.CommunityUUID != nil {
			return tx.
				Where("community_uuid = ? AND thread_uuid = ?", *thread.CommunityUUID, thread.UUID).
				Delete(&entity.CommunityThread{}).Error
		}
		return nil
	})
}

func (repo *SQLiteThreadRepository) Toggle(threadUUID, userUUID string, kind entity.EngagementKind) (bool, error) {
	added := false
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Engagement{}).
			Where("thread_uuid = ? AND user_uuid = ? AND kind = ?", threadUUID, userUUID, kind).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return tx.
				Where("thread_uuid = ? AND user_uuid = ? AND kind = ?", threadUUID, userUUID, kind).
				Delete(&entity.Engagement{}).Error
		}
		added = true
		return tx.Create(&entity.Engagement{
			ThreadUUID: threadUUID,
			UserUUID:   userUUID,
			Kind:       kind,
			CreatedAt:  time.Now(),
		}).Error
	})
	return added, err
}

func (repo *SQLiteThreadRepository) Vote(threadUUID, userUUID string, kind entity.EngagementKind) (VoteState, error) {
	opposite := entity.EngagementDownvote
	if kind == entity.EngagementDownvote {
		opposite = entity.EngagementUpvote
	}

	state := VoteNone
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Engagement{}).
			Where("thread_uuid = ? AND user_uuid = ? AND kind = ?", threadUUID, userUUID, kind).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			// Repeating the same vote retracts it.
			return tx.
				Where("thread_uuid = ? AND user_uuid = ? AND kind = ?", threadUUID, userUUID, kind).
				Delete(&entity.Engagement{}).Error
		}
		// Dropping the opposite row first keeps upvotes and downvotes
		// mutually exclusive inside the same transaction.
		if err := tx.
			Where("thread_uuid = ? AND user_uuid = ? AND kind = ?", threadUUID, userUUID, opposite).
			Delete(&entity.Engagement{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&entity.Engagement{
			ThreadUUID: threadUUID,
			UserUUID:   userUUID,
			Kind:       kind,
			CreatedAt:  time.Now(),
		}).Error; err != nil {
			return err
		}
		if kind == entity.EngagementUpvote {
			state = VoteUp
		} else {
			state = VoteDown
		}
		return nil
	})
	return state, err
}

func (repo *SQLiteThreadRepository) HasEngagement(threadUUID, userUUID string, kind entity.EngagementKind) (bool, error) {
	var count int64
	err := repo.db.Model(&entity.Engagement{}).
		Where("thread_uuid = ? AND user_uuid = ? AND kind = ?", threadUUID, userUUID, kind).
		Count(&count).Error
	return count > 0, err
}

func (repo *SQLiteThreadRepository) CountEngagements(threadUUID string, kind entity.EngagementKind) (int64, error) {
	var count int64
	err := repo.db.Model(&entity.Engagement{}).
		Where("thread_uuid = ? AND kind = ?", threadUUID, kind).
		Count(&count).Error
	return count, err
}

func (repo *SQLiteThreadRepository) ListEngagedUsers(threadUUID string, kind entity.EngagementKind) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.
		Joins("JOIN engagements ON engagements.user_uuid = users.uuid").
		Where("engagements.thread_uuid = ? AND engagements.kind = ?", threadUUID, kind).
		Order("engagements.created_at").
		Find(&users).Error
	return users, err
}

func (repo *SQLiteThreadRepository) Edit(thread *entity.Thread, newContent string, now time.Time) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var revisions int64
		if err := tx.Model(&entity.EditRevision{}).
			Where("thread_uuid = ?", thread.UUID).
			Count(&revisions).Error; err != nil {
			return err
		}

		// The first edit preserves the original as revision #1, stamped with
		// the thread's creation time. Later edits store the content being
		// replaced, stamped now. The live content never appears in history.
		editedAt := now
		if !thread.IsEdited {
			editedAt = thread.CreatedAt
		}
		if err := tx.Create(&entity.EditRevision{
			ThreadUUID: thread.UUID,
			Ordinal:    int(revisions) + 1,
			Content:    thread.Content,
			EditedAt:   editedAt,
		}).Error; err != nil {
			return err
		}

		thread.Content = newContent
		thread.IsEdited = true
		thread.UpdatedAt = now
		return tx.Model(&entity.Thread{}).
			Where("uuid = ?", thread.UUID).
			Updates(map[string]any{
				"content":    newContent,
				"is_edited":  true,
				"updated_at": now,
			}).Error
	})
}

func (repo *SQLiteThreadRepository) ListRevisions(threadUUID string) ([]*entity.EditRevision, error) {
	var revisions []*entity.EditRevision
	err := repo.db.
		Where("thread_uuid = ?", threadUUID).
		Order("ordinal").
		Find(&revisions).Error
	return revisions, err
}
