package quest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sidequest-app/sidequest/server/model"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a quest id does not exist for the given owner.
var ErrNotFound = errors.New("quest not found")

// Store is the remote persistence backend for quest records. Every operation
// is scoped to a single owner; a quest id from another owner behaves as
// missing.
type Store interface {
	// Select returns all quests for the owner, oldest first.
	Select(ctx context.Context, userID int64) ([]model.Quest, error)
	// Insert persists a new quest. An empty ID is replaced with a fresh
	// server-issued one before the write.
	Insert(ctx context.Context, q *model.Quest) error
	// Update overwrites an existing quest record.
	Update(ctx context.Context, q *model.Quest) error
	// Delete removes a quest by id for the owner.
	Delete(ctx context.Context, userID int64, id string) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Select(ctx context.Context, userID int64) ([]model.Quest, error) {
	var quests []model.Quest
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&quests).Error
	return quests, err
}

func (s *gormStore) Insert(ctx context.Context, q *model.Quest) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(q).Error
}

func (s *gormStore) Update(ctx context.Context, q *model.Quest) error {
	// Explicit column update rather than Save: Save falls back to insert
	// when no row matches, which would bypass the owner scoping.
	return s.db.WithContext(ctx).
		Model(&model.Quest{}).
		Where("id = ? AND user_id = ?", q.ID, q.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(q).Error
}

func (s *gormStore) Delete(ctx context.Context, userID int64, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Quest{}).Error
}
