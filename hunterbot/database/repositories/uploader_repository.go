package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/hunterdex/hunterbot/hunterbot/config"
	"github.com/hunterdex/hunterbot/hunterbot/database/models"
)

// UploaderRepository tracks who may add cards to the catalog.
type UploaderRepository interface {
	Add(ctx context.Context, userID, addedBy string) error
	Remove(ctx context.Context, userID string) (bool, error)
	IsUploader(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context) ([]*models.Uploader, error)
}

type uploaderRepository struct {
	db *bun.DB
}

func NewUploaderRepository(db *bun.DB) UploaderRepository {
	return &uploaderRepository{db: db}
}

func (r *uploaderRepository) Add(ctx context.Context, userID, addedBy string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(&models.Uploader{UserID: userID, AddedBy: addedBy, AddedAt: time.Now()}).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add uploader: %w", err)
	}
	return nil
}

func (r *uploaderRepository) Remove(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Uploader)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove uploader: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

func (r *uploaderRepository) IsUploader(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.Uploader)(nil)).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check uploader: %w", err)
	}
	return exists, nil
}

func (r *uploaderRepository) List(ctx context.Context) ([]*models.Uploader, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	var uploaders []*models.Uploader
	err := r.db.NewSelect().
		Model(&uploaders).
		Order("added_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaders: %w", err)
	}
	return uploaders, nil
}
