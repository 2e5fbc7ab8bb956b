package repositories

import (
	"context"

	"assetserver/src/utils"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var found int64
	tx := r.db.WithContext(ctx).Raw(`SELECT id FROM categories WHERE id = ?`, id).Scan(&found)
	if tx.Error != nil {
		return false, utils.NewStoreError(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}
