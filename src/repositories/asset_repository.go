package repositories

import (
	"context"
	"fmt"
	"strings"

	"assetserver/src/models"
	"assetserver/src/schemas"
	"assetserver/src/utils"

	"gorm.io/gorm"
)

// UpdatableColumns lists the asset columns a PUT may assign, in the order
// they appear in the generated UPDATE.
var UpdatableColumns = []string{
	"name",
	"category_id",
	"department",
	"status",
	"purchase_date",
	"warranty_expiry",
	"value",
	"usage_type",
}

func isUpdatable(column string) bool {
	for _, c := range UpdatableColumns {
		if c == column {
			return true
		}
	}
	return false
}

const selectAssetWithCategory = `
	SELECT a.id, a.name, a.category_id, a.department, a.status, a.purchase_date,
		a.warranty_expiry, a.value, a.usage_type, c.name AS category_name
	FROM assets a
	LEFT JOIN categories c ON a.category_id = c.id`

type AssetRepository interface {
	GetAll(ctx context.Context) ([]models.AssetWithCategory, error)
	GetByID(ctx context.Context, id int) (*models.AssetWithCategory, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, asset *schemas.NewAsset) (int, error)
	Update(ctx context.Context, id int, updates []schemas.FieldUpdate) error
	Delete(ctx context.Context, id int) error
}

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepo{db: db}
}

// GetAll returns every asset, newest id first.
func (r *assetRepo) GetAll(ctx context.Context) ([]models.AssetWithCategory, error) {
	assets := make([]models.AssetWithCategory, 0)
	err := r.db.WithContext(ctx).
		Raw(selectAssetWithCategory + ` ORDER BY a.id DESC`).
		Scan(&assets).Error
	if err != nil {
		return nil, utils.NewStoreError(err)
	}
	return assets, nil
}

// GetByID returns gorm.ErrRecordNotFound when no asset has the id.
func (r *assetRepo) GetByID(ctx context.Context, id int) (*models.AssetWithCategory, error) {
	var asset models.AssetWithCategory
	tx := r.db.WithContext(ctx).
		Raw(selectAssetWithCategory+` WHERE a.id = ?`, id).
		Scan(&asset)
	if tx.Error != nil {
		return nil, utils.NewStoreError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &asset, nil
}

func (r *assetRepo) Exists(ctx context.Context, id int) (bool, error) {
	var found int
	tx := r.db.WithContext(ctx).Raw(`SELECT id FROM assets WHERE id = ?`, id).Scan(&found)
	if tx.Error != nil {
		return false, utils.NewStoreError(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *assetRepo) Create(ctx context.Context, asset *schemas.NewAsset) (int, error) {
	var id int
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO assets (name, category_id, department, status, purchase_date, warranty_expiry, value, usage_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		asset.Name,
		asset.CategoryID,
		asset.Department,
		asset.Status,
		asset.PurchaseDate,
		asset.WarrantyExpiry,
		asset.Value,
		asset.UsageType,
	).Scan(&id).Error
	if err != nil {
		return 0, utils.NewStoreError(err)
	}
	return id, nil
}

// Update assigns all updates in one statement. Column names are checked
// against UpdatableColumns; values are always bound as parameters.
func (r *assetRepo) Update(ctx context.Context, id int, updates []schemas.FieldUpdate) error {
	if len(updates) == 0 {
		return fmt.Errorf("no columns to update")
	}
	assignments := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	for _, u := range updates {
		if !isUpdatable(u.Column) {
			return fmt.Errorf("column %q is not updatable", u.Column)
		}
		assignments = append(assignments, u.Column+" = ?")
		args = append(args, u.Value)
	}
	args = append(args, id)

	query := `UPDATE assets SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
	if err := r.db.WithContext(ctx).Exec(query, args...).Error; err != nil {
		return utils.NewStoreError(err)
	}
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Exec(`DELETE FROM assets WHERE id = ?`, id).Error; err != nil {
		return utils.NewStoreError(err)
	}
	return nil
}
