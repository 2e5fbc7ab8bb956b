package controllers

import (
	"context"
	"errors"
	"time"

	"assetserver/src/repositories"
	"assetserver/src/schemas"
	"assetserver/src/utils"

	"gorm.io/gorm"
)

// RequiredAssetFields are the keys a create must carry, in reporting order.
var RequiredAssetFields = []string{"name", "category_id", "department"}

var (
	errAssetNotFound        = utils.NotFound("Asset not found")
	errInvalidCategory      = utils.BadRequest("Invalid category ID")
	errNoValidFields        = utils.BadRequest("No valid fields to update")
	errDepartmentRequired   = utils.BadRequest("Department field required")
	errMissingRequiredField = utils.BadRequest("Missing required fields")
)

type AssetsControllerI interface {
	GetAllAssets(ctx context.Context) ([]*schemas.AssetResponse, error)
	GetAssetByID(ctx context.Context, id int) (*schemas.AssetResponse, error)
	CreateAsset(ctx context.Context, p schemas.Payload) (*schemas.CreateAssetResponse, error)
	UpdateAsset(ctx context.Context, id int, p schemas.Payload) (*schemas.AssetResponse, error)
	UpdateAssetDepartment(ctx context.Context, id int, p schemas.Payload) (*schemas.AssetResponse, error)
	DeleteAsset(ctx context.Context, id int) error
}

type AssetsController struct {
	Assets     repositories.AssetRepository
	Categories repositories.CategoryRepository
	// Now supplies the default purchase date.
	Now func() time.Time
}

func NewAssetsController(assets repositories.AssetRepository, categories repositories.CategoryRepository, now func() time.Time) *AssetsController {
	if now == nil {
		now = time.Now
	}
	return &AssetsController{Assets: assets, Categories: categories, Now: now}
}

func (c *AssetsController) GetAllAssets(ctx context.Context) ([]*schemas.AssetResponse, error) {
	rows, err := c.Assets.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	assets := make([]*schemas.AssetResponse, 0, len(rows))
	for i := range rows {
		assets = append(assets, schemas.NewAssetResponse(&rows[i]))
	}
	return assets, nil
}

func (c *AssetsController) GetAssetByID(ctx context.Context, id int) (*schemas.AssetResponse, error) {
	asset, err := c.Assets.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return schemas.NewAssetResponse(asset), nil
}

func (c *AssetsController) CreateAsset(ctx context.Context, p schemas.Payload) (*schemas.CreateAssetResponse, error) {
	missing := make([]string, 0, len(RequiredAssetFields))
	for _, field := range RequiredAssetFields {
		if !p.Has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, errMissingRequiredField.With("missing", missing)
	}

	req, err := decodeCreateRequest(p)
	if err != nil {
		return nil, err
	}

	if err := c.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	id, err := c.Assets.Create(ctx, c.withDefaults(req))
	if err != nil {
		return nil, err
	}
	return &schemas.CreateAssetResponse{ID: id, Message: "Asset created successfully"}, nil
}

// decodeCreateRequest types the payload. The optional date and usage fields
// are also read from their camelCase spelling when the snake_case key is absent.
func decodeCreateRequest(p schemas.Payload) (*schemas.CreateAssetRequest, error) {
	var req schemas.CreateAssetRequest
	categoryID, err := decodeCategoryID(p, "category_id")
	if err != nil {
		return nil, err
	}
	req.CategoryID = &categoryID

	fields := []struct {
		key, alias, kind string
		dst              interface{}
	}{
		{"name", "", "string", &req.Name},
		{"department", "", "string", &req.Department},
		{"status", "", "string", &req.Status},
		{"purchase_date", "purchaseDate", "string", &req.PurchaseDate},
		{"warranty_expiry", "warrantyExpiry", "string", &req.WarrantyExpiry},
		{"value", "", "number", &req.Value},
		{"usage_type", "usageType", "string", &req.UsageType},
	}
	for _, f := range fields {
		key := f.key
		if !p.Has(key) && f.alias != "" && p.Has(f.alias) {
			key = f.alias
		}
		if err := decodeField(p, key, f.kind, f.dst); err != nil {
			return nil, err
		}
	}
	if err := validateStruct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *AssetsController) withDefaults(req *schemas.CreateAssetRequest) *schemas.NewAsset {
	asset := &schemas.NewAsset{
		Name:           *req.Name,
		CategoryID:     *req.CategoryID,
		Department:     *req.Department,
		Status:         utils.AssetDefaultStatus,
		PurchaseDate:   c.Now().Format(utils.ShortDashDateLayout),
		WarrantyExpiry: req.WarrantyExpiry,
		UsageType:      utils.AssetDefaultUsageType,
	}
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if req.PurchaseDate != nil {
		asset.PurchaseDate = *req.PurchaseDate
	}
	if req.Value != nil {
		asset.Value = *req.Value
	}
	if req.UsageType != nil {
		asset.UsageType = *req.UsageType
	}
	return asset
}

// checkCategory fails with Invalid category ID unless id names a category.
func (c *AssetsController) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return errInvalidCategory
	}
	ok, err := c.Categories.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidCategory
	}
	return nil
}

// stageUpdates collects the whitelisted columns present in p. Unknown keys
// are ignored. The returned category id is non-nil when category_id was staged.
func stageUpdates(p schemas.Payload) ([]schemas.FieldUpdate, bool, *int64, error) {
	var (
		updates    []schemas.FieldUpdate
		categoryID *int64
		hasCat     bool
	)
	for _, column := range repositories.UpdatableColumns {
		if !p.Has(column) {
			continue
		}
		switch column {
		case "category_id":
			id, err := decodeCategoryID(p, column)
			if err != nil {
				return nil, false, nil, err
			}
			hasCat = true
			categoryID = &id
			updates = append(updates, schemas.FieldUpdate{Column: column, Value: id})
		case "value":
			var v *float64
			if err := decodeField(p, column, "number", &v); err != nil {
				return nil, false, nil, err
			}
			if v == nil {
				return nil, false, nil, invalidField(column, "must not be null")
			}
			updates = append(updates, schemas.FieldUpdate{Column: column, Value: *v})
		case "purchase_date", "warranty_expiry":
			var v *string
			if err := decodeField(p, column, "string", &v); err != nil {
				return nil, false, nil, err
			}
			if err := validateDate(column, v); err != nil {
				return nil, false, nil, err
			}
			if v == nil {
				if column == "purchase_date" {
					return nil, false, nil, invalidField(column, "must not be null")
				}
				updates = append(updates, schemas.FieldUpdate{Column: column, Value: nil})
				continue
			}
			updates = append(updates, schemas.FieldUpdate{Column: column, Value: *v})
		default:
			var v *string
			if err := decodeField(p, column, "string", &v); err != nil {
				return nil, false, nil, err
			}
			if v == nil {
				return nil, false, nil, invalidField(column, "must not be null")
			}
			updates = append(updates, schemas.FieldUpdate{Column: column, Value: *v})
		}
	}
	return updates, hasCat, categoryID, nil
}

func (c *AssetsController) UpdateAsset(ctx context.Context, id int, p schemas.Payload) (*schemas.AssetResponse, error) {
	updates, hasCategory, categoryID, err := stageUpdates(p)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, errNoValidFields
	}
	if hasCategory {
		if err := c.checkCategory(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	if err := c.Assets.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	// The re-read is a separate statement: an asset deleted in between is
	// reported as not found even though the update ran.
	return c.GetAssetByID(ctx, id)
}

func (c *AssetsController) UpdateAssetDepartment(ctx context.Context, id int, p schemas.Payload) (*schemas.AssetResponse, error) {
	if !p.IsSet("department") {
		return nil, errDepartmentRequired
	}
	var department string
	if err := decodeField(p, "department", "string", &department); err != nil {
		return nil, err
	}

	err := c.Assets.Update(ctx, id, []schemas.FieldUpdate{{Column: "department", Value: department}})
	if err != nil {
		return nil, err
	}
	return c.GetAssetByID(ctx, id)
}

func (c *AssetsController) DeleteAsset(ctx context.Context, id int) error {
	exists, err := c.Assets.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errAssetNotFound
	}
	return c.Assets.Delete(ctx, id)
}
