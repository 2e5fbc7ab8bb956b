package controllers_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"assetserver/src/api/controllers"
	"assetserver/src/models"
	"assetserver/src/schemas"
	"assetserver/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryAssets is an in-memory AssetRepository.
type memoryAssets struct {
	rows    map[int]*models.AssetWithCategory
	nextID  int
	writes  int
	failAll error
}

func newMemoryAssets() *memoryAssets {
	return &memoryAssets{rows: map[int]*models.AssetWithCategory{}, nextID: 1}
}

func (m *memoryAssets) GetAll(_ context.Context) ([]models.AssetWithCategory, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	out := make([]models.AssetWithCategory, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryAssets) GetByID(_ context.Context, id int) (*models.AssetWithCategory, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (m *memoryAssets) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memoryAssets) Create(_ context.Context, a *schemas.NewAsset) (int, error) {
	m.writes++
	purchase, err := time.Parse(utils.ShortDashDateLayout, a.PurchaseDate)
	if err != nil {
		return 0, err
	}
	row := &models.AssetWithCategory{
		ID:           m.nextID,
		Name:         a.Name,
		CategoryID:   int(a.CategoryID),
		Department:   a.Department,
		Status:       a.Status,
		PurchaseDate: purchase,
		Value:        a.Value,
		UsageType:    a.UsageType,
	}
	if a.WarrantyExpiry != nil {
		expiry, err := time.Parse(utils.ShortDashDateLayout, *a.WarrantyExpiry)
		if err != nil {
			return 0, err
		}
		row.WarrantyExpiry = &expiry
	}
	m.rows[row.ID] = row
	m.nextID++
	return row.ID, nil
}

func (m *memoryAssets) Update(_ context.Context, id int, updates []schemas.FieldUpdate) error {
	m.writes++
	row, ok := m.rows[id]
	if !ok {
		return nil
	}
	for _, u := range updates {
		switch u.Column {
		case "name":
			row.Name = u.Value.(string)
		case "department":
			row.Department = u.Value.(string)
		case "status":
			row.Status = u.Value.(string)
		case "usage_type":
			row.UsageType = u.Value.(string)
		case "category_id":
			row.CategoryID = int(u.Value.(int64))
		case "value":
			row.Value = u.Value.(float64)
		}
	}
	return nil
}

func (m *memoryAssets) Delete(_ context.Context, id int) error {
	m.writes++
	delete(m.rows, id)
	return nil
}

type memoryCategories map[int64]string

func (c memoryCategories) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := c[id]
	return ok, nil
}

func payload(t *testing.T, body string) schemas.Payload {
	t.Helper()
	p, err := schemas.DecodePayload([]byte(body))
	require.NoError(t, err)
	return p
}

func newController() (*controllers.AssetsController, *memoryAssets) {
	assets := newMemoryAssets()
	now := func() time.Time { return time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC) }
	return controllers.NewAssetsController(assets, memoryCategories{1: "Computers", 2: "Monitors"}, now), assets
}

func httpError(t *testing.T, err error) *utils.HTTPError {
	t.Helper()
	var httpErr *utils.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected HTTPError, got %v", err)
	return httpErr
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	c, _ := newController()
	ctx := context.Background()

	created, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":1,"department":"Eng"}`))
	require.NoError(t, err)
	assert.Equal(t, "Asset created successfully", created.Message)

	asset, err := c.GetAssetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", asset.Name)
	assert.Equal(t, 1, asset.CategoryID)
	assert.Equal(t, "Eng", asset.Department)
	assert.Equal(t, "In Use", asset.Status)
	assert.Equal(t, "General", asset.UsageType)
	assert.Equal(t, "2026-10-19", asset.PurchaseDate)
	assert.Nil(t, asset.WarrantyExpiry)
	assert.Zero(t, asset.Value)
}

func TestCreateAssetValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields keep canonical order", func(t *testing.T) {
		c, assets := newController()
		_, err := c.CreateAsset(ctx, payload(t, `{"department":"Eng"}`))

		httpErr := httpError(t, err)
		assert.Equal(t, 400, httpErr.Code)
		assert.Equal(t, "Missing required fields", httpErr.Message)
		assert.Equal(t, []string{"name", "category_id"}, httpErr.Fields["missing"])
		assert.Zero(t, assets.writes)
	})

	t.Run("null required value is present but invalid", func(t *testing.T) {
		c, assets := newController()
		_, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":1,"department":null}`))

		httpErr := httpError(t, err)
		assert.Equal(t, "Invalid field value", httpErr.Message)
		assert.Equal(t, "department", httpErr.Fields["field"])
		assert.Zero(t, assets.writes)
	})

	t.Run("invalid category", func(t *testing.T) {
		c, assets := newController()
		_, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":9,"department":"Eng"}`))

		assert.Equal(t, "Invalid category ID", httpError(t, err).Message)
		assert.Zero(t, assets.writes)
	})

	t.Run("category id forms", func(t *testing.T) {
		cases := []struct {
			categoryID string
			want       int
			invalid    bool
		}{
			{`2`, 2, false},
			{`"2"`, 2, false},
			{`2.0`, 2, false},
			{`"2.0"`, 2, false},
			{`"9"`, 0, true},
			{`"two"`, 0, true},
			{`2.5`, 0, true},
			{`1e300`, 0, true},
			{`null`, 0, true},
		}
		for _, tc := range cases {
			c, assets := newController()
			created, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","department":"Eng","category_id":`+tc.categoryID+`}`))
			if tc.invalid {
				assert.Equal(t, "Invalid category ID", httpError(t, err).Message, tc.categoryID)
				assert.Zero(t, assets.writes, tc.categoryID)
				continue
			}
			require.NoError(t, err, tc.categoryID)
			asset, err := c.GetAssetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, asset.CategoryID, tc.categoryID)
		}
	})

	t.Run("snake_case wins over camelCase", func(t *testing.T) {
		c, _ := newController()
		created, err := c.CreateAsset(ctx, payload(t, `{
			"name":"Laptop","category_id":1,"department":"Eng",
			"usage_type":"Lab","usageType":"Ignored",
			"purchase_date":"2025-02-03","purchaseDate":"2020-01-01"
		}`))
		require.NoError(t, err)

		asset, err := c.GetAssetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lab", asset.UsageType)
		assert.Equal(t, "2025-02-03", asset.PurchaseDate)
	})

	t.Run("null optional fields take defaults", func(t *testing.T) {
		c, _ := newController()
		created, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":1,"department":"Eng","status":null,"value":null}`))
		require.NoError(t, err)

		asset, err := c.GetAssetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "In Use", asset.Status)
		assert.Zero(t, asset.Value)
	})
}

func TestUpdateAssetController(t *testing.T) {
	ctx := context.Background()

	t.Run("no recognised fields", func(t *testing.T) {
		c, assets := newController()
		_, err := c.UpdateAsset(ctx, 1, payload(t, `{"colour":"red"}`))

		assert.Equal(t, "No valid fields to update", httpError(t, err).Message)
		assert.Zero(t, assets.writes)
	})

	t.Run("invalid category aborts the whole update", func(t *testing.T) {
		c, assets := newController()
		created, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":1,"department":"Eng"}`))
		require.NoError(t, err)
		writes := assets.writes

		_, err = c.UpdateAsset(ctx, created.ID, payload(t, `{"name":"Renamed","category_id":42}`))
		assert.Equal(t, "Invalid category ID", httpError(t, err).Message)
		assert.Equal(t, writes, assets.writes)

		asset, err := c.GetAssetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", asset.Name)
	})

	t.Run("null for a required column is rejected", func(t *testing.T) {
		c, assets := newController()
		_, err := c.UpdateAsset(ctx, 1, payload(t, `{"name":null}`))

		httpErr := httpError(t, err)
		assert.Equal(t, "Invalid field value", httpErr.Message)
		assert.Equal(t, "name", httpErr.Fields["field"])
		assert.Zero(t, assets.writes)
	})

	t.Run("missing asset after update", func(t *testing.T) {
		c, _ := newController()
		_, err := c.UpdateAsset(ctx, 99, payload(t, `{"status":"Retired"}`))
		httpErr := httpError(t, err)
		assert.Equal(t, 404, httpErr.Code)
		assert.Equal(t, "Asset not found", httpErr.Message)
	})
}

func TestPatchDepartmentRoundTrip(t *testing.T) {
	c, _ := newController()
	ctx := context.Background()

	created, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":2,"department":"Eng","value":12.5}`))
	require.NoError(t, err)
	before, err := c.GetAssetByID(ctx, created.ID)
	require.NoError(t, err)

	_, err = c.UpdateAssetDepartment(ctx, created.ID, payload(t, `{"department":"X"}`))
	require.NoError(t, err)

	after, err := c.GetAssetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", after.Department)

	after.Department = before.Department
	assert.Equal(t, before, after)
}

func TestDeleteAssetController(t *testing.T) {
	c, assets := newController()
	ctx := context.Background()

	created, err := c.CreateAsset(ctx, payload(t, `{"name":"Laptop","category_id":1,"department":"Eng"}`))
	require.NoError(t, err)

	require.NoError(t, c.DeleteAsset(ctx, created.ID))
	err = c.DeleteAsset(ctx, created.ID)
	assert.Equal(t, 404, httpError(t, err).Code)

	list, err := c.GetAllAssets(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, 2, assets.writes)
}

func TestGetAllAssetsPropagatesStoreErrors(t *testing.T) {
	c, assets := newController()
	assets.failAll = utils.NewStoreError(errors.New("connection reset"))

	_, err := c.GetAllAssets(context.Background())
	var storeErr *utils.StoreError
	assert.True(t, errors.As(err, &storeErr))
}
