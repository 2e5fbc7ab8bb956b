package schemas

import (
	"encoding/json"
	"time"

	"assetserver/src/models"
	"assetserver/src/utils"
)

// Payload is a request body decoded one level deep, so key presence and JSON
// null can be told apart before values are typed.
type Payload map[string]json.RawMessage

// DecodePayload parses body as a JSON object. A literal null decodes to an
// empty payload.
func DecodePayload(body []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// IsSet reports whether key is present with a non-null value.
func (p Payload) IsSet(key string) bool {
	raw, ok := p[key]
	return ok && string(raw) != "null"
}

// CreateAssetRequest holds typed create fields. Nil means absent or null.
type CreateAssetRequest struct {
	Name           *string  `json:"name" validate:"required"`
	CategoryID     *int64   `json:"category_id" validate:"required"`
	Department     *string  `json:"department" validate:"required"`
	Status         *string  `json:"status"`
	PurchaseDate   *string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry *string  `json:"warranty_expiry" validate:"omitempty,datetime=2006-01-02"`
	Value          *float64 `json:"value"`
	UsageType      *string  `json:"usage_type"`
}

// NewAsset is a create request with defaults applied, ready to insert.
type NewAsset struct {
	Name           string
	CategoryID     int64
	Department     string
	Status         string
	PurchaseDate   string
	WarrantyExpiry *string
	Value          float64
	UsageType      string
}

// FieldUpdate is one column assignment of a PUT or PATCH.
type FieldUpdate struct {
	Column string
	Value  interface{}
}

type CreateAssetResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AssetResponse struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	CategoryID     int     `json:"category_id"`
	Department     string  `json:"department"`
	Status         string  `json:"status"`
	PurchaseDate   string  `json:"purchase_date"`
	WarrantyExpiry *string `json:"warranty_expiry"`
	Value          float64 `json:"value"`
	UsageType      string  `json:"usage_type"`
	CategoryName   *string `json:"category_name"`
}

func formatDate(t time.Time) string {
	return t.Format(utils.ShortDashDateLayout)
}

func NewAssetResponse(a *models.AssetWithCategory) *AssetResponse {
	res := &AssetResponse{
		ID:           a.ID,
		Name:         a.Name,
		CategoryID:   a.CategoryID,
		Department:   a.Department,
		Status:       a.Status,
		PurchaseDate: formatDate(a.PurchaseDate),
		Value:        a.Value,
		UsageType:    a.UsageType,
		CategoryName: a.CategoryName,
	}
	if a.WarrantyExpiry != nil {
		expiry := formatDate(*a.WarrantyExpiry)
		res.WarrantyExpiry = &expiry
	}
	return res
}
