package controllers

import (
	"time"

	"assetserver/src/repositories"

	"gorm.io/gorm"
)

type Controller struct {
	Assets *AssetsController
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{
		Assets: NewAssetsController(
			repositories.NewAssetRepository(db),
			repositories.NewCategoryRepository(db),
			time.Now,
		),
	}
}
