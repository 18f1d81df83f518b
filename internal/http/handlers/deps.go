package handlers

import (
	"greenbasket/internal/config"
	"greenbasket/internal/pdf"
	"greenbasket/internal/repos"
	"greenbasket/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PageHandler      *PageHandler
	CatalogHandler   *CatalogHandler
	CartHandler      *CartHandler
	AnalyticsHandler *AnalyticsHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, views services.TemplateRenderer, conv pdf.Converter) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	billingSvc := services.NewBillingService(cartSvc, views, conv)

	return &Deps{
		PageHandler:      &PageHandler{},
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Billing: billingSvc},
		AnalyticsHandler: &AnalyticsHandler{Cart: cartSvc},
		AdminHandler:     &AdminHandler{Catalog: catalogSvc, MediaDir: cfg.MediaDir},
	}
}
