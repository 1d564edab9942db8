package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopdesk/internal/checkout"
	"shopdesk/internal/config"
	"shopdesk/internal/repos"
	"shopdesk/internal/services"
	"shopdesk/internal/session"
)

type Deps struct {
	Auth     *services.AuthService
	Registry *checkout.Registry

	AuthHandler      *AuthHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CustomerHandler  *CustomerHandler
	CartHandler      *CartHandler
	SaleHandler      *SaleHandler
	AdminHandler     *AdminHandler
}

// NewDeps wires repositories, services and handlers. clock drives idle
// session expiry; nil means wall time.
func NewDeps(db *sqlx.DB, cfg config.Config, clock session.Clock) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	invSvc := services.NewInventoryService(invRepo)
	custSvc := services.NewCustomerService(custRepo)
	saleSvc := services.NewSaleService(saleRepo)

	reg := checkout.NewRegistry(checkout.Deps{
		Catalog:   catalogSvc,
		Sales:     saleSvc,
		Customers: custSvc,
	}, clock, cfg.SessionTimeout)
	// an idle till is logged out along with its cart
	reg.OnExpire = func(sid string) { _ = authSvc.Logout(sid) }

	return &Deps{
		Auth:     authSvc,
		Registry: reg,

		AuthHandler:      &AuthHandler{Auth: authSvc, Registry: reg},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Registry: reg},
		CustomerHandler:  &CustomerHandler{Customers: custSvc},
		CartHandler:      &CartHandler{Registry: reg},
		SaleHandler:      &SaleHandler{Registry: reg, Sales: saleSvc},
		AdminHandler:     &AdminHandler{Inv: invSvc, Sales: saleSvc},
	}
}
