package services

import (
	"database/sql"
	"errors"

	"shopdesk/internal/cart"
	"shopdesk/internal/domain"
	"shopdesk/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts on-hand qty to IN_STOCK / LOW_STOCK / OUT_OF_STOCK,
// ignoring any cart.
func (s *InventoryService) CheckAvailability(productID string) (domain.Availability, error) {
	qty, err := s.Inv.Qty(productID)
	if err != nil {
		// If no product row exists, treat as 0.
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Availability{Status: string(cart.OutOfStock), Qty: 0}, nil
		}
		return domain.Availability{}, err
	}
	return domain.Availability{Status: string(cart.StockLevelOf(qty)), Qty: max(qty, 0)}, nil
}

func (s *InventoryService) List() ([]repos.InventoryRow, error) {
	return s.Inv.ListAll()
}

func (s *InventoryService) SetStock(productID string, qty int) error {
	return s.Inv.SetQty(productID, qty)
}

func (s *InventoryService) SetAvailable(productID string, available bool) error {
	return s.Inv.SetAvailable(productID, available)
}
