package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopdesk/internal/cart"
	"shopdesk/internal/checkout"
	"shopdesk/internal/repos"
)

var ErrBadRange = errors.New("invalid report range")

type staffKey struct{}

// WithStaff tags ctx with the id of the user ringing up the sale.
func WithStaff(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, staffKey{}, userID)
}

func staffFrom(ctx context.Context) string {
	id, _ := ctx.Value(staffKey{}).(string)
	return id
}

// SaleService records sales in the local ledger and implements
// checkout.SaleGateway.
type SaleService struct {
	Sales *repos.SaleRepo
	Now   func() time.Time
}

func NewSaleService(sales *repos.SaleRepo) *SaleService {
	return &SaleService{Sales: sales, Now: time.Now}
}

func (s *SaleService) Submit(ctx context.Context, p cart.SalePayload) (checkout.SaleReceipt, error) {
	if len(p.Items) == 0 {
		return checkout.SaleReceipt{}, errors.New("sale has no items")
	}
	sale := repos.NewSale{
		ID:              uuid.NewString(),
		CustomerID:      p.CustomerID,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		CustomerEmail:   p.CustomerEmail,
		Subtotal:        p.Subtotal().Round(2),
		OverallDiscount: p.OverallDiscount.Round(2),
		Total:           p.Total().Round(2),
		PaymentMethod:   string(p.PaymentMethod),
		Notes:           p.Notes,
		StaffID:         staffFrom(ctx),
	}
	for _, it := range p.Items {
		sale.Items = append(sale.Items, repos.NewSaleItem{
			ProductID:      it.ProductID,
			Qty:            it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAmount: it.DiscountAmount,
		})
	}

	createdAt, err := s.Sales.Create(ctx, sale)
	if err != nil {
		return checkout.SaleReceipt{}, fmt.Errorf("record sale: %w", err)
	}
	return checkout.SaleReceipt{
		SaleID:          sale.ID,
		Subtotal:        sale.Subtotal,
		OverallDiscount: sale.OverallDiscount,
		Total:           sale.Total,
		ItemCount:       p.ItemCount(),
		PaymentMethod:   p.PaymentMethod,
		CustomerID:      p.CustomerID,
		CreatedAt:       createdAt,
	}, nil
}

// Receipt is a recorded sale with its lines.
type Receipt struct {
	Sale  repos.SaleRow       `json:"sale"`
	Items []repos.SaleItemRow `json:"items"`
}

func (s *SaleService) Get(ctx context.Context, id string) (Receipt, error) {
	sale, items, err := s.Sales.Get(ctx, id)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{Sale: sale, Items: items}, nil
}

func (s *SaleService) Latest(ctx context.Context, limit int) ([]repos.SaleRow, error) {
	return s.Sales.ListLatest(ctx, limit)
}

const (
	dayLayout = "2006-01-02"
	sqlLayout = "2006-01-02 15:04:05"
)

// Summary reports sales between two calendar days, both inclusive. Empty
// bounds default to today.
func (s *SaleService) Summary(ctx context.Context, from, to string) (repos.SalesSummary, error) {
	today := s.Now().UTC().Format(dayLayout)
	if from == "" {
		from = today
	}
	if to == "" {
		to = from
	}
	start, err := time.Parse(dayLayout, from)
	if err != nil {
		return repos.SalesSummary{}, fmt.Errorf("%w: from %q", ErrBadRange, from)
	}
	end, err := time.Parse(dayLayout, to)
	if err != nil {
		return repos.SalesSummary{}, fmt.Errorf("%w: to %q", ErrBadRange, to)
	}
	if end.Before(start) {
		return repos.SalesSummary{}, fmt.Errorf("%w: to is before from", ErrBadRange)
	}
	return s.Sales.Summary(ctx, start.Format(sqlLayout), end.AddDate(0, 0, 1).Format(sqlLayout))
}
