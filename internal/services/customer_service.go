package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"shopdesk/internal/checkout"
	"shopdesk/internal/domain"
	"shopdesk/internal/repos"
)

type CustomerService struct {
	Repo *repos.CustomerRepo
}

func NewCustomerService(r *repos.CustomerRepo) *CustomerService { return &CustomerService{Repo: r} }

func (s *CustomerService) Customer(ctx context.Context, id string) (domain.Customer, error) {
	c, err := s.Repo.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Customer{}, checkout.ErrCustomerNotFound
	}
	return c, err
}

func (s *CustomerService) CreateCustomer(ctx context.Context, name, phone, email string) (domain.Customer, error) {
	c := domain.Customer{
		ID:    "cus-" + uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return domain.Customer{}, err
	}
	return s.Repo.Get(ctx, c.ID)
}

func (s *CustomerService) Search(ctx context.Context, q string) ([]domain.Customer, error) {
	return s.Repo.Search(ctx, strings.TrimSpace(q), 25)
}
