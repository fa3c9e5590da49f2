package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/repo"
)

type OrderService struct {
	Repo repo.OrderRepository
}

func (s *OrderService) FindAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if err := checkOrder(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *OrderService) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "order", id)
	}
	if err := checkOrder(o); err != nil {
		return nil, err
	}
	return o, nil
}

// checkOrder surfaces stored data the wire format cannot represent.
func checkOrder(o *models.Order) error {
	if _, err := o.Status(); err != nil {
		return fmt.Errorf("order %d: %w", o.ID, err)
	}
	if _, err := o.Total(); err != nil {
		return fmt.Errorf("order %d: %w", o.ID, err)
	}
	return nil
}
