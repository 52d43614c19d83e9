package repository

import (
	"app/internal/domain/model"
	"context"
)

type AddressRepository interface {
	Create(ctx context.Context, a model.Address) (model.Address, error)
	FindByID(ctx context.Context, addressID string) (model.Address, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Address, error)
	Update(ctx context.Context, a model.Address) error
}
