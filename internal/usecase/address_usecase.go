package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AddressUsecase struct {
	addressRepo repo.AddressRepository
	idGen       IDGenerator
}

func NewAddressUsecase(addressRepo repo.AddressRepository, idGen IDGenerator) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo, idGen: idGen}
}

type AddressInput struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// PATCH用。nilのフィールドは変更しない。
type AddressPatchInput struct {
	Name       *string
	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]model.Address, error) {
	items, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// Get は本人の住所だけ返す。他人の住所は401。
func (u *AddressUsecase) Get(ctx context.Context, userID string, addressID string) (model.Address, error) {
	a, err := u.addressRepo.FindByID(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if a.UserID != userID {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "permission denied")
	}
	return a, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID string, in AddressInput) (model.Address, error) {
	//入力チェック
	if in.Name == "" || in.Line1 == "" || in.City == "" || in.PostalCode == "" || in.Country == "" {
		return model.Address{}, NewHTTPError(http.StatusUnprocessableEntity, "missing required fields")
	}

	created, err := u.addressRepo.Create(ctx, model.Address{
		ID:         u.idGen.NewID(),
		UserID:     userID,
		Name:       in.Name,
		Line1:      in.Line1,
		Line2:      in.Line2,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AddressUsecase) Patch(ctx context.Context, userID string, addressID string, in AddressPatchInput) (model.Address, error) {
	a, err := u.Get(ctx, userID, addressID)
	if err != nil {
		return model.Address{}, err
	}

	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Line1 != nil {
		a.Line1 = *in.Line1
	}
	if in.Line2 != nil {
		a.Line2 = *in.Line2
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.PostalCode != nil {
		a.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		a.Country = *in.Country
	}

	if err := u.addressRepo.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}
