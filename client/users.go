package client

import (
	"context"

	"github.com/mattbenson/storefront/gen/sdk"
	"github.com/mattbenson/storefront/model"
)

type userAPI struct {
	api *sdk.Client
}

func (a userAPI) List(ctx context.Context) ([]model.User, error) {
	wire, _, err := a.api.GetApiUsers(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	users := make([]model.User, len(wire))
	for i, w := range wire {
		users[i] = userFromWire(w)
	}
	return users, nil
}

func (a userAPI) Get(ctx context.Context, id int64) (*model.User, error) {
	wire, _, err := a.api.GetApiUsersById(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	u := userFromWire(*wire)
	return &u, nil
}

func (a userAPI) Create(ctx context.Context, u model.User) (*model.User, error) {
	wire, _, err := a.api.PostApiUsers(ctx, userToWire(u))
	if err != nil {
		return nil, mapError(err)
	}
	created := userFromWire(*wire)
	return &created, nil
}

func (a userAPI) Update(ctx context.Context, id int64, u model.User) error {
	_, err := a.api.PutApiUsersById(ctx, id, userToWire(u))
	return mapError(err)
}

func (a userAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.api.DeleteApiUsersById(ctx, id)
	return mapError(err)
}

func userToWire(u model.User) sdk.User {
	return sdk.User{
		Id:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		ZipCode:     u.ZipCode,
		Country:     u.Country,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		IsActive:    u.IsActive,
		Role:        u.Role,
	}
}

func userFromWire(w sdk.User) model.User {
	return model.User{
		ID:          w.Id,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Email:       w.Email,
		PhoneNumber: w.PhoneNumber,
		Address:     w.Address,
		City:        w.City,
		State:       w.State,
		ZipCode:     w.ZipCode,
		Country:     w.Country,
		DateOfBirth: w.DateOfBirth,
		CreatedAt:   w.CreatedAt,
		LastLoginAt: w.LastLoginAt,
		IsActive:    w.IsActive,
		Role:        w.Role,
	}
}
