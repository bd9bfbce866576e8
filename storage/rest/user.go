package rest

import (
	"context"

	"github.com/ucvirtual/horario/core/user"
)

// UserRepository talks to /users (admin surface).
type UserRepository struct {
	client *Client
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

func (repo *UserRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	var wires []wireUser
	if err := repo.client.get(ctx, "/users/", &wires); err != nil {
		return nil, err
	}
	users := make([]user.User, 0, len(wires))
	for _, w := range wires {
		users = append(users, normalizeUser(w))
	}
	return users, nil
}

func (repo *UserRepository) RegisterUser(ctx context.Context, nu user.NewUser) (user.User, error) {
	var w wireUser
	if err := repo.client.post(ctx, "/users/", nu, &w); err != nil {
		return user.User{}, err
	}
	return normalizeUser(w), nil
}
