package rest

import (
	"context"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/user"
)

// AuthRepository talks to /auth.
type AuthRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) *AuthRepository {
	return &AuthRepository{client: client}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"contrasena"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (repo *AuthRepository) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := repo.client.post(ctx, "/auth/login", loginPayload{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", core.ErrMalformedToken
	}
	return resp.AccessToken, nil
}

func (repo *AuthRepository) Logout(ctx context.Context) error {
	return repo.client.post(ctx, "/auth/logout", nil, nil)
}

// wireUser tolerates the user field aliases the backend versions answer with.
type wireUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Rol      string `json:"rol"`
	IsActive *bool  `json:"is_active"`
}

// normalizeUser maps any accepted wire shape to the canonical User.
func normalizeUser(w wireUser) user.User {
	name := w.Name
	if name == "" {
		name = w.FullName
	}
	if name == "" {
		name = w.Username
	}
	roleName := w.Role
	if roleName == "" {
		roleName = w.Rol
	}
	role, _ := user.NormalizeRole(roleName)

	active := true
	if w.IsActive != nil {
		active = *w.IsActive
	}
	return user.User{
		ID:       w.ID,
		Name:     name,
		Email:    w.Email,
		Role:     role,
		IsActive: active,
	}
}

func (repo *AuthRepository) Me(ctx context.Context) (user.User, error) {
	var w wireUser
	if err := repo.client.get(ctx, "/auth/me", &w); err != nil {
		return user.User{}, err
	}
	return normalizeUser(w), nil
}
