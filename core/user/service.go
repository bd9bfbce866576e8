package user

import "context"

type (
	// Repository is the admin user management surface of the backend.
	Repository interface {
		ListUsers(ctx context.Context) ([]User, error)
		RegisterUser(ctx context.Context, nu NewUser) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context) ([]User, error) {
	return svc.repo.ListUsers(ctx)
}

func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	return svc.repo.RegisterUser(ctx, nu)
}
