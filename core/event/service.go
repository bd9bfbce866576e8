package event

import "context"

type (
	Repository interface {
		ListEvents(ctx context.Context) ([]Event, error)
		GetEvent(ctx context.Context, id int) (Event, error)
		CreateEvent(ctx context.Context, d Draft) (Event, error)
		UpdateEvent(ctx context.Context, id int, d Draft) (Event, error)
		DeleteEvent(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context) ([]Event, error) {
	return svc.repo.ListEvents(ctx)
}

func (svc *Service) Get(ctx context.Context, id int) (Event, error) {
	return svc.repo.GetEvent(ctx, id)
}

func (svc *Service) Create(ctx context.Context, d Draft) (Event, error) {
	if err := d.Validate(); err != nil {
		return Event{}, err
	}
	return svc.repo.CreateEvent(ctx, d)
}

func (svc *Service) Update(ctx context.Context, id int, d Draft) (Event, error) {
	if err := d.Validate(); err != nil {
		return Event{}, err
	}
	return svc.repo.UpdateEvent(ctx, id, d)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteEvent(ctx, id)
}
