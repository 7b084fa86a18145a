// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(
	ctx context.Context,
	owner string,
) ([]Contact, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) Get(
	ctx context.Context,
	id, owner string,
) (*Contact, error) {
	return s.repo.GetByID(ctx, id, owner)
}

func (s *Service) Create(
	ctx context.Context,
	owner string,
	req CreateContactRequest,
) (*Contact, error) {
	contact := &Contact{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Favorite: req.Favorite,
		Owner:    owner,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *Service) Update(
	ctx context.Context,
	id, owner string,
	req UpdateContactRequest,
) (*Contact, error) {
	if req.Empty() {
		return nil, fmt.Errorf("update contact: %w", core.ErrInvalidInput)
	}

	return s.repo.Update(ctx, id, owner, req)
}

func (s *Service) Delete(
	ctx context.Context,
	id, owner string,
) (*Contact, error) {
	return s.repo.Delete(ctx, id, owner)
}

func (s *Service) SetFavorite(
	ctx context.Context,
	id, owner string,
	favorite bool,
) (*Contact, error) {
	return s.repo.SetFavorite(ctx, id, owner, favorite)
}
