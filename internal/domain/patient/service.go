package patient

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveOrCreate returns the id of the patient registered by p.FirmID under
// p.Snils, creating the record on first contact. When two requests race to
// create the same patient, the loser falls back to the winner's row, so both
// resolve to the same id.
func (s *Service) ResolveOrCreate(ctx context.Context, p *Patient) (int, error) {
	id, err := s.repo.FindID(ctx, p.FirmID, p.Snils)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	id, err = s.repo.Create(ctx, p)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return 0, err
	}

	id, err = s.repo.FindID(ctx, p.FirmID, p.Snils)
	if err != nil {
		return 0, fmt.Errorf("resolve patient after duplicate insert: %w", err)
	}
	return id, nil
}

func (s *Service) List(ctx context.Context, firmID int) ([]Summary, error) {
	return s.repo.List(ctx, firmID)
}
