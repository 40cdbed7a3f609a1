package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/repository"
)

type ComposerService struct {
	composers *docstore.Collection[model.Composer]
}

func NewComposerService(repos *repository.Repositories) *ComposerService {
	return &ComposerService{composers: repos.Composers}
}

func (s *ComposerService) List(ctx context.Context) ([]model.Composer, error) {
	return s.composers.Find(ctx)
}

// Get returns nil without an error when no composer has the id.
func (s *ComposerService) Get(ctx context.Context, id string) (*model.Composer, error) {
	composer, err := s.composers.FindByID(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	return composer, err
}

func (s *ComposerService) Create(ctx context.Context, composer model.Composer) (*model.Composer, error) {
	return s.composers.Insert(ctx, composer)
}

// Update overwrites the composer's names. Applying the same request twice
// leaves the stored document unchanged after the first call.
func (s *ComposerService) Update(ctx context.Context, req *model.UpdateComposerRequest) (*model.Composer, error) {
	composer, err := s.composers.FindByID(ctx, req.ID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, errs.NewUnauthorizedError(fmt.Sprintf("Invalid composerId: %s", req.ID))
	}
	if err != nil {
		return nil, err
	}

	composer.FirstName = req.FirstName
	composer.LastName = req.LastName

	updated, err := s.composers.Replace(ctx, req.ID, *composer)
	if errors.Is(err, docstore.ErrNotFound) {
		// Deleted between the read and the write.
		return nil, errs.NewUnauthorizedError(fmt.Sprintf("Invalid composerId: %s", req.ID))
	}
	return updated, err
}

// Delete returns the removed composer, or nil when none had the id.
func (s *ComposerService) Delete(ctx context.Context, id string) (*model.Composer, error) {
	composer, err := s.composers.Delete(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	return composer, err
}
