package categories

import (
	"context"

	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
)

// CategoryDTO is a catalog category.
type CategoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListResult carries every category plus the count.
type ListResult struct {
	Categories []CategoryDTO `json:"categories"`
	Count      int           `json:"count"`
}

type Service interface {
	ListCategories(ctx context.Context) (*ListResult, error)
}

type lister interface {
	ListAll(ctx context.Context) ([]models.Category, error)
}

type service struct {
	repo lister
}

func NewService(repo lister) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) (*ListResult, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryDTO{ID: row.ID, Name: row.Name, Description: row.Description})
	}
	return &ListResult{Categories: out, Count: len(out)}, nil
}
