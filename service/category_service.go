package service

import (
	"errors"

	"github.com/devkingori/alika/model"
	"github.com/devkingori/alika/repository"

	"github.com/google/uuid"
)

var ErrDuplicateCategory = errors.New("a category with this name already exists")

// CategoryService handles banner category business logic.
type CategoryService struct {
	repo repository.ICategoryRepository
}

func NewCategoryService(repo repository.ICategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListCategories() ([]*model.Category, error) {
	return s.repo.GetCategories()
}

func (s *CategoryService) CreateCategory(req model.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: optional(req.Description),
		IconClass:   optional(req.IconClass),
	}

	if err := s.repo.CreateCategory(category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return category, nil
}
