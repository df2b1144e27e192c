package repository

import (
	"database/sql"
	"errors"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"

	"github.com/lib/pq"
)

// ErrDuplicateCategory is returned by CreateCategory when the name is taken.
var ErrDuplicateCategory = errors.New("category name already exists")

// ICategoryRepository defines the contract for category persistence.
type ICategoryRepository interface {
	CreateCategory(category *model.Category) error
	GetCategories() ([]*model.Category, error)
	GetCategoryByName(name string) (*model.Category, error)
}

type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) CreateCategory(category *model.Category) error {
	query := `INSERT INTO categories (id, name, description, icon_class)
		VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := r.DB.QueryRow(query, category.ID, category.Name, category.Description,
		category.IconClass).Scan(&category.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateCategory
		}
		logger.Log.WithError(err).Error("Failed to execute create category query")
		return err
	}
	return nil
}

func (r *CategoryRepository) GetCategories() ([]*model.Category, error) {
	query := `SELECT id, name, description, icon_class, banner_count, created_at
		FROM categories ORDER BY name`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get categories query")
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		c := &model.Category{}
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IconClass, &c.BannerCount, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetCategoryByName(name string) (*model.Category, error) {
	c := &model.Category{}
	query := `SELECT id, name, description, icon_class, banner_count, created_at
		FROM categories WHERE name = $1`
	err := r.DB.QueryRow(query, name).Scan(&c.ID, &c.Name, &c.Description, &c.IconClass,
		&c.BannerCount, &c.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get category by name query")
		}
		return nil, err
	}
	return c, nil
}
