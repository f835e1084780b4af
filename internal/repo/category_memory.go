package repo

import (
	"time"

	"github.com/rogerio-castellano/inventory-audit/internal/models"
)

type InMemoryCategoryRepository struct {
	categories []models.Category
	nextID     int

	items *InMemoryItemRepository
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: []models.Category{},
		nextID:     1,
	}
}

// SetItemRepository wires the item repository so Delete can clear category
// references the way the SET NULL FK does in Postgres.
func (r *InMemoryCategoryRepository) SetItemRepository(items *InMemoryItemRepository) {
	r.items = items
}

func (r *InMemoryCategoryRepository) Create(c models.Category) (models.Category, error) {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return models.Category{}, ErrDuplicatedValueUnique
		}
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now().UTC()
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryCategoryRepository) GetAll() ([]models.Category, error) {
	return r.categories, nil
}

func (r *InMemoryCategoryRepository) GetByID(id int) (models.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Update(c models.Category) (models.Category, error) {
	for _, existing := range r.categories {
		if existing.Name == c.Name && existing.ID != c.ID {
			return models.Category{}, ErrDuplicatedValueUnique
		}
	}
	for i, existing := range r.categories {
		if existing.ID == c.ID {
			c.CreatedAt = existing.CreatedAt
			r.categories[i] = c
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Delete(id int) error {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			if r.items != nil {
				for j, it := range r.items.items {
					if it.CategoryID != nil && *it.CategoryID == id {
						r.items.items[j].CategoryID = nil
					}
				}
			}
			return nil
		}
	}
	return ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Clear() {
	r.categories = []models.Category{}
}
