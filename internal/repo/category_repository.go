package repo

import "github.com/rogerio-castellano/inventory-audit/internal/models"

// CategoryRepository defines the interface for category data operations.
// Delete clears the category reference on items pointing at it; it never
// cascades into item rows.
type CategoryRepository interface {
	Create(c models.Category) (models.Category, error)
	GetAll() ([]models.Category, error)
	GetByID(id int) (models.Category, error)
	Update(c models.Category) (models.Category, error)
	Delete(id int) error
}
