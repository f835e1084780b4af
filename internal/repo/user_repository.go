package repo

import "github.com/rogerio-castellano/inventory-audit/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	GetByID(id int) (models.User, error)
	GetAll() ([]models.User, error)
	CreateUser(u models.User) (models.User, error)
	DeleteUser(id int) error
}
