package repository

import "github.com/tu-usuario/catering-pro/internal/domain/entity"

// UserRepository es el puerto de usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
