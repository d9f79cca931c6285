package memory

import (
	"sync"

	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// UserRepository implementación en memoria de usuarios.
type UserRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

// NewUserRepository construye el repositorio en memoria.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}
