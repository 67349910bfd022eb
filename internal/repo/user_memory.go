package repo

import (
	"context"

	"github.com/rogerio-castellano/record-services/internal/models"
)

// InMemoryUserRepository checks email uniqueness and inserts under one lock.
type InMemoryUserRepository struct {
	table *memoryTable[models.User]
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{table: newMemoryTable[models.User]()}
}

func (r *InMemoryUserRepository) Create(_ context.Context, u models.User) (models.User, error) {
	return r.table.insert(u,
		func(u *models.User, id int) { u.ID = id },
		func(existing models.User) error {
			if existing.Email == u.Email {
				return ErrEmailAlreadyInUse
			}
			return nil
		})
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id int) (models.User, error) {
	u, ok := r.table.get(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := r.table.find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

// CountByEmail reports how many stored users own the address.
func (r *InMemoryUserRepository) CountByEmail(email string) int {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	n := 0
	for _, u := range r.table.rows {
		if u.Email == email {
			n++
		}
	}
	return n
}

func (r *InMemoryUserRepository) Clear() {
	r.table.clear()
}
