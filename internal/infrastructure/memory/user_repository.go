package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	key := strings.ToLower(user.Email)
	return r.s.view(nil, func(st *state) error {
		if _, ok := st.users[key]; ok {
			return domain.ErrEmailAlreadyExists
		}
		st.users[key] = *user
		return nil
	})
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(nil, func(st *state) error {
		if u, ok := st.users[strings.ToLower(email)]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}
