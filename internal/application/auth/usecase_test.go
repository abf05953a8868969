package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/auth"
	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Reposicion-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestRegisterYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@Cocina.com", Password: "secreta123", Role: entity.RoleComprador})
	require.NoError(t, err)
	assert.Equal(t, "ana@cocina.com", u.Email)
	assert.Equal(t, entity.RoleComprador, u.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@cocina.com", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@cocina.com", Password: "secreta123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleComprador, role)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "bo@cocina.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bo@cocina.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@cocina.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "sin-arroba", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "secreta123", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
