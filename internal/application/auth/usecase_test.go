package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/auth"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
	pkgjwt "github.com/tu-usuario/catering-pro/pkg/jwt"
)

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	users := memory.NewUserRepository()
	stores := memory.NewStoreRepository()
	require.NoError(t, stores.Create(&entity.Store{ID: "store-1", Name: "Central", Type: entity.StoreTypeSales, Active: true}))
	cfg := auth.JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 15, Issuer: "catering-pro"}
	return auth.NewAuthUseCase(users, stores, cfg)
}

func TestRegisterUser_EmiteTokenConRol(t *testing.T) {
	uc := newAuthUC(t)

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "chef@catering.es", Password: "s3creta", Name: "Chef", Role: entity.RoleKitchen, StoreID: "store-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleKitchen, resp.Role)
	assert.Equal(t, "store-1", resp.StoreID)

	userID, storeID, role, err := pkgjwt.Parse("secreto-de-pruebas", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, userID)
	assert.Equal(t, "store-1", storeID)
	assert.Equal(t, entity.RoleKitchen, role)
}

// Sin rol explícito se asigna el rol menos privilegiado.
func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc := newAuthUC(t)

	resp, err := uc.RegisterUser(dto.RegisterRequest{Email: "caja@catering.es", Password: "s3creta"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSales, resp.Role)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "chef@catering.es", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "chef@catering.es", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_TiendaInexistente(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "chef@catering.es", Password: "s3creta", StoreID: "store-fantasma",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc := newAuthUC(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "chef@catering.es", Password: "s3creta", Role: entity.RoleAdmin})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "chef@catering.es", Password: "s3creta"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuthUC(t)
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "chef@catering.es", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "chef@catering.es", Password: "equivocada"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@catering.es", Password: "s3creta"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
