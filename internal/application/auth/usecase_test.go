package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pos/internal/application/auth"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cu := *u
	r.byEmail[u.Email] = &cu
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cu := *u
			return &cu, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cu := *u
	return &cu, nil
}

func buildAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "farmacia-pos-test",
	})
}

// Un rol que no existe en el sistema no produce un usuario: la matriz de
// autorización solo conoce admin, farmaceutico y cajero.
func TestRegisterUser_RolDesconocidoRechazado(t *testing.T) {
	casos := []string{"superusuario", "Admin", "ADMIN", "cajero ", "root"}
	for _, rol := range casos {
		repo := newFakeUserRepo()
		uc := buildAuthUC(repo)

		out, err := uc.RegisterUser(dto.RegisterRequest{
			Email:    "ana@farmacia.co",
			Password: "clave-segura",
			Role:     rol,
		})

		assert.Equal(t, domain.ErrInvalidInput, err, "rol %q", rol)
		assert.Nil(t, out, "rol %q", rol)
		assert.Empty(t, repo.byEmail, "rol %q no debe persistir usuario", rol)
	}
}

func TestRegisterUser_RolesConocidos(t *testing.T) {
	for _, rol := range []string{entity.RoleAdmin, entity.RoleFarmaceutico, entity.RoleCajero} {
		repo := newFakeUserRepo()
		uc := buildAuthUC(repo)

		out, err := uc.RegisterUser(dto.RegisterRequest{
			Email:    "ana@farmacia.co",
			Password: "clave-segura",
			Role:     rol,
		})

		require.NoError(t, err, "rol %q", rol)
		assert.Equal(t, rol, out.Role)
		assert.Equal(t, "active", out.Status)
	}
}

// Sin rol en el request el usuario queda como cajero, el rol de menor privilegio.
func TestRegisterUser_RolPorDefectoCajero(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUC(repo)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "caja@farmacia.co",
		Password: "clave-segura",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCajero, out.Role)
	// sin nombre, el email hace de nombre visible
	assert.Equal(t, "caja@farmacia.co", out.Name)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@farmacia.co",
		Password: "clave-segura",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@farmacia.co",
		Password: "otra-clave",
		Role:     entity.RoleCajero,
	})
	assert.Equal(t, domain.ErrEmailAlreadyExists, err)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@farmacia.co",
		Password: "clave-segura",
		Role:     entity.RoleFarmaceutico,
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@farmacia.co", Password: "clave-mala"})
	assert.Equal(t, domain.ErrUnauthorized, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@farmacia.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleFarmaceutico, out.User.Role)
}
