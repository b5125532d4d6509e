package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/access"
	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/application/auth"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(store *apptest.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		store.Users(),
		access.NewService(store.Users(), store.Permissions(), nil),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"},
		"zola-pizza.com",
		nil,
	)
}

func activate(t *testing.T, store *apptest.Store, email, role string) {
	t.Helper()
	ctx := context.Background()
	u, err := store.Users().GetByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, u)
	u.Status = entity.UserStatusActive
	u.Role = role
	require.NoError(t, store.Users().Update(ctx, u))
}

func TestSignUp_CreaUsuarioPendiente(t *testing.T) {
	store := apptest.NewStore()
	uc := newAuth(store)

	out, err := uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: " Ana@Zola-Pizza.com ", Password: "segredo123", FullName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@zola-pizza.com", out.Email)
	assert.Equal(t, entity.RolePending, out.Role)
	assert.Equal(t, entity.UserStatusPending, out.Status)

	_, err = uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: "ana@zola-pizza.com", Password: "otrosegredo", FullName: "Ana 2",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignUp_DominioNoPermitido(t *testing.T) {
	uc := newAuth(apptest.NewStore())
	_, err := uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: "ana@gmail.com", Password: "segredo123", FullName: "Ana",
	})
	assert.ErrorIs(t, err, domain.ErrEmailDomainNotAllowed)
}

func TestLogin_EstadosDeCuenta(t *testing.T) {
	store := apptest.NewStore()
	uc := newAuth(store)
	ctx := context.Background()
	_, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "bia@zola-pizza.com", Password: "segredo123", FullName: "Bia"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bia@zola-pizza.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrAccountPending)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bia@zola-pizza.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	activate(t, store, "bia@zola-pizza.com", entity.RoleSupervisor)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "bia@zola-pizza.com", Password: "segredo123"})
	require.NoError(t, err)
	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id.UserID)
	assert.Equal(t, entity.RoleSupervisor, id.Role)

	u, _ := store.Users().GetByEmail(ctx, "bia@zola-pizza.com")
	u.Status = entity.UserStatusInactive
	require.NoError(t, store.Users().Update(ctx, u))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bia@zola-pizza.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestMe_PermisosEfectivos(t *testing.T) {
	store := apptest.NewStore()
	uc := newAuth(store)
	ctx := context.Background()
	created, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "caio@zola-pizza.com", Password: "segredo123", FullName: "Caio"})
	require.NoError(t, err)
	activate(t, store, "caio@zola-pizza.com", entity.RoleManager)

	me, err := uc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, me.Permissions, len(entity.AllPermissions))
}

func TestMe_CuentaInactivaSinPermisos(t *testing.T) {
	store := apptest.NewStore()
	uc := newAuth(store)
	ctx := context.Background()
	created, err := uc.SignUp(ctx, dto.SignUpRequest{Email: "duda@zola-pizza.com", Password: "segredo123", FullName: "Duda"})
	require.NoError(t, err)
	activate(t, store, "duda@zola-pizza.com", entity.RoleManager)

	u, _ := store.Users().GetByEmail(ctx, "duda@zola-pizza.com")
	u.Status = entity.UserStatusInactive
	require.NoError(t, store.Users().Update(ctx, u))

	me, err := uc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, me.User.Status)
	assert.Empty(t, me.Permissions)
}
