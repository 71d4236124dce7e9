package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezm-trade/trade-api/internal/application/dto"
	"github.com/ezm-trade/trade-api/internal/domain"
	"github.com/ezm-trade/trade-api/internal/domain/entity"
	pkgjwt "github.com/ezm-trade/trade-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) ListByRole(role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

type fakeStoreRepo struct {
	stores map[string]*entity.Store
}

func (r *fakeStoreRepo) Create(s *entity.Store) error             { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) GetByID(id string) (*entity.Store, error) { return r.stores[id], nil }
func (r *fakeStoreRepo) List(int, int) ([]*entity.Store, error)   { return nil, nil }
func (r *fakeStoreRepo) Update(s *entity.Store) error             { r.stores[s.ID] = s; return nil }
func (r *fakeStoreRepo) Delete(id string) error                   { delete(r.stores, id); return nil }

func newUseCase() (*AuthUseCase, *fakeUserRepo, *fakeStoreRepo) {
	users := newFakeUserRepo()
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{
		"store-1": {ID: "store-1", Name: "Bole Branch"},
	}}
	uc := NewAuthUseCase(users, stores, JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "ezm-trade-test",
	})
	return uc, users, stores
}

func TestRegisterUser_DefaultsToCashier(t *testing.T) {
	uc, users, _ := newUseCase()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "amina@ezm.example",
		Password: "s3cret",
		Name:     "Amina",
		StoreID:  "store-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, out.Role)
	assert.Equal(t, "active", out.Status)

	stored := users.users["amina@ezm.example"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "password must be hashed")
}

func TestRegisterUser_StoreBoundRoleNeedsStore(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "mgr@ezm.example",
		Password: "s3cret",
		Role:     entity.RoleStoreManager,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email:    "mgr@ezm.example",
		Password: "s3cret",
		Role:     entity.RoleStoreManager,
		StoreID:  "no-such-store",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_UnknownRole(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "x@ezm.example",
		Password: "s3cret",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	uc, _, _ := newUseCase()

	first := dto.RegisterRequest{Email: "dup@ezm.example", Password: "s3cret", Role: entity.RoleHeadManager}
	_, err := uc.RegisterUser(first)
	require.NoError(t, err)

	_, err = uc.RegisterUser(first)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_ReturnsValidToken(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "mgr@ezm.example",
		Password: "s3cret",
		Name:     "Mulu",
		Role:     entity.RoleStoreManager,
		StoreID:  "store-1",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "mgr@ezm.example", Password: "s3cret"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "mgr@ezm.example", out.User.Email)

	userID, storeID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "store-1", storeID)
	assert.Equal(t, entity.RoleStoreManager, role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "u@ezm.example", Password: "right", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "u@ezm.example", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Login(dto.LoginRequest{Email: "ghost@ezm.example", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_InactiveUserForbidden(t *testing.T) {
	uc, users, _ := newUseCase()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "off@ezm.example", Password: "s3cret", Role: entity.RoleAdmin})
	require.NoError(t, err)
	users.users["off@ezm.example"].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "off@ezm.example", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
