package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/domain"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/repository"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, e := range f.users {
		if e.Username == u.Username || e.Email == u.Email {
			return repository.ErrTaken
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) ByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Save(_ context.Context, u *domain.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func newSvc() (*UserSvc, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserSvc(repo, time.Hour), repo
}

func asRole(role authz.Role, id string) authz.Context {
	return authz.Context{Role: role, CallerID: id}
}

func TestRegisterDefaultsToRegularUser(t *testing.T) {
	svc, _ := newSvc()

	u, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, authz.RoleRegularUser, u.Role)
	assert.NotEqual(t, "supersecret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Register(context.Background(), "jana", "jana@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "jana", "other@example.com", "supersecret")
	assert.ErrorIs(t, err, repository.ErrTaken)
}

func TestLoginWrongPasswordFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, _ := newSvc()

	_, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "jana", "wrongpassword")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "supersecret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, _ := newSvc()

	u, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)

	got, token, err := svc.Login(context.Background(), "jana", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token)
}

func TestProfileSelfManagement(t *testing.T) {
	svc, _ := newSvc()

	u, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)

	caller := asRole(authz.RoleRegularUser, u.ID)
	got, err := svc.Profile(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, "jana", got.Username)

	email := "jana.new@example.com"
	updated, err := svc.UpdateProfile(context.Background(), caller, ProfileUpdateParams{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)

	require.NoError(t, svc.DeleteSelf(context.Background(), caller))
	_, err = svc.Profile(context.Background(), caller)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAnonymousHasNoProfile(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Profile(context.Background(), authz.Context{})
	assert.ErrorIs(t, err, ErrDenied)
}

func TestListRestrictedToAdminAndAuditor(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.List(context.Background(), asRole(authz.RoleRegularUser, "u9"))
	assert.ErrorIs(t, err, ErrDenied)
	_, err = svc.List(context.Background(), asRole(authz.RoleModerator, "u9"))
	assert.ErrorIs(t, err, ErrDenied)

	for _, role := range []authz.Role{authz.RoleAdmin, authz.RoleAuditor} {
		users, err := svc.List(context.Background(), asRole(role, "u9"))
		require.NoError(t, err)
		assert.Len(t, users, 1)
	}
}

func TestAdminCreateWithRole(t *testing.T) {
	svc, _ := newSvc()

	u, err := svc.AdminCreate(context.Background(), asRole(authz.RoleAdmin, "a1"),
		"mod", "mod@example.com", "supersecret", authz.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleModerator, u.Role)

	_, err = svc.AdminCreate(context.Background(), asRole(authz.RoleAdmin, "a1"),
		"x", "x@example.com", "supersecret", authz.Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.AdminCreate(context.Background(), asRole(authz.RoleFacilityManager, "f1"),
		"y", "y@example.com", "supersecret", authz.RoleRegularUser)
	assert.ErrorIs(t, err, ErrDenied)
}

func TestChangeRoleAdminOnly(t *testing.T) {
	svc, _ := newSvc()

	u, err := svc.Register(context.Background(), "jana", "jana@example.com", "supersecret")
	require.NoError(t, err)

	_, err = svc.ChangeRole(context.Background(), asRole(authz.RoleModerator, "m1"), u.ID, authz.RoleAuditor)
	assert.ErrorIs(t, err, ErrDenied)

	got, err := svc.ChangeRole(context.Background(), asRole(authz.RoleAdmin, "a1"), u.ID, authz.RoleAuditor)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAuditor, got.Role)
}

func TestAdminDeleteMissingUser(t *testing.T) {
	svc, _ := newSvc()

	err := svc.AdminDelete(context.Background(), asRole(authz.RoleAdmin, "a1"), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
