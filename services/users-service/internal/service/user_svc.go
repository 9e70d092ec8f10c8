package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/auth"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/users-service/internal/domain"
)

var (
	ErrDenied         = errors.New("forbidden")
	ErrInvalid        = errors.New("invalid input")
	ErrBadCredentials = errors.New("invalid username or password")
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	ByID(ctx context.Context, id string) (*domain.User, error)
	ByUsername(ctx context.Context, username string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type UserSvc struct {
	repo     UserRepo
	tokenTTL time.Duration
}

func NewUserSvc(r UserRepo, tokenTTL time.Duration) *UserSvc {
	return &UserSvc{repo: r, tokenTTL: tokenTTL}
}

func denied(d authz.Decision) error {
	return fmt.Errorf("%w: %s", ErrDenied, d.Reason)
}

// Register creates a self-service account. The role is always regular_user;
// elevated roles come only from AdminCreate/ChangeRole.
func (s *UserSvc) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: username, email and a password of at least 8 characters are required", ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         authz.RoleRegularUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and issues an access token carrying id + role.
func (s *UserSvc) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrBadCredentials
	}
	token, err := auth.CreateAccessToken(u.ID, string(u.Role), u.Email, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *UserSvc) Profile(ctx context.Context, caller authz.Context) (*domain.User, error) {
	if d := authz.Users.Decide(authz.UserSelfManage, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.ByID(ctx, caller.CallerID)
}

// ProfileUpdateParams carries the self-service profile fields.
type ProfileUpdateParams struct {
	Email    *string
	Password *string
}

func (s *UserSvc) UpdateProfile(ctx context.Context, caller authz.Context, p ProfileUpdateParams) (*domain.User, error) {
	if d := authz.Users.Decide(authz.UserSelfManage, caller); !d.Allowed {
		return nil, denied(d)
	}
	u, err := s.repo.ByID(ctx, caller.CallerID)
	if err != nil {
		return nil, err
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		if len(*p.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalid)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserSvc) DeleteSelf(ctx context.Context, caller authz.Context) error {
	if d := authz.Users.Decide(authz.UserSelfManage, caller); !d.Allowed {
		return denied(d)
	}
	if _, err := s.repo.ByID(ctx, caller.CallerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, caller.CallerID)
}

func (s *UserSvc) List(ctx context.Context, caller authz.Context) ([]domain.User, error) {
	if d := authz.Users.Decide(authz.UserList, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.List(ctx)
}

func (s *UserSvc) GetByUsername(ctx context.Context, caller authz.Context, username string) (*domain.User, error) {
	if d := authz.Users.Decide(authz.UserGetByUsername, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.ByUsername(ctx, username)
}

// AdminCreate makes an account with an explicit role.
func (s *UserSvc) AdminCreate(ctx context.Context, caller authz.Context, username, email, password string, role authz.Role) (*domain.User, error) {
	if d := authz.Users.Decide(authz.UserCreateAny, caller); !d.Allowed {
		return nil, denied(d)
	}
	if !domain.KnownRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserSvc) AdminUpdate(ctx context.Context, caller authz.Context, id string, p ProfileUpdateParams) (*domain.User, error) {
	if d := authz.Users.Decide(authz.UserUpdateAny, caller); !d.Allowed {
		return nil, denied(d)
	}
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserSvc) AdminDelete(ctx context.Context, caller authz.Context, id string) error {
	if d := authz.Users.Decide(authz.UserDeleteAny, caller); !d.Allowed {
		return denied(d)
	}
	if _, err := s.repo.ByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *UserSvc) ChangeRole(ctx context.Context, caller authz.Context, id string, role authz.Role) (*domain.User, error) {
	if d := authz.Users.Decide(authz.UserChangeRole, caller); !d.Allowed {
		return nil, denied(d)
	}
	if !domain.KnownRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
	}
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
