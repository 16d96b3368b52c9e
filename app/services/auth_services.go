package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

const usernameTakenMsg = "A user with that username already exists."

type AuthService struct {
	db     *gorm.DB
	users  *repositories.UserRepository
	events *event.Dispatcher
}

func NewAuthService(db *gorm.DB, users *repositories.UserRepository, events *event.Dispatcher) *AuthService {
	return &AuthService{db: db, users: users, events: events}
}

// Register creates a customer account: the user, its customer group and
// the linked Customer row, all in one transaction.
func (s *AuthService) Register(ctx context.Context, f forms.RegisterForm) (models.User, error) {
	if errs := validate.Struct(f); validate.HasErrors(errs) {
		return models.User{}, invalid(errs)
	}
	taken, err := s.users.UsernameExists(ctx, f.Username)
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	if taken {
		return models.User{}, invalid(forms.Errors{"username": usernameTakenMsg})
	}

	hash, err := hashPassword(f.Password1)
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	user := models.User{Username: f.Username, Email: f.Email, Password: hash}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if err := users.Create(ctx, &user); err != nil {
			return err
		}
		group, err := users.Group(ctx, models.RoleCustomer)
		if err != nil {
			return err
		}
		if err := users.AssignGroup(ctx, &user, group); err != nil {
			return err
		}
		return repositories.NewCustomerRepository(tx).Create(ctx, &models.Customer{
			UserID: &user.ID,
			Name:   user.Username,
			Email:  user.Email,
		})
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return models.User{}, invalid(forms.Errors{"username": usernameTakenMsg})
	}
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	s.events.Fire(ctx, EventCustomerRegistered, user)
	return user, nil
}

// Authenticate checks a username and password. Every failure is
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		s.events.Fire(ctx, EventLoginFailed, username)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("authenticate: %w", err)
	}
	if !auth.CheckPassword(user.Password, password) {
		s.events.Fire(ctx, EventLoginFailed, username)
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken authenticates and returns a signed bearer token.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (string, models.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", models.User{}, err
	}
	token, err := auth.GenerateToken(user.ID, user.Role())
	if err != nil {
		return "", models.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// CreateAdmin creates a user in the admin group. It has no Customer row.
func (s *AuthService) CreateAdmin(ctx context.Context, username, email, password string) (models.User, error) {
	f := forms.RegisterForm{Username: username, Email: email, Password1: password, Password2: password}
	if errs := validate.Struct(f); validate.HasErrors(errs) {
		return models.User{}, invalid(errs)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("create admin: %w", err)
	}
	user := models.User{Username: username, Email: email, Password: hash}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if err := users.Create(ctx, &user); err != nil {
			return err
		}
		group, err := users.Group(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
		return users.AssignGroup(ctx, &user, group)
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create admin: %w", err)
	}
	return user, nil
}

// hashPassword reports an over-long password as a password1 field error.
func hashPassword(plain string) (string, error) {
	hash, err := auth.HashPassword(plain)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", invalid(forms.Errors{"password1": "The password1 must not exceed 72 bytes."})
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// ResolvePrincipal implements auth.Resolver.
func (s *AuthService) ResolvePrincipal(ctx context.Context, userID uint) (*auth.Principal, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role()}, nil
}
