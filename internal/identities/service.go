// Package identities implements the JWT authentication demo: registration,
// password login, token login and the token protected profile endpoints.
package identities

import (
	"context"

	"github.com/Aidin1998/apiexercises/common/dbutil"
	"github.com/Aidin1998/apiexercises/internal/auth"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminUsername is the only account allowed on the admin endpoint
const AdminUsername = "admin"

var (
	ErrNoUsers             = errors.NotFound.Explain("No user found!")
	ErrUserExists          = errors.Invalid.Explain("User already exists!")
	ErrUserNotFound        = errors.NotFound.Explain("User Not Found!")
	ErrIncorrectPassword   = errors.Invalid.Explain("Incorrect password!")
	ErrIncorrectCredential = errors.Unauthorized.Explain("Incorrect Credentials!")
	ErrNotAdmin            = errors.Forbidden.Explain("You are not admin.")
)

// IdentityService defines user identity operations.
type IdentityService interface {
	Users(ctx context.Context) ([]User, error)
	Register(ctx context.Context, req *RegisterRequest) (*User, error)
	Login(ctx context.Context, req *LoginRequest) (*User, error)
	IssueToken(ctx context.Context, username, password string) (*auth.Token, error)
	Account(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, username string, req *ProfileIn) (*User, error)
	RequireAdmin(user *User) error
}

// Service implements IdentityService
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
	tokens *auth.TokenService
}

var _ IdentityService = (*Service)(nil)

// NewService creates a new IdentityService
func NewService(logger *zap.Logger, db *gorm.DB, tokens *auth.TokenService) *Service {
	return &Service{logger: logger, db: db, tokens: tokens}
}

// Users lists every account
func (s *Service) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.New("failed to list users").Wrap(dbutil.WrapError(err))
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// Register registers a new user
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	// Check if username already exists
	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).Where("username = ?", *req.Username).Count(&count).Error; err != nil {
		return nil, errors.New("failed to check username").Wrap(dbutil.WrapError(err))
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(*req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username: *req.Username,
		Password: hashedPassword,
		Name:     *req.Name,
		Age:      *req.Age,
		Gender:   *req.Gender,
		Bio:      *req.Bio,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race against a concurrent registration
		if err := dbutil.WrapError(err); dbutil.IsConstraintViolation(err) {
			return nil, ErrUserExists.Wrap(err)
		}
		return nil, errors.New("failed to create user").Wrap(err)
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// Login checks the password of an account
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, error) {
	user, err := s.userByUsername(ctx, *req.Username)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.Password, *req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

// IssueToken exchanges valid credentials for an access token. Unknown users
// and wrong passwords are indistinguishable.
func (s *Service) IssueToken(ctx context.Context, username, password string) (*auth.Token, error) {
	user, err := s.userByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, ErrIncorrectCredential
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIncorrectCredential
	}
	return s.tokens.IssueToken(user.Username)
}

// Account resolves the subject of a validated token. A subject without an
// account is treated as an invalid token.
func (s *Service) Account(ctx context.Context, username string) (*User, error) {
	user, err := s.userByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces the profile fields of an account
func (s *Service) UpdateProfile(ctx context.Context, username string, req *ProfileIn) (*User, error) {
	result := s.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Updates(map[string]interface{}{
		"name":   *req.Name,
		"age":    *req.Age,
		"gender": *req.Gender,
		"bio":    *req.Bio,
	})
	if result.Error != nil {
		return nil, errors.New("failed to update profile").Wrap(dbutil.WrapError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, auth.ErrInvalidToken
	}
	return s.userByUsername(ctx, username)
}

// RequireAdmin rejects every account but the admin
func (s *Service) RequireAdmin(user *User) error {
	if user.Username != AdminUsername {
		return ErrNotAdmin
	}
	return nil
}

func (s *Service) userByUsername(ctx context.Context, username string) (*User, error) {
	user, err := dbutil.FindOne[User](s.db.WithContext(ctx).Where("username = ?", username))
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, err
		}
		return nil, errors.New("failed to get user by username").Wrap(err)
	}
	return user, nil
}
