package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// ErrInvalidCredentials is returned for a bad email/password pair; it never
// says which half was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ForbiddenError means the caller's role doesn't allow the operation.
type ForbiddenError struct {
	Required entity.Role
}

func (e *ForbiddenError) Error() string {
	return string(e.Required) + " only"
}

// requireRole returns a ForbiddenError unless the session holds the role.
func requireRole(s *session.Session, role entity.Role) error {
	if s.Role != role {
		return &ForbiddenError{Required: role}
	}
	return nil
}

// AuthService registers users and issues sessions.
type AuthService struct {
	users    repository.UserRepository
	sessions session.Store
}

func NewAuthService(users repository.UserRepository, sessions session.Store) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// RegisterInput carries everything a registration needs. The role is fixed
// here and never changes afterwards.
type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
	Phone    string      `json:"phone"`
	Location string      `json:"location"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if len(in.Password) < 6 {
		return nil, entity.Invalidf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Phone:        in.Phone,
		Location:     in.Location,
		CreatedAt:    time.Now(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Login verifies the password and issues a session carrying the user's id
// and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.Session, *entity.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess := &session.Session{
		Token:  uuid.NewString(),
		UserID: u.ID,
		Role:   u.Role,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("User logged in", "user_id", u.ID, "role", u.Role)
	return sess, u, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
