package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/Subby575/irctc/internal/auth"
	"github.com/Subby575/irctc/internal/clock"
	"github.com/Subby575/irctc/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}

type AuthService struct {
	repo   UserRepository
	tokens *auth.Tokens
	clock  clock.Clock
}

func NewAuthService(repo UserRepository, tokens *auth.Tokens, clk clock.Clock) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if in.Username == "" {
		return domain.User{}, domain.ErrUsernameRequired
	}
	if in.Password == "" {
		return domain.User{}, domain.ErrPasswordRequired
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token string
	User  domain.User
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByUsername(ctx, in.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{UserID: user.ID, Role: user.Role})
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: user}, nil
}
