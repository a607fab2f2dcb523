package auth

import (
	"errors"

	"starlog/app/apperr"
	"starlog/app/models"
	"starlog/app/repositories"
)

// Service handles account registration and login.
type Service struct {
	users  repositories.UserRepository
	tokens *TokenIssuer
}

// NewService creates a new auth Service.
func NewService(users repositories.UserRepository, tokens *TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account with the user role.
func (s *Service) Register(username, email, password string) (*models.User, error) {
	if password == "" {
		return nil, apperr.Validation("password", "is required")
	}
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, apperr.Validation("email", "already registered")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token    string      `json:"token"`
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, apperr.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.Role, Username: user.Username}, nil
}
