package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService handles account registration and credential checks. Sessions
// themselves live in the HTTP layer.
type UserService struct {
	store storage.Storage
}

// NewUserService creates a UserService instance.
func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	var fields fieldErrors

	username := strings.TrimSpace(input.Username)
	if len(username) < 3 {
		fields.add("username", "username must be at least 3 characters")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		fields.add("email", "invalid email address")
	}
	if len(input.Password) < 8 {
		fields.add("password", "password must be at least 8 characters")
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		DisplayName: strings.TrimSpace(input.DisplayName),
	}
	if user.DisplayName == "" {
		user.DisplayName = username
	}

	if err := s.store.CreateUser(&user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks a username/password pair and returns the account.
func (s *UserService) Authenticate(username, password string) (*db.User, error) {
	user, err := s.store.UserByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ByID loads an account by id.
func (s *UserService) ByID(id uint) (*db.User, error) {
	user, err := s.store.UserByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
