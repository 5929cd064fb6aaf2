package auth_services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/szto/foxy-reminder/internal/model/auth_model"
	"github.com/szto/foxy-reminder/internal/repository/auth_repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
)

const sessionTTL = 7 * 24 * time.Hour

type AuthService struct {
	Users  *auth_repository.UserRepo
	secret []byte
}

func NewAuthService(u *auth_repository.UserRepo, secret string) *AuthService {
	return &AuthService{Users: u, secret: []byte(secret)}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*auth_model.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, errors.New("username and password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	u := &auth_model.User{Username: username, Password: string(hash)}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed session token. The
// error never reveals whether the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(u.Username)
}

// IssueToken signs an HS256 session token carrying the username.
func (s *AuthService) IssueToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ParseToken validates a session token and returns the username it carries.
func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}
