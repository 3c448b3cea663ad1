package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

// Claims is the payload of an admin token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type AuthService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    Clock
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, logger: logger, now: utcNow}
}

// Login checks the credentials and issues a signed token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return LoginResult{}, apperr.Validation("username and password are required")
	}
	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, apperr.Unauthorized("invalid credentials")
		}
		return LoginResult{}, apperr.Internal(err, "failed to fetch user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		s.logger.Warn("Admin login rejected", zap.String("username", in.Username))
		return LoginResult{}, apperr.Unauthorized("invalid credentials")
	}

	now := s.now()
	claims := Claims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Role:     user.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return LoginResult{}, apperr.Internal(err, "failed to sign token")
	}
	return LoginResult{Token: token, User: user}, nil
}

// ParseToken validates signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthorized("invalid token")
	}
	return claims, nil
}

// EnsureAdmin creates the admin user when no user with that name exists.
// An existing user is left untouched, including its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin %q: %w", username, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := model.User{Username: username, Password: string(hash), Role: model.RoleAdmin}
	if err := s.users.Create(ctx, &user); err != nil {
		return fmt.Errorf("create admin %q: %w", username, err)
	}
	s.logger.Info("Admin user created", zap.String("username", username))
	return nil
}
