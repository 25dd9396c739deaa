package service

import (
	"careerai/internal/cache"
	"careerai/internal/model"
	"careerai/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = repository.ErrEmailTaken
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// FormError is a shallow signup/login form problem shown to the user verbatim
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

// AuthService handles accounts and session tokens
type AuthService struct {
	users     repository.UserRepo
	revoked   cache.TokenCache
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, revoked cache.TokenCache, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		revoked:   revoked,
		jwtSecret: []byte(secret),
		tokenTTL:  ttl,
		logger:    logger,
	}
}

// Signup creates the account and signs the user in immediately
func (s *AuthService) Signup(ctx context.Context, req model.CredentialsRequest) (*model.LoginResponse, error) {
	if err := checkCredentials(req); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, &FormError{Message: fmt.Sprintf("Password should be at least %d characters", minPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user signed up", zap.String("userId", user.ID))

	return s.Login(ctx, req)
}

// Login validates credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req model.CredentialsRequest) (*model.LoginResponse, error) {
	if err := checkCredentials(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &model.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

// ValidateToken parses a session token and rejects revoked ones
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the token for the remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *model.UserClaims) error {
	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info("user logged out", zap.String("userId", claims.UserID))
	return nil
}

func checkCredentials(req model.CredentialsRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return &FormError{Message: "Email and password are required"}
	}
	if !strings.Contains(email, "@") {
		return &FormError{Message: "Unable to validate email address: invalid format"}
	}
	return nil
}
