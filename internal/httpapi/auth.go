package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"cashops/backend/internal/domain"
	"cashops/backend/internal/store"
)

// ManagerStore is the slice of the repository the auth layer needs.
type ManagerStore interface {
	CreateManager(ctx context.Context, manager domain.Manager) (*domain.Manager, error)
	GetManagerByEmail(ctx context.Context, email string) (*domain.Manager, error)
}

type AuthManager struct {
	secret   []byte
	tokenTTL time.Duration
	managers ManagerStore
}

type ledgerClaims struct {
	jwtlib.RegisteredClaims
	Role string `json:"role"`
}

func NewAuthManager(secret string, tokenTTL time.Duration, managers ManagerStore) *AuthManager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}

	return &AuthManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		managers: managers,
	}
}

func (a *AuthManager) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return domain.AuthResponse{}, fmt.Errorf("%w: name and a valid email are required", store.ErrInvalidArgument)
	}
	if len(req.Password) < 6 {
		return domain.AuthResponse{}, fmt.Errorf("%w: password must be at least 6 characters", store.ErrInvalidArgument)
	}

	// Role is an open string; "manager" and "admin" are the documented values.
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleManager
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := a.managers.CreateManager(ctx, domain.Manager{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.AuthResponse{}, err
	}

	return a.issueToken(*created)
}

func (a *AuthManager) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	manager, err := a.managers.GetManagerByEmail(ctx, req.Email)
	if err != nil {
		return domain.AuthResponse{}, errors.New("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(manager.Password), []byte(req.Password)) != nil {
		return domain.AuthResponse{}, errors.New("invalid email or password")
	}

	return a.issueToken(*manager)
}

func (a *AuthManager) issueToken(manager domain.Manager) (domain.AuthResponse, error) {
	now := time.Now().UTC()
	claims := ledgerClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   manager.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(a.tokenTTL)),
			Issuer:    "cashops",
		},
		Role: manager.Role,
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	return domain.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Manager:     manager.ToResponse(),
	}, nil
}

func (a *AuthManager) ParseToken(tokenStr string) (domain.Actor, error) {
	claims := &ledgerClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return domain.Actor{}, errors.New("invalid or expired token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, errors.New("invalid token subject")
	}
	return domain.Actor{ID: sub, Role: claims.Role}, nil
}
