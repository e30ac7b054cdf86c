package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-hub/internal/config"
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"
	"quiz-hub/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService issues and validates session tokens on top of the store's
// login.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context) error
	CreateJWT(ctx context.Context, user *domain.User) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CurrentActor(ctx context.Context, claims *dto.AuthClaims) (Actor, error)
	SessionUser(ctx context.Context) (*domain.User, error)
}

type authServiceImpl struct {
	sessions domain.SessionRepository
	users    domain.UserRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(sessions domain.SessionRepository, users domain.UserRepository, jwtCfg config.JWTConfig) (AuthService, error) {
	if len(jwtCfg.SecretKey) < 16 {
		return nil, errors.New("jwt secret key must be at least 16 characters long")
	}
	if jwtCfg.AccessTokenTTL <= 0 {
		jwtCfg.AccessTokenTTL = time.Hour
	}
	return &authServiceImpl{sessions: sessions, users: users, jwtCfg: jwtCfg}, nil
}

// Login returns the same error for an unknown email, a wrong password and an
// account that is not active.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.sessions.LoginUser(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.NewUnauthorizedError("Invalid email or password")
	}
	token, err := s.CreateJWT(ctx, user)
	if err != nil {
		return "", nil, domain.NewInternalError("failed to create access token", err)
	}
	logger.Get().Info("User logged in", zap.String("userID", user.ID), zap.String("role", string(user.Role)))
	return token, user, nil
}

func (s *authServiceImpl) Logout(ctx context.Context) error {
	return s.sessions.LogoutUser(ctx)
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      string(user.Role),
		TenantID:  user.TenantID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		if claims.TokenType != tokenTypeAccess {
			return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidJWTToken, claims.TokenType)
		}
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// CurrentActor reloads the token's user so role, tenant and status changes
// take effect before the token expires.
func (s *authServiceImpl) CurrentActor(ctx context.Context, claims *dto.AuthClaims) (Actor, error) {
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return Actor{}, err
	}
	if user == nil || user.Status != domain.UserActive {
		return Actor{}, domain.NewUnauthorizedError("Account is not active")
	}
	return ActorFromUser(user), nil
}

// SessionUser returns the user of the store's live session, if any.
func (s *authServiceImpl) SessionUser(ctx context.Context) (*domain.User, error) {
	return s.sessions.GetCurrentUser(ctx)
}
