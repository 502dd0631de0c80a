// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"nexus-ems-be/internal/config"
	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/internal/repository/specification"
	"nexus-ems-be/internal/repository/unitofwork"
	"nexus-ems-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionDelivery signs out the screens opened under one sign-in.
type SessionDelivery interface {
	EndSession(userID uuid.UUID, sessionID string)
}

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, sessionID, refreshToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserDTO, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	cfg            config.AuthConfig
	sessions       SessionDelivery
	eventPublisher EventPublisher
	logger         logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg config.AuthConfig, sessions SessionDelivery, eventPublisher EventPublisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		cfg:            cfg,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func toUserDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:          u.Id,
		Email:       u.Email,
		DisplayName: u.FullName,
		Role:        string(u.Role),
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil || user.PasswordHash == nil {
		return nil, serverutils.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.Unauthorized("invalid credentials")
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, serverutils.Unauthorized("user account is blocked")
	}

	// the refresh token row id doubles as the sign-in id so refreshed
	// tokens stay in the same session
	sessionID := uuid.New()
	var rawRefreshToken string

	// refresh token only with "remember me"
	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        sessionID,
			UserId:    user.Id,
			TokenHash: hashToken(rawRefreshToken),
			ExpiresAt: time.Now().Add(s.cfg.RefreshTokenTTL),
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}
		if err := uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity); err != nil {
			return nil, serverutils.Internal("failed to create session", err)
		}
	}

	signedToken, expiresAt, err := serverutils.IssueAccessToken(s.cfg.JWTSecret, user.Id.String(), user.Email, user.FullName, sessionID.String(), s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, serverutils.Internal("failed to issue token", err)
	}

	s.publish(ctx, "USER_LOGIN", user.Id, userAgent)

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		ExpiresAt:    expiresAt,
		User:         toUserDTO(user),
	}, nil
}

// Refresh issues a new access token for the sign-in the refresh token
// belongs to. Open sockets are left alone.
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token, err := uow.UserRepository().FindRefreshToken(ctx,
		specification.ByTokenHash{Hash: hashToken(req.RefreshToken)},
		specification.NotRevoked{},
	)
	if err != nil || token == nil || time.Now().After(token.ExpiresAt) {
		return nil, serverutils.Unauthorized("session expired, please sign in again")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: token.UserId})
	if err != nil || user == nil {
		return nil, serverutils.Unauthorized("session expired, please sign in again")
	}
	if user.Status == entity.UserStatusBlocked {
		return nil, serverutils.Unauthorized("user account is blocked")
	}

	signedToken, expiresAt, err := serverutils.IssueAccessToken(s.cfg.JWTSecret, user.Id.String(), user.Email, user.FullName, token.Id.String(), s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, serverutils.Internal("failed to issue token", err)
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
		User:        toUserDTO(user),
	}, nil
}

// Logout ends one sign-in. Sockets opened with other sign-ins of the same
// user stay connected.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID, sessionID, refreshToken string) error {
	if refreshToken != "" {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		token, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: hashToken(refreshToken)})
		if err == nil && token != nil && token.UserId == userID {
			if err := uow.UserRepository().RevokeRefreshToken(ctx, token.Id); err != nil {
				s.logger.Warn("AuthService", "Failed to revoke refresh token", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	if sessionID != "" {
		s.sessions.EndSession(userID, sessionID)
	}
	s.publish(ctx, "USER_LOGOUT", userID, "")
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, serverutils.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, serverutils.NotFound("user not found")
	}
	res := toUserDTO(user)
	return &res, nil
}

func (s *authService) publish(ctx context.Context, eventType string, userID uuid.UUID, device string) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id": userID.String(),
			"device":  device,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("AuthService", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
