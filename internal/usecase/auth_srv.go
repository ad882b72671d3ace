package usecase

import (
	"context"
	"fmt"
	"time"

	"cafeteria-booking/internal/data/entity"
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/dto/request"
	"cafeteria-booking/internal/dto/response"
	"cafeteria-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type AuthService interface {
	// Login trusts the identity asserted by the gateway: the user row is
	// created on first login and refreshed on every subsequent one, then a
	// fresh session token is issued.
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress *string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	clock  clockwork.Clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	clock clockwork.Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		clock:  clock,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress *string) (*response.AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()

	user, err := s.repo.User.Upsert(ctx, &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EmployeeUID: req.EmployeeUID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		ManagerName: req.ManagerName,
	})
	if err != nil {
		s.log.Error("Failed to upsert user", zap.Error(err), zap.String("employee_uid", req.EmployeeUID))
		return nil, fmt.Errorf("login user %s: %w", req.EmployeeUID, err)
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_uid", user.EmployeeUID),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}

	revoked, err := s.repo.Session.Revoke(ctx, tokenID, s.clock.Now())
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !revoked {
		s.log.Warn("Logout for unknown or already revoked session")
	}

	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID.String(), err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
