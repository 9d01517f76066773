package identity

import (
	"context"
	"errors"
	"time"

	"github.com/gabbai/backend/internal/domain/identity"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/gabbai/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles login and operator account management
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger,
	}
}

// Login verifies credentials and issues a token.
// Unknown username and wrong password return the same error so the
// response does not leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Failed login attempt", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	pair, err := s.jwt.GeneratePair(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds if the timestamp update fails
		s.logger.Warn("Failed to record login time", zap.Error(err))
	}

	return &LoginResponse{
		Token: pair,
		User:  toUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user
// is looked up again so deleted accounts lose access once the old access
// token expires.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
		}
		return nil, err
	}

	pair, err := s.jwt.GeneratePair(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: pair,
		User:  toUserResponse(user),
	}, nil
}

// CreateUser creates a new operator account
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this username already exists")
	}

	var user *identity.User
	if req.IsAdmin {
		user, err = identity.NewAdminUser(req.Username, req.Password)
	} else {
		user, err = identity.NewUser(req.Username, req.Password)
	}
	if err != nil {
		return nil, err
	}

	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin))

	return toUserResponse(user), nil
}

// ChangePassword changes the password of the given user after verifying
// the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// GetUser returns one user by ID
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers returns all operator accounts
func (s *AuthService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	return responses, nil
}

// DeleteUser removes an operator account. The last admin cannot be deleted.
func (s *AuthService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.IsAdmin {
		users, err := s.userRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		admins := 0
		for i := range users {
			if users[i].IsAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return shared.NewDomainError("LAST_ADMIN", "Cannot delete the last admin account")
		}
	}

	return s.userRepo.Delete(ctx, userID)
}

// EnsureAdminUser creates a default admin account on first startup when
// no users exist yet
func (s *AuthService) EnsureAdminUser(ctx context.Context, username, password string) error {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	admin, err := identity.NewAdminUser(username, password)
	if err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("Bootstrap admin account created", zap.String("username", username))
	return nil
}
