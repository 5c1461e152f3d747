package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/medicine-service/internal/auth"
	"github.com/spec-kit/medicine-service/internal/config"
	"github.com/spec-kit/medicine-service/internal/domain"
	"github.com/spec-kit/medicine-service/internal/events"
	"github.com/spec-kit/medicine-service/internal/repository"
	apperrors "github.com/spec-kit/medicine-service/pkg/util"
)

// AuthService coordinates registration, login, profile updates, and the
// password recovery flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a new account and issues a session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	role := domain.DefaultRole
	if input.Role != "" {
		role = domain.Role(input.Role)
	}

	var fieldErrors []string
	if err := validateUsername(input.Username); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if err := validateEmail(input.Email); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if err := validatePassword(input.Password); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if !role.Valid() {
		fieldErrors = append(fieldErrors, fmt.Sprintf("role: %q is not a valid role", input.Role))
	}
	if len(fieldErrors) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationError(fieldErrors...)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a lost registration race surfaces here as the unique violation
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserRegistered, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}))

	return user, token, exp, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// UpdateUserInput carries the partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

// UpdateUser applies a partial update to the target account.
//
// Any caller may update their own username/email/password. Only admins may
// touch other accounts or change roles; a role supplied by a non-admin
// updating themselves is silently ignored.
func (s *AuthService) UpdateUser(ctx context.Context, actor *domain.User, targetID string, input UpdateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin && actor.ID != targetID {
		return nil, apperrors.NewForbidden("cannot modify another user")
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}

	var fieldErrors []string
	if input.Username != nil {
		if err := validateUsername(*input.Username); err != nil {
			fieldErrors = append(fieldErrors, err.Error())
		} else {
			target.Username = *input.Username
		}
	}
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			fieldErrors = append(fieldErrors, err.Error())
		} else {
			target.Email = *input.Email
		}
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			fieldErrors = append(fieldErrors, err.Error())
		} else {
			hash, hashErr := auth.HashPassword(*input.Password, s.bcryptCost)
			if hashErr != nil {
				return nil, apperrors.NewInternalError(hashErr)
			}
			target.PasswordHash = hash
		}
	}
	if input.Role != nil && actor.Role == domain.RoleAdmin {
		role := domain.Role(*input.Role)
		if !role.Valid() {
			fieldErrors = append(fieldErrors, fmt.Sprintf("role: %q is not a valid role", *input.Role))
		} else {
			target.Role = role
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError(fieldErrors...)
	}

	if err := s.users.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	return target, nil
}

// ForgotPassword issues a reset token and dispatches the reset mail.
//
// The acknowledgment is uniform whether or not the email is registered, so
// the endpoint cannot be used to enumerate accounts. A delivery failure
// after the token is persisted is surfaced; the token stays valid so a
// retried request succeeds without reissuing.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return apperrors.MapError(err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	expires := time.Now().Add(s.resetTTL)

	// A second request before the first token is consumed overwrites it;
	// only one token is meaningful at a time.
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	if err := s.dispatcher.Publish(ctx, events.New(events.EventPasswordResetRequested, events.PasswordResetRequestedPayload{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expires,
	})); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// ResetPassword consumes a reset token: the new password hash and the
// cleared token pair land in the same write. The token is checked before the
// new password, so a bad token always reports as invalid-or-expired no matter
// what password accompanies it.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInvalidResetToken()
		}
		return apperrors.MapError(err)
	}
	if !user.HasActiveResetToken(time.Now()) {
		return apperrors.NewInvalidResetToken()
	}

	if err := validatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	user.PasswordHash = hash
	user.ClearResetToken()
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventPasswordResetCompleted, events.PasswordResetCompletedPayload{
		UserID: user.ID,
	}))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func validateUsername(username string) error {
	if n := utf8.RuneCountInString(username); n < 3 || n > 50 {
		return errors.New("username: must be between 3 and 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email: required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email: invalid format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password: must be at least 6 characters")
	}
	return nil
}
