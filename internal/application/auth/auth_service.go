package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domainauth "github.com/societyhub/backend/internal/domain/auth"
	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/shared"
	infraauth "github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/config"
)

// ErrTooManyAttempts is returned when an owner exhausts the verification
// attempt budget for the current window
var ErrTooManyAttempts = shared.NewDomainError("OTP_ATTEMPTS_EXCEEDED", "Too many failed attempts, try again later")

// AuthService handles OTP login and session lifecycle
type AuthService struct {
	ownerRepo     directory.OwnerRepository
	challengeRepo domainauth.ChallengeRepository
	jwtService    *infraauth.JWTService
	blacklist     infraauth.TokenBlacklist
	limiter       infraauth.AttemptLimiter
	otpConfig     config.OtpConfig
	logger        *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	ownerRepo directory.OwnerRepository,
	challengeRepo domainauth.ChallengeRepository,
	jwtService *infraauth.JWTService,
	blacklist infraauth.TokenBlacklist,
	limiter infraauth.AttemptLimiter,
	otpConfig config.OtpConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		ownerRepo:     ownerRepo,
		challengeRepo: challengeRepo,
		jwtService:    jwtService,
		blacklist:     blacklist,
		limiter:       limiter,
		otpConfig:     otpConfig,
		logger:        logger,
	}
}

// SendOtp issues a fresh challenge for the owner registered under the phone
// number. Re-sending replaces the previous challenge, so at most one code is
// verifiable per owner at any time.
func (s *AuthService) SendOtp(ctx context.Context, req SendOtpRequest) (*SendOtpResponse, error) {
	if err := directory.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	challenge, err := domainauth.NewChallenge(owner.ID)
	if err != nil {
		return nil, err
	}

	if err := s.challengeRepo.Save(ctx, challenge); err != nil {
		return nil, err
	}

	s.logger.Info("OTP issued",
		zap.String("owner_id", owner.ID.String()),
		zap.Time("expires_at", challenge.ExpiresAt))

	response := &SendOtpResponse{
		Message:   "OTP sent",
		ExpiresAt: challenge.ExpiresAt,
	}
	// Development convenience only; production config refuses this flag
	if s.otpConfig.ExposeCode {
		response.Otp = challenge.Code
	}
	return response, nil
}

// VerifyOtp verifies the submitted code and exchanges it for an access
// token. Failed attempts count against a per-owner budget; a correct code
// resets the counter. The challenge is single use either way.
func (s *AuthService) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*VerifyOtpResponse, error) {
	if err := directory.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.FindByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	ownerKey := owner.ID.String()

	failures, err := s.limiter.Failures(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	if failures >= int64(s.otpConfig.MaxAttempts) {
		return nil, ErrTooManyAttempts
	}

	challenge, err := s.challengeRepo.FindByOwner(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, domainauth.ErrInvalidCode
		}
		return nil, err
	}

	if err := challenge.Consume(req.Otp, time.Now()); err != nil {
		if errors.Is(err, domainauth.ErrInvalidCode) {
			count, recordErr := s.limiter.RecordFailure(ctx, ownerKey, s.otpConfig.AttemptTTL)
			if recordErr != nil {
				s.logger.Warn("Attempt counter update failed",
					zap.String("owner_id", ownerKey),
					zap.Error(recordErr))
			} else if count >= int64(s.otpConfig.MaxAttempts) {
				s.logger.Warn("OTP attempt budget exhausted",
					zap.String("owner_id", ownerKey),
					zap.Int64("failures", count))
			}
		}
		return nil, err
	}

	if err := s.challengeRepo.Update(ctx, challenge); err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, ownerKey); err != nil {
		s.logger.Warn("Attempt counter reset failed",
			zap.String("owner_id", ownerKey),
			zap.Error(err))
	}

	token, err := s.jwtService.GenerateToken(owner.ID, string(owner.Role))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Login succeeded",
		zap.String("owner_id", ownerKey),
		zap.String("role", string(owner.Role)))

	return &VerifyOtpResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Owner:       ToOwnerSummary(owner),
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *infraauth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.logger.Info("Token revoked",
		zap.String("owner_id", claims.OwnerID),
		zap.String("jti", claims.ID))
	return nil
}
