package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainauth "github.com/societyhub/backend/internal/domain/auth"
	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/shared"
	infraauth "github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/config"
)

// MockOwnerRepository is a mock implementation of directory.OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *directory.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *directory.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindByPhone(ctx context.Context, phone string) (*directory.Owner, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindAll(ctx context.Context) ([]directory.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindByRole(ctx context.Context, role directory.Role) ([]directory.Owner, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Owner), args.Error(1)
}

// MockChallengeRepository is a mock implementation of auth.ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Save(ctx context.Context, challenge *domainauth.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*domainauth.Challenge, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainauth.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) Update(ctx context.Context, challenge *domainauth.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

type authServiceMocks struct {
	ownerRepo     *MockOwnerRepository
	challengeRepo *MockChallengeRepository
	blacklist     *infraauth.InMemoryTokenBlacklist
	limiter       *infraauth.InMemoryAttemptLimiter
	jwtService    *infraauth.JWTService
}

func newAuthService(t *testing.T, otpConfig config.OtpConfig) (*AuthService, authServiceMocks) {
	t.Helper()
	if otpConfig.MaxAttempts == 0 {
		otpConfig.MaxAttempts = 3
	}
	if otpConfig.AttemptTTL == 0 {
		otpConfig.AttemptTTL = 10 * time.Minute
	}
	mocks := authServiceMocks{
		ownerRepo:     new(MockOwnerRepository),
		challengeRepo: new(MockChallengeRepository),
		blacklist:     infraauth.NewInMemoryTokenBlacklist(),
		limiter:       infraauth.NewInMemoryAttemptLimiter(),
		jwtService: infraauth.NewJWTService(config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			Expiration: time.Hour,
			Issuer:     "test-issuer",
		}),
	}
	service := NewAuthService(
		mocks.ownerRepo,
		mocks.challengeRepo,
		mocks.jwtService,
		mocks.blacklist,
		mocks.limiter,
		otpConfig,
		nil,
	)
	return service, mocks
}

func testOwner(t *testing.T) *directory.Owner {
	t.Helper()
	owner, err := directory.NewOwner("Priya Shah", "9876543210", "A-101")
	require.NoError(t, err)
	return owner
}

func TestAuthService_SendOtp(t *testing.T) {
	ctx := context.Background()

	t.Run("issues challenge without exposing the code", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})
		owner := testOwner(t)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("Save", ctx, mock.AnythingOfType("*auth.Challenge")).Return(nil)

		response, err := service.SendOtp(ctx, SendOtpRequest{PhoneNumber: owner.PhoneNumber})

		require.NoError(t, err)
		assert.Empty(t, response.Otp)
		assert.WithinDuration(t, time.Now().Add(domainauth.ChallengeTTL), response.ExpiresAt, 2*time.Second)
		mocks.challengeRepo.AssertExpectations(t)
	})

	t.Run("exposes code when configured", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{ExposeCode: true})
		owner := testOwner(t)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("Save", ctx, mock.AnythingOfType("*auth.Challenge")).Return(nil)

		response, err := service.SendOtp(ctx, SendOtpRequest{PhoneNumber: owner.PhoneNumber})

		require.NoError(t, err)
		assert.Len(t, response.Otp, 6)
	})

	t.Run("unknown phone number", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})

		mocks.ownerRepo.On("FindByPhone", ctx, "9999999999").Return(nil, shared.ErrNotFound)

		_, err := service.SendOtp(ctx, SendOtpRequest{PhoneNumber: "9999999999"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		mocks.challengeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed phone number", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})

		_, err := service.SendOtp(ctx, SendOtpRequest{PhoneNumber: "12345"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PHONE", domainErr.Code)
		mocks.ownerRepo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	})
}

func TestAuthService_VerifyOtp(t *testing.T) {
	ctx := context.Background()

	newChallengeFor := func(t *testing.T, ownerID uuid.UUID) *domainauth.Challenge {
		t.Helper()
		challenge, err := domainauth.NewChallenge(ownerID)
		require.NoError(t, err)
		return challenge
	}

	t.Run("exchanges a valid code for a token", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})
		owner := testOwner(t)
		challenge := newChallengeFor(t, owner.ID)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(challenge, nil)
		mocks.challengeRepo.On("Update", ctx, challenge).Return(nil)

		response, err := service.VerifyOtp(ctx, VerifyOtpRequest{
			PhoneNumber: owner.PhoneNumber,
			Otp:         challenge.Code,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
		assert.Equal(t, "Bearer", response.TokenType)
		assert.Equal(t, owner.ID, response.Owner.ID)
		assert.Equal(t, "resident", response.Owner.Role)
		assert.True(t, challenge.Consumed)

		claims, err := mocks.jwtService.ValidateToken(response.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, owner.ID.String(), claims.OwnerID)
		assert.Equal(t, "resident", claims.Role)
	})

	t.Run("wrong code counts against the attempt budget", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{MaxAttempts: 3})
		owner := testOwner(t)
		challenge := newChallengeFor(t, owner.ID)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(challenge, nil)

		_, err := service.VerifyOtp(ctx, VerifyOtpRequest{
			PhoneNumber: owner.PhoneNumber,
			Otp:         "000000",
		})

		assert.ErrorIs(t, err, domainauth.ErrInvalidCode)
		failures, err := mocks.limiter.Failures(ctx, owner.ID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(1), failures)
	})

	t.Run("locks out after the attempt budget is spent", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{MaxAttempts: 2})
		owner := testOwner(t)
		challenge := newChallengeFor(t, owner.ID)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(challenge, nil)

		badReq := VerifyOtpRequest{PhoneNumber: owner.PhoneNumber, Otp: "000000"}
		_, err := service.VerifyOtp(ctx, badReq)
		assert.ErrorIs(t, err, domainauth.ErrInvalidCode)
		_, err = service.VerifyOtp(ctx, badReq)
		assert.ErrorIs(t, err, domainauth.ErrInvalidCode)

		// Even the correct code is refused while locked out
		_, err = service.VerifyOtp(ctx, VerifyOtpRequest{
			PhoneNumber: owner.PhoneNumber,
			Otp:         challenge.Code,
		})
		assert.ErrorIs(t, err, ErrTooManyAttempts)
	})

	t.Run("successful login resets the attempt counter", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{MaxAttempts: 3})
		owner := testOwner(t)
		challenge := newChallengeFor(t, owner.ID)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(challenge, nil)
		mocks.challengeRepo.On("Update", ctx, challenge).Return(nil)

		_, err := service.VerifyOtp(ctx, VerifyOtpRequest{PhoneNumber: owner.PhoneNumber, Otp: "000000"})
		assert.ErrorIs(t, err, domainauth.ErrInvalidCode)

		_, err = service.VerifyOtp(ctx, VerifyOtpRequest{PhoneNumber: owner.PhoneNumber, Otp: challenge.Code})
		require.NoError(t, err)

		failures, err := mocks.limiter.Failures(ctx, owner.ID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(0), failures)
	})

	t.Run("consumed challenge never verifies again", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})
		owner := testOwner(t)
		challenge := newChallengeFor(t, owner.ID)
		require.NoError(t, challenge.Consume(challenge.Code, time.Now()))

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(challenge, nil)

		_, err := service.VerifyOtp(ctx, VerifyOtpRequest{
			PhoneNumber: owner.PhoneNumber,
			Otp:         challenge.Code,
		})

		assert.ErrorIs(t, err, domainauth.ErrInvalidCode)
	})

	t.Run("expired challenge", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})
		owner := testOwner(t)
		challenge := newChallengeFor(t, owner.ID)
		challenge.ExpiresAt = time.Now().Add(-time.Minute)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(challenge, nil)

		_, err := service.VerifyOtp(ctx, VerifyOtpRequest{
			PhoneNumber: owner.PhoneNumber,
			Otp:         challenge.Code,
		})

		assert.ErrorIs(t, err, domainauth.ErrExpiredCode)
	})

	t.Run("no challenge ever issued", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})
		owner := testOwner(t)

		mocks.ownerRepo.On("FindByPhone", ctx, owner.PhoneNumber).Return(owner, nil)
		mocks.challengeRepo.On("FindByOwner", ctx, owner.ID).Return(nil, shared.ErrNotFound)

		_, err := service.VerifyOtp(ctx, VerifyOtpRequest{
			PhoneNumber: owner.PhoneNumber,
			Otp:         "123456",
		})

		assert.ErrorIs(t, err, domainauth.ErrInvalidCode)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token for its remaining lifetime", func(t *testing.T) {
		service, mocks := newAuthService(t, config.OtpConfig{})
		owner := testOwner(t)

		token, err := mocks.jwtService.GenerateToken(owner.ID, string(owner.Role))
		require.NoError(t, err)
		claims, err := mocks.jwtService.ValidateToken(token.AccessToken)
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, claims))

		revoked, err := mocks.blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})
}
