package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/shared"
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

func newOwnerService(t *testing.T) (*OwnerService, *MockOwnerRepository) {
	t.Helper()
	repo := new(MockOwnerRepository)
	return NewOwnerService(repo, nil), repo
}

func TestOwnerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("registers owner with full profile", func(t *testing.T) {
		service, repo := newOwnerService(t)

		repo.On("Create", ctx, mock.AnythingOfType("*directory.Owner")).Return(nil)

		response, err := service.Create(ctx, CreateOwnerRequest{
			Name:        "Priya Shah",
			PhoneNumber: "9876543210",
			FlatNumber:  "A-101",
			FloorNumber: "1",
			FlatType:    "2BHK",
			Status:      "Rented",
			Occupation:  "Engineer",
			UpiID:       "priya@upi",
			FamilyDetails: &FamilyDetailsRequest{
				SpouseName:       "Arjun Shah",
				NumberOfChildren: 1,
				Children:         []ChildRequest{{Name: "Meera"}},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Priya Shah", response.Name)
		assert.Equal(t, "resident", response.Role)
		assert.Equal(t, "Rented", response.Status)
		assert.Equal(t, "priya@upi", response.UpiID)
		assert.Equal(t, []string{"Meera"}, response.FamilyDetails.Children)
		repo.AssertExpectations(t)
	})

	t.Run("invalid phone number", func(t *testing.T) {
		service, repo := newOwnerService(t)

		_, err := service.Create(ctx, CreateOwnerRequest{
			Name:        "Priya Shah",
			PhoneNumber: "98765",
			FlatNumber:  "A-101",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PHONE", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate phone number surfaces as conflict", func(t *testing.T) {
		service, repo := newOwnerService(t)

		repo.On("Create", ctx, mock.AnythingOfType("*directory.Owner")).
			Return(shared.ErrAlreadyExists)

		_, err := service.Create(ctx, CreateOwnerRequest{
			Name:        "Priya Shah",
			PhoneNumber: "9876543210",
			FlatNumber:  "A-101",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("treasurer role cannot be granted at registration", func(t *testing.T) {
		service, repo := newOwnerService(t)

		_, err := service.Create(ctx, CreateOwnerRequest{
			Name:        "Priya Shah",
			PhoneNumber: "9876543210",
			FlatNumber:  "A-101",
			Role:        "treasurer",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ROLE", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin role can be granted at registration", func(t *testing.T) {
		service, repo := newOwnerService(t)

		repo.On("Create", ctx, mock.AnythingOfType("*directory.Owner")).Return(nil)

		response, err := service.Create(ctx, CreateOwnerRequest{
			Name:        "Priya Shah",
			PhoneNumber: "9876543210",
			FlatNumber:  "A-101",
			Role:        "admin",
		})

		require.NoError(t, err)
		assert.Equal(t, "admin", response.Role)
		repo.AssertExpectations(t)
	})

	t.Run("invalid upi id", func(t *testing.T) {
		service, repo := newOwnerService(t)

		_, err := service.Create(ctx, CreateOwnerRequest{
			Name:        "Priya Shah",
			PhoneNumber: "9876543210",
			FlatNumber:  "A-101",
			UpiID:       "no-handle-separator",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_UPI", domainErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestOwnerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates profile fields and keeps phone number", func(t *testing.T) {
		service, repo := newOwnerService(t)
		owner, err := directory.NewOwner("Priya Shah", "9876543210", "A-101")
		require.NoError(t, err)

		repo.On("FindByID", ctx, owner.ID).Return(owner, nil)
		repo.On("Update", ctx, owner).Return(nil)

		newUpi := "priya@newbank"
		response, err := service.Update(ctx, owner.ID, UpdateOwnerRequest{
			Name:       "Priya S Shah",
			Occupation: "Architect",
			UpiID:      &newUpi,
		})

		require.NoError(t, err)
		assert.Equal(t, "Priya S Shah", response.Name)
		assert.Equal(t, "Architect", response.Occupation)
		assert.Equal(t, "priya@newbank", response.UpiID)
		assert.Equal(t, "9876543210", response.PhoneNumber)
		repo.AssertExpectations(t)
	})

	t.Run("unknown owner", func(t *testing.T) {
		service, repo := newOwnerService(t)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, id, UpdateOwnerRequest{Name: "X"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestOwnerService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("list all", func(t *testing.T) {
		service, repo := newOwnerService(t)
		a, err := directory.NewOwner("Priya Shah", "9876543210", "A-101")
		require.NoError(t, err)
		b, err := directory.NewOwner("Rahul Verma", "9123456780", "B-203")
		require.NoError(t, err)

		repo.On("FindAll", ctx).Return([]directory.Owner{*a, *b}, nil)

		responses, err := service.List(ctx)

		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, "A-101", responses[0].FlatNumber)
	})

	t.Run("list by role rejects unknown role", func(t *testing.T) {
		service, repo := newOwnerService(t)

		_, err := service.ListByRole(ctx, "janitor")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ROLE", domainErr.Code)
		repo.AssertNotCalled(t, "FindByRole", mock.Anything, mock.Anything)
	})

	t.Run("get by id not found", func(t *testing.T) {
		service, repo := newOwnerService(t)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOwnerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes owner", func(t *testing.T) {
		service, repo := newOwnerService(t)
		id := uuid.New()

		repo.On("Delete", ctx, id).Return(nil)

		require.NoError(t, service.Delete(ctx, id))
		repo.AssertExpectations(t)
	})

	t.Run("unknown owner", func(t *testing.T) {
		service, repo := newOwnerService(t)
		id := uuid.New()

		repo.On("Delete", ctx, id).Return(shared.ErrNotFound)

		assert.ErrorIs(t, service.Delete(ctx, id), shared.ErrNotFound)
	})
}
