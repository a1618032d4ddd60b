package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	maintenanceapp "github.com/societyhub/backend/internal/application/maintenance"
	"github.com/societyhub/backend/internal/domain/directory"
	"github.com/societyhub/backend/internal/domain/maintenance"
	"github.com/societyhub/backend/internal/domain/rotation"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
	"github.com/societyhub/backend/internal/interfaces/http/router"
)

type maintenanceTestEnv struct {
	engine      *gin.Engine
	paymentRepo *MockPaymentRepository
	ledger      *MockLedger
	ownerRepo   *MockOwnerRepository
	storage     *MockReceiptStorage
	jwtService  *auth.JWTService
}

func newMaintenanceTestEnv(t *testing.T) *maintenanceTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &maintenanceTestEnv{
		paymentRepo: new(MockPaymentRepository),
		ledger:      new(MockLedger),
		ownerRepo:   new(MockOwnerRepository),
		storage:     new(MockReceiptStorage),
		jwtService:  newTestJWTService(),
	}

	paymentService := maintenanceapp.NewPaymentService(
		env.paymentRepo, env.ledger, env.ownerRepo, env.storage, nil)

	env.engine = gin.New()
	r := router.NewRouter(env.engine)
	r.Register(NewMaintenanceHandler(paymentService, middleware.JWTAuthMiddleware(env.jwtService)))
	r.Setup()
	return env
}

func (env *maintenanceTestEnv) bearer(t *testing.T) string {
	t.Helper()
	token, err := env.jwtService.GenerateToken(uuid.New(), "resident")
	require.NoError(t, err)
	return "Bearer " + token.AccessToken
}

type paymentForm struct {
	fields  map[string]string
	receipt []byte
}

func defaultPaymentForm() paymentForm {
	return paymentForm{fields: map[string]string{
		"transaction_id": "123456789012",
		"month":          "3",
		"year":           "2025",
		"flat_number":    "A-101",
		"owner_name":     "Priya Shah",
		"owner_mobile":   "9123456780",
		"amount":         "2500",
		"payment_type":   "UPI",
	}}
}

func (env *maintenanceTestEnv) postPayment(t *testing.T, form paymentForm) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range form.fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if form.receipt != nil {
		part, err := writer.CreateFormFile("receipt", "receipt.pdf")
		require.NoError(t, err)
		_, err = part.Write(form.receipt)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance/pay", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", env.bearer(t))
	env.engine.ServeHTTP(w, req)
	return w
}

func (env *maintenanceTestEnv) expectTreasurer(t *testing.T, month, year int) *directory.Owner {
	t.Helper()
	treasurer, err := directory.NewOwner("Rahul Verma", "9876543210", "B-203")
	require.NoError(t, err)
	require.NoError(t, treasurer.SetRole(directory.RoleTreasurer))

	period := shared.Period{Month: month, Year: year}
	assignment, err := rotation.NewAssignment(treasurer.ID, period)
	require.NoError(t, err)

	env.ledger.On("FindByPeriod", mock.Anything, period).Return(assignment, nil)
	env.ownerRepo.On("FindByID", mock.Anything, treasurer.ID).Return(treasurer, nil)
	return treasurer
}

func TestMaintenanceHandler_RecordPayment(t *testing.T) {
	t.Run("records payment without receipt", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)
		env.expectTreasurer(t, 3, 2025)

		env.paymentRepo.On("ExistsByTransactionID", mock.Anything, "123456789012").Return(false, nil)
		env.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*maintenance.Payment")).Return(nil)

		w := env.postPayment(t, defaultPaymentForm())

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "123456789012")
		assert.Contains(t, w.Body.String(), "Rahul Verma")
	})

	t.Run("records payment with receipt", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)
		env.expectTreasurer(t, 3, 2025)
		form := defaultPaymentForm()
		form.receipt = []byte("%PDF-1.4")

		env.paymentRepo.On("ExistsByTransactionID", mock.Anything, "123456789012").Return(false, nil)
		env.storage.On("Upload", mock.Anything, "receipts/2025/03/A-101-123456789012",
			form.receipt, mock.Anything).Return(nil)
		env.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*maintenance.Payment")).Return(nil)
		env.storage.On("GenerateDownloadURL", mock.Anything, "receipts/2025/03/A-101-123456789012",
			mock.Anything).Return("https://storage.example.com/r", time.Now().Add(15*time.Minute), nil)

		w := env.postPayment(t, form)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "receipt_url")
		env.storage.AssertExpectations(t)
	})

	t.Run("bad transaction id returns 400", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)
		form := defaultPaymentForm()
		form.fields["transaction_id"] = "123"

		w := env.postPayment(t, form)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate transaction returns 409", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)

		env.paymentRepo.On("ExistsByTransactionID", mock.Anything, "123456789012").Return(true, nil)

		w := env.postPayment(t, defaultPaymentForm())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "DUPLICATE_TRANSACTION")
	})

	t.Run("already paid period returns 409", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)
		env.expectTreasurer(t, 3, 2025)

		env.paymentRepo.On("ExistsByTransactionID", mock.Anything, "123456789012").Return(false, nil)
		env.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*maintenance.Payment")).
			Return(maintenance.ErrAlreadyPaid)

		w := env.postPayment(t, defaultPaymentForm())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_PAID")
	})

	t.Run("no treasurer for period returns 404", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)

		env.paymentRepo.On("ExistsByTransactionID", mock.Anything, "123456789012").Return(false, nil)
		env.ledger.On("FindByPeriod", mock.Anything, shared.Period{Month: 3, Year: 2025}).
			Return(nil, rotation.ErrNotAssigned)

		w := env.postPayment(t, defaultPaymentForm())

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "TREASURER_NOT_ASSIGNED")
	})

	t.Run("unauthenticated returns 401", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance/pay", nil)
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMaintenanceHandler_ListPayments(t *testing.T) {
	t.Run("lists payments for period", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)
		treasurer, err := directory.NewOwner("Rahul Verma", "9876543210", "B-203")
		require.NoError(t, err)

		payment, err := maintenance.NewPayment(maintenance.NewPaymentInput{
			TransactionID: "111122223333",
			Period:        shared.Period{Month: 4, Year: 2025},
			FlatNumber:    "A-101",
			OwnerName:     "Priya Shah",
			Amount:        decimal.NewFromInt(2500),
			PaymentType:   maintenance.PaymentTypeUPI,
			Treasurer:     maintenance.SnapshotOf(treasurer),
		})
		require.NoError(t, err)

		env.paymentRepo.On("FindByPeriod", mock.Anything, shared.Period{Month: 4, Year: 2025}).
			Return([]maintenance.Payment{*payment}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance/payments?month=4&year=2025", nil)
		req.Header.Set("Authorization", env.bearer(t))
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "111122223333")
		assert.Contains(t, w.Body.String(), `"count":1`)
	})

	t.Run("missing period query returns 400", func(t *testing.T) {
		env := newMaintenanceTestEnv(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance/payments", nil)
		req.Header.Set("Authorization", env.bearer(t))
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
