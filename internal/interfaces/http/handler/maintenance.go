package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	maintenanceapp "github.com/societyhub/backend/internal/application/maintenance"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
)

// recordPaymentForm is the multipart shape of a payment submission. Every
// field arrives as text; the amount is parsed into a decimal before the
// request reaches the service.
type recordPaymentForm struct {
	TransactionID string `form:"transaction_id" binding:"required,len=12,numeric"`
	Month         int    `form:"month" binding:"required,min=1,max=12"`
	Year          int    `form:"year" binding:"required,min=2000,max=2100"`
	FlatNumber    string `form:"flat_number" binding:"required,min=1,max=20"`
	OwnerName     string `form:"owner_name" binding:"required,min=1,max=200"`
	OwnerMobile   string `form:"owner_mobile" binding:"omitempty,len=10,numeric"`
	Amount        string `form:"amount" binding:"required"`
	PaymentType   string `form:"payment_type" binding:"required"`
}

// MaintenanceHandler handles maintenance payment requests
type MaintenanceHandler struct {
	BaseHandler
	paymentService *maintenanceapp.PaymentService
	authMiddleware gin.HandlerFunc
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(paymentService *maintenanceapp.PaymentService, authMiddleware gin.HandlerFunc) *MaintenanceHandler {
	return &MaintenanceHandler{
		paymentService: paymentService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all maintenance routes
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	maintenance := rg.Group("/maintenance", h.authMiddleware)
	{
		maintenance.POST("/pay", h.RecordPayment)
		maintenance.GET("/payments", h.ListPayments)
	}
}

// RecordPayment godoc
// @Summary      Record a maintenance payment
// @Description  Accepts multipart form data with an optional receipt file
// @Tags         maintenance
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        transaction_id formData string true "12-digit transaction ID"
// @Param        month formData int true "Month (1-12)"
// @Param        year formData int true "Year"
// @Param        flat_number formData string true "Flat number"
// @Param        owner_name formData string true "Payer name"
// @Param        owner_mobile formData string false "Payer mobile"
// @Param        amount formData string true "Amount"
// @Param        payment_type formData string true "UPI, Cash or Bank Transfer"
// @Param        receipt formData file false "Receipt image or PDF"
// @Success      201 {object} dto.Response{data=maintenance.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /maintenance/pay [post]
func (h *MaintenanceHandler) RecordPayment(c *gin.Context) {
	var form recordPaymentForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	req := maintenanceapp.RecordPaymentRequest{
		TransactionID: form.TransactionID,
		Month:         form.Month,
		Year:          form.Year,
		FlatNumber:    form.FlatNumber,
		OwnerName:     form.OwnerName,
		OwnerMobile:   form.OwnerMobile,
		Amount:        amount,
		PaymentType:   form.PaymentType,
	}

	fileHeader, err := c.FormFile("receipt")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.BadRequest(c, "Unreadable receipt file")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.BadRequest(c, "Unreadable receipt file")
			return
		}
		req.Receipt = data
		req.ReceiptContentType = fileHeader.Header.Get("Content-Type")
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPayments godoc
// @Summary      List payments for a period
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        month query int true "Month (1-12)"
// @Param        year  query int true "Year"
// @Success      200 {object} dto.Response{data=maintenance.PaymentListResponse}
// @Router       /maintenance/payments [get]
func (h *MaintenanceHandler) ListPayments(c *gin.Context) {
	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "month and year query parameters are required")
		return
	}

	result, err := h.paymentService.ListByPeriod(c.Request.Context(), query.Month, query.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
