package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directoryapp "github.com/societyhub/backend/internal/application/directory"
	rotationapp "github.com/societyhub/backend/internal/application/rotation"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
)

// OwnerHandler handles owner directory and treasurer rotation requests
type OwnerHandler struct {
	BaseHandler
	ownerService    *directoryapp.OwnerService
	rotationService *rotationapp.RotationService
	authMiddleware  gin.HandlerFunc
	adminOnly       gin.HandlerFunc
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(
	ownerService *directoryapp.OwnerService,
	rotationService *rotationapp.RotationService,
	authMiddleware gin.HandlerFunc,
	adminOnly gin.HandlerFunc,
) *OwnerHandler {
	return &OwnerHandler{
		ownerService:    ownerService,
		rotationService: rotationService,
		authMiddleware:  authMiddleware,
		adminOnly:       adminOnly,
	}
}

// RegisterRoutes registers all owner routes. Directory writes and treasurer
// assignment require the admin role; reads only need a valid token.
func (h *OwnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	owners := rg.Group("/owners", h.authMiddleware)
	{
		owners.GET("", h.List)
		owners.GET("/treasurer", h.GetTreasurer)
		owners.GET("/:id", h.GetByID)

		owners.POST("", h.adminOnly, h.Create)
		owners.PUT("/:id", h.adminOnly, h.Update)
		owners.DELETE("/:id", h.adminOnly, h.Delete)
		owners.POST("/assign-treasurer", h.adminOnly, h.AssignTreasurer)
	}
}

// Create godoc
// @Summary      Register a new owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body directory.CreateOwnerRequest true "Owner details"
// @Success      201 {object} dto.Response{data=directory.OwnerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /owners [post]
func (h *OwnerHandler) Create(c *gin.Context) {
	var req directoryapp.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.ownerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @Summary      List owners
// @Tags         owners
// @Produce      json
// @Security     BearerAuth
// @Param        role query string false "Filter by role"
// @Success      200 {object} dto.Response{data=[]directory.OwnerResponse}
// @Router       /owners [get]
func (h *OwnerHandler) List(c *gin.Context) {
	if role := c.Query("role"); role != "" {
		result, err := h.ownerService.ListByRole(c.Request.Context(), role)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, result)
		return
	}

	result, err := h.ownerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID godoc
// @Summary      Get an owner
// @Tags         owners
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Owner ID"
// @Success      200 {object} dto.Response{data=directory.OwnerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /owners/{id} [get]
func (h *OwnerHandler) GetByID(c *gin.Context) {
	id, ok := h.ownerID(c)
	if !ok {
		return
	}

	result, err := h.ownerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @Summary      Update an owner's profile
// @Tags         owners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Owner ID"
// @Param        request body directory.UpdateOwnerRequest true "Profile changes"
// @Success      200 {object} dto.Response{data=directory.OwnerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /owners/{id} [put]
func (h *OwnerHandler) Update(c *gin.Context) {
	id, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req directoryapp.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.ownerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Remove an owner
// @Tags         owners
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Owner ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /owners/{id} [delete]
func (h *OwnerHandler) Delete(c *gin.Context) {
	id, ok := h.ownerID(c)
	if !ok {
		return
	}

	if err := h.ownerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Owner removed"})
}

// AssignTreasurer godoc
// @Summary      Appoint the treasurer for a period
// @Tags         owners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body rotation.AssignTreasurerRequest true "Owner and period"
// @Success      200 {object} dto.Response{data=rotation.AssignmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /owners/assign-treasurer [post]
func (h *OwnerHandler) AssignTreasurer(c *gin.Context) {
	var req rotationapp.AssignTreasurerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.rotationService.AssignTreasurer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetTreasurer godoc
// @Summary      Get the treasurer for a period
// @Tags         owners
// @Produce      json
// @Security     BearerAuth
// @Param        month query int true "Month (1-12)"
// @Param        year  query int true "Year"
// @Success      200 {object} dto.Response{data=rotation.AssignmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /owners/treasurer [get]
func (h *OwnerHandler) GetTreasurer(c *gin.Context) {
	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "month and year query parameters are required")
		return
	}

	result, err := h.rotationService.GetTreasurer(c.Request.Context(), query.Month, query.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *OwnerHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID")
		return uuid.Nil, false
	}
	return id, true
}
