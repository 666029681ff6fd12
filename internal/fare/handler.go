package fare

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JuniaFaith/duffel-backend/pkg/duffel"
)

type FareHandler struct {
	service *Service
}

func NewFareHandler(s *Service) *FareHandler {
	return &FareHandler{service: s}
}

func (h *FareHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/fares/search", h.SearchHandler)
	router.POST("/v1/fares/hold", h.HoldHandler)
	router.GET("/healthz", h.HealthHandler)
}

func (h *FareHandler) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	if err := validateSearchRequest(req); err != nil {
		sendError(c, err)
		return
	}

	quote, err := h.service.SearchBest(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *FareHandler) HoldHandler(c *gin.Context) {
	var req HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	receipt, err := h.service.HoldOffer(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *FareHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateSearchRequest(req SearchRequest) error {
	if req.TravelerName == "" {
		return newValidationError("name is required")
	}
	if len(req.Origin) != 3 {
		return newValidationError("origin must be a 3-letter IATA code")
	}
	if req.DepartureDate == "" {
		return newValidationError("date is required")
	}
	date, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return newValidationError("date must be formatted YYYY-MM-DD")
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		return newValidationError("date must not be in the past")
	}
	return nil
}

// sendError renders service errors and passes provider rejections
// through with their original status and payload.
func sendError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		}
		if len(appErr.Diagnostics) > 0 {
			body["diagnostics"] = appErr.Diagnostics
		}
		c.JSON(appErr.Status, body)
		return
	}

	var apiErr *duffel.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{
			"error": "upstream provider rejected the request",
			"code":  ErrorCodeProviderFailure,
		}
		// Original upstream payload, unmodified, so callers can
		// diagnose provider-specific causes.
		if len(apiErr.Errors) > 0 {
			body["provider_errors"] = apiErr.Errors
		} else {
			body["provider_response"] = apiErr.Raw
		}
		if apiErr.RequestID != "" {
			body["provider_request_id"] = apiErr.RequestID
		}
		c.JSON(apiErr.StatusCode, body)
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
