package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"restconnect-service/internal/domain/parking"
	"restconnect-service/internal/service"
)

// Message shown to the user for any recognition failure, whatever the cause.
const recognitionFailedMessage = "Unable to interpret the sign, please try again."

type Handler struct {
	parkingService *service.ParkingService
	placesService  *service.PlacesService
	log            zerolog.Logger
}

func NewHandler(
	parkingService *service.ParkingService,
	placesService *service.PlacesService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		parkingService: parkingService,
		placesService:  placesService,
		log:            log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Public endpoints
	public := r.Group("/api/v1")
	{
		public.POST("/parking/check", h.checkSign)
		public.POST("/parking/evaluate", h.evaluateSigns)
		public.GET("/parking/checks", h.listChecks)
		public.GET("/amenities/toilets", h.listToilets)
		public.GET("/amenities/openspaces", h.listOpenSpaces)
		public.GET("/stats/crime", h.crimeStats)
	}

	// Protected endpoints
	protected := r.Group("/api/v1/admin")
	protected.Use(authMiddleware)
	{
		protected.DELETE("/checks", h.cleanupChecks)
	}
}

func (h *Handler) checkSign(c *gin.Context) {
	var req parking.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.parkingService.CheckSign(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"check_id":   result.CheckID,
		"sign_count": result.SignCount,
		"verdict":    result.Verdict,
	})
}

func (h *Handler) evaluateSigns(c *gin.Context) {
	var req parking.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	verdict, err := h.parkingService.EvaluateItems(req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verdict": verdict})
}

func (h *Handler) listChecks(c *gin.Context) {
	var canPark *bool
	if v := strings.TrimSpace(c.Query("can_park")); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("can_park must be true or false"))
			return
		}
		canPark = &parsed
	}

	var from, to *string
	if f := strings.TrimSpace(c.Query("from")); f != "" {
		from = &f
	}
	if t := strings.TrimSpace(c.Query("to")); t != "" {
		to = &t
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	checks, err := h.parkingService.FindChecks(c.Request.Context(), canPark, from, to, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(checks))
}

func (h *Handler) listToilets(c *gin.Context) {
	toilets, err := h.placesService.Toilets(c.Request.Context())
	if err != nil {
		h.handlePlacesError(c, err, "toilet")
		return
	}
	c.JSON(http.StatusOK, successResponse(toilets))
}

func (h *Handler) listOpenSpaces(c *gin.Context) {
	spaces, err := h.placesService.OpenSpaces(c.Request.Context())
	if err != nil {
		h.handlePlacesError(c, err, "open spaces")
		return
	}
	c.JSON(http.StatusOK, successResponse(spaces))
}

func (h *Handler) crimeStats(c *gin.Context) {
	stats, err := h.placesService.CrimeStats(c.Request.Context())
	if err != nil {
		h.handlePlacesError(c, err, "crime")
		return
	}
	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) cleanupChecks(c *gin.Context) {
	days := 90
	if d := c.Query("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, errorResponse("days must be a positive integer"))
			return
		}
		days = parsed
	}

	deleted, err := h.parkingService.CleanupOldChecks(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"days":    days,
	})
}

func (h *Handler) handlePlacesError(c *gin.Context, err error, dataset string) {
	if errors.Is(err, service.ErrUpstream) {
		c.JSON(http.StatusBadGateway, errorResponse("Failed to load "+dataset+" data. Please try again later."))
		return
	}
	h.handleError(c, err)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusBadGateway, errorResponse(recognitionFailedMessage))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
