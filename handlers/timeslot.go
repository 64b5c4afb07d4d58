package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	timeslotRepo "slotify/database/repository/timeslot"
	"slotify/services/booking"
	"slotify/utils"
)

// TimeSlotHandler exposes the appointment REST surface.
type TimeSlotHandler struct {
	Service booking.TimeSlotService
	Logger  *zap.Logger
}

// NewTimeSlotHandler constructs a TimeSlotHandler.
func NewTimeSlotHandler(svc booking.TimeSlotService, logger *zap.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{Service: svc, Logger: logger}
}

// timeSlotRequest is the internal-path create/update body. `contact` is a
// contact id or null; `end_time` may replace `duration_minutes`.
type timeSlotRequest struct {
	Topic           string  `json:"topic"`
	Datetime        string  `json:"datetime"`
	DurationMinutes *int    `json:"duration_minutes"`
	EndTime         *string `json:"end_time"`
	Contact         *string `json:"contact"`
	IsConfirmed     bool    `json:"is_confirmed"`
	IsProcessed     bool    `json:"is_processed"`
	IsActive        *bool   `json:"is_active"`
}

// publicBookingRequest is the combined contact+timeslot body used by the
// public booking page.
type publicBookingRequest struct {
	Contact struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Timezone  string `json:"timezone"`
	} `json:"contact"`
	Timeslot struct {
		Topic           string `json:"topic"`
		Datetime        string `json:"datetime"`
		DurationMinutes *int   `json:"duration_minutes"`
	} `json:"timeslot"`
}

// parseDateTime accepts RFC 3339 timestamps as well as the naive
// "2006-01-02T15:04:05" form the frontend sends. Values are stored as given,
// without timezone normalization.
func parseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func (h *TimeSlotHandler) writeServiceError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, timeslotRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Time slot not found.")
	default:
		h.Logger.Error("time slot request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error.")
	}
}

// resolveCreateInput converts a decoded body into the service input.
func resolveCreateInput(req timeSlotRequest) (booking.CreateInput, error) {
	if req.Datetime == "" {
		return booking.CreateInput{}, booking.NewValidationError(booking.CodeInvalidRange, "datetime is required.")
	}
	start, err := parseDateTime(req.Datetime)
	if err != nil {
		return booking.CreateInput{}, booking.NewValidationError(booking.CodeInvalidRange, "datetime must be an ISO-8601 timestamp.")
	}

	in := booking.CreateInput{
		Topic:           req.Topic,
		Time:            start,
		DurationMinutes: req.DurationMinutes,
		ContactID:       req.Contact,
		IsConfirmed:     req.IsConfirmed,
		IsProcessed:     req.IsProcessed,
		IsActive:        req.IsActive,
	}
	if req.EndTime != nil {
		end, err := parseDateTime(*req.EndTime)
		if err != nil {
			return booking.CreateInput{}, booking.NewValidationError(booking.CodeInvalidRange, "end_time must be an ISO-8601 timestamp.")
		}
		in.EndTime = &end
	}
	return in, nil
}

// CreateTimeSlotHandler handles POST /api/timeslots. The request shape is
// resolved into an explicit variant first: a body carrying a nested contact
// object plus a timeslot object takes the public path (contact resolved or
// created by email, public window enforced); anything else is an internal
// booking where `contact` is an id or null.
func (h *TimeSlotHandler) CreateTimeSlotHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var probe struct {
		Contact  json.RawMessage `json:"contact"`
		Timeslot json.RawMessage `json:"timeslot"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if len(probe.Timeslot) > 0 && isJSONObject(probe.Contact) {
		h.createPublic(c, body)
		return
	}
	h.createInternal(c, body)
}

func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

func (h *TimeSlotHandler) createInternal(c *gin.Context, body []byte) {
	var req timeSlotRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	in, err := resolveCreateInput(req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	slot, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *TimeSlotHandler) createPublic(c *gin.Context, body []byte) {
	var req publicBookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Timeslot.Datetime == "" {
		utils.JSONError(c, http.StatusBadRequest, "timeslot data is required.")
		return
	}
	start, err := parseDateTime(req.Timeslot.Datetime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "datetime must be an ISO-8601 timestamp.")
		return
	}

	result, err := h.Service.CreateWithContact(c.Request.Context(), booking.PublicBookingInput{
		Contact: booking.ContactInput{
			FirstName:   req.Contact.FirstName,
			LastName:    req.Contact.LastName,
			Email:       req.Contact.Email,
			PhoneNumber: req.Contact.Phone,
			Timezone:    req.Contact.Timezone,
		},
		Topic:           req.Timeslot.Topic,
		Time:            start,
		DurationMinutes: req.Timeslot.DurationMinutes,
	})
	if err != nil {
		// Contact lookup/creation failures on this path surface as 400s,
		// indistinguishable from validation failures.
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListTimeSlotsHandler handles GET /api/timeslots with pagination and an
// optional is_active filter, ordered by start time ascending.
func (h *TimeSlotHandler) ListTimeSlotsHandler(c *gin.Context) {
	q := booking.ListQuery{}
	if raw, ok := c.GetQuery("is_active"); ok {
		active := raw == "true"
		q.IsActive = &active
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			q.Page = page
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			q.PageSize = size
		}
	}

	page, err := h.Service.List(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListByDayHandler handles GET /api/timeslots/by-day?date=YYYY-MM-DD.
func (h *TimeSlotHandler) ListByDayHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "date parameter is required (format: YYYY-MM-DD)")
		return
	}

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	slots, err := h.Service.ListByDay(c.Request.Context(), day)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetTimeSlotHandler handles GET /api/timeslots/:id.
func (h *TimeSlotHandler) GetTimeSlotHandler(c *gin.Context) {
	slot, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// UpdateTimeSlotHandler handles PUT /api/timeslots/:id (full replace).
func (h *TimeSlotHandler) UpdateTimeSlotHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var req timeSlotRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	in, err := resolveCreateInput(req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	slot, err := h.Service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// DeleteTimeSlotHandler handles DELETE /api/timeslots/:id.
func (h *TimeSlotHandler) DeleteTimeSlotHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
