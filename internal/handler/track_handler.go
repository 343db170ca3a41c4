package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"geotrack/internal/errors"
	"geotrack/internal/middleware"
	"geotrack/internal/model"
	"geotrack/internal/service"
)

// TrackTimeLayout is the exact timestamp format accepted on GPS submission:
// date, time and six fractional-second digits.
const TrackTimeLayout = "2006-01-02 15:04:05.000000"

// Query-parameter dates accept a few common shapes, most precise first.
var rangeTimeLayouts = []string{
	TrackTimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// TrackHandler handles GPS ingestion and track queries.
type TrackHandler struct {
	trackService service.TrackService
}

// NewTrackHandler creates a new track handler.
func NewTrackHandler(trackService service.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// TrackRequest represents a GPS submission. Coordinates arrive as strings
// and are validated before anything touches the service.
type TrackRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Latitude  string `json:"latitude" validate:"required"`
	Longitude string `json:"longitude" validate:"required"`
	Timestamp string `json:"timestamp" validate:"required"`
}

// TracksResponse wraps a list of tracks.
type TracksResponse struct {
	Tracks []model.GpsTrack `json:"tracks"`
}

// parseCoordinates trims and parses both coordinates, then checks the
// latitude [-90,90] and longitude [-180,180] ranges. Boundary values pass.
func parseCoordinates(rawLat, rawLon string) (lat, lon float64, err error) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, fmt.Errorf("invalid coordinate format: %s, %s", rawLat, rawLon)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range: %v, %v", lat, lon)
	}
	return lat, lon, nil
}

// AddGPS godoc
// @Summary Submit a GPS fix
// @Tags tracks
// @Accept json
// @Produce json
// @Param request body TrackRequest true "Track data"
// @Success 201 {object} model.GpsTrack
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /gps [post]
func (h *TrackHandler) AddGPS(c echo.Context) error {
	var req TrackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	// Unknown owner wins over malformed coordinates.
	exists, err := h.trackService.UserExists(ctx, req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add track")
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("user with id %s not found", req.UserID))
	}

	if _, _, err := parseCoordinates(req.Latitude, req.Longitude); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ts, err := time.Parse(TrackTimeLayout, req.Timestamp)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"invalid timestamp format, expected YYYY-MM-DD HH:MM:SS.ffffff")
	}

	track, err := h.trackService.AddGPS(ctx, req.UserID, strings.TrimSpace(req.Latitude), strings.TrimSpace(req.Longitude), ts)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("user with id %s not found", req.UserID))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add track")
	}

	return c.JSON(http.StatusCreated, track)
}

// TracksByDate godoc
// @Summary List tracks within a date range
// @Tags tracks
// @Produce json
// @Param startDate query string true "Range start"
// @Param endDate query string true "Range end"
// @Success 200 {object} TracksResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tracks [get]
func (h *TrackHandler) TracksByDate(c echo.Context) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return err
	}

	rawStart := c.QueryParam("startDate")
	rawEnd := c.QueryParam("endDate")
	start, err := parseRangeDate(rawStart)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
	}
	end, err := parseRangeDate(rawEnd)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
	}

	tracks, err := h.trackService.TracksByDate(c.Request().Context(), start, end, claims)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tracks")
	}
	if len(tracks) == 0 {
		return echo.NewHTTPError(http.StatusNotFound,
			fmt.Sprintf("no tracks found in range %s to %s", rawStart, rawEnd))
	}

	return c.JSON(http.StatusOK, TracksResponse{Tracks: tracks})
}

// Tracks godoc
// @Summary List the caller's tracks (all users' tracks for admins)
// @Tags tracks
// @Produce json
// @Success 200 {object} TracksResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /track [get]
func (h *TrackHandler) Tracks(c echo.Context) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var tracks []model.GpsTrack
	if claims.IsAdmin() {
		tracks, err = h.trackService.AllTracks(ctx)
	} else {
		tracks, err = h.trackService.MyTracks(ctx, claims.UserID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tracks")
	}

	return c.JSON(http.StatusOK, TracksResponse{Tracks: tracks})
}

func parseRangeDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range rangeTimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
