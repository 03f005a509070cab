package errors

import "net/http"

var (
	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level: must be an integer between 0 and 24",
		http.StatusBadRequest,
	)

	ErrInvalidRegionHint = New(
		"INVALID_REGION_HINT",
		"Invalid region hint: provide exactly one of lat/lng, name or bounding box",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrStatsNotFound = New(
		"STATS_NOT_FOUND",
		"No published statistics for instance",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
