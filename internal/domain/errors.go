package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrDownloadInFlight indicates a download is already active for the URL
	ErrDownloadInFlight = errors.New("download already in flight for url")

	// ErrQuotaExceeded indicates the persistence substrate rejected a write
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrItemNotFound indicates the requested content item does not exist
	ErrItemNotFound = errors.New("content item not found")
)
