package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrUnauthorized indicates the username or password was rejected
	ErrUnauthorized = errors.New("invalid username or password")

	// ErrForbidden indicates the account is denied access to the server
	ErrForbidden = errors.New("access to server denied")

	// ErrTokenRejected indicates the server rejected a freshly issued token
	ErrTokenRejected = errors.New("access token rejected after re-authentication")

	// ErrServerOffline indicates the media server is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrItemNotFound indicates the requested media item does not exist
	ErrItemNotFound = errors.New("media item not found")

	// ErrNoMediaSource indicates the server returned no playable source for an item
	ErrNoMediaSource = errors.New("no media source available")
)
