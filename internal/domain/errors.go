package domain

import "errors"

var (
	// ErrConfiguration is returned when the network profile or the wallet source is unusable.
	// It is fatal and raised before any network activity.
	ErrConfiguration = errors.New("configuration error")

	// ErrRemoteUnavailable is returned when an RPC or indexer endpoint fails the startup liveness check
	ErrRemoteUnavailable = errors.New("remote endpoint unavailable")

	// ErrRemoteCall is returned when a single read-call, log query or page fetch fails
	ErrRemoteCall = errors.New("remote call failed")

	// ErrDataShape is returned when a decoded log entry or a call result is missing required fields
	ErrDataShape = errors.New("unexpected data shape")
)
