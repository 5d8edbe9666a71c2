package directory

import "errors"

// Lookup errors
var (
	// ErrUnknownTag indicates that the tag is not bound to any cached user
	ErrUnknownTag = errors.New("directory: unknown tag")

	// ErrStale indicates that the snapshot is older than the hard TTL (or
	// was never fetched). Authentication fails closed on a stale snapshot.
	ErrStale = errors.New("directory: snapshot expired")
)

// Refresh errors. A failed refresh never replaces the current snapshot and
// is retried on the next scheduler interval.
var (
	// ErrRefreshNetwork indicates a transport failure while fetching
	ErrRefreshNetwork = errors.New("directory: refresh network failure")

	// ErrRefreshProtocol indicates a malformed response from the service
	ErrRefreshProtocol = errors.New("directory: refresh protocol failure")

	// ErrRefreshUnauthorized indicates rejected terminal credentials
	ErrRefreshUnauthorized = errors.New("directory: refresh unauthorized")
)
