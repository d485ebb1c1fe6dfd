package cookie

import "context"

// Store is the jar's storage contract. All methods take a context.Context:
// an eager, in-memory implementation returns immediately, a deferred one
// (disk, remote KV) blocks on its own I/O inside the call, but neither
// threads a callback through the jar.
//
// findCookie's "not found" is not an error: implementations return
// (nil, nil) for an absent tuple, reserving the error return for genuine
// store failures, which the jar never swallows.
type Store interface {
	// FindCookie returns the single record addressed by (domain, path,
	// key), or (nil, nil) if none exists.
	FindCookie(ctx context.Context, domain, path, key string) (*Cookie, error)

	// FindCookies returns every record stored under exactly domain and,
	// when path != "", whose stored.Path path-matches path. It does not
	// return records stored under parent domains: the jar probes each
	// candidate domain from PermuteDomain in turn. Implementations may
	// over-return; callers filter further.
	FindCookies(ctx context.Context, domain, path string) ([]*Cookie, error)

	// PutCookie inserts c, replacing any existing record with the same
	// (Domain, Path, Key).
	PutCookie(ctx context.Context, c *Cookie) error

	// UpdateCookie is semantically identical to PutCookie(next); it exists
	// so stores can optimize a value-only update knowing the prior record.
	UpdateCookie(ctx context.Context, prev, next *Cookie) error

	// RemoveCookie idempotently drops the record at (domain, path, key);
	// absence is not an error.
	RemoveCookie(ctx context.Context, domain, path, key string) error

	// RemoveCookies drops every record in domain and, when path != "",
	// further restricted to that path.
	RemoveCookies(ctx context.Context, domain, path string) error

	// GetAllCookies returns every record in the store, ordered by
	// CreationIndex.
	GetAllCookies(ctx context.Context) ([]*Cookie, error)
}

// TypedStore is implemented by stores that want to report an identifier in
// the jar's serialized "storeType" field.
type TypedStore interface {
	Type() string
}
