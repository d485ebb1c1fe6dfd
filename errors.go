package cookie

import "errors"

// Jar-level rejection reasons (RFC 6265 scoping policy). These abort the
// current SetCookie call and are surfaced to the caller; they are distinct
// from store errors, which are returned unwrapped. The one store error the
// jar drops is from GetCookies' best-effort removal of expired cookies.
var (
	ErrParseFailure   = errors.New("cookie: malformed Set-Cookie string")
	ErrPublicSuffix   = errors.New("cookie: domain set to a public suffix")
	ErrDomainMismatch = errors.New("cookie: not in this host's domain")
	ErrHTTPOnly       = errors.New("cookie: cookie is HttpOnly and this isn't an HTTP API")

	errInvalidScheme = errors.New("cookie: invalid scheme")
	errNoHostname    = errors.New("cookie: no hostname")
)
