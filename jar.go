package cookie

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"
)

// Version is embedded in Serialize's "version" field.
const Version = "1.0.0"

// JarOptions configures a Jar at construction time.
type JarOptions struct {
	// PublicSuffixList is consulted to reject ambiguously-scoped cookies
	// and to bound domain permutation. nil disables suffix checking.
	PublicSuffixList PublicSuffixList
	// RejectPublicSuffixes rejects SetCookie calls whose explicit Domain
	// attribute names a public suffix outright, per RFC 6265 §5.3 step 5.
	RejectPublicSuffixes bool
}

// Jar is the stateful cookie container binding cookies to a logical
// user-agent session. It delegates all persistence to a Store; the Jar
// itself only implements RFC 6265 §5.3/§5.4's scoping/expiry/ordering
// state machine.
type Jar struct {
	mu    sync.Mutex
	store Store
	opts  JarOptions
}

// NewJar creates a Jar backed by store, which must be non-nil — the
// reference implementation lives in the sibling store package
// (store.New()).
func NewJar(store Store, opts JarOptions) *Jar {
	if store == nil {
		panic("cookie: NewJar requires a non-nil Store")
	}
	return &Jar{store: store, opts: opts}
}

// SetCookieOptions controls a single SetCookie call. The zero value
// applies the usual defaults: HTTP access allowed, now taken from the
// wall clock.
type SetCookieOptions struct {
	HTTP *bool
	// Secure mirrors GetCookiesOptions.Secure for symmetry, but acceptance
	// never gates on it: RFC 6265 only restricts a Secure cookie's
	// retrieval, not whether it may be set.
	Secure      *bool
	IgnoreError bool
	Now         time.Time
}

// SetCookie implements RFC 6265 §5.3's setCookie algorithm. input may be a
// raw Set-Cookie string or an already-parsed *Cookie. When opts.IgnoreError
// is set, a rejected cookie (malformed input, domain mismatch, public-
// suffix scoping, HttpOnly-vs-non-HTTP access) yields (nil, nil) instead of
// an error; store errors are never swallowed this way.
func (j *Jar) SetCookie(ctx context.Context, input any, currentURL *url.URL, opts SetCookieOptions) (*Cookie, error) {
	c, err := j.setCookie(ctx, input, currentURL, opts)
	if err != nil && opts.IgnoreError && isRejectionError(err) {
		return nil, nil
	}
	return c, err
}

// rejectionSentinels are the errors SetCookieOptions.IgnoreError is allowed
// to silence — reasons a specific cookie was refused, as opposed to a
// failure of the store itself.
var rejectionSentinels = []error{
	ErrParseFailure, ErrPublicSuffix, ErrDomainMismatch, ErrHTTPOnly,
	errInvalidScheme, errNoHostname,
}

func isRejectionError(err error) bool {
	for _, sentinel := range rejectionSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (j *Jar) setCookie(ctx context.Context, input any, currentURL *url.URL, opts SetCookieOptions) (*Cookie, error) {
	if currentURL.Scheme != "http" && currentURL.Scheme != "https" &&
		currentURL.Scheme != "ws" && currentURL.Scheme != "wss" {
		return nil, fmt.Errorf("%w: %q", errInvalidScheme, currentURL.Scheme)
	}
	host := currentURL.Hostname()
	if host == "" {
		return nil, errNoHostname
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	http := boolDefault(opts.HTTP, true)
	urlPath := requestPath(currentURL)

	var c *Cookie
	switch v := input.(type) {
	case string:
		parsed, err := Parse(v, true, now)
		if err != nil {
			return nil, err
		}
		c = parsed
	case *Cookie:
		clone := *v
		if clone.CreationIndex == 0 {
			clone.CreationIndex = nextCreationIndex()
		}
		if clone.Creation.IsZero() {
			clone.Creation = now
		}
		c = &clone
	default:
		return nil, fmt.Errorf("cookie: SetCookie: unsupported input type %T", input)
	}

	canonHost, err := CanonicalDomain(host)
	if err != nil {
		return nil, err
	}

	if c.Domain != "" {
		canonDomain, err := CanonicalDomain(c.Domain)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDomainMismatch, err)
		}

		if j.opts.RejectPublicSuffixes {
			if _, isSuffix := getPublicSuffix(canonDomain, j.opts.PublicSuffixList); isSuffix {
				return nil, ErrPublicSuffix
			}
		}
		if !DomainMatch(canonHost, canonDomain, false) {
			return nil, ErrDomainMismatch
		}

		c.Domain = canonDomain
		c.HostOnly = HostOnlyFalse
	} else {
		c.Domain = canonHost
		c.HostOnly = HostOnlyTrue
	}

	if c.Path == "" || c.Path[0] != '/' {
		c.Path = DefaultPath(urlPath)
		c.PathIsDefault = true
	}

	if !http && c.HttpOnly {
		return nil, ErrHTTPOnly
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	existing, err := j.store.FindCookie(ctx, c.Domain, c.Path, c.Key)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if !http && existing.HttpOnly {
			return nil, ErrHTTPOnly
		}
		c.Creation = existing.Creation
		if err := j.store.UpdateCookie(ctx, existing, c); err != nil {
			return nil, err
		}
	} else {
		if err := j.store.PutCookie(ctx, c); err != nil {
			return nil, err
		}
	}

	c.LastAccessed = now
	return c, nil
}

// GetCookiesOptions controls a single GetCookies call.
type GetCookiesOptions struct {
	HTTP     *bool
	Secure   *bool
	AllPaths bool
	Now      time.Time
}

// GetCookies implements RFC 6265 §5.4's retrieval algorithm: candidate
// domains come from PermuteDomain, survivors are filtered by scope/expiry
// and re-sorted by the canonical comparator.
func (j *Jar) GetCookies(ctx context.Context, currentURL *url.URL, opts GetCookiesOptions) ([]*Cookie, error) {
	host, err := CanonicalDomain(currentURL.Hostname())
	if err != nil {
		return nil, err
	}
	isSecureScheme := currentURL.Scheme == "https" || currentURL.Scheme == "wss"
	secure := boolDefault(opts.Secure, isSecureScheme)
	http := boolDefault(opts.HTTP, true)
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	path := requestPath(currentURL)
	lookupPath := path
	if opts.AllPaths {
		lookupPath = ""
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	domains := PermuteDomain(host, j.opts.PublicSuffixList)
	if domains == nil {
		domains = []string{host}
	}

	var candidates []*Cookie
	for _, d := range domains {
		found, err := j.store.FindCookies(ctx, d, lookupPath)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	result := make([]*Cookie, 0, len(candidates))
	for _, c := range candidates {
		if c.HostOnly == HostOnlyTrue && c.Domain != host {
			continue
		}
		if c.Secure && !secure {
			continue
		}
		if c.HttpOnly && !http {
			continue
		}
		if !opts.AllPaths && !PathMatch(path, c.Path) {
			continue
		}
		if c.IsExpired(now) {
			_ = j.store.RemoveCookie(ctx, c.Domain, c.Path, c.Key)
			continue
		}

		c.LastAccessed = now
		if err := j.store.UpdateCookie(ctx, c, c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	sort.SliceStable(result, func(i, k int) bool {
		return Compare(result[i], result[k])
	})

	return result, nil
}

// Compare implements the canonical send-order RFC 6265 §5.4 step 2
// mandates: longer paths first, then earlier creation, then lower
// creationIndex as a stable tiebreaker the RFC leaves unspecified.
func Compare(a, b *Cookie) bool {
	if len(a.Path) != len(b.Path) {
		return len(a.Path) > len(b.Path)
	}
	if !a.Creation.Equal(b.Creation) {
		return a.Creation.Before(b.Creation)
	}
	return a.CreationIndex < b.CreationIndex
}

func boolDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func requestPath(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		return "/"
	}
	return p
}
