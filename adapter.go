package cookie

import (
	"context"
	"net/http"
	"net/url"
)

// HTTPJar adapts a Jar to the standard library's http.CookieJar interface,
// so this engine can be plugged directly into http.Client.Jar.
type HTTPJar struct {
	Jar *Jar
	// Context is used for every Store call the adapter makes; defaults to
	// context.Background() when nil.
	Context context.Context
}

// NewHTTPJar wraps jar for use as an http.Client.Jar.
func NewHTTPJar(jar *Jar) *HTTPJar {
	return &HTTPJar{Jar: jar}
}

func (a *HTTPJar) ctx() context.Context {
	if a.Context != nil {
		return a.Context
	}
	return context.Background()
}

// SetCookies implements http.CookieJar. Per-cookie rejection is silent
// (ignoreError), matching net/http/cookiejar's own behavior of dropping
// cookies it can't accept rather than failing the whole response.
func (a *HTTPJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	for _, hc := range cookies {
		c := fromHTTPCookie(hc)
		_, _ = a.Jar.SetCookie(a.ctx(), c, u, SetCookieOptions{IgnoreError: true})
	}
}

// Cookies implements http.CookieJar.
func (a *HTTPJar) Cookies(u *url.URL) []*http.Cookie {
	cookies, err := a.Jar.GetCookies(a.ctx(), u, GetCookiesOptions{})
	if err != nil {
		return nil
	}

	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, &http.Cookie{Name: c.Key, Value: c.Value})
	}
	return out
}

// fromHTTPCookie builds a bare record from a stdlib http.Cookie. Creation
// bookkeeping is left zero; SetCookie's *Cookie branch stamps a fresh
// Creation/CreationIndex for any record that doesn't already carry one.
func fromHTTPCookie(hc *http.Cookie) *Cookie {
	record := &Cookie{
		Key:      hc.Name,
		Value:    hc.Value,
		Domain:   hc.Domain,
		Path:     hc.Path,
		Secure:   hc.Secure,
		HttpOnly: hc.HttpOnly,
	}
	if hc.MaxAge != 0 {
		record.MaxAge = FiniteMaxAge(int64(hc.MaxAge))
	}
	if !hc.Expires.IsZero() {
		record.Expires = hc.Expires
	}
	return record
}
