package cookie

import (
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// CanonicalDomain implements RFC 6265 §5.1.2: trim ASCII whitespace, strip
// a single leading dot, lowercase ASCII, and IDNA-encode any non-ASCII
// label. IDN encoding is delegated to golang.org/x/net/idna.
func CanonicalDomain(d string) (string, error) {
	d = trimASCIISpace(d)
	if len(d) > 0 && d[0] == '.' {
		d = d[1:]
	}
	d = strings.ToLower(d)

	if isASCII(d) {
		return d, nil
	}
	return idna.Lookup.ToASCII(d)
}

func trimASCIISpace(s string) string {
	l, r := 0, len(s)
	for l < r && isASCIISpace(s[l]) {
		l++
	}
	for r > l && isASCIISpace(s[r-1]) {
		r--
	}
	return s[l:r]
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// DomainMatch implements RFC 6265 §5.1.3's domain-match relation. When
// canonicalize is true, both host and cookieDomain are canonicalized first.
func DomainMatch(host, cookieDomain string, canonicalize bool) bool {
	if canonicalize {
		if h, err := CanonicalDomain(host); err == nil {
			host = h
		}
		if d, err := CanonicalDomain(cookieDomain); err == nil {
			cookieDomain = d
		}
	}

	if host == cookieDomain {
		return true
	}

	if isIPLiteral(host) {
		return false
	}

	return hasDotSuffix(host, cookieDomain)
}

func isIPLiteral(host string) bool {
	return net.ParseIP(host) != nil
}

func hasDotSuffix(s, suffix string) bool {
	return len(s) > len(suffix) &&
		s[len(s)-len(suffix)-1] == '.' &&
		strings.HasSuffix(s, suffix)
}

// DefaultPath implements RFC 6265 §5.1.4's default-path algorithm.
func DefaultPath(uriPath string) string {
	if uriPath == "" || uriPath[0] != '/' {
		return "/"
	}
	last := strings.LastIndexByte(uriPath, '/')
	if last == 0 {
		return "/"
	}
	return uriPath[:last]
}

// PathMatch implements RFC 6265 §5.1.4's path-match relation.
func PathMatch(reqPath, cookiePath string) bool {
	if reqPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	if cookiePath != "" && cookiePath[len(cookiePath)-1] == '/' {
		return true
	}
	return reqPath[len(cookiePath)] == '/'
}

// PermuteDomain produces d and each proper parent domain, stopping at (and
// excluding) the public suffix itself: the registrable domain is the
// shortest entry PermuteDomain ever returns. It returns nil if d is itself
// a public suffix, since no cookie may be scoped there. psl may be nil, in
// which case no suffix boundary is known; PermuteDomain then climbs every
// parent down to d's own top-level label without ever emitting that bare
// top-level label on its own, since a single DNS label is never a useful
// cookie scope.
func PermuteDomain(d string, psl PublicSuffixList) []string {
	boundary, hostIsSuffix := getPublicSuffix(d, psl)
	if hostIsSuffix {
		return nil
	}

	var domains []string
	cur := d
	for {
		if boundary != "" && cur == boundary {
			break
		}
		i := strings.IndexByte(cur, '.')
		if i < 0 {
			if cur == d {
				domains = append(domains, cur)
			}
			break
		}
		domains = append(domains, cur)
		cur = cur[i+1:]
	}
	return domains
}

// PermutePath produces p and each ancestor formed by trimming trailing
// "/"-delimited segments, always including "/".
func PermutePath(p string) []string {
	if p == "" {
		return []string{"/"}
	}

	paths := []string{p}
	for {
		idx := strings.LastIndexByte(p, '/')
		if idx <= 0 {
			break
		}
		p = p[:idx]
		paths = append(paths, p)
	}
	if paths[len(paths)-1] != "/" {
		paths = append(paths, "/")
	}
	return paths
}
