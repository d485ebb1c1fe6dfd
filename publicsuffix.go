package cookie

import "golang.org/x/net/publicsuffix"

// PublicSuffixList returns the public suffix of a domain. It is a subset of
// the PublicSuffixList interface defined in package net/http/cookiejar, kept
// narrow so callers can supply their own oracle or nil for none.
type PublicSuffixList interface {
	PublicSuffix(domain string) string
}

// DefaultPublicSuffixList wraps golang.org/x/net/publicsuffix, the
// publicsuffix.org dataset, behind the same interface.
type DefaultPublicSuffixList struct{}

// PublicSuffix returns the public suffix of domain per the Mozilla public
// suffix list.
func (DefaultPublicSuffixList) PublicSuffix(domain string) string {
	suffix, _ := publicsuffix.PublicSuffix(domain)
	return suffix
}

// getPublicSuffix reports the public suffix boundary of host (the point
// PermuteDomain must not climb past) and whether host is itself a public
// suffix, in which case no cookie may be scoped to it. psl == nil disables
// suffix checking entirely.
func getPublicSuffix(host string, psl PublicSuffixList) (boundary string, hostIsSuffix bool) {
	if psl == nil {
		return "", false
	}

	suffix := psl.PublicSuffix(host)
	if suffix == "" {
		return "", false
	}
	if suffix == host {
		return suffix, true
	}
	if !hasDotSuffix(host, suffix) {
		return "", false
	}
	return suffix, false
}
