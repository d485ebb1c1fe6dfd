package cookie

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// jsonCodec is the JSON engine behind ToJSON/FromJSON. json-iterator is a
// drop-in, struct-tag-compatible replacement for encoding/json, so the
// wire format matches what a stdlib-based reader would expect.
var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultSerializableProperties is the ordered whitelist of fields ToJSON
// emits. Expressed as a package-level variable rather than reflected off
// struct tags at call time, so callers can swap in their own subset.
var DefaultSerializableProperties = []string{
	"key", "value", "expires", "maxAge", "domain", "path",
	"secure", "httpOnly", "extensions", "creation", "creationIndex",
	"hostOnly", "pathIsDefault", "lastAccessed",
}

const (
	infinityToken    = "Infinity"
	negInfinityToken = "-Infinity"
)

type jsonCookie struct {
	Key           string      `json:"key"`
	Value         string      `json:"value"`
	Expires       string      `json:"expires"`
	MaxAge        interface{} `json:"maxAge,omitempty"`
	Domain        string      `json:"domain,omitempty"`
	Path          string      `json:"path,omitempty"`
	Secure        bool        `json:"secure"`
	HttpOnly      bool        `json:"httpOnly"`
	Extensions    []string    `json:"extensions,omitempty"`
	Creation      string      `json:"creation"`
	CreationIndex int64       `json:"creationIndex"`
	HostOnly      *bool       `json:"hostOnly"`
	PathIsDefault bool        `json:"pathIsDefault"`
	LastAccessed  string      `json:"lastAccessed"`
}

// ToJSON renders c as instants in ISO-8601 strings, the +/-Infinity
// Max-Age sentinels as their literal token strings, and only the fields
// named in properties (nil means DefaultSerializableProperties).
func (c *Cookie) ToJSON(properties ...[]string) ([]byte, error) {
	wire := jsonCookie{
		Key:           c.Key,
		Value:         c.Value,
		Domain:        c.Domain,
		Path:          c.Path,
		Secure:        c.Secure,
		HttpOnly:      c.HttpOnly,
		Extensions:    c.Extensions,
		Creation:      c.Creation.UTC().Format(time.RFC3339Nano),
		CreationIndex: c.CreationIndex,
		PathIsDefault: c.PathIsDefault,
		LastAccessed:  c.LastAccessed.UTC().Format(time.RFC3339Nano),
	}

	if c.Expires.IsZero() {
		wire.Expires = infinityToken
	} else {
		wire.Expires = c.Expires.UTC().Format(time.RFC3339Nano)
	}

	switch c.MaxAge.Kind {
	case MaxAgeFinite:
		wire.MaxAge = c.MaxAge.Seconds
	case MaxAgePosInfinity:
		wire.MaxAge = infinityToken
	case MaxAgeNegInfinity:
		wire.MaxAge = negInfinityToken
	}

	switch c.HostOnly {
	case HostOnlyTrue:
		v := true
		wire.HostOnly = &v
	case HostOnlyFalse:
		v := false
		wire.HostOnly = &v
	}

	full, err := jsonCodec.Marshal(wire)
	if err != nil {
		return nil, err
	}

	whitelist := DefaultSerializableProperties
	if len(properties) > 0 && properties[0] != nil {
		whitelist = properties[0]
	}
	return filterJSONFields(full, whitelist)
}

// filterJSONFields drops any top-level key from data not present in
// allowed, preserving allowed's order.
func filterJSONFields(data []byte, allowed []string) ([]byte, error) {
	var m map[string]jsoniter.RawMessage
	if err := jsonCodec.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	keep := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		keep[k] = struct{}{}
	}
	for k := range m {
		if _, ok := keep[k]; !ok {
			delete(m, k)
		}
	}

	out := []byte{'{'}
	for _, k := range allowed {
		if v, ok := m[k]; ok {
			if len(out) > 1 {
				out = append(out, ',')
			}
			name, _ := jsonCodec.Marshal(k)
			out = append(append(append(out, name...), ':'), v...)
			delete(m, k)
		}
	}
	return append(out, '}'), nil
}

// FromJSON parses a cookie previously produced by ToJSON. Instants are
// parsed with a general RFC 3339 parser (not the RFC 6265 cookie-date
// grammar), since the JSON form carries our own output, never a raw
// Set-Cookie header.
func FromJSON(data []byte) (*Cookie, error) {
	var wire jsonCookie
	if err := jsonCodec.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("cookie: FromJSON: %w", err)
	}

	c := &Cookie{
		Key:           wire.Key,
		Value:         wire.Value,
		Domain:        wire.Domain,
		Path:          wire.Path,
		Secure:        wire.Secure,
		HttpOnly:      wire.HttpOnly,
		Extensions:    wire.Extensions,
		CreationIndex: wire.CreationIndex,
		PathIsDefault: wire.PathIsDefault,
		HostOnly:      HostOnlyUnknown,
	}

	if wire.HostOnly != nil {
		if *wire.HostOnly {
			c.HostOnly = HostOnlyTrue
		} else {
			c.HostOnly = HostOnlyFalse
		}
	}

	if wire.Expires != "" && wire.Expires != infinityToken {
		t, err := time.Parse(time.RFC3339Nano, wire.Expires)
		if err != nil {
			return nil, fmt.Errorf("cookie: FromJSON: invalid expires %q: %w", wire.Expires, err)
		}
		c.Expires = t
	}

	switch v := wire.MaxAge.(type) {
	case string:
		switch v {
		case infinityToken:
			c.MaxAge = MaxAgePositiveInfinity
		case negInfinityToken:
			c.MaxAge = MaxAgeNegativeInfinity
		}
	case float64:
		c.MaxAge = FiniteMaxAge(int64(v))
	default:
		c.MaxAge = MaxAgeNone
	}

	if wire.Creation != "" {
		t, err := time.Parse(time.RFC3339Nano, wire.Creation)
		if err != nil {
			return nil, fmt.Errorf("cookie: FromJSON: invalid creation %q: %w", wire.Creation, err)
		}
		c.Creation = t
	}
	if wire.LastAccessed != "" {
		t, err := time.Parse(time.RFC3339Nano, wire.LastAccessed)
		if err != nil {
			return nil, fmt.Errorf("cookie: FromJSON: invalid lastAccessed %q: %w", wire.LastAccessed, err)
		}
		c.LastAccessed = t
	}

	return c, nil
}
