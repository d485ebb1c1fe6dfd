package cookie

import "context"

// jarJSON is the wire shape of Serialize's output.
type jarJSON struct {
	Version              string            `json:"version"`
	StoreType            *string           `json:"storeType"`
	RejectPublicSuffixes bool              `json:"rejectPublicSuffixes"`
	Cookies              []jsonCookieField `json:"cookies"`
}

// jsonCookieField lets Serialize embed already-rendered per-cookie JSON
// objects without jsoniter re-encoding them as strings.
type jsonCookieField struct {
	raw []byte
}

func (f jsonCookieField) MarshalJSON() ([]byte, error) { return f.raw, nil }

// Serialize renders the jar as version, storeType (the store's Type() if
// it implements TypedStore, else JSON null), rejectPublicSuffixes, and
// every stored cookie in creationIndex order.
func (j *Jar) Serialize(ctx context.Context) ([]byte, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	all, err := j.store.GetAllCookies(ctx)
	if err != nil {
		return nil, err
	}

	cookies := make([]jsonCookieField, 0, len(all))
	for _, c := range all {
		data, err := c.ToJSON()
		if err != nil {
			// A record that can't round-trip is dropped rather than
			// failing the whole serialize: one bad entry must not corrupt
			// the rest of the jar.
			continue
		}
		cookies = append(cookies, jsonCookieField{raw: data})
	}

	var storeType *string
	if ts, ok := j.store.(TypedStore); ok {
		t := ts.Type()
		storeType = &t
	}

	wire := jarJSON{
		Version:              "go-cookiejar@" + Version,
		StoreType:            storeType,
		RejectPublicSuffixes: j.opts.RejectPublicSuffixes,
		Cookies:              cookies,
	}
	return jsonCodec.Marshal(wire)
}

// Deserialize reinserts cookies from data (as produced by Serialize) via
// PutCookie, in array order. A malformed cookie entry is skipped rather
// than aborting the whole load — it must not corrupt the rest of the jar.
func (j *Jar) Deserialize(ctx context.Context, data []byte) error {
	var wire struct {
		RejectPublicSuffixes bool              `json:"rejectPublicSuffixes"`
		Cookies              []jsoniterRawCopy `json:"cookies"`
	}
	if err := jsonCodec.Unmarshal(data, &wire); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.opts.RejectPublicSuffixes = wire.RejectPublicSuffixes

	for _, raw := range wire.Cookies {
		c, err := FromJSON(raw.bytes)
		if err != nil {
			continue
		}
		if err := j.store.PutCookie(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// jsoniterRawCopy captures a cookie entry's raw JSON bytes during
// Deserialize's unmarshal pass.
type jsoniterRawCopy struct {
	bytes []byte
}

func (r *jsoniterRawCopy) UnmarshalJSON(data []byte) error {
	r.bytes = append([]byte(nil), data...)
	return nil
}

// Clone serializes j and reloads it into a new Jar backed by newStore. The
// destination store is supplied by the caller since Store is an opaque
// interface the library can't instantiate generically.
func (j *Jar) Clone(ctx context.Context, newStore Store) (*Jar, error) {
	data, err := j.Serialize(ctx)
	if err != nil {
		return nil, err
	}

	clone := NewJar(newStore, j.opts)
	if err := clone.Deserialize(ctx, data); err != nil {
		return nil, err
	}
	return clone, nil
}
