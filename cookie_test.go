package cookie

import (
	"reflect"
	"testing"
	"time"
)

var fixedNow = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func parsed(key, value string, fn func(*Cookie)) *Cookie {
	c := newCookie(fixedNow)
	c.Key = key
	c.Value = value
	if fn != nil {
		fn(c)
	}
	return c
}

var parseTests = []struct {
	in  string
	out *Cookie
}{
	{
		" foo=bar ",
		parsed("foo", "bar", nil),
	},
	{
		"PREF=ID=eb6cda4781936022:U=481e4b712990588c:FF=4:LD=en:TM=1402393637:LM=1414704417:SG=2:S=3xbMSGb_nnYBD-J3; Max-Age=0; SECURE",
		parsed("PREF", "ID=eb6cda4781936022:U=481e4b712990588c:FF=4:LD=en:TM=1402393637:LM=1414704417:SG=2:S=3xbMSGb_nnYBD-J3", func(c *Cookie) {
			c.MaxAge = FiniteMaxAge(0)
			c.Secure = true
		}),
	},
	{
		"NID=99=YsDT5i3E-CXax-; expires=Wed, 23-Nov-2011 01:05:03 UTC; path=/; domain=.google.ch; HttpOnly",
		parsed("NID", "99=YsDT5i3E-CXax-", func(c *Cookie) {
			c.Path = "/"
			c.Domain = "google.ch"
			c.HttpOnly = true
			c.Expires = time.Date(2011, 11, 23, 1, 5, 3, 0, time.UTC)
		}),
	},
	{
		".ASPXAUTH=7E3AA; expires=Wed, 07-Mar-2012 14:25:06 UTC; path=/; HttpOnly",
		parsed(".ASPXAUTH", "7E3AA", func(c *Cookie) {
			c.Path = "/"
			c.Expires = time.Date(2012, 3, 7, 14, 25, 6, 0, time.UTC)
			c.HttpOnly = true
		}),
	},
	{
		"ASP.NET_SessionId=foo; path=/; HttpOnly",
		parsed("ASP.NET_SessionId", "foo", func(c *Cookie) {
			c.Path = "/"
			c.HttpOnly = true
		}),
	},
	{
		"foo=bar; httponly",
		parsed("foo", "bar", func(c *Cookie) { c.HttpOnly = true }),
	},
	{
		"baz=qux; Http-Only",
		parsed("baz", "qux", func(c *Cookie) { c.Extensions = []string{"Http-Only"} }),
	},

	// Weird ones.
	{`x=a z`, parsed("x", "a z", nil)},
	{`x=" z"`, parsed("x", `" z"`, nil)},
	{`x="a "`, parsed("x", `"a "`, nil)},
	{`x=a,z`, parsed("x", "a,z", nil)},
	{`x=",z"`, parsed("x", `",z"`, nil)},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		out, err := Parse(test.in, true, fixedNow)
		if err != nil {
			t.Errorf("Parse(%#q): unexpected error %v", test.in, err)
			continue
		}

		// CreationIndex is process-global and not part of the expected
		// fixture; compare everything else.
		out.CreationIndex = test.out.CreationIndex
		if !reflect.DeepEqual(out, test.out) {
			t.Errorf("Parse(%#q):\n got  %+v\n want %+v", test.in, out, test.out)
		}
	}
}

func TestParseEmptyPair(t *testing.T) {
	if _, err := Parse("  ", true, fixedNow); err == nil {
		t.Error("Parse(\"  \"): expected error, got nil")
	}
}

func TestParseStrictRejectsMissingEquals(t *testing.T) {
	if _, err := Parse("justavalue", false, fixedNow); err == nil {
		t.Error("Parse(\"justavalue\", false, ...): expected error, got nil")
	}
	if _, err := Parse("justavalue", true, fixedNow); err != nil {
		t.Errorf("Parse(\"justavalue\", true, ...): unexpected error %v", err)
	}
}

var marshalTests = []struct {
	in  *Cookie
	out string
}{
	{
		&Cookie{
			Key:      "foo",
			Value:    "=bar=baz=quux=",
			MaxAge:   FiniteMaxAge(0),
			HttpOnly: true,
			Secure:   true,
		},
		"foo==bar=baz=quux=; Max-Age=0; Secure; HttpOnly",
	},
	{
		&Cookie{
			Key:      "foo",
			Value:    "bar",
			Domain:   "example.com",
			MaxAge:   FiniteMaxAge(3600),
			HttpOnly: true,
		},
		"foo=bar; Max-Age=3600; Domain=example.com; HttpOnly",
	},
	{
		&Cookie{
			Key:        "some",
			Value:      "cookie",
			Domain:     "example.com",
			Extensions: []string{"foo=123", "bar"},
		},
		"some=cookie; Domain=example.com; foo=123; bar",
	},
	{
		&Cookie{
			Key:     "x",
			Value:   "y",
			Path:    "/foo/",
			Expires: time.Date(2011, 11, 23, 1, 5, 3, 0, time.UTC),
		},
		"x=y; Expires=Wed, 23 Nov 2011 01:05:03 UTC; Path=/foo/",
	},

	// Weird ones.
	{&Cookie{Key: "x", Value: "a z"}, `x=a z`},
	{&Cookie{Key: "x", Value: "a,z"}, `x=a,z`},
}

func TestMarshal(t *testing.T) {
	for _, test := range marshalTests {
		out, err := test.in.Marshal()
		if err != nil {
			t.Errorf("(%+v).Marshal(): unexpected error %v", test.in, err)
			continue
		}
		if out != test.out {
			t.Errorf("(%+v).Marshal():\n got  %#q\n want %#q", test.in, out, test.out)
		}
	}
}

func TestMarshalRejectsInvalidName(t *testing.T) {
	c := &Cookie{Key: "foo bar", Value: "baz"}
	if _, err := c.Marshal(); err == nil {
		t.Error("Marshal(): expected error for invalid name, got nil")
	}
}

func TestCookieStringAndClone(t *testing.T) {
	c := parsed("foo", "bar", func(c *Cookie) {
		c.Domain = "example.com"
		c.Path = "/"
	})

	if got := c.CookieString(); got != "foo=bar" {
		t.Errorf("CookieString() = %q, want %q", got, "foo=bar")
	}

	clone, err := c.Clone()
	if err != nil {
		t.Fatalf("Clone(): unexpected error %v", err)
	}
	if !reflect.DeepEqual(clone, c) {
		t.Errorf("Clone():\n got  %+v\n want %+v", clone, c)
	}
}

func TestExpiryTimeAndIsExpired(t *testing.T) {
	now := fixedNow

	c := parsed("foo", "bar", func(c *Cookie) { c.MaxAge = MaxAgeNegativeInfinity })
	if !c.IsExpired(now) {
		t.Error("MaxAgeNegativeInfinity cookie should be expired")
	}

	c = parsed("foo", "bar", func(c *Cookie) { c.MaxAge = MaxAgePositiveInfinity })
	if c.IsExpired(now) {
		t.Error("MaxAgePositiveInfinity cookie should never be expired")
	}
	if _, infinite := c.ExpiryTime(now); !infinite {
		t.Error("ExpiryTime() should report infinite for MaxAgePositiveInfinity")
	}
	if got := c.ExpiryDate(now); !got.Equal(maxExpiry) {
		t.Errorf("ExpiryDate() = %v, want clamp %v", got, maxExpiry)
	}

	c = parsed("foo", "bar", func(c *Cookie) { c.MaxAge = FiniteMaxAge(60) })
	if c.IsExpired(now) {
		t.Error("cookie with 60s remaining should not be expired yet")
	}
	if c.IsExpired(now.Add(61 * time.Second)) {
		// Creation == fixedNow, so +61s is past expiry.
	} else {
		t.Error("cookie should be expired 61s after a 60s Max-Age")
	}
}

func TestValidate(t *testing.T) {
	c := &Cookie{Key: "foo", Value: "bar", Path: "nope"}
	if err := c.Validate(); err == nil {
		t.Error("Validate(): expected error for Path not starting with '/'")
	}

	c = &Cookie{Key: "foo", Value: "bar"}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate(): unexpected error %v for empty Path", err)
	}

	c = &Cookie{Key: "foo", Value: "bar", Path: "/", HostOnly: HostOnlyTrue}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate(): unexpected error %v", err)
	}
}
