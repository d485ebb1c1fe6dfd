package cookie

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPJarSetAndGetCookies(t *testing.T) {
	jar := NewJar(newMemStore(), JarOptions{})
	httpJar := NewHTTPJar(jar)
	u := mustURL(t, "http://www.example.com/")

	httpJar.SetCookies(u, []*http.Cookie{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2", MaxAge: 3600},
	})

	got := httpJar.Cookies(u)
	require.Len(t, got, 2)

	names := map[string]string{}
	for _, c := range got {
		names[c.Name] = c.Value
	}
	assert.Equal(t, "1", names["a"])
	assert.Equal(t, "2", names["b"])
}

func TestHTTPJarSilentlyDropsUnacceptableCookie(t *testing.T) {
	jar := NewJar(newMemStore(), JarOptions{})
	httpJar := NewHTTPJar(jar)
	u := mustURL(t, "http://www.example.com/")

	// An empty name fails validation nowhere in SetCookie's *Cookie path
	// (only Marshal validates characters), so exercise the silent-drop
	// contract via a cookie scoped to a domain that can't match this host.
	httpJar.SetCookies(u, []*http.Cookie{
		{Name: "a", Value: "1", Domain: "othersite.com"},
	})

	got := httpJar.Cookies(u)
	assert.Empty(t, got)
}
