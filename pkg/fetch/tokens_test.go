package fetch_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/liven-dev/liven/pkg/fetch"
)

func TestCookieStringToken(t *testing.T) {
	cases := []struct {
		name    string
		cookies string
		want    string
	}{
		{"single cookie", "csrftoken=abc123", "abc123"},
		{"among others", "sessionid=xyz; csrftoken=abc123; theme=dark", "abc123"},
		{"absent", "sessionid=xyz; theme=dark", ""},
		{"empty string", "", ""},
		{"empty value", "csrftoken=", ""},
		{"value with equals", "csrftoken=a=b", "a=b"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fetch.CookieString(tc.cookies).Token(); got != tc.want {
				t.Errorf("Token() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestJarTokens(t *testing.T) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	site, _ := url.Parse("http://example.test/")
	jar.SetCookies(site, []*http.Cookie{
		{Name: "csrftoken", Value: "jarred"},
		{Name: "sessionid", Value: "other"},
	})

	if got := (fetch.JarTokens{Jar: jar, URL: site}).Token(); got != "jarred" {
		t.Errorf("Token() = %q, want jarred", got)
	}
	if got := (fetch.JarTokens{}).Token(); got != "" {
		t.Errorf("empty JarTokens Token() = %q, want empty", got)
	}
}

func TestTokenCapturedOnce(t *testing.T) {
	// The executor must not observe later cookie changes.
	source := &mutableTokens{value: "first"}
	exec := fetch.New(fetch.Config{Tokens: source})

	source.value = "second"
	if exec.Token() != "first" {
		t.Errorf("expected token captured at construction, got %q", exec.Token())
	}
}

type mutableTokens struct{ value string }

func (m *mutableTokens) Token() string { return m.value }
