package fetch

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	// TokenCookie is the cookie the security token is read from.
	TokenCookie = "csrftoken"

	// TokenHeader is the request header the token is replayed on.
	TokenHeader = "X-CSRFToken"
)

// TokenSource yields the anti-forgery token attached to outbound requests.
type TokenSource interface {
	Token() string
}

// CookieString reads the token from a raw Cookie header value, the same
// "name=value; name=value" form the browser exposes as document.cookie.
// A missing csrftoken cookie yields the empty token.
type CookieString string

// Token implements TokenSource.
func (c CookieString) Token() string {
	for _, part := range strings.Split(string(c), ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		if name == TokenCookie {
			return value
		}
	}
	return ""
}

// JarTokens reads the token from an http.CookieJar for a given site.
type JarTokens struct {
	Jar http.CookieJar
	URL *url.URL
}

// Token implements TokenSource.
func (j JarTokens) Token() string {
	if j.Jar == nil || j.URL == nil {
		return ""
	}
	for _, cookie := range j.Jar.Cookies(j.URL) {
		if cookie.Name == TokenCookie {
			return cookie.Value
		}
	}
	return ""
}

// StaticToken wraps a literal token value.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }
