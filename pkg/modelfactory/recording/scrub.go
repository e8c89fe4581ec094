package recording

import (
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// AuthorizationPlaceholder replaces Authorization header values.
const AuthorizationPlaceholder = "<AUTHORIZATION_HEADER>"

// Scrubber replaces secret values in recorded interactions with
// placeholders.
//
// For a secret named NAME it replaces the raw value with <NAME>, its
// form-encoded value with <NAME_FORM> and its URI-encoded value with
// <NAME_URI>.
type Scrubber struct {
	pairs []string // old, new, old, new ...
}

// NewScrubber builds a Scrubber for the named secrets. lookup resolves names
// to values; nil uses os.LookupEnv. Unset and empty secrets are skipped.
func NewScrubber(secrets []string, lookup func(string) (string, bool)) *Scrubber {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	s := &Scrubber{}
	for _, name := range secrets {
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		s.pairs = append(s.pairs,
			value, "<"+name+">",
			url.QueryEscape(value), "<"+name+"_FORM>",
			uriEscape(value), "<"+name+"_URI>",
		)
	}
	return s
}

// Scrub returns text with every known secret replaced. When headers carry an
// Authorization value, that value is replaced too.
func (s *Scrubber) Scrub(text string, headers http.Header) string {
	pairs := s.pairs
	if auth := headers.Get("Authorization"); auth != "" {
		pairs = append([]string{auth, AuthorizationPlaceholder}, pairs...)
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// uriEscape percent-encodes every byte outside the unreserved set
// (ALPHA / DIGIT / "-" / "." / "_" / "~").
func uriEscape(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

var localHosts = []string{"localhost", "127.0.0.1", "0.0.0.0", "::1"}

// ShouldRecord reports whether req may be recorded. Requests to local hosts
// are passed through when IgnoreLocalhost is set.
func (c *Config) ShouldRecord(req *http.Request) bool {
	if !c.IgnoreLocalhost || req == nil || req.URL == nil {
		return true
	}
	host := req.URL.Hostname()
	if host == "" {
		if h, _, err := net.SplitHostPort(req.Host); err == nil {
			host = h
		} else {
			host = req.Host
		}
	}
	for _, local := range localHosts {
		if strings.EqualFold(host, local) {
			return false
		}
	}
	return true
}
