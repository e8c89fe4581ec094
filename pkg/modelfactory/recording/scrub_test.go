package recording

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubber(t *testing.T) {
	env := map[string]string{
		"SIMPLE": "abc123",
		"FANCY":  "a b/c+d",
		"EMPTY":  "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	s := NewScrubber([]string{"SIMPLE", "FANCY", "EMPTY", "UNSET"}, lookup)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "raw", in: "key=abc123", want: "key=<SIMPLE>"},
		{name: "raw with specials", in: `{"s":"a b/c+d"}`, want: `{"s":"<FANCY>"}`},
		{name: "form encoded", in: "s=a+b%2Fc%2Bd&x=1", want: "s=<FANCY_FORM>&x=1"},
		{name: "uri encoded", in: "/s/a%20b%2Fc%2Bd", want: "/s/<FANCY_URI>"},
		{name: "nothing to scrub", in: "hello", want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Scrub(tt.in, nil))
		})
	}
}

func TestScrubAuthorizationHeader(t *testing.T) {
	s := NewScrubber(nil, func(string) (string, bool) { return "", false })
	headers := http.Header{}
	headers.Set("Authorization", "Bearer ANY-AUTH-TOKEN")

	got := s.Scrub("Authorization: Bearer ANY-AUTH-TOKEN\n", headers)
	assert.Equal(t, "Authorization: <AUTHORIZATION_HEADER>\n", got)
}

func TestConfigScrubberReadsEnv(t *testing.T) {
	t.Setenv("TEST_SECRET", "s3cret")
	cfg := &Config{Secrets: []string{"TEST_SECRET"}}

	assert.Equal(t, "token=<TEST_SECRET>", cfg.Scrubber().Scrub("token=s3cret", nil))
}

func TestURIEscape(t *testing.T) {
	assert.Equal(t, "a-b.c_d~e", uriEscape("a-b.c_d~e"))
	assert.Equal(t, "%20%2F%3F%3D%26%2B%3A%40", uriEscape(" /?=&+:@"))
	assert.Equal(t, "%C3%A9", uriEscape("é"))
}

func TestShouldRecord(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		ignore bool
		want   bool
	}{
		{name: "remote", url: "https://api.example.com/v1", ignore: true, want: true},
		{name: "localhost", url: "http://localhost:8080/x", ignore: true, want: false},
		{name: "loopback", url: "http://127.0.0.1/x", ignore: true, want: false},
		{name: "any address", url: "http://0.0.0.0:3000/", ignore: true, want: false},
		{name: "ipv6 loopback", url: "http://[::1]:3000/", ignore: true, want: false},
		{name: "localhost allowed", url: "http://localhost:8080/x", ignore: false, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{IgnoreLocalhost: tt.ignore}
			req, err := http.NewRequest(http.MethodGet, tt.url, nil)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ShouldRecord(req))
		})
	}
}
