package qbittorrent

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/qbtctl/session"
)

func TestAuthenticate(t *testing.T) {
	var referer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "admin", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		referer = r.Header.Get("Referer")

		http.SetCookie(w, &http.Cookie{Name: "SID", Value: "abc", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "extra", Value: "1", Path: "/"})
		io.WriteString(w, "Ok.")
	}))
	defer server.Close()

	endpoint := session.MustParseEndpoint(server.URL)
	sess, err := Authenticate(context.Background(), endpoint, "admin", "secret", zerolog.Nop(), WithMaxRetries(0))
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, endpoint, sess.Endpoint)
	assert.Equal(t, "SID=abc;extra=1;", sess.Token)
	assert.Equal(t, endpoint.String(), referer)
}

func TestAuthenticateWithoutCookiesReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Fails.")
	}))
	defer server.Close()

	sess, err := Authenticate(context.Background(), session.MustParseEndpoint(server.URL), "admin", "wrong", zerolog.Nop(), WithMaxRetries(0))
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestAuthenticateBanned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := Authenticate(context.Background(), session.MustParseEndpoint(server.URL), "admin", "x", zerolog.Nop(), WithMaxRetries(0))
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.NotErrorIs(t, err, ErrSessionExpired)
}

func TestLogout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/auth/logout", r.URL.Path)
		_, err := r.Cookie("SID")
		assert.NoError(t, err)
	})

	require.NoError(t, client.Logout(context.Background()))
}

func TestTokenRoundTrip(t *testing.T) {
	cookies := ParseToken("SID=abc; other=x=y;;broken;=novalue;")
	require.Len(t, cookies, 2)
	assert.Equal(t, "SID", cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, "other", cookies[1].Name)
	assert.Equal(t, "x=y", cookies[1].Value)

	assert.Equal(t, "SID=abc;other=x=y;", FormatToken(cookies))
	assert.Empty(t, ParseToken(""))
}
