package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddActivatesFirstSession(t *testing.T) {
	s := New()
	a := MustParseEndpoint("https://a/")
	b := MustParseEndpoint("https://b/")

	s.Add(a, "SID=a;")
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, a, active)

	s.Add(b, "SID=b;")
	active, _ = s.Active()
	assert.Equal(t, a, active, "adding a second session must not change the active endpoint")

	s.Add(a, "SID=new;")
	sess, err := s.ResolveActive()
	require.NoError(t, err)
	assert.Equal(t, "SID=new;", sess.Token)
}

func TestStoreActivate(t *testing.T) {
	s := New()
	e := MustParseEndpoint("https://h/")

	err := s.Activate(e)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEndpoint)

	s.Add(MustParseEndpoint("https://other/"), "SID=o;")
	s.Add(e, "SID=abc;")
	require.NoError(t, s.Activate(e))

	sess, err := s.ResolveActive()
	require.NoError(t, err)
	assert.Equal(t, Session{Endpoint: e, Token: "SID=abc;"}, sess)
}

func TestStoreRemove(t *testing.T) {
	s := New()
	e := MustParseEndpoint("https://h/")
	s.Add(e, "SID=abc;")

	assert.False(t, s.Remove(MustParseEndpoint("https://missing/")))
	_, err := s.ResolveActive()
	require.NoError(t, err)

	assert.True(t, s.Remove(e))
	_, ok := s.Active()
	assert.False(t, ok)

	_, err = s.ResolveActive()
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, s.Remove(e))
}

func TestStoreResolveActiveEmpty(t *testing.T) {
	_, err := New().ResolveActive()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStoreResolveActiveWithoutSelection(t *testing.T) {
	s := New()
	e := MustParseEndpoint("https://h/")
	s.Add(e, "SID=abc;")
	s.Remove(e)
	s.sessions[e] = "SID=abc;"

	_, err := s.ResolveActive()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStoreList(t *testing.T) {
	s := New()
	s.Add(MustParseEndpoint("https://zeta/"), "SID=zzz;")
	s.Add(MustParseEndpoint("https://alpha/"), "SID=aaa;")
	s.Add(MustParseEndpoint("http://mid:8080/"), "SID=mmm;")

	redacted := s.List(false)
	require.Len(t, redacted, 3)
	assert.Equal(t, Endpoint("http://mid:8080/"), redacted[0].Endpoint)
	assert.Equal(t, Endpoint("https://alpha/"), redacted[1].Endpoint)
	assert.Equal(t, Endpoint("https://zeta/"), redacted[2].Endpoint)
	assert.True(t, redacted[2].Active)
	assert.False(t, redacted[0].Active)

	for _, entry := range redacted {
		assert.Equal(t, RedactedToken, entry.Token)
		for _, secret := range []string{"zzz", "aaa", "mmm"} {
			assert.NotContains(t, entry.Token, secret)
		}
	}

	revealed := s.List(true)
	assert.Equal(t, "SID=mmm;", revealed[0].Token)
	assert.Equal(t, "SID=aaa;", revealed[1].Token)
	assert.Equal(t, "SID=zzz;", revealed[2].Token)
}

func TestStoreRoundTrip(t *testing.T) {
	many := New()
	many.Add(MustParseEndpoint("https://a/"), "SID=a;")
	many.Add(MustParseEndpoint("https://b/sub/"), "SID=b; other=x;")
	many.Add(MustParseEndpoint("http://c:8080/"), `weird"quote=\;`)
	require.NoError(t, many.Activate(MustParseEndpoint("https://b/sub/")))

	noActive := New()
	noActive.Add(MustParseEndpoint("https://a/"), "SID=a;")
	noActive.Remove(MustParseEndpoint("https://a/"))
	noActive.sessions[MustParseEndpoint("https://a/")] = "SID=a;"

	one := New()
	one.Add(MustParseEndpoint("https://only/"), "SID=only;")

	tests := []struct {
		name  string
		store *Store
	}{
		{name: "empty", store: New()},
		{name: "one", store: one},
		{name: "many", store: many},
		{name: "no active", store: noActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.store.Encode(&buf))
			assert.True(t, strings.HasPrefix(buf.String(), "#"))

			decoded, err := Decode(&buf)
			require.NoError(t, err)
			assert.True(t, storesEqual(tt.store, decoded), "decoded store differs: %+v vs %+v", decoded, tt.store)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not toml", input: "this is [not toml"},
		{name: "bad endpoint key", input: "[sessions]\n\"ftp://h/\" = \"SID=a;\"\n"},
		{name: "duplicate endpoint", input: "[sessions]\n\"http://h\" = \"SID=a;\"\n\"http://h/\" = \"SID=b;\"\n"},
		{name: "dangling active", input: "active = \"https://h/\"\n[sessions]\n\"https://other/\" = \"SID=a;\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedStore)
		})
	}
}

func TestDecodeNormalizesHandEditedKeys(t *testing.T) {
	input := "active = \"https://H\"\n[sessions]\n\"https://H\" = \"SID=a;\"\n"
	s, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	sess, err := s.ResolveActive()
	require.NoError(t, err)
	assert.Equal(t, Endpoint("https://h/"), sess.Endpoint)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.toml")

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, path, s.Path())
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("= broken"), 0o600))

	_, err := Open(path, zerolog.Nop())
	assert.ErrorIs(t, err, ErrMalformedStore)
}

func TestFlushAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbtctl", "credentials.toml")

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	s.Add(MustParseEndpoint("https://h/"), "SID=abc;")
	require.NoError(t, s.Flush())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, storesEqual(s, reopened))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFlushUnbacked(t *testing.T) {
	assert.Error(t, New().Flush())
}

func storesEqual(a, b *Store) bool {
	if a.active != b.active || len(a.sessions) != len(b.sessions) {
		return false
	}
	for e, token := range a.sessions {
		if t, ok := b.sessions[e]; !ok || t != token {
			return false
		}
	}
	return true
}
