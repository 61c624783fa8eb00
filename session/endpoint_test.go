package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Endpoint
		wantErr bool
	}{
		{name: "adds trailing slash", raw: "http://localhost:8080", want: "http://localhost:8080/"},
		{name: "keeps trailing slash", raw: "http://localhost:8080/", want: "http://localhost:8080/"},
		{name: "lowercases scheme and host", raw: "HTTPS://Seedbox.Example.COM", want: "https://seedbox.example.com/"},
		{name: "keeps sub path", raw: "https://h/qbittorrent", want: "https://h/qbittorrent/"},
		{name: "drops query and fragment", raw: "https://h/?a=b#frag", want: "https://h/"},
		{name: "drops userinfo", raw: "https://user:pw@h/", want: "https://h/"},
		{name: "trims spaces", raw: "  https://h  ", want: "https://h/"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no scheme", raw: "localhost:8080", wantErr: true},
		{name: "ftp scheme", raw: "ftp://h/", wantErr: true},
		{name: "no host", raw: "http:///path", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEndpoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEndpointIsIdempotent(t *testing.T) {
	first := MustParseEndpoint("https://H:9090/sub")
	second, err := ParseEndpoint(first.String())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
