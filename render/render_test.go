package render

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/qbtctl/qbittorrent"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want string
	}{
		{name: "empty", p: 0, want: "<__________>"},
		{name: "full", p: 1, want: "<##########>"},
		{name: "half", p: 0.5, want: "<#####_____>"},
		{name: "floors 0.99", p: 0.99, want: "<#########_>"},
		{name: "floors 0.09", p: 0.09, want: "<__________>"},
		{name: "clamps above", p: 1.7, want: "<##########>"},
		{name: "clamps below", p: -0.3, want: "<__________>"},
		{name: "nan", p: math.NaN(), want: "<__________>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressBar(tt.p))
		})
	}
}

func TestProgressBarShape(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		bar := ProgressBar(p)

		assert.Len(t, bar, 12, "p=%v", p)
		assert.True(t, strings.HasPrefix(bar, "<") && strings.HasSuffix(bar, ">"), "p=%v", p)
		assert.Equal(t, int(math.Floor(p*10)), strings.Count(bar, "#"), "p=%v", p)
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1000, "1.0 kB"},
		{1_500_000, "1.5 MB"},
		{4_000_000_000, "4.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanSize(tt.bytes))
		})
	}
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "StalledDL", StateLabel(qbittorrent.StateStalledDownloading, false))
	assert.Equal(t, "Torrent is being downloaded, but no connections were made", StateLabel(qbittorrent.StateStalledDownloading, true))
	assert.Equal(t, "Unknown", StateLabel(qbittorrent.StateUnknown, false))
}

func TestTimestamp(t *testing.T) {
	epoch := int64(1700000000)
	want := time.Unix(epoch, 0).In(time.Local).Format("2006-01-02 15:04:05")
	assert.Equal(t, want, Timestamp(epoch))
}
