package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseViewCount(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"1,234 views", 1234},
		{"1 view", 1},
		{"1.2M views", 1_200_000},
		{"3.4K views", 3_400},
		{"2B views", 2_000_000_000},
		{"No views", 0},
		{"", 0},
		{"887K views", 887_000},
	}
	for _, tt := range tests {
		got, err := ParseViewCount(tt.text)
		assert.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestParseViewCount_UnparsableFails(t *testing.T) {
	for _, text := range []string{"views galore", "???", "k views"} {
		_, err := ParseViewCount(text)
		assert.Error(t, err, text)
	}
}

func TestBackoffDelay_DoublesFromOneSecond(t *testing.T) {
	assert.Equal(t, time.Second, backoffDelay(1))
	assert.Equal(t, 2*time.Second, backoffDelay(2))
	assert.Equal(t, 4*time.Second, backoffDelay(3))
}
