package wallpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolution(t *testing.T) {
	r := Resolution{Width: 2560, Height: 1440}
	assert.Equal(t, "2560x1440", r.String())
	assert.Equal(t, "_2560x1440.jpg", r.Suffix())
	assert.True(t, r.Valid())

	assert.False(t, Resolution{}.Valid())
	assert.False(t, Resolution{Width: 1920}.Valid())
	assert.Equal(t, "_1920x1080.jpg", FallbackResolution.Suffix())
}

func TestParseResolution(t *testing.T) {
	r, err := ParseResolution("3840x2160")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Width: 3840, Height: 2160}, r)

	for _, bad := range []string{"", "big", "0x1080", "1920x"} {
		_, err := ParseResolution(bad)
		assert.Error(t, err, "%q", bad)
	}
}
