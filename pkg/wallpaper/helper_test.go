package wallpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFilenameFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"http://example.com/image.jpg", "image.jpg"},
		{"https://www.bing.com/th?id=OHR.Fjord_EN-US123", "th?id=OHR.Fjord_EN-US123"},
		{"image.gif", "image.gif"},
		{"http://example.com/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		result := extractFilenameFromURL(tt.url)
		assert.Equal(t, tt.expected, result, "URL: %s", tt.url)
	}
}

func TestTitleFromCopyright(t *testing.T) {
	tests := []struct {
		name      string
		copyright string
		expected  string
	}{
		{"Credit Removed", "Badlands National Park, South Dakota (© Jane Doe/Getty Images)", "Badlands National Park, South Dakota"},
		{"First Parenthesis Wins", "Lake (Upper) Basin (© Someone)", "Lake"},
		{"No Credit", "Northern lights over Tromsø", "Northern lights over Tromsø"},
		{"Parenthesis Without Space", "Mount Fuji(© Someone)", "Mount Fuji(© Someone)"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titleFromCopyright(tt.copyright))
		})
	}
}

func TestNewAssetDescriptor(t *testing.T) {
	tests := []struct {
		name     string
		urlBase  string
		expected string
		wantErr  bool
	}{
		{"Current Format", "https://www.bing.com/th?id=OHR.BadlandsBday_EN-US1234567890", "OHR.BadlandsBday", false},
		{"Legacy Format", "https://www.bing.com/az/hprichbg/rb/BadlandsBday_EN-US1234567890", "BadlandsBday", false},
		{"Leading Underscore", "https://www.bing.com/az/_Fjord_DE-DE1", "Fjord", false},
		{"No Underscore", "https://www.bing.com/az/Fjord", "Fjord", false},
		{"Id Not First Parameter", "https://www.bing.com/th?mkt=en-US&id=OHR.Fjord_EN-US1", "OHR.Fjord", false},
		{"Id Text In Path", "https://www.bing.com/az/Valid=Fjord_EN-US1", "Valid=Fjord", false},
		{"Id Text In Other Parameter", "https://www.bing.com/th?rid=Other_X&id=OHR.Fjord_EN-US1", "OHR.Fjord", false},
		{"Trailing Slash", "https://www.bing.com/az/", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewAssetDescriptor(tt.urlBase)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMetadata)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d.BaseName)
			assert.Equal(t, tt.urlBase, d.URLBase)
		})
	}
}
