package wallpaper

import (
	"fmt"

	"github.com/dixieflatline76/Backdrop/pkg/sysinfo"
)

// Resolution is a target pixel size, written "WxH".
type Resolution struct {
	Width, Height int
}

// FallbackResolution is used whenever the exact variant is not published.
var FallbackResolution = Resolution{Width: 1920, Height: 1080}

// String returns "WxH".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Suffix returns the asset naming convention suffix, "_WxH.jpg".
func (r Resolution) Suffix() string {
	return "_" + r.String() + ".jpg"
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// ParseResolution parses "WxH".
func ParseResolution(s string) (Resolution, error) {
	w, h, err := sysinfo.ParseResolution(s)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Width: w, Height: h}, nil
}
