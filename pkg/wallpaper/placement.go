package wallpaper

import (
	"image"
	"strings"
)

// Anchor is the screen corner the title overlay hugs.
type Anchor int

const (
	AnchorNone Anchor = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// ParseAnchor maps a configured position to an Anchor. An empty position disables the overlay;
// anything unrecognized falls back to BottomLeft.
func ParseAnchor(s string) Anchor {
	switch strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)) {
	case "":
		return AnchorNone
	case "topleft":
		return TopLeft
	case "topright":
		return TopRight
	case "bottomright":
		return BottomRight
	default:
		return BottomLeft
	}
}

// String returns the anchor name.
func (a Anchor) String() string {
	switch a {
	case TopLeft:
		return "TopLeft"
	case TopRight:
		return "TopRight"
	case BottomLeft:
		return "BottomLeft"
	case BottomRight:
		return "BottomRight"
	default:
		return "None"
	}
}

// OverlaySpec describes the title overlay. A zero Anchor disables it.
type OverlaySpec struct {
	Text       string
	FontFamily string
	FontSizePx int
	Anchor     Anchor
}

// Enabled reports whether an anchor is configured.
func (s OverlaySpec) Enabled() bool {
	return s.Anchor != AnchorNone
}

// Size is a measured width and height in pixels.
type Size struct {
	Width, Height int
}

// Geometry is the display layout read once per run.
type Geometry struct {
	ScreenBounds image.Rectangle
	WorkingArea  image.Rectangle // screen minus taskbar/panels
	ImageBounds  image.Rectangle
}

// Place returns the top-left corner of the text box. glyph is the size of one reference
// character and serves as the margin unit.
//
// When the image is smaller than the working area (letterboxed, e.g. "fit") the text is
// anchored to the image's own edge; otherwise it is anchored to the working area so a taskbar
// does not cover it. Letterbox bars are not measured, this is only a size comparison.
func Place(spec OverlaySpec, geo Geometry, text Size, glyph Size) image.Point {
	var p image.Point

	switch spec.Anchor {
	case TopRight, BottomRight:
		p.X = rightEdgeX(geo, text) - glyph.Width
	default:
		p.X = leftEdgeX(geo, glyph)
	}

	switch spec.Anchor {
	case TopLeft, TopRight:
		p.Y = topEdgeY(geo, glyph)
	default:
		p.Y = bottomEdgeY(geo, text)
	}

	return p
}

func leftEdgeX(geo Geometry, glyph Size) int {
	x := glyph.Width
	if geo.WorkingArea.Min.X > 0 {
		x += geo.WorkingArea.Min.X
	}
	return x
}

func topEdgeY(geo Geometry, glyph Size) int {
	y := glyph.Height
	if geo.WorkingArea.Min.Y > 0 {
		y += geo.WorkingArea.Min.Y
	}
	return y
}

func rightEdgeX(geo Geometry, text Size) int {
	if geo.ImageBounds.Dx() < geo.WorkingArea.Dx() {
		return geo.ImageBounds.Dx() - text.Width
	}
	return geo.WorkingArea.Max.X - text.Width
}

func bottomEdgeY(geo Geometry, text Size) int {
	if geo.ImageBounds.Dy() < geo.WorkingArea.Dy() {
		return geo.ImageBounds.Dy() - text.Height
	}
	return geo.WorkingArea.Max.Y - text.Height
}
