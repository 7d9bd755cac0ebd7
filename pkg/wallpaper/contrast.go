package wallpaper

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// TextColor is the overlay text color picked for legibility.
type TextColor int

const (
	Black TextColor = iota
	White
)

// String returns "Black" or "White".
func (c TextColor) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Color returns the opaque color for drawing.
func (c TextColor) Color() color.Color {
	if c == White {
		return color.White
	}
	return color.Black
}

// SampleDominantColor returns the per-channel arithmetic mean (truncated) of every pixel in
// region. It is a plain mean, so a few bright pixels pull the result up. region must lie
// inside img.Bounds(); anything else is a caller bug and panics.
func SampleDominantColor(img image.Image, region image.Rectangle) RGB {
	if region.Empty() {
		return RGB{}
	}
	if !region.In(img.Bounds()) {
		panic(fmt.Sprintf("wallpaper: sample region %v outside image bounds %v", region, img.Bounds()))
	}

	var r, g, b uint64
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r += uint64(c.R)
			g += uint64(c.G)
			b += uint64(c.B)
		}
	}

	n := uint64(region.Dx()) * uint64(region.Dy())
	return RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

// Luminance returns the perceptive darkness of c: 0 for white, 1 for black.
func Luminance(c RGB) float64 {
	return 1 - (0.299*float64(c.R)+0.587*float64(c.G)+0.114*float64(c.B))/255
}

// ContrastForLuminance picks Black for light backgrounds (luminance < 0.5) and White otherwise.
func ContrastForLuminance(l float64) TextColor {
	if l < 0.5 {
		return Black
	}
	return White
}

// SelectContrastingColor picks the legible text color over a background of color c.
func SelectContrastingColor(c RGB) TextColor {
	return ContrastForLuminance(Luminance(c))
}
