package wallpaper

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Backdrop/util/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// referenceGlyph is measured to get a margin that scales with the font.
const referenceGlyph = "M"

// fontFiles maps a lower-cased family name to embedded TrueType data.
var fontFiles = map[string][]byte{
	"go":        goregular.TTF,
	"go bold":   gobold.TTF,
	"go italic": goitalic.TTF,
	"go medium": gomedium.TTF,
	"go mono":   gomono.TTF,
}

// Composer draws the title overlay onto an image.
type Composer struct {
	parsed map[string]*opentype.Font
}

// NewComposer creates a Composer with the embedded Go font families.
func NewComposer() *Composer {
	return &Composer{parsed: make(map[string]*opentype.Font)}
}

// Compose renders spec.Text onto a copy of img. It returns the original image and false
// whenever the overlay is disabled or anything about the text or geometry cannot be measured.
func (c *Composer) Compose(img image.Image, spec OverlaySpec, geo Geometry) (image.Image, bool) {
	text := strings.TrimSpace(spec.Text)
	if !spec.Enabled() || text == "" {
		return img, false
	}
	if geo.WorkingArea.Empty() {
		log.Printf("Overlay: no working area available, skipping title.")
		return img, false
	}

	face, err := c.face(spec.FontFamily, spec.FontSizePx)
	if err != nil {
		log.Printf("Overlay: %v, skipping title.", err)
		return img, false
	}
	defer face.Close()

	textSize := measure(face, text)
	glyphSize := measure(face, referenceGlyph)
	if textSize.Width <= 0 || textSize.Height <= 0 || glyphSize.Width <= 0 {
		log.Printf("Overlay: could not measure %q, skipping title.", text)
		return img, false
	}

	dst := imaging.Clone(img)
	geo.ImageBounds = dst.Bounds()

	pt := Place(spec, geo, textSize, glyphSize)
	region := image.Rect(pt.X, pt.Y, pt.X+textSize.Width, pt.Y+textSize.Height).Intersect(dst.Bounds())
	if region.Empty() {
		log.Printf("Overlay: title box at %v falls outside the image, skipping title.", pt)
		return img, false
	}

	textColor := SelectContrastingColor(SampleDominantColor(dst, region))
	log.Debugf("Overlay: drawing %q at %v (%s) in %s", text, pt, spec.Anchor, textColor)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor.Color()),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	return dst, true
}

// face returns a sized font face for family, defaulting to Go Regular.
func (c *Composer) face(family string, sizePx int) (font.Face, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("invalid font size %d", sizePx)
	}

	key := strings.ToLower(strings.TrimSpace(family))
	if _, ok := fontFiles[key]; !ok {
		log.Debugf("Overlay: font family %q not embedded, using Go", family)
		key = "go"
	}

	f, ok := c.parsed[key]
	if !ok {
		var err error
		f, err = opentype.Parse(fontFiles[key])
		if err != nil {
			return nil, fmt.Errorf("parsing font %q: %w", key, err)
		}
		c.parsed[key] = f
	}

	// At 72 DPI one point is one pixel.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face for %q: %w", key, err)
	}
	return face, nil
}

func measure(face font.Face, s string) Size {
	return Size{
		Width:  font.MeasureString(face, s).Ceil(),
		Height: face.Metrics().Height.Ceil(),
	}
}
