package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// ErrNotFittable is returned when an image is too small or too far off the screen aspect to fit.
var ErrNotFittable = errors.New("image not compatible with smart fit")

// ImageFitter reshapes a downloaded image to the screen before composing.
type ImageFitter interface {
	FitImage(ctx context.Context, img image.Image, target Resolution) (image.Image, error)
}

// smartImageProcessor crops to the most interesting region at the screen aspect, then resizes.
type smartImageProcessor struct {
	aspectThreshold float64
	resampler       imaging.ResampleFilter
}

// NewSmartImageProcessor creates the smartcrop-backed ImageFitter.
func NewSmartImageProcessor() ImageFitter {
	return &smartImageProcessor{
		aspectThreshold: SmartFitAspectThreshold,
		resampler:       imaging.Lanczos,
	}
}

// FitImage fits an image with context awareness.
func (c *smartImageProcessor) FitImage(ctx context.Context, img image.Image, target Resolution) (image.Image, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("invalid target resolution %s", target)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	imageWidth := img.Bounds().Dx()
	imageHeight := img.Bounds().Dy()
	systemAspect := float64(target.Width) / float64(target.Height)
	imageAspect := float64(imageWidth) / float64(imageHeight)
	aspectDiff := math.Abs(systemAspect - imageAspect)

	r := &resizer{resampler: c.resampler}

	switch {
	case imageWidth < target.Width || imageHeight < target.Height || aspectDiff > c.aspectThreshold:
		return nil, fmt.Errorf("%w: %dx%d for %s", ErrNotFittable, imageWidth, imageHeight, target)
	case imageWidth == target.Width && imageHeight == target.Height: // Perfect fit
		return img, nil
	case imageAspect == systemAspect: // Perfect aspect ratio
		resizedImg := r.resizeWithContext(ctx, img, uint(target.Width), uint(target.Height))
		if resizedImg == nil {
			return nil, ctx.Err() // Context was canceled during resize.
		}
		return resizedImg, nil
	default:
		croppedImg, err := c.cropImage(ctx, img, target)
		if err != nil {
			return nil, fmt.Errorf("cropping image: %w", err)
		}
		return croppedImg, nil
	}
}

// cropImage crops an image with context awareness.
func (c *smartImageProcessor) cropImage(ctx context.Context, img image.Image, target Resolution) (image.Image, error) {
	r := &resizer{resampler: c.resampler}
	analyzer := smartcrop.NewAnalyzer(r)

	// Use a goroutine and channel to make FindBestCrop context-aware.
	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		topCrop, err := analyzer.FindBestCrop(img, target.Width, target.Height)
		resultChan <- cropResult{crop: topCrop, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return nil, fmt.Errorf("finding best crop: %w", result.err)
		}

		cropped := imaging.Crop(img, result.crop)
		resizedImg := r.resizeWithContext(ctx, cropped, uint(target.Width), uint(target.Height))
		if resizedImg == nil {
			return nil, ctx.Err() // Context was canceled during resize.
		}
		return resizedImg, nil
	}
}

// resizer implements the smartcrop.Resizer interface and adds context awareness.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize *doesn't* take a context here.  The smartcrop.Resizer interface doesn't
// support contexts.  We handle cancellation in resizeWithContext.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// resizeWithContext performs the resize operation with context awareness.
func (r *resizer) resizeWithContext(ctx context.Context, img image.Image, width, height uint) image.Image {
	resultChan := make(chan image.Image, 1)

	go func() {
		resultChan <- imaging.Resize(img, int(width), int(height), r.resampler)
	}()

	select {
	case <-ctx.Done():
		return nil // Return nil if context is canceled.
	case result := <-resultChan:
		return result
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
