package wallpaper

import "errors"

// Error kinds surfaced by the pipeline. Wrap with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	// ErrMetadata means the feed was unreachable or its response lacked a required field.
	ErrMetadata = errors.New("metadata failure")
	// ErrAcquisition means an image could not be downloaded or decoded.
	ErrAcquisition = errors.New("acquisition failure")
	// ErrPersistence means the image could not be written or installed as the background.
	ErrPersistence = errors.New("persistence failure")
)
