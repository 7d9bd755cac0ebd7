package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Backdrop/util/log"
	"github.com/dustin/go-humanize"
)

// ImageStore downloads, encodes and saves images.
type ImageStore interface {
	Download(ctx context.Context, url string) (image.Image, error)
	Encode(img image.Image, format imaging.Format) ([]byte, error)
	Save(path string, data []byte) error
}

// HTTPImageStore is the ImageStore backed by an HTTP client and the local disk.
type HTTPImageStore struct {
	httpClient *http.Client
}

// NewHTTPImageStore creates a store that downloads with client.
func NewHTTPImageStore(client *http.Client) *HTTPImageStore {
	return &HTTPImageStore{httpClient: client}
}

// Download fetches url and decodes it. Any failure is an ErrAcquisition.
func (s *HTTPImageStore) Download(ctx context.Context, url string) (image.Image, error) {
	log.Printf("Downloader: downloading background %s...", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrAcquisition, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrAcquisition, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrAcquisition, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrAcquisition, url, err)
	}

	log.Printf("Downloader: got %s (%dx%d, %s)", extractFilenameFromURL(url), img.Bounds().Dx(), img.Bounds().Dy(), humanize.Bytes(uint64(len(data))))
	return img, nil
}

// Encode serializes img; JPEG uses quality 95.
func (s *HTTPImageStore) Encode(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(95)); err != nil {
		return nil, fmt.Errorf("encoding image as %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Save writes data to path through a temp file and rename, so a failed write never leaves a
// half-written background behind.
func (s *HTTPImageStore) Save(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrPersistence, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing %s: %v", ErrPersistence, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming into %s: %v", ErrPersistence, path, err)
	}

	log.Printf("Downloader: saved %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return nil
}
