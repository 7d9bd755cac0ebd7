package wallpaper

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dixieflatline76/Backdrop/util/log"
)

// PathProvider decides where an acquired image is persisted.
type PathProvider interface {
	PathFor(baseName string, day time.Time) (string, error)
}

// FileManager handles file system layout for saved backgrounds.
// Images land in <root>/<year>/ where root defaults to <Pictures>/Bing Backgrounds.
type FileManager struct {
	rootDir string
	naming  FileNaming
}

// NewFileManager creates a FileManager rooted at rootDir. An empty rootDir uses DefaultRootDir.
func NewFileManager(rootDir string, naming FileNaming) (*FileManager, error) {
	if rootDir == "" {
		var err error
		rootDir, err = DefaultRootDir()
		if err != nil {
			return nil, err
		}
	}
	return &FileManager{rootDir: rootDir, naming: naming}, nil
}

// DefaultRootDir returns <Pictures>/Bing Backgrounds for the current user.
func DefaultRootDir() (string, error) {
	pictures, err := picturesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(pictures, BackgroundsDirName), nil
}

// picturesDir honours XDG_PICTURES_DIR and otherwise uses ~/Pictures (%USERPROFILE%\Pictures on Windows).
func picturesDir() (string, error) {
	if dir := os.Getenv("XDG_PICTURES_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: locating home directory: %v", ErrPersistence, err)
	}
	return filepath.Join(home, PicturesDirName), nil
}

// GetRootDir returns the directory holding the per-year folders.
func (fm *FileManager) GetRootDir() string {
	return fm.rootDir
}

// YearDir returns the folder for images of the given day.
func (fm *FileManager) YearDir(day time.Time) string {
	return filepath.Join(fm.rootDir, strconv.Itoa(day.Year()))
}

// validateID ensures the ID does not contain path traversal characters.
func (fm *FileManager) validateID(id string) error {
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid image id %q", ErrPersistence, id)
	}
	return nil
}

// PathFor returns the absolute path an image named baseName is saved under.
func (fm *FileManager) PathFor(baseName string, day time.Time) (string, error) {
	if err := fm.validateID(baseName); err != nil {
		return "", err
	}

	name := baseName + SavedImageExt
	if fm.naming == NameByDate {
		name = day.Format(DateFileLayout) + "_" + name
	}
	path := filepath.Join(fm.YearDir(day), name)
	log.Debugf("FileManager: %s -> %s", baseName, path)
	return path, nil
}
