package wallpaper

import (
	"strings"
	"time"
)

// Feed endpoint
const (
	FeedArchivePath     = "/HPImageArchive.aspx"
	FeedRequestInterval = 500 * time.Millisecond // politeness gap between feed requests
)

// Persistence layout
const (
	BackgroundsDirName = "Bing Backgrounds"
	PicturesDirName    = "Pictures"
	SavedImageExt      = ".png"
	DateFileLayout     = "2006-01-02"
)

// FileNaming selects how persisted images are named.
type FileNaming int

const (
	NameByContent FileNaming = iota // <baseName>.png
	NameByDate                      // 2006-01-02_<baseName>.png
)

// ParseFileNaming maps "content" / "date" case-insensitively; anything else names by content.
func ParseFileNaming(s string) FileNaming {
	if strings.EqualFold(strings.TrimSpace(s), "date") {
		return NameByDate
	}
	return NameByContent
}

// UserAgent is sent with every request.
const UserAgent = "Backdrop/1.0 (+https://github.com/dixieflatline76/Backdrop)"

// SmartFitAspectThreshold is the largest aspect ratio difference smart fit will crop across.
const SmartFitAspectThreshold = 0.9
