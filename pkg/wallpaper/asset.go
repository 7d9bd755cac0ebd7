package wallpaper

import (
	"fmt"
	"net/url"
	"strings"
)

// AssetDescriptor is the resolution-independent identity of one day's image.
type AssetDescriptor struct {
	BaseName string // e.g. "OHR.BadlandsBday"
	URLBase  string // absolute URL stem, e.g. "https://www.bing.com/th?id=OHR.BadlandsBday_EN-US123"
}

// ResolvedAsset is a descriptor bound to a concrete resolution variant.
type ResolvedAsset struct {
	Descriptor       AssetDescriptor
	ResolutionSuffix string // e.g. "_2560x1440.jpg"
	FullURL          string
}

// NewAssetDescriptor derives the base name from the final segment of urlBase, truncated at
// the first "_". Both the legacy "/az/hprichbg/rb/Name_EN-US123" and the current
// "/th?id=OHR.Name_EN-US123" forms are understood.
func NewAssetDescriptor(urlBase string) (AssetDescriptor, error) {
	name := baseNameOf(urlBase)
	if name == "" {
		return AssetDescriptor{}, fmt.Errorf("%w: cannot derive image name from %q", ErrMetadata, urlBase)
	}
	return AssetDescriptor{BaseName: name, URLBase: urlBase}, nil
}

func baseNameOf(urlBase string) string {
	segment := extractFilenameFromURL(urlBase)
	if u, err := url.Parse(urlBase); err == nil {
		if id := u.Query().Get("id"); id != "" {
			segment = id
		} else {
			segment = extractFilenameFromURL(u.Path)
		}
	}
	for _, part := range strings.Split(segment, "_") {
		if part != "" {
			return part
		}
	}
	return ""
}
