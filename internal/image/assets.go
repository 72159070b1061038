package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrAssetNotFound is returned when an asset name does not resolve to an image.
var ErrAssetNotFound = errors.New("asset not found")

// Asset names used by the compositor.
const (
	AssetBanner     = "banner.png"
	AssetBannerWin  = "banner_win.png"
	AssetBannerLoss = "banner_loss.png"
	AssetBannerDraw = "banner_draw.png"
	AssetBadgeHome  = "badge_home.png"
	AssetBadgeAway  = "badge_away.png"
)

// LogoAsset is the asset name of a team logo reference from the match export.
// References that are already URLs are used as is.
func LogoAsset(ref string) string {
	if isRemote(ref) {
		return ref
	}
	return "logos/" + ref + ".png"
}

// AssetStore resolves asset names to decoded images.
type AssetStore interface {
	Load(name string) (image.Image, error)
}

// DirStore reads assets from a directory; http(s) names are downloaded.
type DirStore struct {
	Root string
}

func (s DirStore) Load(name string) (image.Image, error) {
	if isRemote(name) {
		img, err := DownloadImage(context.Background(), name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAssetNotFound, name, err)
		}
		return img, nil
	}
	path := filepath.Join(s.Root, filepath.FromSlash(name))
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset %s: %w", path, err)
	}
	return img, nil
}

func isRemote(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}
