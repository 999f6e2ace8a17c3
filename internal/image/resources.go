package imagepkg

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Regions of the killboard icon sheet.
var (
	fameIconRect   = image.Rect(0, 0, 100, 100)
	swordsIconRect = image.Rect(110, 0, 210, 100)
)

// Icons are the two header icons cut from the sheet. They are shared by
// every composition; resize or clone before drawing on them.
type Icons struct {
	Fame   *image.NRGBA
	Swords *image.NRGBA
}

// Resources holds the font and icon sheet. Each is loaded on first use and
// kept for the life of the process; a failed load is returned to every caller.
type Resources struct {
	fetcher  Fetcher
	sheetURL string

	font  func() (*opentype.Font, error)
	icons func() (*Icons, error)
}

func NewResources(fetcher Fetcher, sheetURL string) *Resources {
	r := &Resources{fetcher: fetcher, sheetURL: sheetURL}
	r.font = sync.OnceValues(loadFont)
	r.icons = sync.OnceValues(r.loadIcons)
	return r
}

func loadFont() (*opentype.Font, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

func (r *Resources) loadIcons() (*Icons, error) {
	// Not tied to any request: a cancelled first caller must not poison the cache.
	sheet, err := r.fetcher.Fetch(context.Background(), r.sheetURL)
	if err != nil {
		return nil, fmt.Errorf("load icon sheet: %w", err)
	}
	return &Icons{
		Fame:   imaging.Crop(sheet, fameIconRect),
		Swords: imaging.Crop(sheet, swordsIconRect),
	}, nil
}

func (r *Resources) Icons() (*Icons, error) {
	return r.icons()
}

// Face returns a new face of the shared font at size points (72 DPI, so
// points equal pixels). Faces are not safe for concurrent use; close after use.
func (r *Resources) Face(size float64) (font.Face, error) {
	f, err := r.font()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return face, nil
}
