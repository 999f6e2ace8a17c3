package imagepkg

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/youruser/killfeedapp/internal/killboard"
)

const (
	// ItemSize is the side of one equipment or inventory cell.
	ItemSize = 60
	// FontSize is the height of the header strip.
	FontSize = 32

	countFontSize = 8
	countLabelY   = 40
)

// ItemURL builds the render service URL of an item, or "" for an empty slot.
func ItemURL(baseURL string, item *killboard.Item) string {
	if item == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString("/")
	b.WriteString(item.Type)
	b.WriteString(".png?count=")
	b.WriteString(strconv.Itoa(item.Count))
	b.WriteString("&quality=")
	b.WriteString(strconv.Itoa(item.Quality))
	return b.String()
}

// ItemRenderer turns item descriptors into fixed-size cell images.
type ItemRenderer struct {
	fetcher       Fetcher
	res           *Resources
	baseURL       string
	maxConcurrent int
	log           zerolog.Logger
}

func NewItemRenderer(fetcher Fetcher, res *Resources, baseURL string, maxConcurrent int, log zerolog.Logger) *ItemRenderer {
	return &ItemRenderer{
		fetcher:       fetcher,
		res:           res,
		baseURL:       baseURL,
		maxConcurrent: maxConcurrent,
		log:           log,
	}
}

// Render returns a size×size image of item with its stack count printed in
// the lower right. Empty slots and failed fetches both yield a transparent
// cell of the same size, so the layout never depends on the network. The
// only error is a missing label font.
func (r *ItemRenderer) Render(ctx context.Context, item *killboard.Item, size int) (*image.NRGBA, error) {
	if item == nil {
		return blankCell(size), nil
	}
	face, err := r.res.Face(float64(max(1, countFontSize*size/ItemSize)))
	if err != nil {
		return nil, fmt.Errorf("count label font: %w", err)
	}
	defer face.Close()

	url := ItemURL(r.baseURL, item)
	src, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		r.log.Warn().Err(err).Str("url", url).Msg("item image unavailable, using placeholder")
		return blankCell(size), nil
	}
	cell := imaging.Resize(src, size, size, imaging.Lanczos)

	x := countLabelX(item.Count) * size / ItemSize
	y := countLabelY * size / ItemSize
	drawText(cell, face, x, y, strconv.Itoa(item.Count))
	return cell, nil
}

func blankCell(size int) *image.NRGBA {
	return imaging.New(size, size, color.NRGBA{})
}
