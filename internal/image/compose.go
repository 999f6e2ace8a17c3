package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/youruser/killfeedapp/internal/killboard"
)

const (
	gridColumns     = 6
	canvasWidth     = gridColumns * ItemSize
	separatorHeight = 2
	headerFontSize  = 16
	// top of the header text line, centred for an 18px line box
	headerTextY     = (FontSize - 18) / 2
	fameTextX       = FontSize + 12
	headerIconSize  = 32
	headerIconInset = 5
	compressQuality = 80
)

var (
	separatorColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	headerColor    = color.NRGBA{A: 255}
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

type Options struct {
	ItemBaseURL          string
	MaxConcurrentFetches int
	// MinFame is the redaction threshold: kills below it render header only.
	MinFame int64
	Format  Format
	Logger  zerolog.Logger
}

// Composer renders kill notification images.
type Composer struct {
	items   *ItemRenderer
	res     *Resources
	minFame int64
	format  Format
	log     zerolog.Logger
}

func NewComposer(fetcher Fetcher, res *Resources, opts Options) *Composer {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	return &Composer{
		items:   NewItemRenderer(fetcher, res, opts.ItemBaseURL, opts.MaxConcurrentFetches, opts.Logger),
		res:     res,
		minFame: opts.MinFame,
		format:  opts.Format,
		log:     opts.Logger,
	}
}

func (c *Composer) Items() *ItemRenderer { return c.items }

func (c *Composer) Format() Format { return c.format }

// Compose draws the equipment and inventory of one side of ev under a header
// with gear score and kill fame, and returns the encoded image.
func (c *Composer) Compose(ctx context.Context, side killboard.Side, ev *killboard.Event) ([]byte, error) {
	p, err := ev.Participant(side)
	if err != nil {
		return nil, err
	}

	slots, err := c.items.RenderSlots(ctx, p)
	if err != nil {
		return nil, err
	}
	canvas := layout(slots)

	face, err := c.res.Face(headerFontSize)
	if err != nil {
		return nil, fmt.Errorf("header font: %w", err)
	}
	defer face.Close()

	// Both sides show the victim's gear score: it is the kill's headline
	// value, like the fame next to it.
	score := int64(math.Round(ev.Victim.AverageItemPower))
	drawText(canvas, face, canvasWidth-gearScoreOffset(score)-FontSize, headerTextY, humanize.Comma(score))
	drawText(canvas, face, fameTextX, headerTextY, humanize.Comma(ev.TotalVictimKillFame))

	redacted := ev.TotalVictimKillFame < c.minFame
	if redacted {
		canvas = imaging.Crop(canvas, image.Rect(0, 0, canvasWidth, FontSize))
	}

	icons, err := c.res.Icons()
	if err != nil {
		return nil, err
	}
	canvas = overlayIcons(canvas, icons)

	out, err := encode(canvas, c.format)
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Int64("event_id", ev.EventID).
		Str("side", string(side)).
		Int("inventory", len(slots.Inventory)).
		Bool("redacted", redacted).
		Int("bytes", len(out)).
		Msg("kill image composed")
	return out, nil
}

// layout places the cells under the header: one equipment row, a grey
// separator, then the inventory in rows of six.
func layout(s SlotImages) *image.NRGBA {
	rows := (len(s.Inventory) + gridColumns - 1) / gridColumns
	height := ItemSize + FontSize + rows*ItemSize + separatorHeight
	canvas := imaging.New(canvasWidth, height, color.NRGBA{})

	for i, cell := range s.Equipment {
		canvas = imaging.Overlay(canvas, cell, image.Pt(ItemSize*i, FontSize), 1)
	}

	sepY := ItemSize + FontSize
	fillRect(canvas, separatorColor, 0, sepY, canvasWidth, sepY+separatorHeight)

	for i, cell := range s.Inventory {
		row := (i + gridColumns) / gridColumns // 1-based, ceil((i+1)/6)
		x := ItemSize * (i % gridColumns)
		y := FontSize + separatorHeight + row*ItemSize
		canvas = imaging.Overlay(canvas, cell, image.Pt(x, y), 1)
	}

	fillRect(canvas, headerColor, 0, 4, canvasWidth, FontSize-4)
	return canvas
}

func overlayIcons(canvas *image.NRGBA, icons *Icons) *image.NRGBA {
	fame := imaging.Resize(icons.Fame, headerIconSize, headerIconSize, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, fame, image.Pt(headerIconInset, 0), 1)

	swords := imaging.Resize(icons.Swords, headerIconSize, headerIconSize, imaging.Lanczos)
	return imaging.Overlay(canvas, swords, image.Pt(canvasWidth-FontSize-headerIconInset, 0), 1)
}

func encode(img image.Image, f Format) ([]byte, error) {
	var format imaging.Format
	switch f {
	case FormatPNG:
		format = imaging.PNG
	case FormatJPEG:
		format = imaging.JPEG
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(compressQuality)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return buf.Bytes(), nil
}

// EncodeCell encodes a single rendered cell in the composer's format.
func (c *Composer) EncodeCell(img image.Image) ([]byte, error) {
	return encode(img, c.format)
}
