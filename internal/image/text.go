package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// offsetTier maps values >= min to a horizontal text offset.
type offsetTier struct {
	min    int64
	offset int
}

// Checked top-down; the last tier catches everything.
var gearScoreTiers = []offsetTier{
	{min: 1000, offset: 52},
	{min: 100, offset: 35},
	{min: 10, offset: 27},
	{min: math.MinInt64, offset: 19},
}

// Stack count label x within a 60px cell.
var countLabelTiers = []offsetTier{
	{min: 10, offset: 41},
	{min: math.MinInt64, offset: 43},
}

func pickOffset(tiers []offsetTier, v int64) int {
	for _, t := range tiers {
		if v >= t.min {
			return t.offset
		}
	}
	return tiers[len(tiers)-1].offset
}

func gearScoreOffset(score int64) int { return pickOffset(gearScoreTiers, score) }

func countLabelX(count int) int { return pickOffset(countLabelTiers, int64(count)) }

// drawText prints s in white with the top-left of the line box at (x, y).
func drawText(dst draw.Image, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// fillRect paints [x1,x2)×[y1,y2) with c.
func fillRect(dst draw.Image, c color.Color, x1, y1, x2, y2 int) {
	draw.Draw(dst, image.Rect(x1, y1, x2, y2), &image.Uniform{C: c}, image.Point{}, draw.Src)
}
