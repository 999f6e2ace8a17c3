package imagepkg

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/youruser/killfeedapp/internal/killboard"
)

// SlotImages are the rendered cells of one participant.
type SlotImages struct {
	Equipment [6]*image.NRGBA
	// Inventory holds one cell per non-empty inventory entry, in feed order.
	Inventory []*image.NRGBA
}

// RenderSlots fetches every equipment and inventory cell of p concurrently
// and returns once all of them are done. Only a shared-resource failure is
// returned; bad fetches are already placeholders.
func (r *ItemRenderer) RenderSlots(ctx context.Context, p *killboard.Participant) (SlotImages, error) {
	items := p.Items()
	out := SlotImages{Inventory: make([]*image.NRGBA, len(items))}

	var g errgroup.Group
	if r.maxConcurrent > 0 {
		g.SetLimit(r.maxConcurrent)
	}
	for i, it := range p.Equipment.Slots() {
		i, it := i, it
		g.Go(func() error {
			cell, err := r.Render(ctx, it, ItemSize)
			out.Equipment[i] = cell
			return err
		})
	}
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			cell, err := r.Render(ctx, it, ItemSize)
			out.Inventory[i] = cell
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return SlotImages{}, err
	}
	return out, nil
}
