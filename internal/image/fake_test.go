package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/youruser/killfeedapp/internal/killboard"
)

const (
	testItemBase = "https://render.test/v1/item/"
	testSheetURL = "https://assets.test/fame-list__icons.png"
)

var (
	fameIconColor   = color.NRGBA{R: 220, G: 30, B: 30, A: 255}
	swordsIconColor = color.NRGBA{R: 30, G: 30, B: 220, A: 255}
	errFakeFetch    = errors.New("fake fetch failure")
)

// fakeFetcher serves a solid colour per URL and the two-colour icon sheet.
type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: map[string]int{}, fail: map[string]bool{}}
}

func (f *fakeFetcher) failURL(url string) {
	f.mu.Lock()
	f.fail[url] = true
	f.mu.Unlock()
}

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (image.Image, error) {
	f.mu.Lock()
	f.calls[url]++
	fail := f.fail[url]
	f.mu.Unlock()

	if fail {
		return nil, errFakeFetch
	}
	if url == testSheetURL {
		return testSheet(), nil
	}
	return imaging.New(217, 217, colorFor(url)), nil
}

func testSheet() *image.NRGBA {
	sheet := imaging.New(220, 100, color.NRGBA{})
	fillRect(sheet, fameIconColor, 0, 0, 100, 100)
	fillRect(sheet, swordsIconColor, 110, 0, 210, 100)
	return sheet
}

func colorFor(url string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	v := h.Sum32()
	return color.NRGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 255}
}

func testItem(n int) *killboard.Item {
	return &killboard.Item{Type: fmt.Sprintf("T%d_TEST_ITEM_%d", 4+n%5, n), Count: n%12 + 1, Quality: n % 5}
}

// testEvent builds an event whose victim has all six slots equipped and
// inventory items interleaved with empty entries.
func testEvent(inventory int, fame int64, power float64) *killboard.Event {
	victim := killboard.Participant{
		Name:             "victim",
		AverageItemPower: power,
		Equipment: killboard.Equipment{
			MainHand: testItem(0),
			OffHand:  testItem(1),
			Armor:    testItem(2),
			Shoes:    testItem(3),
			Head:     testItem(4),
			Mount:    testItem(5),
		},
	}
	for i := 0; i < inventory; i++ {
		victim.Inventory = append(victim.Inventory, nil, testItem(100+i))
	}
	return &killboard.Event{
		EventID:             987,
		TotalVictimKillFame: fame,
		Victim:              victim,
		Killer:              killboard.Participant{Name: "killer", AverageItemPower: 900},
	}
}

func newTestComposer(f Fetcher, minFame int64) *Composer {
	return NewComposer(f, NewResources(f, testSheetURL), Options{
		ItemBaseURL: testItemBase,
		MinFame:     minFame,
		Logger:      zerolog.Nop(),
	})
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
