package killboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Side names one participant of a kill event, as keyed in the live feed.
type Side string

const (
	Victim Side = "Victim"
	Killer Side = "Killer"
)

var ErrUnknownSide = errors.New("unknown event side")

// ParseSide accepts the feed labels case-insensitively ("victim", "Killer").
func ParseSide(s string) (Side, error) {
	switch {
	case strings.EqualFold(s, string(Victim)):
		return Victim, nil
	case strings.EqualFold(s, string(Killer)):
		return Killer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

type Item struct {
	Type    string `json:"Type"`
	Count   int    `json:"Count"`
	Quality int    `json:"Quality"`
}

type Equipment struct {
	MainHand *Item `json:"MainHand"`
	OffHand  *Item `json:"OffHand"`
	Armor    *Item `json:"Armor"`
	Shoes    *Item `json:"Shoes"`
	Head     *Item `json:"Head"`
	Mount    *Item `json:"Mount"`
}

// Slots returns the six equipment slots in render order. Empty slots stay nil.
func (e Equipment) Slots() [6]*Item {
	return [6]*Item{e.MainHand, e.OffHand, e.Armor, e.Shoes, e.Head, e.Mount}
}

type Participant struct {
	Name             string    `json:"Name"`
	GuildName        string    `json:"GuildName"`
	AllianceName     string    `json:"AllianceName"`
	AverageItemPower float64   `json:"AverageItemPower"`
	Equipment        Equipment `json:"Equipment"`
	Inventory        []*Item   `json:"Inventory"`
}

// Items returns the non-empty inventory entries in their original order.
func (p Participant) Items() []*Item {
	out := make([]*Item, 0, len(p.Inventory))
	for _, it := range p.Inventory {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

type Event struct {
	EventID             int64       `json:"EventId"`
	TimeStamp           string      `json:"TimeStamp"`
	TotalVictimKillFame int64       `json:"TotalVictimKillFame"`
	Killer              Participant `json:"Killer"`
	Victim              Participant `json:"Victim"`
}

func (e *Event) Participant(side Side) (*Participant, error) {
	switch side {
	case Victim:
		return &e.Victim, nil
	case Killer:
		return &e.Killer, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSide, string(side))
}

const killboardBaseURL = "https://albiononline.com/en/killboard/kill/"

// KillboardURL links to the public killboard page of an event.
func KillboardURL(eventID int64) string {
	return killboardBaseURL + strconv.FormatInt(eventID, 10)
}
