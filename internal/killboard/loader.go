package killboard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeEvent reads a single kill event in the live feed JSON shape.
func DecodeEvent(r io.Reader) (*Event, error) {
	var ev Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}

func LoadEvent(path string) (*Event, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	ev, err := DecodeEvent(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ev, nil
}
