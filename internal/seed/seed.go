// Package seed holds the fixed talk dataset the catalog is reset to.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/sakif/talk-catalog/internal/model"
)

//go:embed talks.json
var talksJSON []byte

// Talks decodes the embedded dataset. Every call returns a fresh slice.
func Talks() ([]model.Talk, error) {
	return decode(talksJSON)
}

func decode(data []byte) ([]model.Talk, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var talks []model.Talk
	if err := dec.Decode(&talks); err != nil {
		return nil, fmt.Errorf("seed: decoding talks: %w", err)
	}

	seen := make(map[int64]bool, len(talks))
	for _, t := range talks {
		if seen[t.TalkID] {
			return nil, fmt.Errorf("seed: duplicate talk_id %d", t.TalkID)
		}
		seen[t.TalkID] = true
	}

	return talks, nil
}
