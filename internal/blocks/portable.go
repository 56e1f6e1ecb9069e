package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Portable JSON is the custom-template interchange shape: an array of
// {type, content} objects with every writer-local field (row id, item _key)
// stripped, so the stored template carries only content.

type portableBlock struct {
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalPortable strips identities and serializes the document for template
// storage.
func MarshalPortable(doc []Block) ([]byte, error) {
	out := make([]portableBlock, 0, len(doc))
	for i, b := range doc {
		raw, err := EncodeContent(b)
		if err != nil {
			return nil, fmt.Errorf("encode block %d: %w", i, err)
		}
		out = append(out, portableBlock{Type: b.Type, Content: raw})
	}
	return json.Marshal(out)
}

// UnmarshalPortable rehydrates template JSON into draft blocks, minting a
// fresh row id per block and a fresh key per item so the result never
// collides with an already-open draft.
func UnmarshalPortable(data []byte) ([]Block, error) {
	var raw []portableBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode template json: %w", err)
	}
	out := make([]Block, 0, len(raw))
	for i, pb := range raw {
		b, err := DecodeBlock(uuid.New(), string(pb.Type), pb.Content)
		if err != nil {
			return nil, fmt.Errorf("decode template block %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
