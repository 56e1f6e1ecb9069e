package blocks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type BlockType string

const (
	BlockContainer BlockType = "container"
	BlockSpacer    BlockType = "spacer"
)

type ItemType string

const (
	ItemImage  ItemType = "image"
	ItemText   ItemType = "text"
	ItemVideo  ItemType = "video"
	ItemTitle  ItemType = "title"
	ItemButton ItemType = "button"
)

const (
	MinColumns = 1
	MaxColumns = 4
)

// SpacerHeight presets. Anything else normalizes to HeightMD.
const (
	HeightSM = "sm"
	HeightMD = "md"
	HeightLG = "lg"
	HeightXL = "xl"
)

// Block is one node of a case page. The ID doubles as persistence row id and
// local editing key; drafts that were never saved still carry a real uuid.
// Exactly one of Container/Spacer is set, matching Type.
type Block struct {
	ID        uuid.UUID
	Type      BlockType
	Container *ContainerContent
	Spacer    *SpacerContent
}

type ContainerContent struct {
	Columns         int             `json:"columns"`
	Slots           [][]ContentItem `json:"slots"`
	BackgroundColor string          `json:"backgroundColor,omitempty"`
	Padding         *Padding        `json:"padding,omitempty"`
	Name            string          `json:"name,omitempty"`
}

type Padding struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

type SpacerContent struct {
	Height string `json:"height"`
}

// ContentItem is a leaf node inside a container column. Key is the local-only
// identity used for list reconciliation; it is stripped on persistence and on
// template export, and regenerated on every clone. Exactly one payload
// pointer is set, matching Type.
type ContentItem struct {
	Key    string
	Type   ItemType
	Name   string
	Image  *ImageContent
	Text   *TextContent
	Video  *VideoContent
	Title  *TitleContent
	Button *ButtonContent
}

type ImageContent struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Aspect string `json:"aspect,omitempty"`
	Crop   string `json:"crop,omitempty"`
	Cover  bool   `json:"cover,omitempty"`
}

type TextContent struct {
	Body      string `json:"body"`
	Format    string `json:"format,omitempty"`
	Alignment string `json:"alignment,omitempty"`
	Preset    string `json:"preset,omitempty"`
}

type VideoContent struct {
	URL        string `json:"url,omitempty"`
	Provider   string `json:"provider,omitempty"`
	PlaybackID string `json:"playbackId,omitempty"`
	Aspect     string `json:"aspect,omitempty"`
	Autoplay   bool   `json:"autoplay,omitempty"`
}

type TitleContent struct {
	Text   string `json:"text"`
	Preset string `json:"preset,omitempty"`
	Color  string `json:"color,omitempty"`
}

type ButtonContent struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Variant string `json:"variant,omitempty"`
}

// NewKey mints a fresh local identity key.
func NewKey() string { return uuid.NewString() }

type itemEnvelope struct {
	Key     string          `json:"_key,omitempty"`
	Type    ItemType        `json:"type"`
	Name    string          `json:"name,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (it ContentItem) MarshalJSON() ([]byte, error) {
	payload, err := it.payload()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemEnvelope{
		Key:     it.Key,
		Type:    it.Type,
		Name:    it.Name,
		Content: raw,
	})
}

func (it *ContentItem) UnmarshalJSON(data []byte) error {
	var env itemEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	out := ContentItem{Key: env.Key, Type: env.Type, Name: env.Name}
	if err := out.decodePayload(env.Content); err != nil {
		return err
	}
	*it = out
	return nil
}

func (it ContentItem) payload() (interface{}, error) {
	switch it.Type {
	case ItemImage:
		return orDefault(it.Image, &ImageContent{}), nil
	case ItemText:
		return orDefault(it.Text, &TextContent{}), nil
	case ItemVideo:
		return orDefault(it.Video, &VideoContent{}), nil
	case ItemTitle:
		return orDefault(it.Title, &TitleContent{}), nil
	case ItemButton:
		return orDefault(it.Button, &ButtonContent{}), nil
	default:
		return nil, fmt.Errorf("unknown content item type %q", it.Type)
	}
}

func (it *ContentItem) decodePayload(raw json.RawMessage) error {
	// A missing content object is a legacy shape; decode into the zero payload.
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch it.Type {
	case ItemImage:
		it.Image = &ImageContent{}
		return json.Unmarshal(raw, it.Image)
	case ItemText:
		it.Text = &TextContent{}
		return json.Unmarshal(raw, it.Text)
	case ItemVideo:
		it.Video = &VideoContent{}
		return json.Unmarshal(raw, it.Video)
	case ItemTitle:
		it.Title = &TitleContent{}
		return json.Unmarshal(raw, it.Title)
	case ItemButton:
		it.Button = &ButtonContent{}
		return json.Unmarshal(raw, it.Button)
	default:
		return fmt.Errorf("unknown content item type %q", it.Type)
	}
}

func orDefault[T any](v *T, def *T) *T {
	if v != nil {
		return v
	}
	return def
}

type blockEnvelope struct {
	ID      uuid.UUID       `json:"id"`
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	raw, err := b.encodeContent(false)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockEnvelope{ID: b.ID, Type: b.Type, Content: raw})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	decoded, err := DecodeBlock(env.ID, string(env.Type), env.Content)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// EncodeContent serializes the block's payload for persistence. Local item
// keys are stripped: they exist only inside an editing session.
func EncodeContent(b Block) ([]byte, error) {
	return b.encodeContent(true)
}

func (b Block) encodeContent(stripKeys bool) ([]byte, error) {
	switch b.Type {
	case BlockContainer:
		c := NormalizeContainer(b.Container)
		if stripKeys {
			c = stripItemKeys(c)
		}
		return json.Marshal(c)
	case BlockSpacer:
		s := NormalizeSpacer(b.Spacer)
		return json.Marshal(s)
	default:
		return nil, fmt.Errorf("unknown block type %q", b.Type)
	}
}

// DecodeBlock turns a persisted (or client-submitted) row back into a Block.
// This is the single deserialization boundary: content is normalized here,
// every item gets a local key, and a zero row id gets a fresh uuid, so
// downstream code never sees a malformed, keyless, or id-less shape.
func DecodeBlock(id uuid.UUID, typ string, content []byte) (Block, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	if len(content) == 0 {
		content = []byte("{}")
	}
	switch BlockType(typ) {
	case BlockContainer:
		var c ContainerContent
		if err := json.Unmarshal(content, &c); err != nil {
			return Block{}, fmt.Errorf("decode container content: %w", err)
		}
		norm := NormalizeContainer(&c)
		norm = ensureItemKeys(norm)
		return Block{ID: id, Type: BlockContainer, Container: &norm}, nil
	case BlockSpacer:
		var s SpacerContent
		if err := json.Unmarshal(content, &s); err != nil {
			return Block{}, fmt.Errorf("decode spacer content: %w", err)
		}
		norm := NormalizeSpacer(&s)
		return Block{ID: id, Type: BlockSpacer, Spacer: &norm}, nil
	default:
		return Block{}, fmt.Errorf("unknown block type %q", typ)
	}
}

func stripItemKeys(c ContainerContent) ContainerContent {
	out := cloneContainer(c)
	for ci := range out.Slots {
		for ii := range out.Slots[ci] {
			out.Slots[ci][ii].Key = ""
		}
	}
	return out
}

func ensureItemKeys(c ContainerContent) ContainerContent {
	out := cloneContainer(c)
	for ci := range out.Slots {
		for ii := range out.Slots[ci] {
			if out.Slots[ci][ii].Key == "" {
				out.Slots[ci][ii].Key = NewKey()
			}
		}
	}
	return out
}
