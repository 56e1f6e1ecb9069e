package blocks

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeContentStripsItemKeys(t *testing.T) {
	b := NewContainerBlock(1)
	b.Container.Slots[0] = []ContentItem{textItem("oi"), imageItem()}

	raw, err := EncodeContent(b)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "_key")
	assert.Contains(t, string(raw), `"body":"oi"`)

	// the in-memory draft still has its keys
	for _, it := range b.Container.Slots[0] {
		assert.NotEmpty(t, it.Key)
	}
}

func TestDecodeBlockRegeneratesKeys(t *testing.T) {
	b := NewContainerBlock(2)
	b.Container.Slots[0] = []ContentItem{textItem("a")}
	b.Container.Slots[1] = []ContentItem{buttonItem("Ver", "#")}

	raw, err := EncodeContent(b)
	require.NoError(t, err)

	back, err := DecodeBlock(b.ID, string(BlockContainer), raw)
	require.NoError(t, err)
	assert.Equal(t, b.ID, back.ID)
	for _, col := range back.Container.Slots {
		for _, it := range col {
			assert.NotEmpty(t, it.Key)
		}
	}
	assert.Equal(t, "a", back.Container.Slots[0][0].Text.Body)
	assert.Equal(t, "Ver", back.Container.Slots[1][0].Button.Label)
}

func TestDecodeBlockNormalizesMalformedContent(t *testing.T) {
	id := uuid.New()

	t.Run("empty content", func(t *testing.T) {
		b, err := DecodeBlock(id, string(BlockContainer), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, b.Container.Columns)
		require.Len(t, b.Container.Slots, 1)
	})

	t.Run("columns out of range", func(t *testing.T) {
		b, err := DecodeBlock(id, string(BlockContainer), []byte(`{"columns":12}`))
		require.NoError(t, err)
		assert.Equal(t, 4, b.Container.Columns)
	})

	t.Run("spacer with bad height", func(t *testing.T) {
		b, err := DecodeBlock(id, string(BlockSpacer), []byte(`{"height":"gigante"}`))
		require.NoError(t, err)
		assert.Equal(t, HeightMD, b.Spacer.Height)
	})

	t.Run("unknown block type", func(t *testing.T) {
		_, err := DecodeBlock(id, "carousel", []byte(`{}`))
		assert.Error(t, err)
	})
}

func TestDecodeBlockMintsMissingID(t *testing.T) {
	one, err := DecodeBlock(uuid.Nil, string(BlockContainer), []byte(`{"columns":1}`))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, one.ID)

	// two id-less blocks in one submission never collapse onto one key
	two, err := DecodeBlock(uuid.Nil, string(BlockSpacer), nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, two.ID)
	assert.NotEqual(t, one.ID, two.ID)
}

func TestDecodeBlockLegacyItemWithoutContent(t *testing.T) {
	raw := []byte(`{"columns":1,"slots":[[{"type":"text"}]]}`)
	b, err := DecodeBlock(uuid.New(), string(BlockContainer), raw)
	require.NoError(t, err)
	it := b.Container.Slots[0][0]
	assert.Equal(t, ItemText, it.Type)
	require.NotNil(t, it.Text)
	assert.Empty(t, it.Text.Body)
	assert.NotEmpty(t, it.Key)
}

func TestDecodeBlockUnknownItemType(t *testing.T) {
	raw := []byte(`{"columns":1,"slots":[[{"type":"embed","content":{}}]]}`)
	_, err := DecodeBlock(uuid.New(), string(BlockContainer), raw)
	assert.Error(t, err)
}

func TestBlockJSONRoundTrip(t *testing.T) {
	doc, _ := NewBuiltinTemplate(TemplateGallery)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var back []Block
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, len(doc))
	for i := range back {
		assert.Equal(t, doc[i].ID, back[i].ID)
	}
	assert.Equal(t, encodeDoc(t, doc), encodeDoc(t, back))
}
