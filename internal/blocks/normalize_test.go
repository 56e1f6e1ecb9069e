package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContainerClampsColumns(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"one", 1, 1},
		{"four", 4, 4},
		{"too many", 9, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeContainer(&ContainerContent{Columns: tc.in})
			assert.Equal(t, tc.want, got.Columns)
			assert.Len(t, got.Slots, tc.want)
		})
	}
}

func TestNormalizeContainerRepairsSlots(t *testing.T) {
	item := func() ContentItem { return textItem("x") }

	t.Run("pads missing columns", func(t *testing.T) {
		got := NormalizeContainer(&ContainerContent{Columns: 3, Slots: [][]ContentItem{{item()}}})
		require.Len(t, got.Slots, 3)
		assert.Len(t, got.Slots[0], 1)
		assert.NotNil(t, got.Slots[1])
		assert.NotNil(t, got.Slots[2])
	})

	t.Run("truncates extra columns", func(t *testing.T) {
		got := NormalizeContainer(&ContainerContent{
			Columns: 2,
			Slots:   [][]ContentItem{{item()}, {item()}, {item(), item()}},
		})
		require.Len(t, got.Slots, 2)
	})

	t.Run("nil slot becomes empty array", func(t *testing.T) {
		got := NormalizeContainer(&ContainerContent{Columns: 2, Slots: [][]ContentItem{nil, nil}})
		for _, col := range got.Slots {
			assert.NotNil(t, col)
			assert.Empty(t, col)
		}
	})

	t.Run("nil payload", func(t *testing.T) {
		got := NormalizeContainer(nil)
		assert.Equal(t, 1, got.Columns)
		require.Len(t, got.Slots, 1)
		assert.NotNil(t, got.Slots[0])
	})
}

func TestNormalizeContainerIdempotent(t *testing.T) {
	raws := []*ContainerContent{
		nil,
		{},
		{Columns: 7, Slots: [][]ContentItem{{textItem("a")}, nil}},
		{Columns: 2, Slots: [][]ContentItem{{imageItem(), textItem("b")}, {titleItem("t", "h2")}}},
		{Columns: -1, BackgroundColor: "#111", Name: "Hero"},
	}
	for _, raw := range raws {
		once := NormalizeContainer(raw)
		twice := NormalizeContainer(&once)
		assert.Equal(t, once, twice)
		assert.Equal(t, once.Columns, len(once.Slots))
	}
}

func TestNormalizeSpacer(t *testing.T) {
	assert.Equal(t, HeightMD, NormalizeSpacer(nil).Height)
	assert.Equal(t, HeightMD, NormalizeSpacer(&SpacerContent{Height: "huge"}).Height)
	assert.Equal(t, HeightXL, NormalizeSpacer(&SpacerContent{Height: HeightXL}).Height)
}

func TestNewContainerContent(t *testing.T) {
	c := NewContainerContent(3)
	assert.Equal(t, 3, c.Columns)
	require.Len(t, c.Slots, 3)
	for _, col := range c.Slots {
		assert.Empty(t, col)
	}
}
