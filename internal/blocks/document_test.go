package blocks

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeDoc renders a document to its persisted form, which strips the
// local-only item keys. Comparing encoded forms checks structural equality
// without being tripped up by fresh identities.
func encodeDoc(t *testing.T, doc []Block) []string {
	t.Helper()
	out := make([]string, 0, len(doc))
	for _, b := range doc {
		raw, err := EncodeContent(b)
		require.NoError(t, err)
		out = append(out, string(b.Type)+":"+string(raw))
	}
	return out
}

func twoColumnContainer(t *testing.T) Block {
	t.Helper()
	b := NewContainerBlock(2)
	var err error
	b, _, err = appendItems(b, 0, textItem("primeiro"), imageItem())
	require.NoError(t, err)
	b, _, err = appendItems(b, 1, titleItem("Resultados", "h2"))
	require.NoError(t, err)
	return b
}

func appendItems(b Block, column int, items ...ContentItem) (Block, []Block, error) {
	doc := []Block{b}
	for _, it := range items {
		var err error
		doc, err = InsertItem(doc, b.ID, column, -1, it)
		if err != nil {
			return Block{}, nil, err
		}
	}
	return doc[0], doc, nil
}

func TestInsertBlockClampsIndex(t *testing.T) {
	doc := []Block{NewSpacerBlock(HeightMD)}

	doc = InsertBlock(doc, -5, NewContainerBlock(1))
	assert.Equal(t, BlockContainer, doc[0].Type)

	doc = InsertBlock(doc, 99, NewSpacerBlock(HeightLG))
	assert.Equal(t, HeightLG, doc[len(doc)-1].Spacer.Height)
	assert.Len(t, doc, 3)
}

func TestDuplicateThenDeleteRoundTrip(t *testing.T) {
	doc := []Block{twoColumnContainer(t), NewSpacerBlock(HeightSM)}
	before := encodeDoc(t, doc)

	dup, newID, err := DuplicateBlock(doc, doc[0].ID)
	require.NoError(t, err)
	require.Len(t, dup, 3)
	assert.NotEqual(t, doc[0].ID, newID)
	assert.Equal(t, newID, dup[1].ID)

	after := DeleteBlock(dup, newID)
	assert.Equal(t, before, encodeDoc(t, after))
}

func TestDuplicateBlockFreshIdentities(t *testing.T) {
	doc := []Block{twoColumnContainer(t)}
	dup, newID, err := DuplicateBlock(doc, doc[0].ID)
	require.NoError(t, err)

	orig, copied := dup[0], dup[1]
	assert.Equal(t, newID, copied.ID)
	keys := map[string]bool{}
	for _, col := range orig.Container.Slots {
		for _, it := range col {
			keys[it.Key] = true
		}
	}
	for _, col := range copied.Container.Slots {
		for _, it := range col {
			assert.False(t, keys[it.Key], "duplicated item reused key %s", it.Key)
		}
	}
}

func TestDeleteBlockAbsentIsNoop(t *testing.T) {
	doc := []Block{NewSpacerBlock(HeightMD)}
	got := DeleteBlock(doc, uuid.New())
	assert.Equal(t, doc, got)
}

func TestRenameBlock(t *testing.T) {
	c := NewContainerBlock(1)
	doc := []Block{c, NewSpacerBlock(HeightMD)}

	doc, err := RenameBlock(doc, c.ID, "  Galeria  ")
	require.NoError(t, err)
	assert.Equal(t, "Galeria", doc[0].Container.Name)

	// renaming a spacer is accepted and changes nothing
	got, err := RenameBlock(doc, doc[1].ID, "nope")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestSetColumnsLosesOverflow(t *testing.T) {
	b := NewContainerBlock(3)
	doc := []Block{b}
	var err error
	doc, err = InsertItem(doc, b.ID, 0, -1, textItem("a"))
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 1, -1, textItem("b"))
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 2, -1, textItem("c"))
	require.NoError(t, err)

	doc, err = SetColumns(doc, b.ID, 1)
	require.NoError(t, err)
	got := doc[0].Container
	assert.Equal(t, 1, got.Columns)
	require.Len(t, got.Slots, 1)
	require.Len(t, got.Slots[0], 1)
	assert.Equal(t, "a", got.Slots[0][0].Text.Body)

	// widening back does not resurrect the dropped items
	doc, err = SetColumns(doc, b.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, ItemCount(doc[0]))
}

func TestInsertItemAppendsOnOutOfRangeIndex(t *testing.T) {
	b := NewContainerBlock(1)
	doc := []Block{b}
	var err error
	doc, err = InsertItem(doc, b.ID, 0, -1, textItem("um"))
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 0, 99, textItem("dois"))
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 0, 1, textItem("meio"))
	require.NoError(t, err)

	col := doc[0].Container.Slots[0]
	require.Len(t, col, 3)
	assert.Equal(t, "um", col[0].Text.Body)
	assert.Equal(t, "meio", col[1].Text.Body)
	assert.Equal(t, "dois", col[2].Text.Body)
}

func TestDuplicateItemPlacedAfterOriginal(t *testing.T) {
	b := NewContainerBlock(1)
	doc := []Block{b}
	var err error
	doc, err = InsertItem(doc, b.ID, 0, -1, textItem("alvo"))
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 0, -1, textItem("depois"))
	require.NoError(t, err)

	key := doc[0].Container.Slots[0][0].Key
	doc, err = DuplicateItem(doc, b.ID, 0, key)
	require.NoError(t, err)

	col := doc[0].Container.Slots[0]
	require.Len(t, col, 3)
	assert.Equal(t, "alvo", col[0].Text.Body)
	assert.Equal(t, "alvo", col[1].Text.Body)
	assert.NotEqual(t, col[0].Key, col[1].Key)
	assert.Equal(t, "depois", col[2].Text.Body)
}

func TestMoveItemPreservesContent(t *testing.T) {
	left := NewContainerBlock(2)
	right := NewContainerBlock(1)
	doc := []Block{left, NewSpacerBlock(HeightMD), right}
	var err error
	doc, err = InsertItem(doc, left.ID, 0, -1, textItem("movido"))
	require.NoError(t, err)
	doc, err = InsertItem(doc, left.ID, 0, -1, imageItem())
	require.NoError(t, err)
	doc, err = InsertItem(doc, right.ID, 0, -1, textItem("ancora"))
	require.NoError(t, err)

	movedKey := doc[0].Container.Slots[0][0].Key
	anchorKey := doc[2].Container.Slots[0][0].Key
	totalBefore := ItemCount(doc[0]) + ItemCount(doc[2])

	doc, err = MoveItem(doc, MoveIntent{
		From: MoveEndpoint{BlockID: left.ID, Column: 0, ItemKey: movedKey},
		To:   MoveEndpoint{BlockID: right.ID, Column: 0, ItemKey: anchorKey},
	})
	require.NoError(t, err)

	assert.Equal(t, totalBefore, ItemCount(doc[0])+ItemCount(doc[2]))
	destCol := doc[2].Container.Slots[0]
	require.Len(t, destCol, 2)
	assert.Equal(t, movedKey, destCol[0].Key)
	assert.Equal(t, "movido", destCol[0].Text.Body)
	assert.Equal(t, "ancora", destCol[1].Text.Body)
	assert.Len(t, doc[0].Container.Slots[0], 1)
}

func TestMoveItemAppendOnEmptyBeforeKey(t *testing.T) {
	b := NewContainerBlock(2)
	doc := []Block{b}
	var err error
	doc, err = InsertItem(doc, b.ID, 0, -1, textItem("solto"))
	require.NoError(t, err)

	key := doc[0].Container.Slots[0][0].Key
	doc, err = MoveItem(doc, MoveIntent{
		From: MoveEndpoint{BlockID: b.ID, Column: 0, ItemKey: key},
		To:   MoveEndpoint{BlockID: b.ID, Column: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, doc[0].Container.Slots[0])
	require.Len(t, doc[0].Container.Slots[1], 1)
	assert.Equal(t, key, doc[0].Container.Slots[1][0].Key)
}

func TestMoveItemBeforeItselfIsNoop(t *testing.T) {
	b := NewContainerBlock(1)
	doc := []Block{b}
	var err error
	doc, err = InsertItem(doc, b.ID, 0, -1, textItem("fixo"))
	require.NoError(t, err)

	key := doc[0].Container.Slots[0][0].Key
	got, err := MoveItem(doc, MoveIntent{
		From: MoveEndpoint{BlockID: b.ID, Column: 0, ItemKey: key},
		To:   MoveEndpoint{BlockID: b.ID, Column: 0, ItemKey: key},
	})
	require.NoError(t, err)
	assert.Equal(t, encodeDoc(t, doc), encodeDoc(t, got))
}

func TestMoveItemIntoSpacerFailsWithoutLoss(t *testing.T) {
	src := NewContainerBlock(1)
	spacer := NewSpacerBlock(HeightMD)
	doc := []Block{src, spacer}
	var err error
	doc, err = InsertItem(doc, src.ID, 0, -1, textItem("sobrevive"))
	require.NoError(t, err)

	key := doc[0].Container.Slots[0][0].Key
	got, err := MoveItem(doc, MoveIntent{
		From: MoveEndpoint{BlockID: src.ID, Column: 0, ItemKey: key},
		To:   MoveEndpoint{BlockID: spacer.ID, Column: 0},
	})
	require.Error(t, err)
	assert.Equal(t, encodeDoc(t, doc), encodeDoc(t, got))
	assert.Equal(t, 1, ItemCount(got[0]))
}

func TestMoveItemUnknownSource(t *testing.T) {
	doc := []Block{NewContainerBlock(1)}
	_, err := MoveItem(doc, MoveIntent{
		From: MoveEndpoint{BlockID: doc[0].ID, Column: 0, ItemKey: NewKey()},
		To:   MoveEndpoint{BlockID: doc[0].ID, Column: 0},
	})
	assert.Error(t, err)
}

func TestCoverIndexFirstFlaggedImageWins(t *testing.T) {
	b := NewContainerBlock(1)
	doc := []Block{NewSpacerBlock(HeightMD), b}
	var err error
	doc, err = InsertItem(doc, b.ID, 0, -1, imageItem())
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 0, -1, coverImageItem())
	require.NoError(t, err)
	doc, err = InsertItem(doc, b.ID, 0, -1, coverImageItem())
	require.NoError(t, err)

	assert.Equal(t, 1, CoverIndex(doc[1].Container.Slots[0]))

	cover, ok := FindCover(doc)
	require.True(t, ok)
	assert.True(t, cover.Cover)

	_, ok = FindCover([]Block{NewSpacerBlock(HeightSM)})
	assert.False(t, ok)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	doc := []Block{twoColumnContainer(t)}
	before := encodeDoc(t, doc)

	_, err := RenameItem(doc, doc[0].ID, 0, doc[0].Container.Slots[0][0].Key, "renomeado")
	require.NoError(t, err)
	_, err = SetColumns(doc, doc[0].ID, 1)
	require.NoError(t, err)
	_, err = DeleteItem(doc, doc[0].ID, 0, doc[0].Container.Slots[0][0].Key)
	require.NoError(t, err)

	assert.Equal(t, before, encodeDoc(t, doc))
}
