package blocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Document operations. All of them are copy-on-write: the input slice is
// never mutated, a new draft array is returned. The caller (controller,
// service, test) swaps the whole array, which is the only form of update the
// model supports.

var ErrNotFound = errors.New("block not found in draft")

// NewContainerBlock mints a draft container block with a fresh row id.
func NewContainerBlock(columns int) Block {
	c := NewContainerContent(columns)
	return Block{ID: uuid.New(), Type: BlockContainer, Container: &c}
}

// NewSpacerBlock mints a draft spacer block.
func NewSpacerBlock(height string) Block {
	s := NormalizeSpacer(&SpacerContent{Height: height})
	return Block{ID: uuid.New(), Type: BlockSpacer, Spacer: &s}
}

// InsertBlock splices b into doc at idx; idx is clamped to [0, len(doc)].
func InsertBlock(doc []Block, idx int, b Block) []Block {
	if idx < 0 {
		idx = 0
	}
	if idx > len(doc) {
		idx = len(doc)
	}
	out := make([]Block, 0, len(doc)+1)
	out = append(out, doc[:idx]...)
	out = append(out, b)
	out = append(out, doc[idx:]...)
	return out
}

// DuplicateBlock deep-clones the block with the given id, regenerates its row
// id and every nested item key, and inserts the clone right after the
// original. Returns the new doc and the clone's id.
func DuplicateBlock(doc []Block, id uuid.UUID) ([]Block, uuid.UUID, error) {
	idx := indexOfBlock(doc, id)
	if idx < 0 {
		return doc, uuid.Nil, ErrNotFound
	}
	clone := CloneBlock(doc[idx])
	return InsertBlock(doc, idx+1, clone), clone.ID, nil
}

// DeleteBlock removes the block with the given id. Deleting an absent id is a
// no-op, mirroring how the editor tolerates a stale selection.
func DeleteBlock(doc []Block, id uuid.UUID) []Block {
	out := make([]Block, 0, len(doc))
	for _, b := range doc {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

// RenameBlock sets the container's display name. An empty or whitespace-only
// name removes the field so the sidebar falls back to the type label. Spacers
// have no name; renaming one is a no-op.
func RenameBlock(doc []Block, id uuid.UUID, name string) ([]Block, error) {
	if idx := indexOfBlock(doc, id); idx >= 0 && doc[idx].Type == BlockSpacer {
		return doc, nil
	}
	return updateContainer(doc, id, func(c ContainerContent) (ContainerContent, error) {
		c.Name = strings.TrimSpace(name)
		return c, nil
	})
}

// SetColumns reshapes a container to the given column count. Shrinking is
// lossy: items in truncated columns are dropped, with no undo.
func SetColumns(doc []Block, id uuid.UUID, columns int) ([]Block, error) {
	return updateContainer(doc, id, func(c ContainerContent) (ContainerContent, error) {
		c.Columns = columns
		return NormalizeContainer(&c), nil
	})
}

// InsertItem splices item into the column at position idx; idx < 0 or past
// the end appends.
func InsertItem(doc []Block, blockID uuid.UUID, column, idx int, item ContentItem) ([]Block, error) {
	return updateColumn(doc, blockID, column, func(col []ContentItem) ([]ContentItem, error) {
		if idx < 0 || idx > len(col) {
			idx = len(col)
		}
		out := make([]ContentItem, 0, len(col)+1)
		out = append(out, col[:idx]...)
		out = append(out, item)
		out = append(out, col[idx:]...)
		return out, nil
	})
}

// DuplicateItem deep-clones the item with the given key, assigns a fresh key,
// and inserts the clone immediately after the original in the same column.
func DuplicateItem(doc []Block, blockID uuid.UUID, column int, key string) ([]Block, error) {
	return updateColumn(doc, blockID, column, func(col []ContentItem) ([]ContentItem, error) {
		idx := indexOfItem(col, key)
		if idx < 0 {
			return nil, fmt.Errorf("content item %q: %w", key, ErrNotFound)
		}
		clone := CloneItem(col[idx])
		out := make([]ContentItem, 0, len(col)+1)
		out = append(out, col[:idx+1]...)
		out = append(out, clone)
		out = append(out, col[idx+1:]...)
		return out, nil
	})
}

// DeleteItem removes the item with the given key from the column.
func DeleteItem(doc []Block, blockID uuid.UUID, column int, key string) ([]Block, error) {
	return updateColumn(doc, blockID, column, func(col []ContentItem) ([]ContentItem, error) {
		out := make([]ContentItem, 0, len(col))
		for _, it := range col {
			if it.Key != key {
				out = append(out, it)
			}
		}
		return out, nil
	})
}

// RenameItem sets or clears an item's display name, with the same
// blank-removes-it rule as RenameBlock.
func RenameItem(doc []Block, blockID uuid.UUID, column int, key, name string) ([]Block, error) {
	return updateColumn(doc, blockID, column, func(col []ContentItem) ([]ContentItem, error) {
		idx := indexOfItem(col, key)
		if idx < 0 {
			return nil, fmt.Errorf("content item %q: %w", key, ErrNotFound)
		}
		out := make([]ContentItem, len(col))
		copy(out, col)
		out[idx].Name = strings.TrimSpace(name)
		return out, nil
	})
}

// MoveIntent is the structured form of a drag gesture. BeforeKey names the
// item the moved one lands in front of; empty means append to the column.
type MoveIntent struct {
	From MoveEndpoint
	To   MoveEndpoint
}

type MoveEndpoint struct {
	BlockID   uuid.UUID
	Column    int
	ItemKey   string // From: the moved item. To: the before-target ("" = end).
}

// MoveItem removes the item named by From and splices it into To, either
// before To.ItemKey or at the end of the destination column. Dropping an item
// onto itself is a no-op. Both endpoints must be containers; a move into a
// spacer fails and leaves the document untouched.
func MoveItem(doc []Block, intent MoveIntent) ([]Block, error) {
	if intent.From.ItemKey == "" {
		return doc, fmt.Errorf("move: missing source item key")
	}
	if intent.From.ItemKey == intent.To.ItemKey {
		return doc, nil
	}

	var moved *ContentItem
	out, err := updateColumn(doc, intent.From.BlockID, intent.From.Column, func(col []ContentItem) ([]ContentItem, error) {
		idx := indexOfItem(col, intent.From.ItemKey)
		if idx < 0 {
			return nil, fmt.Errorf("content item %q: %w", intent.From.ItemKey, ErrNotFound)
		}
		it := col[idx]
		moved = &it
		trimmed := make([]ContentItem, 0, len(col)-1)
		trimmed = append(trimmed, col[:idx]...)
		trimmed = append(trimmed, col[idx+1:]...)
		return trimmed, nil
	})
	if err != nil {
		return doc, err
	}

	out, err = updateColumn(out, intent.To.BlockID, intent.To.Column, func(col []ContentItem) ([]ContentItem, error) {
		at := len(col)
		if intent.To.ItemKey != "" {
			if idx := indexOfItem(col, intent.To.ItemKey); idx >= 0 {
				at = idx
			}
		}
		spliced := make([]ContentItem, 0, len(col)+1)
		spliced = append(spliced, col[:at]...)
		spliced = append(spliced, *moved)
		spliced = append(spliced, col[at:]...)
		return spliced, nil
	})
	if err != nil {
		return doc, err
	}
	return out, nil
}

// CoverIndex returns the index of the column's cover image: the first item of
// type image with cover=true, or -1. If more than one item is marked, the
// first wins.
func CoverIndex(col []ContentItem) int {
	for i, it := range col {
		if it.Type == ItemImage && it.Image != nil && it.Image.Cover {
			return i
		}
	}
	return -1
}

// FindCover scans the whole document in block order and returns the image
// payload of the first item marked as cover. Ordering follows block position,
// then column, then item position within the column.
func FindCover(doc []Block) (ImageContent, bool) {
	for _, b := range doc {
		if b.Type != BlockContainer || b.Container == nil {
			continue
		}
		for _, col := range b.Container.Slots {
			if i := CoverIndex(col); i >= 0 {
				return *col[i].Image, true
			}
		}
	}
	return ImageContent{}, false
}

// ItemCount sums the items across all of a container's columns.
func ItemCount(b Block) int {
	if b.Type != BlockContainer || b.Container == nil {
		return 0
	}
	n := 0
	for _, col := range b.Container.Slots {
		n += len(col)
	}
	return n
}

// CloneBlock deep-clones a block and regenerates every identity on it: a new
// row id and a new key for each nested item.
func CloneBlock(b Block) Block {
	out := b
	out.ID = uuid.New()
	if b.Container != nil {
		c := cloneContainer(*b.Container)
		for ci := range c.Slots {
			for ii := range c.Slots[ci] {
				c.Slots[ci][ii] = CloneItem(c.Slots[ci][ii])
			}
		}
		out.Container = &c
	}
	if b.Spacer != nil {
		s := *b.Spacer
		out.Spacer = &s
	}
	return out
}

// CloneItem deep-clones a content item with a fresh key.
func CloneItem(it ContentItem) ContentItem {
	out := it
	out.Key = NewKey()
	if it.Image != nil {
		v := *it.Image
		out.Image = &v
	}
	if it.Text != nil {
		v := *it.Text
		out.Text = &v
	}
	if it.Video != nil {
		v := *it.Video
		out.Video = &v
	}
	if it.Title != nil {
		v := *it.Title
		out.Title = &v
	}
	if it.Button != nil {
		v := *it.Button
		out.Button = &v
	}
	return out
}

// Rekey deep-clones a whole document with all-new identities. Template
// instantiation and case duplication go through here so two materializations
// never share a key.
func Rekey(doc []Block) []Block {
	out := make([]Block, len(doc))
	for i, b := range doc {
		out[i] = CloneBlock(b)
	}
	return out
}

func indexOfBlock(doc []Block, id uuid.UUID) int {
	for i, b := range doc {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func indexOfItem(col []ContentItem, key string) int {
	for i, it := range col {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func updateContainer(doc []Block, id uuid.UUID, fn func(ContainerContent) (ContainerContent, error)) ([]Block, error) {
	idx := indexOfBlock(doc, id)
	if idx < 0 {
		return doc, fmt.Errorf("block %s: %w", id, ErrNotFound)
	}
	b := doc[idx]
	if b.Type != BlockContainer || b.Container == nil {
		return doc, fmt.Errorf("block %s is not a container", id)
	}
	next, err := fn(cloneContainer(*b.Container))
	if err != nil {
		return doc, err
	}
	out := make([]Block, len(doc))
	copy(out, doc)
	out[idx].Container = &next
	return out, nil
}

func updateColumn(doc []Block, blockID uuid.UUID, column int, fn func([]ContentItem) ([]ContentItem, error)) ([]Block, error) {
	return updateContainer(doc, blockID, func(c ContainerContent) (ContainerContent, error) {
		if column < 0 || column >= len(c.Slots) {
			return c, fmt.Errorf("column %d out of range for block %s", column, blockID)
		}
		next, err := fn(c.Slots[column])
		if err != nil {
			return c, err
		}
		c.Slots[column] = next
		return c, nil
	})
}
