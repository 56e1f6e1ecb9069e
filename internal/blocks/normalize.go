package blocks

// NormalizeContainer repairs a possibly-partial or legacy container payload:
// columns clamped to [MinColumns, MaxColumns], slots padded or truncated to
// exactly `columns` entries, and every slot a non-nil array. Idempotent:
// normalizing a normalized value yields an equal value.
func NormalizeContainer(c *ContainerContent) ContainerContent {
	var out ContainerContent
	if c != nil {
		out = cloneContainer(*c)
	}
	if out.Columns < MinColumns {
		out.Columns = MinColumns
	}
	if out.Columns > MaxColumns {
		out.Columns = MaxColumns
	}
	switch {
	case len(out.Slots) > out.Columns:
		out.Slots = out.Slots[:out.Columns]
	case len(out.Slots) < out.Columns:
		padded := make([][]ContentItem, out.Columns)
		copy(padded, out.Slots)
		out.Slots = padded
	}
	for i := range out.Slots {
		if out.Slots[i] == nil {
			out.Slots[i] = []ContentItem{}
		}
	}
	return out
}

func NormalizeSpacer(s *SpacerContent) SpacerContent {
	var out SpacerContent
	if s != nil {
		out = *s
	}
	switch out.Height {
	case HeightSM, HeightMD, HeightLG, HeightXL:
	default:
		out.Height = HeightMD
	}
	return out
}

// NewContainerContent returns an empty container with `columns` empty slots.
func NewContainerContent(columns int) ContainerContent {
	return NormalizeContainer(&ContainerContent{Columns: columns})
}

func cloneContainer(c ContainerContent) ContainerContent {
	out := c
	out.Slots = make([][]ContentItem, len(c.Slots))
	for i, col := range c.Slots {
		if col == nil {
			continue
		}
		out.Slots[i] = make([]ContentItem, len(col))
		copy(out.Slots[i], col)
	}
	if c.Padding != nil {
		p := *c.Padding
		out.Padding = &p
	}
	return out
}
