package blocks

// DefaultItem returns a fresh content item of the given type with its default
// payload and a new identity key. Used whenever the palette or an "add
// content" menu inserts a new item.
func DefaultItem(t ItemType) (ContentItem, bool) {
	it := ContentItem{Key: NewKey(), Type: t}
	switch t {
	case ItemImage:
		it.Image = &ImageContent{Aspect: "16:9"}
	case ItemText:
		it.Text = &TextContent{Format: "markdown", Alignment: "left"}
	case ItemVideo:
		it.Video = &VideoContent{Aspect: "16:9"}
	case ItemTitle:
		it.Title = &TitleContent{Preset: "h2"}
	case ItemButton:
		it.Button = &ButtonContent{Label: "Saiba mais", Variant: "primary"}
	default:
		return ContentItem{}, false
	}
	return it, true
}

// DefaultLabel is the sidebar fallback label for an unnamed node.
func DefaultLabel(t ItemType) string {
	switch t {
	case ItemImage:
		return "Imagem"
	case ItemText:
		return "Texto"
	case ItemVideo:
		return "Vídeo"
	case ItemTitle:
		return "Título"
	case ItemButton:
		return "Botão"
	default:
		return string(t)
	}
}
