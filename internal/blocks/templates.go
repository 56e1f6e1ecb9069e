package blocks

import "github.com/google/uuid"

// Built-in templates are factories, not data: every invocation mints new row
// ids and item keys, so applying the same template twice never produces
// overlapping identities.

const (
	TemplateDefault   = "Case padrão"
	TemplateGallery   = "Galeria em grade"
	TemplateStatement = "Depoimento"
)

func BuiltinTemplateNames() []string {
	return []string{TemplateDefault, TemplateGallery, TemplateStatement}
}

// NewBuiltinTemplate returns a fresh block array for the named preset.
func NewBuiltinTemplate(name string) ([]Block, bool) {
	switch name {
	case TemplateDefault:
		return newDefaultCase(), true
	case TemplateGallery:
		return newGridGallery(), true
	case TemplateStatement:
		return newStatement(), true
	default:
		return nil, false
	}
}

// newDefaultCase is the canonical seven-block case layout:
// Hero, spacer, Introdução (2 texts), spacer, Galeria (2 columns, 1 image
// each), spacer, Resultados (2 texts).
func newDefaultCase() []Block {
	hero := namedContainer("Hero", 1)
	hero.Container.Slots[0] = []ContentItem{
		titleItem("Título do case", "h1"),
		coverImageItem(),
	}

	intro := namedContainer("Introdução", 1)
	intro.Container.Slots[0] = []ContentItem{
		textItem("Contexto do projeto."),
		textItem("O desafio que recebemos."),
	}

	gallery := namedContainer("Galeria", 2)
	gallery.Container.Slots[0] = []ContentItem{imageItem()}
	gallery.Container.Slots[1] = []ContentItem{imageItem()}

	results := namedContainer("Resultados", 1)
	results.Container.Slots[0] = []ContentItem{
		textItem("O que entregamos."),
		textItem("Números e impacto."),
	}

	return []Block{
		hero,
		NewSpacerBlock(HeightLG),
		intro,
		NewSpacerBlock(HeightMD),
		gallery,
		NewSpacerBlock(HeightMD),
		results,
	}
}

func newGridGallery() []Block {
	grid := namedContainer("Galeria", 3)
	for i := range grid.Container.Slots {
		grid.Container.Slots[i] = []ContentItem{imageItem(), imageItem()}
	}
	return []Block{grid}
}

func newStatement() []Block {
	quote := namedContainer("Depoimento", 1)
	quote.Container.Slots[0] = []ContentItem{
		titleItem("“Aspas do cliente”", "h2"),
		textItem("Quem disse, cargo e empresa."),
		buttonItem("Ver projeto", "#"),
	}
	return []Block{quote, NewSpacerBlock(HeightLG)}
}

func namedContainer(name string, columns int) Block {
	b := NewContainerBlock(columns)
	b.Container.Name = name
	return b
}

func titleItem(text, preset string) ContentItem {
	return ContentItem{Key: NewKey(), Type: ItemTitle, Title: &TitleContent{Text: text, Preset: preset}}
}

func textItem(body string) ContentItem {
	return ContentItem{Key: NewKey(), Type: ItemText, Text: &TextContent{Body: body, Format: "markdown"}}
}

func imageItem() ContentItem {
	return ContentItem{Key: NewKey(), Type: ItemImage, Image: &ImageContent{Aspect: "16:9"}}
}

func coverImageItem() ContentItem {
	return ContentItem{Key: NewKey(), Type: ItemImage, Image: &ImageContent{Cover: true}}
}

func buttonItem(label, href string) ContentItem {
	return ContentItem{Key: NewKey(), Type: ItemButton, Button: &ButtonContent{Label: label, Href: href, Variant: "primary"}}
}

// BlockIDs collects the row ids of a document, in order.
func BlockIDs(doc []Block) []uuid.UUID {
	out := make([]uuid.UUID, len(doc))
	for i, b := range doc {
		out[i] = b.ID
	}
	return out
}
