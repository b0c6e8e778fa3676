package main

type ComponentKind string

const (
	KindButton ComponentKind = "button"
	KindText   ComponentKind = "text"
	KindImage  ComponentKind = "image"
	KindInput  ComponentKind = "input"
)

type Style struct {
	BackgroundColor string
	Color           string
	FontSize        int
	BorderRadius    int
}

type Component struct {
	ID      string
	Kind    ComponentKind
	X       int
	Y       int
	Width   int
	Height  int
	Content string
	Style   *Style
}

type Page struct {
	ID         string
	Name       string
	Components []Component
}

// LibraryItem is one draggable entry of the component library.
type LibraryItem struct {
	Kind           ComponentKind
	Label          string
	DefaultContent string
	Swatch         string
}

var componentLibrary = []LibraryItem{
	{Kind: KindButton, Label: "Button", DefaultContent: "Click me", Swatch: "#3b82f6"},
	{Kind: KindText, Label: "Text", DefaultContent: "Hello World", Swatch: "#22c55e"},
	{Kind: KindImage, Label: "Image", DefaultContent: "Image", Swatch: "#a855f7"},
	{Kind: KindInput, Label: "Input", DefaultContent: "Enter text", Swatch: "#f97316"},
}

func libraryItemFor(kind ComponentKind) LibraryItem {
	for _, item := range componentLibrary {
		if item.Kind == kind {
			return item
		}
	}
	return componentLibrary[0]
}

func defaultStyle(kind ComponentKind) *Style {
	style := &Style{
		BackgroundColor: "transparent",
		Color:           "#1f2937",
		FontSize:        defaultFontSize,
		BorderRadius:    defaultBorderRadius,
	}
	if kind == KindButton {
		style.BackgroundColor = "#3b82f6"
		style.Color = "white"
	}
	return style
}

func (c Component) clone() Component {
	if c.Style != nil {
		style := *c.Style
		c.Style = &style
	}
	return c
}

func (p Page) clone() Page {
	components := make([]Component, len(p.Components))
	for i, c := range p.Components {
		components[i] = c.clone()
	}
	p.Components = components
	return p
}

func (p Page) indexOf(componentID string) int {
	for i, c := range p.Components {
		if c.ID == componentID {
			return i
		}
	}
	return -1
}
