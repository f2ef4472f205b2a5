// Package elementor models the page builder's nested document structure
// and injects generated text into it before publishing.
package elementor

import "encoding/json"

// Element type discriminators used by the builder.
const (
	TypeContainer = "container"
	TypeWidget    = "widget"

	WidgetHeading    = "heading"
	WidgetTextEditor = "text-editor"
)

// Settings is the open bag of builder settings attached to a node. Only
// two keys are interpreted here: "title" on heading widgets and "editor"
// on text widgets. Everything else passes through unmodified.
type Settings map[string]any

func (s Settings) Title() string {
	v, _ := s["title"].(string)
	return v
}

func (s Settings) Editor() string {
	v, _ := s["editor"].(string)
	return v
}

// Node is one element of a builder document: a container or a widget,
// with ordered children. The JSON shape matches the builder's export
// format exactly so round trips preserve unknown settings.
type Node struct {
	ID         string   `json:"id"`
	ElType     string   `json:"elType"`
	Settings   Settings `json:"settings"`
	Elements   []*Node  `json:"elements"`
	IsInner    bool     `json:"isInner"`
	WidgetType string   `json:"widgetType,omitempty"`
}

// IsWidget reports whether the node is a widget of the given kind.
func (n *Node) IsWidget(kind string) bool {
	return n.ElType == TypeWidget && n.WidgetType == kind
}

// MarshalJSON keeps settings and elements as {} / [] rather than null;
// the builder rejects null for either.
func (n Node) MarshalJSON() ([]byte, error) {
	type alias Node
	a := alias(n)
	if a.Settings == nil {
		a.Settings = Settings{}
	}
	if a.Elements == nil {
		a.Elements = []*Node{}
	}
	return json.Marshal(a)
}

// Serialize renders nodes as the JSON string the CMS stores in
// _elementor_data.
func Serialize(nodes []*Node) (string, error) {
	if nodes == nil {
		nodes = []*Node{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
