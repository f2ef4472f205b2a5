package elementor

import "fmt"

// maxDepth bounds the walk. Builder documents never nest this deep, so
// exceeding it means the input is malformed or cyclic.
const maxDepth = 64

// Mapping carries per-node text overrides keyed by node id: titles for
// heading widgets, bodies for text-editor widgets. Consulted read-only.
type Mapping struct {
	Titles map[string]string
	Bodies map[string]string
}

func (m Mapping) Empty() bool {
	return len(m.Titles) == 0 && len(m.Bodies) == 0
}

// Inject walks the tree depth-first and overwrites the title of heading
// widgets and the body of text-editor widgets whose id appears in the
// mapping. Structure, ids, widget types, and every other setting are
// left untouched; nodes absent from both maps pass through unchanged.
// Applying the same mapping twice is a no-op change.
func Inject(nodes []*Node, m Mapping) error {
	return injectNodes(nodes, m, 0)
}

func injectNodes(nodes []*Node, m Mapping, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("template nesting exceeds %d levels, refusing malformed tree", maxDepth)
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch {
		case n.IsWidget(WidgetHeading):
			if v, ok := m.Titles[n.ID]; ok {
				if n.Settings == nil {
					n.Settings = Settings{}
				}
				n.Settings["title"] = v
			}
		case n.IsWidget(WidgetTextEditor):
			if v, ok := m.Bodies[n.ID]; ok {
				if n.Settings == nil {
					n.Settings = Settings{}
				}
				n.Settings["editor"] = v
			}
		}
		if err := injectNodes(n.Elements, m, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// DeriveMapping builds the default mapping used when the caller supplies
// no per-node overrides: the first heading widget gets the post title,
// the first text-editor widget gets the post body.
func DeriveMapping(nodes []*Node, title, body string) Mapping {
	m := Mapping{Titles: map[string]string{}, Bodies: map[string]string{}}
	var walk func([]*Node, int)
	walk = func(ns []*Node, depth int) {
		if depth > maxDepth {
			return
		}
		for _, n := range ns {
			if n == nil {
				continue
			}
			if n.IsWidget(WidgetHeading) && n.ID != "" && len(m.Titles) == 0 {
				m.Titles[n.ID] = title
			}
			if n.IsWidget(WidgetTextEditor) && n.ID != "" && len(m.Bodies) == 0 {
				m.Bodies[n.ID] = body
			}
			if len(m.Titles) > 0 && len(m.Bodies) > 0 {
				return
			}
			walk(n.Elements, depth+1)
		}
	}
	walk(nodes, 0)
	return m
}
