package boxes

import "geobox/argon/quarkgl"

// HighlightColor marks the box under the view centre.
var HighlightColor = quarkgl.Hex(0xffff33)

// Nearest returns the box of the first hit, or nil. hits must be sorted nearest first.
func Nearest(hits []quarkgl.Intersection, byNode map[*quarkgl.Node]*Box) *Box {
	for _, h := range hits {
		if b, ok := byNode[h.Node]; ok {
			return b
		}
	}
	return nil
}

// Highlighter tints at most one box and remembers its original color.
type Highlighter struct {
	current *Box
	saved   quarkgl.Color
}

func (h *Highlighter) Current() *Box { return h.current }

// Apply moves the highlight to b, restoring the previously highlighted box.
func (h *Highlighter) Apply(b *Box) {
	if b == h.current {
		return
	}
	h.Restore()
	if b == nil {
		return
	}
	h.current = b
	h.saved = b.Color()
	b.setColor(HighlightColor)
}

// Restore returns the highlighted box to its original color and clears the highlight.
func (h *Highlighter) Restore() {
	if h.current == nil {
		return
	}
	h.current.setColor(h.saved)
	h.current = nil
}

// updateHighlight highlights the box under the view centre while nothing is held.
func (t *Task) updateHighlight() {
	if t.held != nil {
		return
	}
	b := Nearest(t.castFromCentre(), t.byNode)
	if b == nil {
		t.highlight.Restore()
		return
	}
	t.highlight.Apply(b)
}
