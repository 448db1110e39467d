package style

import (
	"slices"

	"github.com/go-drift/loom/pkg/errors"
	"github.com/go-drift/loom/pkg/world"
)

// ElementClasses is the class-name set component of a display node.
// Selector Class terms match against it.
type ElementClasses struct {
	Classes []string
}

// Has reports whether the class set contains name.
func (c ElementClasses) Has(name string) bool {
	return slices.Contains(c.Classes, name)
}

// ElementStyles is the component holding the StyleSets attached to a
// display node, in attachment order.
type ElementStyles struct {
	Sets []*StyleSet
}

type selectorRule struct {
	sel   Selector
	props []StyleProp
}

// StyleSet is a sparse bundle of style attributes plus selector-gated
// conditional rules. Build one with NewStyleSet and chain Add/Selector:
//
//	buttonStyle := style.NewStyleSet(
//	    style.Padding(style.Px(8)),
//	    style.BackgroundColor(colornames.Steelblue),
//	).Selector("&:hover",
//	    style.BackgroundColor(colornames.Dodgerblue),
//	).Selector("&.disabled",
//	    style.Opacity(0.5),
//	)
//
// StyleSets are immutable once attached to nodes; sharing one *StyleSet
// across many nodes is the intended usage.
type StyleSet struct {
	props []StyleProp
	rules []selectorRule

	depth     int
	usesHover bool
	usesFocus bool
}

// NewStyleSet creates a StyleSet with the given unconditional attributes.
func NewStyleSet(props ...StyleProp) *StyleSet {
	return &StyleSet{props: props}
}

// Add appends unconditional attributes and returns the set for chaining.
func (s *StyleSet) Add(props ...StyleProp) *StyleSet {
	s.props = append(s.props, props...)
	return s
}

// Selector appends a conditional rule gated on the given selector string.
// A malformed selector is reported through pkg/errors and skipped; the
// rest of the set stays usable.
func (s *StyleSet) Selector(src string, props ...StyleProp) *StyleSet {
	sel, err := ParseSelector(src)
	if err != nil {
		if serr, ok := err.(*errors.SelectorError); ok {
			errors.ReportSelector(serr)
		}
		return s
	}
	s.rules = append(s.rules, selectorRule{sel: sel, props: props})
	if d := sel.Depth(); d > s.depth {
		s.depth = d
	}
	s.usesHover = s.usesHover || sel.UsesHover()
	s.usesFocus = s.usesFocus || sel.UsesFocus()
	return s
}

// Depth is the maximum ancestor reach of any attached selector. It bounds
// how far up the ancestor chain dirty checking must look.
func (s *StyleSet) Depth() int { return s.depth }

// UsesHover reports whether any attached selector consults hover state.
func (s *StyleSet) UsesHover() bool { return s.usesHover }

// UsesFocus reports whether any attached selector consults focus state.
func (s *StyleSet) UsesFocus() bool { return s.usesFocus }

// applyUnconditional folds only the unconditional attributes into cs.
func (s *StyleSet) applyUnconditional(cs *ComputedStyle) {
	for _, p := range s.props {
		p.applyTo(cs)
	}
}

// applyConditional folds every rule whose selector matches e, in
// declaration order.
func (s *StyleSet) applyConditional(cs *ComputedStyle, w *world.World, e world.Entity) {
	for _, rule := range s.rules {
		if rule.sel.Match(w, e) {
			for _, p := range rule.props {
				p.applyTo(cs)
			}
		}
	}
}
