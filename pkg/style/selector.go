package style

import (
	"strings"

	"github.com/go-drift/loom/pkg/world"
)

// Selector is a compiled match predicate over a node and its ancestor
// chain. Selectors are immutable once parsed; Depth, UsesHover and
// UsesFocus are computed at parse time and cached so dirty checking can
// bound how far up the ancestor chain it must look.
type Selector interface {
	// Match evaluates the selector against e's class list, pseudo-state
	// and ancestor chain.
	Match(w *world.World, e world.Entity) bool
	// Depth is the number of ancestor hops the selector can reach.
	Depth() int
	// UsesHover reports whether any part of the selector consults the
	// pointer-hover state.
	UsesHover() bool
	// UsesFocus reports whether any part of the selector consults the
	// focus state.
	UsesFocus() bool
	// String renders the selector back in source form. Canonical inputs
	// round-trip exactly.
	String() string

	serialize(groups *[]string, cur []string) string
}

// acceptSel terminates every selector chain and always matches.
type acceptSel struct{}

// classSel requires the node's class set to contain a literal.
type classSel struct {
	name string
	next Selector
}

type hoverSel struct{ next Selector }
type focusSel struct{ next Selector }
type focusWithinSel struct{ next Selector }
type focusVisibleSel struct{ next Selector }
type firstChildSel struct{ next Selector }
type lastChildSel struct{ next Selector }

// currentSel marks the "&" anchor, the node being styled.
type currentSel struct{ next Selector }

// parentSel re-roots matching at the node's parent.
type parentSel struct{ next Selector }

// eitherSel matches when any alternative matches.
type eitherSel struct{ alts []Selector }

func (acceptSel) Match(w *world.World, e world.Entity) bool { return true }

func (s classSel) Match(w *world.World, e world.Entity) bool {
	classes, ok := world.Get[ElementClasses](w, e)
	if !ok || !classes.Has(s.name) {
		return false
	}
	return s.next.Match(w, e)
}

func (s hoverSel) Match(w *world.World, e world.Entity) bool {
	return w.Hovering(e) && s.next.Match(w, e)
}

func (s focusSel) Match(w *world.World, e world.Entity) bool {
	return w.HasFocus(e) && s.next.Match(w, e)
}

func (s focusWithinSel) Match(w *world.World, e world.Entity) bool {
	return w.FocusWithin(e) && s.next.Match(w, e)
}

func (s focusVisibleSel) Match(w *world.World, e world.Entity) bool {
	return w.HasFocus(e) && w.FocusVisible() && s.next.Match(w, e)
}

func (s firstChildSel) Match(w *world.World, e world.Entity) bool {
	p := w.Parent(e)
	if p != world.NoEntity {
		siblings := w.Children(p)
		if len(siblings) == 0 || siblings[0] != e {
			return false
		}
	}
	return s.next.Match(w, e)
}

func (s lastChildSel) Match(w *world.World, e world.Entity) bool {
	p := w.Parent(e)
	if p != world.NoEntity {
		siblings := w.Children(p)
		if len(siblings) == 0 || siblings[len(siblings)-1] != e {
			return false
		}
	}
	return s.next.Match(w, e)
}

func (s currentSel) Match(w *world.World, e world.Entity) bool {
	return s.next.Match(w, e)
}

func (s parentSel) Match(w *world.World, e world.Entity) bool {
	p := w.Parent(e)
	if p == world.NoEntity {
		return false
	}
	return s.next.Match(w, p)
}

func (s eitherSel) Match(w *world.World, e world.Entity) bool {
	for _, alt := range s.alts {
		if alt.Match(w, e) {
			return true
		}
	}
	return false
}

func (acceptSel) Depth() int        { return 0 }
func (s classSel) Depth() int       { return s.next.Depth() }
func (s hoverSel) Depth() int       { return s.next.Depth() }
func (s focusSel) Depth() int       { return s.next.Depth() }
func (s focusWithinSel) Depth() int { return s.next.Depth() }
func (s focusVisibleSel) Depth() int {
	return s.next.Depth()
}
func (s firstChildSel) Depth() int { return s.next.Depth() }
func (s lastChildSel) Depth() int  { return s.next.Depth() }
func (s currentSel) Depth() int    { return s.next.Depth() }
func (s parentSel) Depth() int     { return 1 + s.next.Depth() }
func (s eitherSel) Depth() int {
	max := 0
	for _, alt := range s.alts {
		if d := alt.Depth(); d > max {
			max = d
		}
	}
	return max
}

func (acceptSel) UsesHover() bool          { return false }
func (s classSel) UsesHover() bool         { return s.next.UsesHover() }
func (s hoverSel) UsesHover() bool         { return true }
func (s focusSel) UsesHover() bool         { return s.next.UsesHover() }
func (s focusWithinSel) UsesHover() bool   { return s.next.UsesHover() }
func (s focusVisibleSel) UsesHover() bool  { return s.next.UsesHover() }
func (s firstChildSel) UsesHover() bool    { return s.next.UsesHover() }
func (s lastChildSel) UsesHover() bool     { return s.next.UsesHover() }
func (s currentSel) UsesHover() bool       { return s.next.UsesHover() }
func (s parentSel) UsesHover() bool        { return s.next.UsesHover() }
func (s eitherSel) UsesHover() bool {
	for _, alt := range s.alts {
		if alt.UsesHover() {
			return true
		}
	}
	return false
}

func (acceptSel) UsesFocus() bool         { return false }
func (s classSel) UsesFocus() bool        { return s.next.UsesFocus() }
func (s hoverSel) UsesFocus() bool        { return s.next.UsesFocus() }
func (s focusSel) UsesFocus() bool        { return true }
func (s focusWithinSel) UsesFocus() bool  { return true }
func (s focusVisibleSel) UsesFocus() bool { return true }
func (s firstChildSel) UsesFocus() bool   { return s.next.UsesFocus() }
func (s lastChildSel) UsesFocus() bool    { return s.next.UsesFocus() }
func (s currentSel) UsesFocus() bool      { return s.next.UsesFocus() }
func (s parentSel) UsesFocus() bool       { return s.next.UsesFocus() }
func (s eitherSel) UsesFocus() bool {
	for _, alt := range s.alts {
		if alt.UsesFocus() {
			return true
		}
	}
	return false
}

// serialize walks the chain from the outermost (rightmost-matched) node
// inward, prepending tokens into the current compound group and flushing a
// group at each Parent hop. Groups come out target-first and are joined in
// reverse with " > ".
func (acceptSel) serialize(groups *[]string, cur []string) string {
	*groups = append(*groups, strings.Join(cur, ""))
	out := make([]string, 0, len(*groups))
	for i := len(*groups) - 1; i >= 0; i-- {
		out = append(out, (*groups)[i])
	}
	return strings.Join(out, " > ")
}

func (s classSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, "."+s.name))
}
func (s hoverSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, ":hover"))
}
func (s focusSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, ":focus"))
}
func (s focusWithinSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, ":focus-within"))
}
func (s focusVisibleSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, ":focus-visible"))
}
func (s firstChildSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, ":first-child"))
}
func (s lastChildSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, ":last-child"))
}
func (s currentSel) serialize(groups *[]string, cur []string) string {
	return s.next.serialize(groups, prepend(cur, "&"))
}
func (s parentSel) serialize(groups *[]string, cur []string) string {
	*groups = append(*groups, strings.Join(cur, ""))
	return s.next.serialize(groups, nil)
}
func (s eitherSel) serialize(groups *[]string, cur []string) string {
	return s.String()
}

func prepend(tokens []string, tok string) []string {
	out := make([]string, 0, len(tokens)+1)
	out = append(out, tok)
	return append(out, tokens...)
}

func (s acceptSel) String() string       { return chainString(s) }
func (s classSel) String() string        { return chainString(s) }
func (s hoverSel) String() string        { return chainString(s) }
func (s focusSel) String() string        { return chainString(s) }
func (s focusWithinSel) String() string  { return chainString(s) }
func (s focusVisibleSel) String() string { return chainString(s) }
func (s firstChildSel) String() string   { return chainString(s) }
func (s lastChildSel) String() string    { return chainString(s) }
func (s currentSel) String() string      { return chainString(s) }
func (s parentSel) String() string       { return chainString(s) }

func (s eitherSel) String() string {
	parts := make([]string, len(s.alts))
	for i, alt := range s.alts {
		parts[i] = alt.String()
	}
	return strings.Join(parts, ", ")
}

func chainString(s Selector) string {
	var groups []string
	return s.serialize(&groups, nil)
}
