// Package style implements the view layer's style cascade: sparse style
// attributes, selector-gated conditional rules, and computed styles.
//
// A StyleSet holds unconditional attributes plus (selector, attributes)
// rules. Selectors are written in a compact mini-language:
//
//	&            the node being styled (optional, leading, at most one)
//	.name        class match (repeatable)
//	:hover :focus :focus-within :focus-visible :first-child :last-child
//	>            ancestor composition (left side is the parent)
//	,            alternation
//
// For example "&.primary:hover" matches the styled node when it carries
// the class "primary" and is hovered, and ".sidebar > &" matches when the
// node's parent carries the class "sidebar".
//
// Styling an entity folds every attached StyleSet into a single
// ComputedStyle: unconditional attributes first in attachment order, then
// each matching rule in declaration order. The last write to an attribute
// wins.
//
// Selector parse failures are reported through pkg/errors and the
// offending selector is skipped; the rest of the StyleSet stays usable.
//
// StyleSets can also be loaded from YAML stylesheets, see LoadSheet.
package style
