package style

import (
	"github.com/go-drift/loom/pkg/errors"
)

// ParseSelector compiles a selector string. On failure it returns a
// *errors.SelectorError describing the offset and cause; the caller
// decides whether that is fatal (MustSelector) or reported and skipped
// (StyleSet.Selector).
func ParseSelector(src string) (Selector, error) {
	p := &selParser{src: src}
	sel, err := p.parseList()
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// MustSelector is ParseSelector for selectors known at compile time; it
// panics on a parse failure.
func MustSelector(src string) Selector {
	sel, err := ParseSelector(src)
	if err != nil {
		panic(err)
	}
	return sel
}

type selParser struct {
	src string
	pos int
}

func (p *selParser) fail(msg string) error {
	return &errors.SelectorError{Source: p.src, Pos: p.pos, Msg: msg}
}

func (p *selParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *selParser) peek() byte {
	return p.src[p.pos]
}

func (p *selParser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

// parseList handles top-level alternation: selector (',' selector)*.
func (p *selParser) parseList() (Selector, error) {
	first, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.eof() {
		return first, nil
	}
	alts := []Selector{first}
	for !p.eof() {
		if p.peek() != ',' {
			return nil, p.fail("unexpected character")
		}
		p.pos++
		alt, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
		p.skipSpace()
	}
	return eitherSel{alts: alts}, nil
}

// parseChain handles ancestor composition: compound ('>' compound)*. The
// leftmost compound is the outermost ancestor, so each '>' wraps the chain
// built so far in a Parent hop before the next compound folds onto it.
func (p *selParser) parseChain() (Selector, error) {
	seenCurrent := false
	chain, err := p.parseCompound(acceptSel{}, &seenCurrent)
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.eof() || p.peek() != '>' {
			return chain, nil
		}
		p.pos++
		chain, err = p.parseCompound(parentSel{next: chain}, &seenCurrent)
		if err != nil {
			return nil, err
		}
	}
}

// parseCompound folds one simple-selector group ("&.foo:hover") onto base.
func (p *selParser) parseCompound(base Selector, seenCurrent *bool) (Selector, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.fail("expected selector")
	}
	chain := base
	n := 0
	for !p.eof() {
		switch p.peek() {
		case '&':
			if *seenCurrent {
				return nil, p.fail("'&' may appear at most once")
			}
			if n > 0 {
				return nil, p.fail("'&' must lead its group")
			}
			*seenCurrent = true
			p.pos++
			chain = currentSel{next: chain}
		case '.':
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			chain = classSel{name: name, next: chain}
		case ':':
			p.pos++
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			wrapped, err := p.wrapPseudo(name, chain)
			if err != nil {
				return nil, err
			}
			chain = wrapped
		case ' ', '\t', '>', ',':
			if n == 0 {
				return nil, p.fail("expected selector")
			}
			return chain, nil
		default:
			return nil, p.fail("unexpected character")
		}
		n++
	}
	return chain, nil
}

func (p *selParser) wrapPseudo(name string, next Selector) (Selector, error) {
	switch name {
	case "hover":
		return hoverSel{next: next}, nil
	case "focus":
		return focusSel{next: next}, nil
	case "focus-within":
		return focusWithinSel{next: next}, nil
	case "focus-visible":
		return focusVisibleSel{next: next}, nil
	case "first-child":
		return firstChildSel{next: next}, nil
	case "last-child":
		return lastChildSel{next: next}, nil
	default:
		return nil, p.fail("unknown pseudo-class :" + name)
	}
}

func (p *selParser) parseName() (string, error) {
	start := p.pos
	for !p.eof() && isNameByte(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", p.fail("expected name")
	}
	return p.src[start:p.pos], nil
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_':
		return true
	}
	return false
}
