package descriptor

import (
	"fmt"
	"strings"
)

// Parse reads a descriptor from its rendered name, resolving every type
// name with r.
//
// "?" components parse as absent slots, so a rendered back-edge comes back
// as an absent slot rather than a cycle. The override marker "*" cannot be
// turned back into overrides and is rejected.
func Parse(text string, r Resolver) (*Node, error) {
	if r == nil {
		return nil, errorf(KindInvalidArgument, "nil resolver")
	}

	p := &parser{text: text, resolver: r}

	n, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q after descriptor", p.text[p.pos:])
	}

	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string, r Resolver) *Node {
	n, err := Parse(text, r)
	if err != nil {
		panic(err)
	}

	return n
}

type parser struct {
	text     string
	pos      int
	resolver Resolver
}

func (p *parser) eof() bool {
	return p.pos >= len(p.text)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.text[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.text[p.pos] == ' ' || p.text[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return errorf(KindInvalidArgument, "parse %q at offset %d: %s", p.text, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) parseType() (*Node, error) {
	represented, err := p.parseHandle()
	if err != nil {
		return nil, err
	}

	var opts []Option

	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		treatAs, err := p.parseHandle()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTreatAs(treatAs))
	}

	p.skipSpace()
	if p.peek() == '*' {
		return nil, p.errorf("override marker cannot be parsed back into overrides")
	}

	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		children, err := p.parseComponents()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithChildren(children...))
	}

	return Make(represented, opts...)
}

func (p *parser) parseComponents() ([]*Node, error) {
	var children []*Node

	for {
		p.skipSpace()

		if p.peek() == '?' {
			p.pos++
			children = append(children, nil)
		} else {
			child, err := p.parseType()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return children, nil
		default:
			if p.eof() {
				return nil, p.errorf("unterminated component list")
			}
			return nil, p.errorf("expected ',' or '>', found %q", p.peek())
		}
	}
}

// parseHandle reads a type name. Brackets and parentheses nest, so names
// such as "map[string]int" or "store.Page[int,string]" are read whole.
// Names containing "<" (like "chan<- int") cannot be parsed.
func (p *parser) parseHandle() (Type, error) {
	p.skipSpace()
	start := p.pos
	depth := 0

loop:
	for ; !p.eof(); p.pos++ {
		switch c := p.text[p.pos]; c {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '*':
			// Leading stars belong to pointer names such as "*store.Order".
			if depth == 0 && strings.Trim(p.text[start:p.pos], "*") != "" {
				break loop
			}
		case ':', '<', '>', ',', '?':
			if depth == 0 {
				break loop
			}
		}
	}

	name := strings.TrimSpace(p.text[start:p.pos])
	if name == "" {
		return nil, p.errorf("expected type name")
	}

	t, err := p.resolver.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", p.text, err)
	}

	return t, nil
}
