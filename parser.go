// parser.go
package braket

import "fmt"

/*
parser is a recursive-descent parser for the Dirac-string grammar:

	expr       := term (('+' | '-') term)*
	term       := unary (('*' | '/') unary | unary)*
	unary      := '-' unary | power
	power      := factor ('^' unary)?
	factor     := number | symbol | ident ('(' expr (',' expr)* ')')?
	            | '(' expr ')' | ket | bra
	ket        := '|' label_list '>'
	bra        := '<' label_list '|'
	label_list := expr (',' expr)*

Juxtaposition multiplies, so (3+im)|1> means (3+im) * |1>. Labels are full
sub-expressions, which is what lets |n-1> and |'up'> both parse. Inside a
bra's label list a bare '|' closes the bra rather than opening a ket.
*/
type parser struct {
	toks     []token
	i        int
	braDepth int
}

// parseDirac parses a complete Dirac string into an expression tree.
func parseDirac(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %s at %d", ErrParse, p.peek().kind, p.peek().pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return t, fmt.Errorf("%w: expected %s, found %s at %d", ErrParse, kind, t.kind, t.pos)
	}
	return p.next(), nil
}

func (p *parser) parseExpr() (node, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = binaryNode{at: t.pos, op: t.kind, lhs: lhs, rhs: rhs}
	}
}

func (p *parser) parseTerm() (node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.kind == tokStar || t.kind == tokSlash:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = binaryNode{at: t.pos, op: t.kind, lhs: lhs, rhs: rhs}
		case p.startsFactor(t):
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = binaryNode{at: t.pos, op: tokStar, lhs: lhs, rhs: rhs}
		default:
			return lhs, nil
		}
	}
}

// startsFactor reports whether t can begin a factor, which drives implicit
// multiplication. A '|' inside a bra closes the bra instead.
func (p *parser) startsFactor(t token) bool {
	switch t.kind {
	case tokNumber, tokIdent, tokSymbol, tokLParen, tokLAngle:
		return true
	case tokPipe:
		return p.braDepth == 0
	default:
		return false
	}
}

func (p *parser) parseUnary() (node, error) {
	if t := p.peek(); t.kind == tokMinus {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{at: t.pos, op: tokMinus, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokCaret {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{at: t.pos, op: tokCaret, lhs: base, rhs: exp}, nil
	}
	return base, nil
}

func (p *parser) parseFactor() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return numNode{at: t.pos, val: t.num}, nil
	case tokSymbol:
		p.next()
		return symNode{at: t.pos, name: t.text}, nil
	case tokIdent:
		p.next()
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		return identNode{at: t.pos, name: t.text}, nil
	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokPipe:
		return p.parseKet()
	case tokLAngle:
		return p.parseBra()
	default:
		return nil, fmt.Errorf("%w: unexpected %s at %d", ErrParse, t.kind, t.pos)
	}
}

func (p *parser) parseCall(name token) (node, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var args []node
	if p.peek().kind != tokRParen {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return callNode{at: name.pos, name: name.text, args: args}, nil
}

func (p *parser) parseKet() (node, error) {
	open, err := p.expect(tokPipe)
	if err != nil {
		return nil, err
	}
	labels, err := p.parseLabelList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRAngle); err != nil {
		return nil, fmt.Errorf("%w: unclosed ket opened at %d", ErrParse, open.pos)
	}
	return ketNode{at: open.pos, labels: labels}, nil
}

func (p *parser) parseBra() (node, error) {
	open, err := p.expect(tokLAngle)
	if err != nil {
		return nil, err
	}
	p.braDepth++
	labels, err := p.parseLabelList()
	p.braDepth--
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokPipe); err != nil {
		return nil, fmt.Errorf("%w: unclosed bra opened at %d", ErrParse, open.pos)
	}
	return braNode{at: open.pos, labels: labels}, nil
}

func (p *parser) parseLabelList() ([]node, error) {
	var labels []node
	for {
		l, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
		if p.peek().kind != tokComma {
			return labels, nil
		}
		p.next()
	}
}
