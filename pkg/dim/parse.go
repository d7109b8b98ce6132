package dim

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Parse reads a unit expression such as "2 ohm*m", "0.5 / K" or
// "1/(2.0e6) Ohm*m" and returns the quantity it denotes in SI base units.
// A plain number yields a dimensionless quantity.
//
// Grammar:
//
//	expr    = unary { ("*" | "/" | <juxtaposition>) unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ "^" int ]
//	primary = number | symbol [int] | "(" expr ")"
//
// A symbol directly followed by an integer ("m2", "s-1") carries that
// exponent, which is how NFKC renders "m²" and "s⁻¹".
func Parse(s string) (Quantity, error) {
	src := normalize(s)
	p := &parser{input: s, lex: lexer{src: src}}
	p.next()
	if p.tok.kind == tokEOF {
		return Quantity{}, p.errorf("empty expression")
	}
	q, err := p.expr()
	if err != nil {
		return Quantity{}, err
	}
	if p.tok.kind != tokEOF {
		return Quantity{}, p.errorf("unexpected " + strconv.Quote(p.tok.text))
	}
	return q, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

// ParseDimension parses a unit expression and keeps only its dimension, so
// "ohm*m" and "mOhm*mm" both yield Resistivity.
func ParseDimension(s string) (Dimension, error) {
	q, err := Parse(s)
	if err != nil {
		return None, err
	}
	return q.Dim, nil
}

func normalize(s string) string {
	s = norm.NFKC.String(s)
	return strings.NewReplacer(
		"−", "-", // minus sign
		"·", "*", // middle dot
		"⋅", "*", // dot operator
		"×", "*", // multiplication sign
	).Replace(s)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokSymbol
	tokOp
	tokInvalid
)

type token struct {
	kind   tokenKind
	text   string
	num    float64
	exp    int
	hasExp bool
	offset int
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) advance() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
}

func (l *lexer) next() token {
	for l.pos < len(l.src) && unicode.IsSpace(l.peekRune()) {
		l.advance()
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, offset: start}
	}

	r := l.peekRune()
	switch {
	case isDigit(r) || (r == '.' && l.pos+1 < len(l.src) && isDigit(rune(l.src[l.pos+1]))):
		return l.number(start)
	case unicode.IsLetter(r):
		return l.symbol(start)
	case strings.ContainsRune("*/^()+-", r):
		l.advance()
		return token{kind: tokOp, text: string(r), offset: start}
	default:
		l.advance()
		return token{kind: tokInvalid, text: string(r), offset: start}
	}
}

func (l *lexer) number(start int) token {
	l.digits()
	if l.peekRune() == '.' {
		l.advance()
		l.digits()
	}
	if r := l.peekRune(); r == 'e' || r == 'E' {
		// Only an exponent if digits follow; "2 eV"-style input stays a symbol.
		save := l.pos
		l.advance()
		if r := l.peekRune(); r == '+' || r == '-' {
			l.advance()
		}
		if isDigit(l.peekRune()) {
			l.digits()
		} else {
			l.pos = save
		}
	}
	text := l.src[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{kind: tokInvalid, text: text, offset: start}
	}
	return token{kind: tokNumber, text: text, num: v, offset: start}
}

func (l *lexer) symbol(start int) token {
	for l.pos < len(l.src) && unicode.IsLetter(l.peekRune()) {
		l.advance()
	}
	tok := token{kind: tokSymbol, text: l.src[start:l.pos], offset: start}

	// Attached exponent: "m2", "s-1".
	save := l.pos
	if l.peekRune() == '-' {
		l.advance()
	}
	if isDigit(l.peekRune()) {
		expStart := save
		l.digits()
		e, err := strconv.Atoi(l.src[expStart:l.pos])
		if err != nil {
			return token{kind: tokInvalid, text: l.src[start:l.pos], offset: start}
		}
		tok.exp, tok.hasExp = e, true
	} else {
		l.pos = save
	}
	return tok
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && isDigit(l.peekRune()) {
		l.advance()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

type parser struct {
	input string
	lex   lexer
	tok   token
}

func (p *parser) next() {
	p.tok = p.lex.next()
}

func (p *parser) errorf(msg string) *ParseError {
	return &ParseError{Input: p.input, Offset: p.tok.offset, Message: msg}
}

func (p *parser) isOp(op string) bool {
	return p.tok.kind == tokOp && p.tok.text == op
}

// startsPrimary reports whether the current token can begin an operand, which
// is what makes juxtaposition a multiplication.
func (p *parser) startsPrimary() bool {
	return p.tok.kind == tokNumber || p.tok.kind == tokSymbol || p.isOp("(")
}

func (p *parser) expr() (Quantity, error) {
	q, err := p.unary()
	if err != nil {
		return Quantity{}, err
	}
	for {
		switch {
		case p.isOp("*"):
			p.next()
			r, err := p.unary()
			if err != nil {
				return Quantity{}, err
			}
			if q, err = p.combine(q, r, false); err != nil {
				return Quantity{}, err
			}
		case p.isOp("/"):
			p.next()
			r, err := p.unary()
			if err != nil {
				return Quantity{}, err
			}
			if q, err = p.combine(q, r, true); err != nil {
				return Quantity{}, err
			}
		case p.startsPrimary():
			r, err := p.unary()
			if err != nil {
				return Quantity{}, err
			}
			if q, err = p.combine(q, r, false); err != nil {
				return Quantity{}, err
			}
		default:
			return q, nil
		}
	}
}

func (p *parser) unary() (Quantity, error) {
	switch {
	case p.isOp("-"):
		p.next()
		q, err := p.unary()
		return q.Scale(-1), err
	case p.isOp("+"):
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (Quantity, error) {
	q, err := p.primary()
	if err != nil {
		return Quantity{}, err
	}
	if !p.isOp("^") {
		return q, nil
	}
	p.next()
	sign := 1
	switch {
	case p.isOp("-"):
		sign = -1
		p.next()
	case p.isOp("+"):
		p.next()
	}
	if p.tok.kind != tokNumber || strings.ContainsAny(p.tok.text, ".eE") {
		return Quantity{}, p.errorf("exponent must be an integer")
	}
	n, err := strconv.Atoi(p.tok.text)
	if err != nil {
		return Quantity{}, p.errorf("exponent must be an integer")
	}
	q, err = p.pow(q, sign*n)
	if err != nil {
		return Quantity{}, err
	}
	p.next()
	return q, nil
}

func (p *parser) primary() (Quantity, error) {
	tok := p.tok
	switch {
	case tok.kind == tokNumber:
		p.next()
		return Scalar(tok.num), nil
	case tok.kind == tokSymbol:
		sym, ok := lookupSymbol(tok.text)
		if !ok {
			return Quantity{}, p.errorf("unknown unit " + strconv.Quote(tok.text))
		}
		q := New(sym.factor, sym.dim)
		if tok.hasExp {
			var err error
			if q, err = p.pow(q, tok.exp); err != nil {
				return Quantity{}, err
			}
		}
		p.next()
		return q, nil
	case p.isOp("("):
		p.next()
		q, err := p.expr()
		if err != nil {
			return Quantity{}, err
		}
		if !p.isOp(")") {
			return Quantity{}, p.errorf("missing closing parenthesis")
		}
		p.next()
		return q, nil
	case tok.kind == tokEOF:
		return Quantity{}, p.errorf("unexpected end of expression")
	default:
		return Quantity{}, p.errorf("unexpected " + strconv.Quote(tok.text))
	}
}

// combine multiplies or divides two operands, rejecting exponents that leave
// the range of a Dimension.
func (p *parser) combine(a, b Quantity, div bool) (Quantity, error) {
	var (
		d   Dimension
		err error
	)
	if div {
		d, err = a.Dim.CheckedDiv(b.Dim)
	} else {
		d, err = a.Dim.CheckedMul(b.Dim)
	}
	if err != nil {
		return Quantity{}, p.errorf("exponent out of range")
	}
	if div {
		return Quantity{Value: a.Value / b.Value, Dim: d}, nil
	}
	return Quantity{Value: a.Value * b.Value, Dim: d}, nil
}

func (p *parser) pow(q Quantity, n int) (Quantity, error) {
	d, err := q.Dim.CheckedPow(n)
	if err != nil {
		return Quantity{}, p.errorf("exponent out of range")
	}
	return Quantity{Value: math.Pow(q.Value, float64(n)), Dim: d}, nil
}
