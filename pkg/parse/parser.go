package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.fur.dev/pkg/core"
	"src.fur.dev/pkg/diag"
)

// parser maintains the mutable states of parsing. Parsing stops at the first
// error.
//
// NOTE: The src member is assumed to be valid UTF-8.
type parser struct {
	srcName string
	src     string
	pos     int
	err     *diag.Error
}

func (ps *parser) parseExpr() core.Term {
	t := ps.parseChain()
	if ps.err != nil {
		return nil
	}
	ps.skipSpaces()
	if ps.peek() != ':' {
		return t
	}
	ps.next()
	ps.skipSpaces()
	ty := ps.parseChain()
	if ps.err != nil {
		return nil
	}
	return core.Annotated{Expr: t, Type: ty}
}

func (ps *parser) parseChain() core.Term {
	t := ps.parseAtom()
	for ps.err == nil {
		save := ps.pos
		ps.skipSpaces()
		if ps.peek() != '+' {
			ps.pos = save
			break
		}
		ps.next()
		ps.skipSpaces()
		t = core.Add{Left: t, Right: ps.parseAtom()}
	}
	if ps.err != nil {
		return nil
	}
	return t
}

func (ps *parser) parseAtom() core.Term {
	switch r := ps.peek(); {
	case r == '(':
		ps.next()
		ps.skipSpaces()
		t := ps.parseExpr()
		if ps.err != nil {
			return nil
		}
		ps.skipSpaces()
		if !ps.consume(')') {
			ps.error(errShouldBeRParen)
			return nil
		}
		return t
	case r == '+' || r == '-' || isDigit(r):
		return ps.parseInt()
	case isNameStart(r):
		return ps.parseNameOrKeyword()
	default:
		ps.error(errShouldBeAtom)
		return nil
	}
}

func (ps *parser) parseInt() core.Term {
	begin := ps.pos
	if r := ps.peek(); r == '+' || r == '-' {
		ps.next()
	}
	if !isDigit(ps.peek()) {
		ps.pos = begin
		ps.error(errShouldBeAtom)
		return nil
	}
	ps.skipWhile(isDigit)
	i, err := strconv.ParseInt(ps.src[begin:ps.pos], 10, 64)
	if err != nil {
		ps.errorp(diag.Ranging{From: begin, To: ps.pos}, errIntOutOfRange)
		return nil
	}
	return core.IntLit{Value: i}
}

func (ps *parser) parseNameOrKeyword() core.Term {
	begin := ps.pos
	ps.next()
	ps.skipWhile(IsNameRune)
	switch name := ps.src[begin:ps.pos]; name {
	case "Int":
		return core.IntType{}
	case "Trivial":
		return core.UnitType{}
	case "sole":
		return core.UnitLit{}
	case "U":
		save := ps.pos
		ps.skipSpaces()
		if ps.peek() == '(' {
			return ps.parseLevel()
		}
		ps.pos = save
		return core.Var{Name: name}
	default:
		return core.Var{Name: name}
	}
}

// Parses "(Level)" following a "U".
func (ps *parser) parseLevel() core.Term {
	if !ps.consume('(') {
		ps.error(errShouldBeLParen)
		return nil
	}
	ps.skipSpaces()
	begin := ps.pos
	ps.skipWhile(isDigit)
	if ps.pos == begin {
		ps.error(errShouldBeLevel)
		return nil
	}
	level, err := strconv.ParseUint(ps.src[begin:ps.pos], 10, 8)
	if err != nil {
		ps.errorp(diag.Ranging{From: begin, To: ps.pos}, errLevelOutOfRange)
		return nil
	}
	ps.skipSpaces()
	if !ps.consume(')') {
		ps.error(errShouldBeRParen)
		return nil
	}
	return core.UniverseLit{Level: core.Level(level)}
}

// Tells the parser that parsing is done.
func (ps *parser) done() {
	if ps.err == nil && ps.pos != len(ps.src) {
		r, _ := utf8.DecodeRuneInString(ps.src[ps.pos:])
		ps.error(fmt.Errorf("unexpected rune %q", r))
	}
}

const eof rune = -1

func (ps *parser) peek() rune {
	if ps.pos == len(ps.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(ps.src[ps.pos:])
	return r
}

func (ps *parser) next() rune {
	if ps.pos == len(ps.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(ps.src[ps.pos:])
	ps.pos += s
	return r
}

func (ps *parser) consume(r rune) bool {
	if ps.peek() != r {
		return false
	}
	ps.next()
	return true
}

func (ps *parser) skipWhile(f func(rune) bool) {
	for r := ps.peek(); r != eof && f(r); r = ps.peek() {
		ps.next()
	}
}

func (ps *parser) skipSpaces() { ps.skipWhile(unicode.IsSpace) }

func (ps *parser) errorp(r diag.Ranger, e error) {
	if ps.err != nil {
		return
	}
	ps.err = &diag.Error{
		Type:    ErrorType,
		Message: e.Error(),
		Context: *diag.NewContext(ps.srcName, ps.src, r),
		Partial: r.Range().From == len(ps.src),
	}
}

// Records an error covering the rune at the current position.
func (ps *parser) error(e error) {
	end := ps.pos
	if end < len(ps.src) {
		_, s := utf8.DecodeRuneInString(ps.src[end:])
		end += s
	}
	ps.errorp(diag.Ranging{From: ps.pos, To: end}, e)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// IsNameRune reports whether r may appear in a name after its first rune.
func IsNameRune(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func newError(text string, shouldbe ...string) error {
	if len(shouldbe) == 0 {
		return errors.New(text)
	}
	var sb strings.Builder
	if len(text) > 0 {
		sb.WriteString(text + ", ")
	}
	sb.WriteString("should be " + shouldbe[0])
	for i, opt := range shouldbe[1:] {
		if i == len(shouldbe)-2 {
			sb.WriteString(" or ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(opt)
	}
	return errors.New(sb.String())
}
