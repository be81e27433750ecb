// tokenizer.go -
// Copyright (C) 2020  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// maxSteps is the maximal number of stack items a single input
// character can be judged against: at most one pending accumulator,
// followed by the context beneath it.
const maxSteps = 2

// A Tokenizer splits the contents of one document into tokens.  A
// Tokenizer can only be used once.
type Tokenizer struct {
	stack []item
	mode  mode
	toks  TokenList

	used  bool
	input string
	pos   int
}

// NewTokenizer creates and initialises a new Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		stack: []item{{kind: itemText}},
		mode:  modeText,
	}
}

// Tokenize is a shortcut for NewTokenizer().Tokenize(content).
func Tokenize(content string) (TokenList, error) {
	return NewTokenizer().Tokenize(content)
}

// Tokenize splits content into tokens.  Either the complete list of
// tokens or the first error encountered is returned.  The returned
// errors are of type *Error.
func (p *Tokenizer) Tokenize(content string) (TokenList, error) {
	if p.used {
		panic("Tokenizer used twice")
	}
	p.used = true
	p.input = content

	for pos, c := range content {
		p.pos = pos
		err := p.tokenizeChar(c)
		if err != nil {
			return nil, err
		}
	}
	err := p.finish()
	if err != nil {
		return nil, err
	}
	return p.toks, nil
}

// tokenizeChar feeds c to the item at the top of the stack.  If the
// item does not consume the character, c is fed to the newly exposed
// item instead.
func (p *Tokenizer) tokenizeChar(c rune) error {
	for i := 0; i < maxSteps; i++ {
		consumed, err := p.step(p.pop(), c)
		if err != nil {
			return err
		}
		if consumed {
			return nil
		}
	}
	panic("character " + string(c) + " not consumed")
}

func (p *Tokenizer) step(it item, c rune) (bool, error) {
	switch it.kind {
	case itemText:
		return p.stepText(it, c)
	case itemInlineMath:
		return p.stepInlineMath(it, c)
	case itemDisplayMath:
		return p.stepDisplayMath(it, c)
	case itemCommand:
		return p.stepCommand(it, c)

	case itemLQuote:
		if c == '`' {
			p.emit(TokenLDQuote, "``")
			return true, nil
		}
		p.emit(TokenLQuote, "`")
		return false, nil

	case itemRQuote:
		if c == '\'' {
			p.emit(TokenRDQuote, "''")
			return true, nil
		}
		p.emit(TokenRQuote, "'")
		return false, nil

	case itemNumber:
		if unicode.IsNumber(c) {
			it.buf = utf8.AppendRune(it.buf, c)
			p.push(it)
			return true, nil
		}
		p.flush(TokenNumber, it.buf)
		return false, nil

	case itemSpace:
		if unicode.IsSpace(c) {
			it.buf = utf8.AppendRune(it.buf, c)
			p.push(it)
			return true, nil
		}
		if p.mode == modeText {
			p.emit(TokenSpace, string(it.buf))
		}
		return false, nil
	}
	panic("invalid item on tokenizer stack")
}

func (p *Tokenizer) stepText(it item, c rune) (bool, error) {
	p.mode = modeText

	switch {
	case c == '^' || c == '_':
		return false, p.unexpected(string(c))
	case !isTextSpecial(c):
		it.buf = utf8.AppendRune(it.buf, c)
		p.push(it)
		return true, nil
	}

	p.flush(TokenText, it.buf)
	it.buf = it.buf[:0]
	if c == '$' {
		p.push(item{kind: itemInlineMath, start: MathDollar, init: true})
		return true, nil
	}
	p.push(it)

	switch {
	case isPunct(c):
		p.emit(TokenPunct, string(c))
	case c == '`':
		p.push(item{kind: itemLQuote})
	case c == '\'':
		p.push(item{kind: itemRQuote})
	case c == '\\':
		p.push(item{kind: itemCommand})
	case unicode.IsSpace(c):
		p.push(item{kind: itemSpace, buf: utf8.AppendRune(nil, c)})
	default:
		p.emit(groupTokens[c], string(c))
	}
	return true, nil
}

func (p *Tokenizer) stepInlineMath(it item, c rune) (bool, error) {
	p.mode = modeInlineMath

	if it.init {
		if c == '$' {
			p.mode = modeDisplayMath
			p.emit(TokenStartDisplayMath, "$$")
			p.push(item{kind: itemDisplayMath, start: MathDisplay})
			return true, nil
		}
		p.emit(TokenStartInlineMath, "$")
		it.init = false
	}

	if c == '$' {
		if it.start != MathDollar {
			return false, p.mismatched(it.start, MathDollar)
		}
		p.flush(TokenText, it.buf)
		p.emit(TokenEndInlineMath, "$")
		p.push(item{kind: itemText, buf: it.buf[:0]})
		return true, nil
	}
	return p.stepMath(it, c)
}

// stepMath handles the characters which are treated the same in all
// kinds of maths.
func (p *Tokenizer) stepMath(it item, c rune) (bool, error) {
	if isMathSpecial(c) {
		p.flush(TokenText, it.buf)
		it.buf = it.buf[:0]
	}
	p.push(it)

	switch {
	case isSymbol(c):
		p.emit(TokenSymbol, string(c))
	case isPunct(c):
		p.emit(TokenPunct, string(c))
	case c == '\'':
		p.emit(TokenLQuote, "'")
	case c == '\\':
		p.push(item{kind: itemCommand})
	case unicode.IsSpace(c):
		p.push(item{kind: itemSpace, buf: utf8.AppendRune(nil, c)})
	case mathTokens[c] != 0:
		p.emit(mathTokens[c], string(c))
	case groupTokens[c] != 0:
		p.emit(groupTokens[c], string(c))
	case unicode.IsNumber(c):
		p.push(item{kind: itemNumber, buf: utf8.AppendRune(nil, c)})
	default:
		top := &p.stack[len(p.stack)-1]
		top.buf = utf8.AppendRune(top.buf, c)
	}
	return true, nil
}

func (p *Tokenizer) stepDisplayMath(it item, c rune) (bool, error) {
	p.mode = modeDisplayMath

	if it.init {
		if c != '$' {
			return false, p.mismatched(MathDisplay, MathDollar)
		}
		p.emit(TokenEndDisplayMath, "$$")
		p.push(item{kind: itemText})
		return true, nil
	}
	if c == '$' {
		it.init = true
		p.push(it)
		return true, nil
	}

	// TODO(voss): define a token grammar for display maths and use
	// stepMath here.
	return false, p.newError(ErrNotImplemented, func(err *Error) {
		err.Context = "display maths"
	})
}

func (p *Tokenizer) stepCommand(it item, c rune) (bool, error) {
	if len(it.buf) == 0 {
		switch c {
		case '[':
			ctx := p.pop()
			if ctx.kind != itemText {
				return false, p.unexpected("\\[")
			}
			p.mode = modeInlineMath
			p.emit(TokenStartInlineMath, "\\[")
			p.push(item{kind: itemInlineMath, start: MathBracket})
			return true, nil
		case ']':
			ctx := p.pop()
			if ctx.kind != itemInlineMath {
				return false, p.unexpected("\\]")
			}
			if ctx.start != MathBracket {
				return false, p.mismatched(ctx.start, MathBracket)
			}
			p.mode = modeText
			p.emit(TokenEndInlineMath, "\\]")
			p.push(item{kind: itemText})
			return true, nil
		case '{':
			p.emit(TokenLCurly, "\\{")
			return true, nil
		case '}':
			p.emit(TokenRCurly, "\\}")
			return true, nil
		case '|':
			p.emit(TokenVBar, "\\|")
			return true, nil
		}
		if !unicode.IsLetter(c) {
			return false, p.newError(ErrUnexpectedCommandChar, func(err *Error) {
				err.Char = c
			})
		}
	}

	if unicode.IsLetter(c) {
		it.buf = utf8.AppendRune(it.buf, c)
		p.push(it)
		return true, nil
	}
	p.flush(TokenCommand, it.buf)
	return false, nil
}

// finish flushes all pending items at the end of input.
func (p *Tokenizer) finish() error {
	if len(p.stack) == 0 || !p.stack[0].isContext() {
		panic("no context at the bottom of the tokenizer stack")
	}
	p.pos = len(p.input)
	for len(p.stack) > 0 {
		it := p.pop()
		switch it.kind {
		case itemText:
			p.flush(TokenText, it.buf)
		case itemNumber:
			p.flush(TokenNumber, it.buf)
		case itemCommand:
			// A trailing, lone backslash is silently dropped.
			p.flush(TokenCommand, it.buf)
		case itemLQuote:
			p.emit(TokenLQuote, "`")
		case itemRQuote:
			p.emit(TokenRQuote, "'")
		case itemSpace:
			// emitted even in maths mode
			p.emit(TokenSpace, string(it.buf))
		case itemInlineMath, itemDisplayMath:
			return &Error{
				Kind:   ErrUnterminated,
				Opened: it.start,
				Offset: p.pos,
			}
		}
	}
	return nil
}

func (p *Tokenizer) push(it item) {
	p.stack = append(p.stack, it)
}

func (p *Tokenizer) pop() item {
	n := len(p.stack) - 1
	it := p.stack[n]
	p.stack = p.stack[:n]
	return it
}

func (p *Tokenizer) emit(tp TokenType, name string) {
	p.toks = append(p.toks, &Token{Type: tp, Name: name})
}

// flush emits the contents of buf as a token, unless buf is empty.
func (p *Tokenizer) flush(tp TokenType, buf []byte) {
	if len(buf) > 0 {
		p.emit(tp, string(buf))
	}
}

func (p *Tokenizer) newError(kind ErrorKind, setup func(*Error)) *Error {
	err := &Error{
		Kind:   kind,
		Offset: p.pos,
		Near:   excerpt(p.input[p.pos:]),
	}
	setup(err)
	return err
}

func (p *Tokenizer) unexpected(context string) *Error {
	return p.newError(ErrUnexpected, func(err *Error) {
		err.Context = context
	})
}

func (p *Tokenizer) mismatched(opened, closed MathStart) *Error {
	return p.newError(ErrMismatchedMath, func(err *Error) {
		err.Opened = opened
		err.Closed = closed
	})
}

// excerpt shortens s for use in error messages.
func excerpt(s string) string {
	if len(s) <= 20 {
		return s
	}
	n := 0
	for i := range s {
		if n == 17 {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

var groupTokens = map[rune]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLGroup,
	'}': TokenRGroup,
}

var mathTokens = map[rune]TokenType{
	'[': TokenLBrack,
	']': TokenRBrack,
	'^': TokenSuper,
	'_': TokenSub,
}

func isPunct(c rune) bool {
	return c == '.' || c == ',' || c == '?' || c == ';' || c == ':'
}

func isSymbol(c rune) bool {
	return c == '+' || c == '-' || c == '<' || c == '>'
}

// isTextSpecial reports whether c ends a run of text in text mode.
func isTextSpecial(c rune) bool {
	switch c {
	case '$', '`', '\'', '\\':
		return true
	}
	return isPunct(c) || groupTokens[c] != 0 || unicode.IsSpace(c)
}

// isMathSpecial reports whether c ends a run of text in maths mode.
func isMathSpecial(c rune) bool {
	switch c {
	case '\'', '\\':
		return true
	}
	return isSymbol(c) || isPunct(c) || unicode.IsSpace(c) || unicode.IsNumber(c) ||
		mathTokens[c] != 0 || groupTokens[c] != 0
}
