// tokenizer_test.go -
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
	"errors"
	"strings"
	"testing"
)

func tok(tp TokenType, name string) *Token {
	return &Token{Type: tp, Name: name}
}

func sameTokens(a, b TokenList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in       string
		expected TokenList
	}{
		{"", nil},
		{"hello", TokenList{tok(TokenText, "hello")}},
		{"``x", TokenList{tok(TokenLDQuote, "``"), tok(TokenText, "x")}},
		{"`x", TokenList{tok(TokenLQuote, "`"), tok(TokenText, "x")}},
		{"''x", TokenList{tok(TokenRDQuote, "''"), tok(TokenText, "x")}},
		{"'x", TokenList{tok(TokenRQuote, "'"), tok(TokenText, "x")}},
		{"x'", TokenList{tok(TokenText, "x"), tok(TokenRQuote, "'")}},
		{"``a''", TokenList{
			tok(TokenLDQuote, "``"), tok(TokenText, "a"), tok(TokenRDQuote, "''"),
		}},
		{"`''", TokenList{tok(TokenLQuote, "`"), tok(TokenRDQuote, "''")}},
		{"$x$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "x"), tok(TokenEndInlineMath, "$"),
		}},
		{"\\[x\\]", TokenList{
			tok(TokenStartInlineMath, "\\["), tok(TokenText, "x"), tok(TokenEndInlineMath, "\\]"),
		}},
		{"\\{x\\}", TokenList{
			tok(TokenLCurly, "\\{"), tok(TokenText, "x"), tok(TokenRCurly, "\\}"),
		}},
		{"{x}", TokenList{
			tok(TokenLGroup, "{"), tok(TokenText, "x"), tok(TokenRGroup, "}"),
		}},
		{"\\alpha,", TokenList{tok(TokenCommand, "alpha"), tok(TokenPunct, ",")}},
		{"\\alpha", TokenList{tok(TokenCommand, "alpha")}},
		{"a\\|b", TokenList{tok(TokenText, "a"), tok(TokenVBar, "\\|"), tok(TokenText, "b")}},
		{"(a).", TokenList{
			tok(TokenLParen, "("), tok(TokenText, "a"), tok(TokenRParen, ")"), tok(TokenPunct, "."),
		}},
		{"a+b<c[d]", TokenList{tok(TokenText, "a+b<c[d]")}},
		{"one two", TokenList{
			tok(TokenText, "one"), tok(TokenSpace, " "), tok(TokenText, "two"),
		}},
		{"a \t\n  b", TokenList{
			tok(TokenText, "a"), tok(TokenSpace, " \t\n  "), tok(TokenText, "b"),
		}},
		{"end ", TokenList{tok(TokenText, "end"), tok(TokenSpace, " ")}},
		{"\\emph{x}", TokenList{
			tok(TokenCommand, "emph"), tok(TokenLGroup, "{"), tok(TokenText, "x"), tok(TokenRGroup, "}"),
		}},
		{"\\alpha\\beta", TokenList{tok(TokenCommand, "alpha"), tok(TokenCommand, "beta")}},
		{"trailing\\", TokenList{tok(TokenText, "trailing")}},
		{"say `", TokenList{tok(TokenText, "say"), tok(TokenSpace, " "), tok(TokenLQuote, "`")}},
	}
	for _, test := range cases {
		toks, err := Tokenize(test.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", test.in, err)
			continue
		}
		if !sameTokens(toks, test.expected) {
			t.Errorf("%q: got %s, expected %s", test.in, toks, test.expected)
		}
	}
}

func TestTokenizeMath(t *testing.T) {
	cases := []struct {
		in       string
		expected TokenList
	}{
		{"$x^2$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "x"), tok(TokenSuper, "^"),
			tok(TokenNumber, "2"), tok(TokenEndInlineMath, "$"),
		}},
		{"$a_{ij}$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "a"), tok(TokenSub, "_"),
			tok(TokenLGroup, "{"), tok(TokenText, "ij"), tok(TokenRGroup, "}"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$a + b < c$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "a"), tok(TokenSymbol, "+"),
			tok(TokenText, "b"), tok(TokenSymbol, "<"), tok(TokenText, "c"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$123x$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenNumber, "123"), tok(TokenText, "x"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$x2$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "x"), tok(TokenNumber, "2"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$a_n2^k$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "a"), tok(TokenSub, "_"),
			tok(TokenText, "n"), tok(TokenNumber, "2"), tok(TokenSuper, "^"),
			tok(TokenText, "k"), tok(TokenEndInlineMath, "$"),
		}},
		{"$x^²$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "x"), tok(TokenSuper, "^"),
			tok(TokenNumber, "²"), tok(TokenEndInlineMath, "$"),
		}},
		{"$x12y3$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "x"), tok(TokenNumber, "12"),
			tok(TokenText, "y"), tok(TokenNumber, "3"), tok(TokenEndInlineMath, "$"),
		}},
		{"$3.14$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenNumber, "3"), tok(TokenPunct, "."),
			tok(TokenNumber, "14"), tok(TokenEndInlineMath, "$"),
		}},
		{"$12$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenNumber, "12"), tok(TokenEndInlineMath, "$"),
		}},
		{"$f'(x)$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "f"), tok(TokenLQuote, "'"),
			tok(TokenLParen, "("), tok(TokenText, "x"), tok(TokenRParen, ")"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$[a,b]$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenLBrack, "["), tok(TokenText, "a"),
			tok(TokenPunct, ","), tok(TokenText, "b"), tok(TokenRBrack, "]"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$\\angle ABC$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenCommand, "angle"), tok(TokenText, "ABC"),
			tok(TokenEndInlineMath, "$"),
		}},
		{"$\\{1\\}$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenLCurly, "\\{"), tok(TokenNumber, "1"),
			tok(TokenRCurly, "\\}"), tok(TokenEndInlineMath, "$"),
		}},
		{"$|x|$", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "|x|"), tok(TokenEndInlineMath, "$"),
		}},
		{"$ x $", TokenList{
			tok(TokenStartInlineMath, "$"), tok(TokenText, "x"), tok(TokenEndInlineMath, "$"),
		}},
		{"Let $n$ be", TokenList{
			tok(TokenText, "Let"), tok(TokenSpace, " "), tok(TokenStartInlineMath, "$"),
			tok(TokenText, "n"), tok(TokenEndInlineMath, "$"), tok(TokenSpace, " "),
			tok(TokenText, "be"),
		}},
		{"\\[ a=1 \\] ok", TokenList{
			tok(TokenStartInlineMath, "\\["), tok(TokenText, "a="), tok(TokenNumber, "1"),
			tok(TokenEndInlineMath, "\\]"), tok(TokenSpace, " "), tok(TokenText, "ok"),
		}},
		{"$$$$", TokenList{tok(TokenStartDisplayMath, "$$"), tok(TokenEndDisplayMath, "$$")}},
		{"a$$$$b", TokenList{
			tok(TokenText, "a"), tok(TokenStartDisplayMath, "$$"),
			tok(TokenEndDisplayMath, "$$"), tok(TokenText, "b"),
		}},
	}

	for _, test := range cases {
		toks, err := Tokenize(test.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", test.in, err)
			continue
		}
		if !sameTokens(toks, test.expected) {
			t.Errorf("%q: got %s, expected %s", test.in, toks, test.expected)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		in       string
		expected *Error
	}{
		{"x^2", &Error{Kind: ErrUnexpected, Context: "^"}},
		{"a_1", &Error{Kind: ErrUnexpected, Context: "_"}},
		{"\\1", &Error{Kind: ErrUnexpectedCommandChar, Char: '1'}},
		{"\\ x", &Error{Kind: ErrUnexpectedCommandChar, Char: ' '}},
		{"$x\\]", &Error{Kind: ErrMismatchedMath, Opened: MathDollar, Closed: MathBracket}},
		{"\\[x$", &Error{Kind: ErrMismatchedMath, Opened: MathBracket, Closed: MathDollar}},
		{"$x", &Error{Kind: ErrUnterminated, Opened: MathDollar}},
		{"$", &Error{Kind: ErrUnterminated, Opened: MathDollar}},
		{"\\[x", &Error{Kind: ErrUnterminated, Opened: MathBracket}},
		{"$x ", &Error{Kind: ErrUnterminated, Opened: MathDollar}},
		{"$$", &Error{Kind: ErrUnterminated, Opened: MathDisplay}},
		{"$$$", &Error{Kind: ErrUnterminated, Opened: MathDisplay}},
		{"$$x$$", &Error{Kind: ErrNotImplemented, Context: "display maths"}},
		{"$$$x", &Error{Kind: ErrMismatchedMath, Opened: MathDisplay, Closed: MathDollar}},
		{"$\\[x$", &Error{Kind: ErrUnexpected, Context: "\\["}},
		{"a\\]", &Error{Kind: ErrUnexpected, Context: "\\]"}},
	}

	for _, test := range cases {
		toks, err := Tokenize(test.in)
		if err == nil {
			t.Errorf("%q: expected error, got %s", test.in, toks)
			continue
		}
		if toks != nil {
			t.Errorf("%q: partial output %s returned with error", test.in, toks)
		}
		var e2 *Error
		if !errors.As(err, &e2) {
			t.Errorf("%q: wrong error type %T", test.in, err)
			continue
		}
		exp := test.expected
		if e2.Kind != exp.Kind || e2.Context != exp.Context || e2.Char != exp.Char ||
			e2.Opened != exp.Opened || e2.Closed != exp.Closed {
			t.Errorf("%q: got error %q, expected kind %s", test.in, err, exp.Kind)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Tokenize("Let $x$ be a real number with x^2 = 2 and so on and so forth")
	e2, ok := err.(*Error)
	if !ok {
		t.Fatalf("wrong error %v", err)
	}
	if e2.Offset != 31 {
		t.Errorf("wrong offset: got %d, expected 31", e2.Offset)
	}
	if e2.Near != "^2 = 2 and so on ..." {
		t.Errorf("wrong context: got %q", e2.Near)
	}
	msg := err.Error()
	if !strings.Contains(msg, `"^"`) || !strings.Contains(msg, "offset 31") {
		t.Errorf("unhelpful error message %q", msg)
	}
}

func TestTextRuns(t *testing.T) {
	inputs := []string{
		"x",
		"hello",
		"a+b-c<d>e",
		"[a]|b|=c!",
		"123",
		"αβγ",
		"100%",
	}
	for _, in := range inputs {
		toks, err := Tokenize(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", in, err)
			continue
		}
		if len(toks) != 1 || toks[0].Type != TokenText || toks[0].Name != in {
			t.Errorf("%q: got %s, expected a single text token", in, toks)
		}
	}
}

func TestSpaceCollapse(t *testing.T) {
	for _, space := range []string{" ", "  ", "\t", "\n", " \t \n\r ", "\u00a0", "\u2003\t"} {
		toks, err := Tokenize("a" + space + "b")
		if err != nil {
			t.Errorf("%q: unexpected error: %s", space, err)
			continue
		}
		expected := TokenList{tok(TokenText, "a"), tok(TokenSpace, space), tok(TokenText, "b")}
		if !sameTokens(toks, expected) {
			t.Errorf("%q: got %s, expected %s", space, toks, expected)
		}
	}
}

func TestSource(t *testing.T) {
	inputs := []string{
		"hello",
		"Let $x^2+y^2=z^2$, where $x,y,z$ are positive integers.",
		"``quoted'' and `single' quotes",
		"\\[\\angle{ABC}=90^\\circ\\]",
		"$f'(x)=\\frac{1}{2}$",
		"Set \\{1, 2\\} and {group} (paren) $[0,1]$ and \\|v\\|.",
		"$1000a_{n+1}-b_n>0$; hence?",
		"$$$$ and \\alpha\\beta",
		"x'",
		"`",
		"trailing space \t",
	}
	for _, in := range inputs {
		toks, err := Tokenize(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", in, err)
			continue
		}
		if out := toks.Source(); out != in {
			t.Errorf("%q: reconstructed %q", in, out)
		}
	}
}

func TestSourceMathWhitespace(t *testing.T) {
	in := "Let $x, y$ be \\[ a + b \\] ok"
	toks, err := Tokenize(in)
	if err != nil {
		t.Fatal(err)
	}
	expected := "Let $x,y$ be \\[a+b\\] ok"
	if out := toks.Source(); out != expected {
		t.Errorf("got %q, expected %q", out, expected)
	}
}

func TestNoEmptyPayloads(t *testing.T) {
	inputs := []string{
		"a\\",
		"$\\alpha$\\",
		"{}()``''$$$$",
		"$1+2=3$ and 4",
		"\\foo\\bar",
	}
	for _, in := range inputs {
		toks, err := Tokenize(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", in, err)
			continue
		}
		for _, tok := range toks {
			if tok.Type.hasPayload() && tok.Name == "" {
				t.Errorf("%q: empty %s token", in, tok.Type)
			}
		}
	}
}

func TestSingleContext(t *testing.T) {
	p := NewTokenizer()
	p.input = "Let $x^{12}$ and \\[\\alpha\\] be ``x'' `y' z."
	for pos, c := range p.input {
		p.pos = pos
		err := p.tokenizeChar(c)
		if err != nil {
			t.Fatal(err)
		}
		contexts := 0
		for i := range p.stack {
			if p.stack[i].isContext() {
				contexts++
			}
		}
		if contexts != 1 || !p.stack[0].isContext() || len(p.stack) > 2 {
			t.Fatalf("invalid stack after %q at %d: %v", c, pos, p.stack)
		}
	}
}

func TestTokenizerReuse(t *testing.T) {
	p := NewTokenizer()
	_, err := p.Tokenize("a")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("second call to Tokenize did not panic")
		}
	}()
	p.Tokenize("b")
}

func TestFinishWithoutContext(t *testing.T) {
	p := NewTokenizer()
	p.stack = []item{{kind: itemNumber, buf: []byte("1")}}
	defer func() {
		if recover() == nil {
			t.Error("finishing a stack without context did not panic")
		}
	}()
	p.finish()
}
