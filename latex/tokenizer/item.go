// item.go -
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

import "strconv"

// MathStart records which delimiter opened a maths context.
type MathStart int

// These are the possible maths delimiters.
const (
	MathDollar  MathStart = iota // $ ... $
	MathBracket                  // \[ ... \]
	MathDisplay                  // $$ ... $$
)

// Opening returns the delimiter which starts maths of this kind.
func (ms MathStart) Opening() string {
	switch ms {
	case MathDollar:
		return "$"
	case MathBracket:
		return "\\["
	case MathDisplay:
		return "$$"
	}
	return "MathStart(" + strconv.Itoa(int(ms)) + ")"
}

// Closing returns the delimiter which ends maths of this kind.
func (ms MathStart) Closing() string {
	if ms == MathBracket {
		return "\\]"
	}
	return ms.Opening()
}

func (ms MathStart) String() string {
	return ms.Opening()
}

// mode is only used to decide whether a run of white space becomes a
// token.
type mode int

const (
	modeText mode = iota
	modeInlineMath
	modeDisplayMath
)

type itemKind int

const (
	// contexts
	itemText itemKind = iota
	itemInlineMath
	itemDisplayMath

	// accumulators, always stacked on top of a context
	itemNumber
	itemCommand
	itemLQuote
	itemRQuote
	itemSpace
)

// item is one entry on the tokenizer stack.
type item struct {
	kind itemKind
	buf  []byte

	// For itemInlineMath, init is set until the first character after
	// an opening "$" has been seen.  For itemDisplayMath, init is set
	// after the first "$" of the closing "$$".
	init  bool
	start MathStart
}

func (it *item) isContext() bool {
	return it.kind <= itemDisplayMath
}
