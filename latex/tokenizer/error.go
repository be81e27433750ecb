// error.go -
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
	"fmt"
	"strings"
)

// ErrorKind classifies the errors reported by this package.
type ErrorKind int

// These are the different kinds of error.
const (
	// ErrIO indicates that a document could not be read.
	ErrIO ErrorKind = iota

	// ErrUnexpected indicates that a structural rule was violated,
	// e.g. a superscript outside maths.  Error.Context gives the
	// offending construct.
	ErrUnexpected

	// ErrUnexpectedCommandChar indicates an invalid character
	// immediately after a backslash.  Error.Char gives the character.
	ErrUnexpectedCommandChar

	// ErrUnterminated indicates that the input ended inside maths.
	// Error.Opened gives the opening delimiter.
	ErrUnterminated

	// ErrMismatchedMath indicates that maths was closed by a
	// different delimiter than the one which opened it.
	ErrMismatchedMath

	// ErrNotImplemented is reported for display maths content, which
	// this tokenizer cannot handle yet.
	ErrNotImplemented
)

func (kind ErrorKind) String() string {
	switch kind {
	case ErrIO:
		return "I/O error"
	case ErrUnexpected:
		return "unexpected"
	case ErrUnexpectedCommandChar:
		return "unexpected command character"
	case ErrUnterminated:
		return "unterminated maths"
	case ErrMismatchedMath:
		return "mismatched maths delimiters"
	case ErrNotImplemented:
		return "not implemented"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(kind))
}

// Error describes a failure to read or tokenize a document.
type Error struct {
	Kind ErrorKind

	// Context names the offending construct, for ErrUnexpected and
	// ErrNotImplemented.
	Context string

	// Char is the character following the backslash, for
	// ErrUnexpectedCommandChar.
	Char rune

	// Opened and Closed give the math delimiters involved, for
	// ErrUnterminated (Opened only) and ErrMismatchedMath.
	Opened, Closed MathStart

	// Offset is the byte offset of the offending character in the
	// input, and Near shows the input following it.  Both are unset
	// for errors detected at end of input and for I/O errors.
	Offset int
	Near   string

	// Name identifies the document, if known.
	Name string

	// Err is the underlying error, for ErrIO.
	Err error
}

func (err *Error) Error() string {
	var res []string
	if err.Name != "" {
		res = append(res, err.Name+": ")
	}
	res = append(res, err.Kind.String())
	switch err.Kind {
	case ErrIO:
		if err.Err != nil {
			res = append(res, ": "+err.Err.Error())
		}
	case ErrUnexpected, ErrNotImplemented:
		res = append(res, fmt.Sprintf(" %q", err.Context))
	case ErrUnexpectedCommandChar:
		res = append(res, fmt.Sprintf(" %q", err.Char))
	case ErrUnterminated:
		res = append(res, fmt.Sprintf(", opened with %q", err.Opened.Opening()))
	case ErrMismatchedMath:
		res = append(res, fmt.Sprintf(", opened with %q, closed with %q",
			err.Opened.Opening(), err.Closed.Closing()))
	}
	if err.Kind != ErrIO && err.Kind != ErrUnterminated {
		res = append(res, fmt.Sprintf(" at offset %d", err.Offset))
		if err.Near != "" {
			res = append(res, fmt.Sprintf(", before %q", err.Near))
		}
	}
	return strings.Join(res, "")
}

func (err *Error) Unwrap() error {
	return err.Err
}
