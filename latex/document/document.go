// document.go - load annotated solution documents
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

// Package document reads annotated solution documents from disk.
//
// A document starts with a header of annotation lines, each beginning
// with two HeaderMarker characters.  The header ends at the first line
// which does not start this way.  All remaining lines are joined
// without any separator to form the document content.
package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/seehuhn/mathtok/latex/tokenizer"
)

// HeaderMarker is the character which marks header lines.
const HeaderMarker = '%'

// Document is an annotated solution document.
type Document struct {
	// Name identifies the document in error messages.
	Name string

	// Header contains the header lines, including the leading
	// markers.
	Header []string

	// Content is the text of all lines after the header, with the
	// line breaks removed.
	Content string
}

// Open reads the document stored in the given file.
func Open(fileName string) (*Document, error) {
	fd, err := os.Open(fileName)
	if err != nil {
		return nil, ioError(fileName, err)
	}
	defer fd.Close()
	return Read(fd, fileName)
}

// Read reads a document from r.  The argument `name` is used to
// identify the document in error messages.
func Read(r io.Reader, name string) (*Document, error) {
	doc := &Document{Name: name}
	var content []string

	in := bufio.NewReader(r)
	header := true
	lineNo := 0
	for {
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, ioError(name, fmt.Errorf("line %d: %w", lineNo+1, err))
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNo++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if header && isHeaderLine(line) {
			doc.Header = append(doc.Header, line)
		} else {
			header = false
			content = append(content, line)
		}

		if err == io.EOF {
			break
		}
	}

	doc.Content = strings.Join(content, "")
	return doc, nil
}

func isHeaderLine(line string) bool {
	return len(line) >= 2 && line[0] == HeaderMarker && line[1] == HeaderMarker
}

// Tokenize splits the document content into tokens.
func (doc *Document) Tokenize() (tokenizer.TokenList, error) {
	toks, err := tokenizer.Tokenize(doc.Content)
	if err != nil {
		var e2 *tokenizer.Error
		if errors.As(err, &e2) {
			e2.Name = doc.Name
		}
		return nil, err
	}
	return toks, nil
}

func ioError(name string, err error) *tokenizer.Error {
	return &tokenizer.Error{
		Kind: tokenizer.ErrIO,
		Name: name,
		Err:  err,
	}
}
