// corpus.go - the table of documents to tokenize
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

// Package corpus loads and tokenizes a collection of solution
// documents.
package corpus

import (
	"encoding/gob"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/seehuhn/mathtok/latex/tokenizer"
)

const baseNameSpaceURL = "http://mathtok.seehuhn.de/"

var nameSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(baseNameSpaceURL))

// Entry identifies one document of the corpus.
type Entry struct {
	Category string
	Year     string
	Item     string
}

func (e Entry) String() string {
	return e.Category + "/" + e.Year + "/" + e.Item
}

// Path returns the file name of the document, relative to baseDir.
func (e Entry) Path(baseDir string) string {
	return filepath.Join(baseDir, e.Category, e.Year, e.Item+".txt")
}

// ID returns an identifier for the document which is stable across
// runs.
func (e Entry) ID() uuid.UUID {
	return uuid.NewSHA1(nameSpace, []byte(e.String()))
}

// Group lists several documents with the same category and year.
type Group struct {
	Category string
	Year     string
	Items    []string
}

// Entries returns the documents of all groups, in order.
func Entries(groups []Group) []Entry {
	var res []Entry
	for _, g := range groups {
		for _, item := range g.Items {
			res = append(res, Entry{Category: g.Category, Year: g.Year, Item: item})
		}
	}
	return res
}

// geometry returns the item names g1, ..., gn.
func geometry(n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = "g" + strconv.Itoa(i+1)
	}
	return res
}

// Default is the list of annotated solutions shipped with the corpus.
var Default = []Group{
	{"imo", "1986", []string{"q1", "q2", "q3", "q4", "q5", "q6"}},
	{"imo", "2006", geometry(10)},
	{"imo", "2009", geometry(8)},
	{"imo", "2010", []string{"g1", "g2", "g3", "g4", "g5", "g6", "g6a", "g7"}},
	{"imo", "2011", geometry(8)},
	{"imo", "2012", geometry(8)},
	{"imo", "2013", geometry(6)},
	{"imo", "2014", geometry(7)},
	{"imo", "2015", geometry(8)},
	{"imo", "2016", geometry(8)},
	{"imo", "2017", geometry(8)},
	{"imo", "2018", geometry(7)},
	{"imo", "2019", geometry(8)},
	{"imo", "2020", []string{"q1", "s1-dshin", "q2", "q3", "q4", "q5", "q6"}},
	{"ireland", "1996", []string{"q1", "q2", "q3", "q4", "q7", "q8"}},
}

// Result describes the outcome of tokenizing one document.
type Result struct {
	Entry  Entry
	Tokens tokenizer.TokenList
	Err    error

	// Cached is set if the tokens were taken from the cache.
	Cached bool
}

// Summary aggregates the results of a corpus run.
type Summary struct {
	Passed int
	Failed []Entry
}

// Summarize counts the passed and failed documents.
func Summarize(results []*Result) *Summary {
	s := &Summary{}
	for _, res := range results {
		if res.Err != nil {
			s.Failed = append(s.Failed, res.Entry)
		} else {
			s.Passed++
		}
	}
	return s
}

func (s *Summary) String() string {
	if len(s.Failed) == 0 {
		return "all passed"
	}
	names := make([]string, len(s.Failed))
	for i, e := range s.Failed {
		names[i] = e.String()
	}
	return "errors: n=" + strconv.Itoa(len(s.Failed)) + " [" + strings.Join(names, " ") + "]"
}

// record is the serialized form of a Result.
type record struct {
	ID     uuid.UUID
	Name   string
	Tokens tokenizer.TokenList
	Error  string
}

// WriteResults writes the results to w, using gob encoding.
func WriteResults(w io.Writer, results []*Result) error {
	enc := gob.NewEncoder(w)
	for _, res := range results {
		rec := &record{
			ID:     res.Entry.ID(),
			Name:   res.Entry.String(),
			Tokens: res.Tokens,
		}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
		err := enc.Encode(rec)
		if err != nil {
			return err
		}
	}
	return nil
}
