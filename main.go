// main.go -
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

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/seehuhn/mathtok/latex/cache"
	"github.com/seehuhn/mathtok/latex/corpus"
	"github.com/seehuhn/mathtok/latex/tokenizer"
)

var (
	root    = flag.String("root", ".", "base directory of the corpus")
	workers = flag.Int("workers", runtime.NumCPU(), "number of documents to tokenize in parallel")
	output  = flag.String("output", "", "file to write the token lists to")
	noCache = flag.Bool("no-cache", false, "do not use the token cache")
	abort   = flag.Bool("abort-on-load-error", false, "stop at the first document which cannot be read")
)

func main() {
	flag.Parse()

	var c *cache.Cache
	if !*noCache {
		var err error
		c, err = cache.NewCache("tokens")
		if err != nil {
			log.Fatal(err)
		}
	}

	entries := corpus.Entries(corpus.Default)
	results := corpus.Run(*root, entries, *workers, c)

	for _, res := range results {
		var e2 *tokenizer.Error
		if *abort && errors.As(res.Err, &e2) && e2.Kind == tokenizer.ErrIO {
			log.Fatal(res.Err)
		}
		if res.Err != nil {
			fmt.Printf("DEBUG: %s: error: %s\n", res.Entry, res.Err)
		} else {
			fmt.Printf("DEBUG: %s: %s\n", res.Entry, res.Tokens)
		}
	}
	summary := corpus.Summarize(results)
	fmt.Println("DEBUG:", summary)

	if *output != "" {
		err := writeResults(*output, results)
		if err != nil {
			log.Fatal(err)
		}
	}
	if c != nil {
		err := c.Close(64 << 20)
		if err != nil {
			log.Println(err)
		}
	}

	if len(summary.Failed) > 0 {
		os.Exit(1)
	}
}

func writeResults(fileName string, results []*corpus.Result) (err error) {
	log.Println("writing", fileName)
	out, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer func() {
		e2 := out.Close()
		if err == nil {
			err = e2
		}
	}()
	return corpus.WriteResults(out, results)
}
