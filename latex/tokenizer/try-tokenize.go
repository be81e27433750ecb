//go:build ignore
// +build ignore

// Tokenize input (either given on the command line or in a file)
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/seehuhn/mathtok/latex/document"
	"github.com/seehuhn/mathtok/latex/tokenizer"
)

var input = flag.String("input", "", "input to tokenize")

func main() {
	flag.Parse()

	if *input != "" {
		toks, err := tokenizer.Tokenize(*input)
		if err != nil {
			log.Fatal(err)
		}
		for _, tok := range toks {
			fmt.Println(tok)
		}
	}

	for _, fname := range flag.Args() {
		doc, err := document.Open(fname)
		if err != nil {
			log.Fatal(err)
		}
		toks, err := doc.Tokenize()
		if err != nil {
			log.Fatal(err)
		}
		for _, tok := range toks {
			fmt.Println(tok)
		}
	}
}
