// Package tokenizer converts annotated LaTeX solution documents into a
// flat stream of tokens.
//
// The tokenizer reads its input one character at a time and
// distinguishes prose text, inline and display maths, quotation marks,
// numbers, commands and structural delimiters.  Macros are not
// expanded and command arguments are not parsed; the output is a
// linear list of tokens.
package tokenizer
