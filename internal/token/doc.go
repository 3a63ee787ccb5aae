// Package token defines the lexical vocabulary of the pyrite source language:
// token kinds, the Token value passed between the lexer and the parser, and
// the keyword table. Indentation structure is part of the vocabulary — the
// lexer emits Newline/Indent/Dedent tokens so the parser never counts spaces.
package token
