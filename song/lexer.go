package song

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Only the space character separates tokens; tabs belong to the token.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^ ]+`},
	{Name: "Space", Pattern: ` +`},
})

var wordType = lineLexer.Symbols()["Word"]

type word struct {
	text   string
	column int // rune column of the first rune
}

// words splits line into maximal runs of non-space characters.
func words(line string) []word {
	lex, err := lineLexer.LexString("", line)
	if err != nil {
		return nil
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}

	res := make([]word, 0, len(tokens)/2+1)
	for _, tok := range tokens {
		if tok.Type != wordType {
			continue
		}
		res = append(res, word{
			text:   tok.Value,
			column: utf8.RuneCountInString(line[:tok.Pos.Offset]),
		})
	}
	return res
}
