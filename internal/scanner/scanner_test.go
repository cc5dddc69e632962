package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minipl-lang/minipl/internal/token"
)

type expectedToken struct {
	kind   token.Kind
	lexeme string
}

func collect(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			return toks
		}
	}
}

func TestNextTokenizesStatements(t *testing.T) {
	tests := []struct {
		input string
		want  []expectedToken
	}{
		{
			input: `var x : int := 1 + 2;`,
			want: []expectedToken{
				{token.KeywordVar, "var"},
				{token.Identifier, "x"},
				{token.Separator, ":"},
				{token.TypeInt, "int"},
				{token.Assignment, ":="},
				{token.ValInteger, "1"},
				{token.Add, "+"},
				{token.ValInteger, "2"},
				{token.StatementEnd, ";"},
				{token.Eof, "EOF"},
			},
		},
		{
			input: `for i in 0..n do print i; end for;`,
			want: []expectedToken{
				{token.KeywordFor, "for"},
				{token.Identifier, "i"},
				{token.KeywordIn, "in"},
				{token.ValInteger, "0"},
				{token.Range, ".."},
				{token.Identifier, "n"},
				{token.KeywordDo, "do"},
				{token.KeywordPrint, "print"},
				{token.Identifier, "i"},
				{token.StatementEnd, ";"},
				{token.KeywordEnd, "end"},
				{token.KeywordFor, "for"},
				{token.StatementEnd, ";"},
				{token.Eof, "EOF"},
			},
		},
		{
			input: `!x & y = z < w`,
			want: []expectedToken{
				{token.Not, "!"},
				{token.Identifier, "x"},
				{token.And, "&"},
				{token.Identifier, "y"},
				{token.Equals, "="},
				{token.Identifier, "z"},
				{token.LessThan, "<"},
				{token.Identifier, "w"},
				{token.Eof, "EOF"},
			},
		},
	}

	for _, test := range tests {
		got := collect(test.input)
		assert.Len(t, got, len(test.want))
		for i, want := range test.want {
			assert.Equal(t, want.kind, got[i].Kind)
			assert.Equal(t, want.lexeme, got[i].Lexeme)
		}
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := collect(`"hi\nthere" "quote:\""`)
	assert.Equal(t, token.ValString, toks[0].Kind)
	assert.Equal(t, "hi\nthere", toks[0].Lexeme)
	assert.Equal(t, token.ValString, toks[1].Kind)
	assert.Equal(t, `quote:"`, toks[1].Lexeme)
}

func TestUnterminatedStringIsError(t *testing.T) {
	toks := collect(`"oops`)
	assert.Equal(t, token.Error, toks[0].Kind)
}

func TestStringWithEmbeddedNewlineIsError(t *testing.T) {
	toks := collect("\"oops\nmore\"")
	assert.Equal(t, token.Error, toks[0].Kind)
}

func TestLineCommentSkipped(t *testing.T) {
	toks := collect("x // trailing comment\ny")
	assert.Equal(t, token.Identifier, toks[0].Kind)
	assert.Equal(t, "x", toks[0].Lexeme)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "y", toks[1].Lexeme)
}

func TestBlockCommentSpansMultipleLines(t *testing.T) {
	s := New("x /* still\ngoing */ y")
	first := s.Next()
	assert.Equal(t, "x", first.Lexeme)
	second := s.Next()
	assert.Equal(t, "y", second.Lexeme)
	assert.Equal(t, token.Eof, s.Next().Kind)
}

func TestIllegalCharacterReportsError(t *testing.T) {
	toks := collect(`x @ y`)
	assert.Equal(t, token.Identifier, toks[0].Kind)
	assert.Equal(t, token.Error, toks[1].Kind)
}

func TestRepeatedEofIsStable(t *testing.T) {
	s := New("")
	first := s.Next()
	second := s.Next()
	assert.Equal(t, token.Eof, first.Kind)
	assert.Equal(t, token.Eof, second.Kind)
	assert.Equal(t, first.Pos, second.Pos)
}
