// Package scanner implements the hand-written, on-demand tokenizer for
// Mini-PL source text: a byte cursor with line/column tracking, advanced
// one call at a time.
package scanner

import (
	"strings"

	"github.com/minipl-lang/minipl/internal/token"
)

// Scanner tokenizes source text on demand. The only state it carries
// beyond the cursor is whether it is presently inside a block comment.
// A block comment is consumed to its closing "*/" within a single Next()
// call, so the flag stays set only when input ends inside the comment.
type Scanner struct {
	src       string
	length    int
	position  int
	current   byte
	row       int
	column    int
	inComment bool
}

// New creates a Scanner positioned at the first character of src.
func New(src string) *Scanner {
	s := &Scanner{
		src:    src,
		length: len(src),
		row:    1,
		column: 1,
	}
	if s.length > 0 {
		s.current = src[0]
	}
	return s
}

// Next produces the next token, skipping whitespace and comments first.
// Repeated calls past end of input keep returning Eof at a stable
// position.
func (s *Scanner) Next() token.Token {
	s.skipIgnored()

	row, col := s.row, s.column

	switch {
	case s.current == 0:
		return token.New(token.Eof, "EOF", row, col)
	case s.current == '"':
		return s.readString()
	case isDigit(s.current):
		return s.readInteger()
	case isAlpha(s.current):
		return s.readIdentifier()
	}

	switch s.current {
	case '(':
		s.advance()
		return token.New(token.OpenParen, "(", row, col)
	case ')':
		s.advance()
		return token.New(token.CloseParen, ")", row, col)
	case '+':
		s.advance()
		return token.New(token.Add, "+", row, col)
	case '-':
		s.advance()
		return token.New(token.Minus, "-", row, col)
	case '*':
		s.advance()
		return token.New(token.Multiply, "*", row, col)
	case '/':
		// Comments are consumed by skipIgnored; a bare '/' here is division.
		s.advance()
		return token.New(token.Divide, "/", row, col)
	case '&':
		s.advance()
		return token.New(token.And, "&", row, col)
	case '!':
		s.advance()
		return token.New(token.Not, "!", row, col)
	case ';':
		s.advance()
		return token.New(token.StatementEnd, ";", row, col)
	case '=':
		s.advance()
		return token.New(token.Equals, "=", row, col)
	case '<':
		s.advance()
		return token.New(token.LessThan, "<", row, col)
	case ':':
		s.advance()
		if s.current == '=' {
			s.advance()
			return token.New(token.Assignment, ":=", row, col)
		}
		return token.New(token.Separator, ":", row, col)
	case '.':
		if s.peek() == '.' {
			s.advance()
			s.advance()
			return token.New(token.Range, "..", row, col)
		}
		s.advance()
		return token.New(token.Error, "illegal character '.'", row, col)
	}

	bad := s.current
	s.advance()
	return token.New(token.Error, "illegal character '"+string(bad)+"'", row, col)
}

func (s *Scanner) peek() byte {
	if s.position+1 >= s.length {
		return 0
	}
	return s.src[s.position+1]
}

func (s *Scanner) advance() {
	if s.current == '\n' {
		s.row++
		s.column = 1
	} else {
		s.column++
	}
	s.position++
	if s.position >= s.length {
		s.current = 0
		s.position = s.length
	} else {
		s.current = s.src[s.position]
	}
}

// skipIgnored consumes whitespace, line comments, and block comments. A
// block comment is consumed through its closing "*/", or to end of input
// if it is never closed.
func (s *Scanner) skipIgnored() {
	for {
		if s.inComment {
			for s.current != 0 {
				if s.current == '*' && s.peek() == '/' {
					s.advance()
					s.advance()
					s.inComment = false
					break
				}
				s.advance()
			}
			if s.inComment {
				// Ran out of input still inside the comment; nothing left to scan.
				return
			}
			continue
		}
		switch {
		case isSpace(s.current):
			s.advance()
		case s.current == '/' && s.peek() == '/':
			for s.current != '\n' && s.current != 0 {
				s.advance()
			}
		case s.current == '/' && s.peek() == '*':
			s.advance()
			s.advance()
			s.inComment = true
		default:
			return
		}
	}
}

func (s *Scanner) readString() token.Token {
	row, col := s.row, s.column
	s.advance() // consume opening quote
	var b strings.Builder
	for {
		if s.current == 0 || s.current == '\n' {
			return token.New(token.Error, "unterminated string literal", row, col)
		}
		if s.current == '"' {
			s.advance()
			return token.New(token.ValString, b.String(), row, col)
		}
		if s.current == '\\' {
			s.advance()
			switch s.current {
			case 'n':
				b.WriteByte('\n')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte('\\')
				b.WriteByte(s.current)
			}
			s.advance()
			continue
		}
		b.WriteByte(s.current)
		s.advance()
	}
}

func (s *Scanner) readInteger() token.Token {
	row, col := s.row, s.column
	start := s.position
	for isDigit(s.current) {
		s.advance()
	}
	return token.New(token.ValInteger, s.src[start:s.position], row, col)
}

func (s *Scanner) readIdentifier() token.Token {
	row, col := s.row, s.column
	start := s.position
	for isAlpha(s.current) || isDigit(s.current) {
		s.advance()
	}
	lexeme := s.src[start:s.position]
	return token.New(token.Lookup(lexeme), lexeme, row, col)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}
