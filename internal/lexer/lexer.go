// Package lexer turns source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/stackstep-io/stackstep/errz"
	"github.com/stackstep-io/stackstep/token"
)

// Lexer reads tokens from an input string one at a time.
type Lexer struct {
	input     string
	pos       int    // byte offset of the current character
	ch        byte   // current character, 0 at EOF
	line      int    // 0-indexed current line
	column    int    // 0-indexed current column
	lineStart int    // byte offset of the start of the current line
	filename  string // optional filename for positions
}

// New creates a Lexer for the given input string.
func New(input string) *Lexer {
	l := &Lexer{input: input, pos: -1}
	l.advance()
	return l
}

// SetFilename sets the filename attached to token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Next returns the next token from the input. At the end of the input an
// EOF token is returned; calling Next again keeps returning EOF.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()
	start := l.position()
	switch l.ch {
	case 0:
		return l.simple(token.EOF, "", start), nil
	case '+':
		if l.peek() == '+' {
			l.advance()
			return l.emit(token.PLUS_PLUS, "++", start)
		}
		return l.emit(token.PLUS, "+", start)
	case '-':
		if l.peek() == '-' {
			l.advance()
			return l.emit(token.MINUS_MINUS, "--", start)
		}
		return l.emit(token.MINUS, "-", start)
	case '*':
		return l.emit(token.ASTERISK, "*", start)
	case '/':
		return l.emit(token.SLASH, "/", start)
	case '%':
		return l.emit(token.MOD, "%", start)
	case '=':
		if l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
				return l.emit(token.STRICT_EQ, "===", start)
			}
			return l.emit(token.EQ, "==", start)
		}
		return l.emit(token.ASSIGN, "=", start)
	case '!':
		if l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
				return l.emit(token.STRICT_NOTEQ, "!==", start)
			}
			return l.emit(token.NOT_EQ, "!=", start)
		}
		return l.emit(token.BANG, "!", start)
	case '<':
		if l.peek() == '=' {
			l.advance()
			return l.emit(token.LT_EQUALS, "<=", start)
		}
		return l.emit(token.LT, "<", start)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return l.emit(token.GT_EQUALS, ">=", start)
		}
		return l.emit(token.GT, ">", start)
	case '&':
		if l.peek() == '&' {
			l.advance()
			return l.emit(token.AND, "&&", start)
		}
		return l.illegal(start, "unexpected character '&'")
	case '|':
		if l.peek() == '|' {
			l.advance()
			return l.emit(token.OR, "||", start)
		}
		return l.illegal(start, "unexpected character '|'")
	case '?':
		if l.peek() == '?' {
			l.advance()
			return l.emit(token.NULLISH, "??", start)
		}
		return l.emit(token.QUESTION, "?", start)
	case '.':
		if l.peek() == '.' && l.peekAt(2) == '.' {
			l.advance()
			l.advance()
			return l.emit(token.SPREAD, "...", start)
		}
		return l.emit(token.PERIOD, ".", start)
	case ',':
		return l.emit(token.COMMA, ",", start)
	case ';':
		return l.emit(token.SEMICOLON, ";", start)
	case ':':
		return l.emit(token.COLON, ":", start)
	case '(':
		return l.emit(token.LPAREN, "(", start)
	case ')':
		return l.emit(token.RPAREN, ")", start)
	case '{':
		return l.emit(token.LBRACE, "{", start)
	case '}':
		return l.emit(token.RBRACE, "}", start)
	case '[':
		return l.emit(token.LBRACKET, "[", start)
	case ']':
		return l.emit(token.RBRACKET, "]", start)
	case '"', '\'':
		return l.readString(l.ch, start)
	case '`':
		return l.readTemplate(start)
	}
	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		return l.readIdentifier(start)
	}
	return l.illegal(start, fmt.Sprintf("unexpected character %q", string(l.ch)))
}

// Tokenize reads all remaining tokens, including the trailing EOF token.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.column,
		File:      l.filename,
	}
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.pos + 1
		l.column = -1
	}
	l.pos++
	l.column++
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

func (l *Lexer) peek() byte {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		case l.ch == '/' && l.peek() == '*':
			l.advance()
			l.advance()
			for l.ch != 0 && !(l.ch == '*' && l.peek() == '/') {
				l.advance()
			}
			if l.ch != 0 {
				l.advance()
				l.advance()
			}
		default:
			return
		}
	}
}

// emit builds a token for literal text ending at the current character and
// then advances past it.
func (l *Lexer) emit(typ token.Type, literal string, start token.Position) (token.Token, error) {
	l.advance()
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}, nil
}

// simple builds a token without advancing; used for EOF.
func (l *Lexer) simple(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   start,
	}
}

func (l *Lexer) illegal(start token.Position, msg string) (token.Token, error) {
	tok := l.simple(token.ILLEGAL, string(l.ch), start)
	l.advance()
	return tok, errz.NewSyntaxError(start, l.LineText(start), msg)
}

// LineText returns the text of the source line containing pos, without
// its trailing newline. Used to render error snippets.
func (l *Lexer) LineText(pos token.Position) string {
	from := pos.LineStart
	if from < 0 || from >= len(l.input) {
		return ""
	}
	to := strings.IndexByte(l.input[from:], '\n')
	if to < 0 {
		return l.input[from:]
	}
	return l.input[from : from+to]
}

func (l *Lexer) readIdentifier(start token.Position) (token.Token, error) {
	from := l.pos
	for isIdentPart(l.ch) {
		l.advance()
	}
	literal := l.input[from:l.pos]
	return token.Token{
		Type:          token.LookupIdentifier(literal),
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}, nil
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	from := l.pos
	for isDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.advance()
		for isDigit(l.ch) {
			l.advance()
		}
	}
	literal := l.input[from:l.pos]
	return token.Token{
		Type:          token.NUMBER,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}, nil
}

func (l *Lexer) readString(quote byte, start token.Position) (token.Token, error) {
	l.advance() // consume the opening quote
	var value strings.Builder
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return l.simple(token.ILLEGAL, value.String(), start),
				errz.NewSyntaxError(start, l.LineText(start), "unterminated string literal")
		}
		if l.ch == '\\' {
			l.advance()
			switch l.ch {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\':
				value.WriteByte('\\')
			case quote:
				value.WriteByte(quote)
			default:
				value.WriteByte(l.ch)
			}
			l.advance()
			continue
		}
		value.WriteByte(l.ch)
		l.advance()
	}
	l.advance() // consume the closing quote
	end := l.position()
	return token.Token{
		Type:          token.STRING,
		Literal:       value.String(),
		StartPosition: start,
		EndPosition:   end,
	}, nil
}

// readTemplate reads a backtick-delimited template literal. The token
// literal is the raw text between the backticks; interpolations are parsed
// later, by the parser.
func (l *Lexer) readTemplate(start token.Position) (token.Token, error) {
	l.advance() // consume the opening backtick
	from := l.pos
	for l.ch != '`' {
		if l.ch == 0 {
			return l.simple(token.ILLEGAL, l.input[from:l.pos], start),
				errz.NewSyntaxError(start, l.LineText(start), "unterminated template literal")
		}
		if l.ch == '\\' {
			l.advance()
		}
		l.advance()
	}
	literal := l.input[from:l.pos]
	l.advance() // consume the closing backtick
	return token.Token{
		Type:          token.TEMPLATE,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
