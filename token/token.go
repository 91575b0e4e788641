// Package token defines language keywords and tokens used when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AND          Type = "&&"
	AS           Type = "AS"
	ASSIGN       Type = "="
	ASTERISK     Type = "*"
	BANG         Type = "!"
	BREAK        Type = "BREAK"
	CASE         Type = "CASE"
	COLON        Type = ":"
	COMMA        Type = ","
	CONST        Type = "CONST"
	CONTINUE     Type = "CONTINUE"
	DEFAULT      Type = "DEFAULT"
	ELSE         Type = "ELSE"
	EOF          Type = "EOF"
	EQ           Type = "=="
	EXPORT       Type = "EXPORT"
	FALSE        Type = "FALSE"
	FOR          Type = "FOR"
	FROM         Type = "FROM"
	FUNCTION     Type = "FUNCTION"
	GT           Type = ">"
	GT_EQUALS    Type = ">="
	IDENT        Type = "IDENT"
	IF           Type = "IF"
	ILLEGAL      Type = "ILLEGAL"
	IMPORT       Type = "IMPORT"
	IN           Type = "IN"
	LBRACE       Type = "{"
	LBRACKET     Type = "["
	LET          Type = "LET"
	LPAREN       Type = "("
	LT           Type = "<"
	LT_EQUALS    Type = "<="
	MINUS        Type = "-"
	MINUS_MINUS  Type = "--"
	MOD          Type = "%"
	NOT_EQ       Type = "!="
	NULL         Type = "NULL"
	NULLISH      Type = "??"
	NUMBER       Type = "NUMBER"
	OF           Type = "OF"
	OR           Type = "||"
	PERIOD       Type = "."
	PLUS         Type = "+"
	PLUS_PLUS    Type = "++"
	QUESTION     Type = "?"
	RBRACE       Type = "}"
	RBRACKET     Type = "]"
	RETURN       Type = "RETURN"
	RPAREN       Type = ")"
	SEMICOLON    Type = ";"
	SLASH        Type = "/"
	SPREAD       Type = "..."
	STRICT_EQ    Type = "==="
	STRICT_NOTEQ Type = "!=="
	STRING       Type = "STRING"
	SWITCH       Type = "SWITCH"
	TEMPLATE     Type = "TEMPLATE"
	TRUE         Type = "TRUE"
	VAR          Type = "VAR"
	WHILE        Type = "WHILE"
)

// Reserved keywords
var keywords = map[string]Type{
	"as":       AS,
	"break":    BREAK,
	"case":     CASE,
	"const":    CONST,
	"continue": CONTINUE,
	"default":  DEFAULT,
	"else":     ELSE,
	"export":   EXPORT,
	"false":    FALSE,
	"for":      FOR,
	"from":     FROM,
	"function": FUNCTION,
	"if":       IF,
	"import":   IMPORT,
	"in":       IN,
	"let":      LET,
	"null":     NULL,
	"of":       OF,
	"return":   RETURN,
	"switch":   SWITCH,
	"true":     TRUE,
	"var":      VAR,
	"while":    WHILE,
}

// LookupIdentifier checks our keywords map for given input. If found the
// keyword token type is returned. Otherwise the identifier token type is
// returned.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}
