// Package parser is used to generate the abstract syntax tree (AST) for a
// source program.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling parser.Parse() to produce the
// AST. The parser recovers from syntax errors at statement boundaries by
// emitting ast.BadStmt nodes, so that a single pass reports every syntax
// error; the errors are aggregated into one value with go-multierror.
package parser

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/stackstep-io/stackstep/ast"
	"github.com/stackstep-io/stackstep/errz"
	"github.com/stackstep-io/stackstep/internal/lexer"
	"github.com/stackstep-io/stackstep/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parse the provided input as source code and return the AST. This is a
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	return New(lexer.New(input), options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name used in token positions and error
// messages.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// Parser transforms a token stream into an AST.
type Parser struct {
	ctx       context.Context
	l         *lexer.Lexer
	filename  string
	errs      *multierror.Error
	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New returns a Parser that reads tokens from the given lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{l: l}
	for _, opt := range options {
		opt(p)
	}
	// The filename must reach the lexer before any tokens are read, so
	// that every token position carries it.
	if p.filename != "" {
		l.SetFilename(p.filename)
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:       p.parseIdent,
		token.NUMBER:      p.parseNumber,
		token.STRING:      p.parseString,
		token.TEMPLATE:    p.parseTemplate,
		token.TRUE:        p.parseBool,
		token.FALSE:       p.parseBool,
		token.NULL:        p.parseNull,
		token.BANG:        p.parsePrefix,
		token.MINUS:       p.parsePrefix,
		token.PLUS_PLUS:   p.parsePrefixUpdate,
		token.MINUS_MINUS: p.parsePrefixUpdate,
		token.LPAREN:      p.parseGrouped,
		token.LBRACKET:    p.parseArray,
		token.LBRACE:      p.parseObject,
		token.SPREAD:      p.parseSpread,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:         p.parseInfix,
		token.MINUS:        p.parseInfix,
		token.ASTERISK:     p.parseInfix,
		token.SLASH:        p.parseInfix,
		token.MOD:          p.parseInfix,
		token.EQ:           p.parseInfix,
		token.STRICT_EQ:    p.parseInfix,
		token.NOT_EQ:       p.parseInfix,
		token.STRICT_NOTEQ: p.parseInfix,
		token.LT:           p.parseInfix,
		token.GT:           p.parseInfix,
		token.LT_EQUALS:    p.parseInfix,
		token.GT_EQUALS:    p.parseInfix,
		token.AND:          p.parseInfix,
		token.OR:           p.parseInfix,
		token.NULLISH:      p.parseInfix,
		token.ASSIGN:       p.parseAssign,
		token.LPAREN:       p.parseCall,
		token.PERIOD:       p.parseMember,
		token.LBRACKET:     p.parseComputedMember,
		token.PLUS_PLUS:    p.parsePostfixUpdate,
		token.MINUS_MINUS:  p.parsePostfixUpdate,
	}

	// Prime curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Parse reads statements until the end of the input and returns the
// Program along with any syntax errors found along the way, combined into
// a single error value. The returned Program is non-nil even on error; bad
// statements are represented as ast.BadStmt nodes.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		if err := ctx.Err(); err != nil {
			return program, err
		}
		stmt := p.parseStatement()
		if stmt == nil {
			from := p.curToken.StartPosition
			p.synchronize()
			program.Stmts = append(program.Stmts, &ast.BadStmt{
				From: from,
				To:   p.curToken.StartPosition,
			})
			continue
		}
		program.Stmts = append(program.Stmts, stmt)
	}
	return program, p.errs.ErrorOrNil()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	tok, err := p.l.Next()
	if err != nil {
		p.errs = multierror.Append(p.errs, err)
	}
	p.peekToken = tok
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek advances to the peek token when it has the expected type and
// records a syntax error otherwise.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if !p.peekTokenIs(t) {
		p.tokenErrorf(p.peekToken, "unexpected token %q in %s (expected %q)",
			p.peekToken.Literal, context, string(t))
		return false
	}
	p.nextToken()
	return true
}

// tokenErrorf records a syntax error at the position of the given token.
func (p *Parser) tokenErrorf(tok token.Token, format string, args ...interface{}) {
	pos := tok.StartPosition
	err := errz.NewSyntaxErrorf(pos, p.l.LineText(pos), format, args...)
	p.errs = multierror.Append(p.errs, err)
}

// synchronize skips tokens until a likely statement boundary, so that one
// syntax error does not cascade into many.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) || p.curTokenIs(token.RBRACE) {
			p.nextToken()
			return
		}
		p.nextToken()
	}
}
