package parser

import (
	"context"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/stackstep-io/stackstep/ast"
	"github.com/stackstep-io/stackstep/internal/lexer"
	"github.com/stackstep-io/stackstep/internal/tmpl"
	"github.com/stackstep-io/stackstep/token"
)

// parseExpression is the Pratt parsing core. It is called with curToken at
// the first token of the expression and returns with curToken at the last
// token of the expression.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.tokenErrorf(p.curToken, "unexpected token %q in expression", p.curToken.Literal)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}
	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseIdent() ast.Expr {
	return &ast.Ident{
		NamePos: p.curToken.StartPosition,
		Name:    p.curToken.Literal,
	}
}

func (p *Parser) parseNumber() ast.Expr {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.tokenErrorf(p.curToken, "invalid number literal %q", p.curToken.Literal)
		return nil
	}
	return &ast.Number{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    value,
	}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.StringLit{
		ValuePos: p.curToken.StartPosition,
		Literal:  strconv.Quote(p.curToken.Literal),
		Value:    p.curToken.Literal,
	}
}

func (p *Parser) parseBool() ast.Expr {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNull() ast.Expr {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

// parseTemplate splits a template literal into constant segments and
// interpolated expressions. The expressions are parsed by a nested parser;
// its errors are recorded on this parser.
func (p *Parser) parseTemplate() ast.Expr {
	tok := p.curToken
	template, err := tmpl.Parse(tok.Literal)
	if err != nil {
		p.tokenErrorf(tok, "%s", err.Error())
		return nil
	}
	node := &ast.Template{
		ValuePos: tok.StartPosition,
		Literal:  "`" + tok.Literal + "`",
	}
	quasi := ""
	for _, fragment := range template.Fragments() {
		if !fragment.IsVariable() {
			quasi += fragment.Value()
			continue
		}
		node.Quasis = append(node.Quasis, quasi)
		quasi = ""
		node.Exprs = append(node.Exprs, p.parseEmbedded(fragment.Value(), tok))
	}
	node.Quasis = append(node.Quasis, quasi)
	return node
}

// parseEmbedded parses one interpolated expression from a template
// literal. A failed parse yields a BadExpr covering the template token.
func (p *Parser) parseEmbedded(src string, at token.Token) ast.Expr {
	sub := New(lexer.New(src))
	sub.ctx = context.Background()
	expr := sub.parseExpression(LOWEST)
	if expr != nil && !sub.peekTokenIs(token.EOF) {
		sub.tokenErrorf(sub.peekToken, "unexpected token %q in template expression",
			sub.peekToken.Literal)
		expr = nil
	}
	if err := sub.errs.ErrorOrNil(); err != nil {
		p.errs = multierror.Append(p.errs, err)
	}
	if expr == nil {
		return &ast.BadExpr{From: at.StartPosition, To: at.EndPosition}
	}
	return expr
}

func (p *Parser) parsePrefix() ast.Expr {
	node := &ast.Prefix{
		OpPos: p.curToken.StartPosition,
		Op:    p.curToken.Literal,
	}
	p.nextToken()
	node.X = p.parseExpression(PREFIX)
	if node.X == nil {
		return nil
	}
	return node
}

func (p *Parser) parsePrefixUpdate() ast.Expr {
	node := &ast.Update{
		OpPos:    p.curToken.StartPosition,
		Op:       p.curToken.Literal,
		IsPrefix: true,
	}
	p.nextToken()
	node.Target = p.parseExpression(PREFIX)
	if node.Target == nil {
		return nil
	}
	return node
}

func (p *Parser) parsePostfixUpdate(left ast.Expr) ast.Expr {
	return &ast.Update{
		OpPos:  p.curToken.StartPosition,
		Op:     p.curToken.Literal,
		Target: left,
	}
}

func (p *Parser) parseGrouped() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("parenthesized expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	node := &ast.Infix{
		X:     left,
		OpPos: p.curToken.StartPosition,
		Op:    p.curToken.Literal,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	node.Y = p.parseExpression(precedence)
	if node.Y == nil {
		return nil
	}
	return node
}

func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	node := &ast.Assign{
		Target: left,
		OpPos:  p.curToken.StartPosition,
		Op:     p.curToken.Literal,
	}
	p.nextToken()
	// Right-associative: a = b = c parses as a = (b = c)
	node.Value = p.parseExpression(ASSIGNMENT - 1)
	if node.Value == nil {
		return nil
	}
	return node
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	node := &ast.Call{
		Callee: left,
		Lparen: p.curToken.StartPosition,
	}
	for {
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			break
		}
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		node.Args = append(node.Args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("call arguments", token.RPAREN) {
			return nil
		}
		break
	}
	node.Rparen = p.curToken.StartPosition
	return node
}

func (p *Parser) parseMember(left ast.Expr) ast.Expr {
	if !p.expectPeek("property access", token.IDENT) {
		return nil
	}
	return &ast.Member{
		Object: left,
		Prop: &ast.Ident{
			NamePos: p.curToken.StartPosition,
			Name:    p.curToken.Literal,
		},
		EndPos: p.curToken.EndPosition,
	}
}

func (p *Parser) parseComputedMember(left ast.Expr) ast.Expr {
	p.nextToken()
	key := p.parseExpression(LOWEST)
	if key == nil {
		return nil
	}
	if !p.expectPeek("computed property access", token.RBRACKET) {
		return nil
	}
	return &ast.Member{
		Object:   left,
		Prop:     key,
		Computed: true,
		EndPos:   p.curToken.EndPosition,
	}
}

func (p *Parser) parseSpread() ast.Expr {
	node := &ast.Spread{Ellipsis: p.curToken.StartPosition}
	p.nextToken()
	node.X = p.parseExpression(LOWEST)
	if node.X == nil {
		return nil
	}
	return node
}

func (p *Parser) parseArray() ast.Expr {
	node := &ast.Array{Lbracket: p.curToken.StartPosition}
	for {
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			break
		}
		if p.peekTokenIs(token.COMMA) {
			// An elision (hole), e.g. [1, , 3]
			p.nextToken()
			node.Elements = append(node.Elements, nil)
			continue
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		node.Elements = append(node.Elements, elem)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("array literal", token.RBRACKET) {
			return nil
		}
		break
	}
	node.Rbracket = p.curToken.StartPosition
	return node
}

func (p *Parser) parseObject() ast.Expr {
	node := &ast.Object{Lbrace: p.curToken.StartPosition}
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		p.nextToken()
		prop := p.parseProperty()
		if prop == nil {
			return nil
		}
		node.Properties = append(node.Properties, prop)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("object literal", token.RBRACE) {
			return nil
		}
		break
	}
	node.Rbrace = p.curToken.StartPosition
	return node
}

// parseProperty parses one object literal entry with curToken at its first
// token, ending at the entry's last token.
func (p *Parser) parseProperty() *ast.Property {
	// Spread property: {...expr}
	if p.curTokenIs(token.SPREAD) {
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.Property{Spread: true, Value: value}
	}
	// Computed key: {[expr]: value}
	if p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		if !p.expectPeek("computed property key", token.RBRACKET) {
			return nil
		}
		if !p.expectPeek("computed property", token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		return &ast.Property{KeyExpr: key, Value: value, Computed: true}
	}
	// Plain, shorthand or method properties all start with a name
	var key string
	switch p.curToken.Type {
	case token.IDENT, token.STRING:
		key = p.curToken.Literal
	case token.NUMBER:
		key = p.curToken.Literal
	default:
		p.tokenErrorf(p.curToken, "unexpected token %q in object literal", p.curToken.Literal)
		return nil
	}
	// Method shorthand: {name(params) {...}}; parsed to keep the statement
	// well-formed, diagnosed by the compiler.
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if p.parseParams() == nil {
			return nil
		}
		if !p.expectPeek("object method", token.LBRACE) {
			return nil
		}
		if p.parseBlock() == nil {
			return nil
		}
		return &ast.Property{Key: key, Method: true}
	}
	// Shorthand: {name}
	if !p.peekTokenIs(token.COLON) {
		return &ast.Property{
			Key: key,
			Value: &ast.Ident{
				NamePos: p.curToken.StartPosition,
				Name:    key,
			},
		}
	}
	p.nextToken() // move to ':'
	p.nextToken() // move to the value
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.Property{Key: key, Value: value}
}
