package parser

import (
	"github.com/stackstep-io/stackstep/ast"
	"github.com/stackstep-io/stackstep/token"
)

// parseStatement parses one complete statement, leaving curToken at the
// first token after the statement and its optional semicolon terminator.
// Returns nil after recording an error; the caller is responsible for
// resynchronizing.
func (p *Parser) parseStatement() ast.Stmt {
	if p.curTokenIs(token.SEMICOLON) {
		stmt := &ast.Empty{SemiPos: p.curToken.StartPosition}
		p.nextToken()
		return stmt
	}
	stmt := p.parseStatementInner()
	if stmt == nil {
		return nil
	}
	p.nextToken()
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseStatementInner dispatches on the current token and parses one
// statement, ending with curToken at the statement's last token.
func (p *Parser) parseStatementInner() ast.Stmt {
	switch p.curToken.Type {
	case token.LET, token.CONST, token.VAR:
		if stmt := p.parseVarDecl(); stmt != nil {
			return stmt
		}
		return nil
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.SWITCH:
		return p.parseSwitch()
	case token.BREAK:
		return &ast.Break{BreakPos: p.curToken.StartPosition}
	case token.CONTINUE:
		return &ast.Continue{ContinuePos: p.curToken.StartPosition}
	case token.FUNCTION:
		return p.parseFuncDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.IMPORT:
		return p.parseImport()
	case token.EXPORT:
		return p.parseExport()
	case token.LBRACE:
		if block := p.parseBlock(); block != nil {
			return block
		}
		return nil
	default:
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		return &ast.ExprStmt{X: expr}
	}
}

// parseBlock parses a braced statement list with curToken at "{", ending
// with curToken at the matching "}".
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Lbrace: p.curToken.StartPosition}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.tokenErrorf(p.curToken, "unterminated block (missing %q)", "}")
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			from := p.curToken.StartPosition
			p.synchronize()
			block.Stmts = append(block.Stmts, &ast.BadStmt{
				From: from,
				To:   p.curToken.StartPosition,
			})
			continue
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	stmt := &ast.VarDecl{
		DeclPos: p.curToken.StartPosition,
		Kind:    p.curToken.Literal,
	}
	for {
		target := p.parseDeclTarget()
		if target == nil {
			return nil
		}
		decl := &ast.Declarator{Target: target}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			decl.Value = p.parseExpression(LOWEST)
			if decl.Value == nil {
				return nil
			}
		}
		stmt.Decls = append(stmt.Decls, decl)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	stmt.EndPos = p.curToken.EndPosition
	return stmt
}

// parseDeclTarget parses a declaration target: an identifier or a
// destructuring pattern. Called with curToken before the target.
func (p *Parser) parseDeclTarget() ast.Expr {
	switch {
	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		return p.parseObjectPattern()
	case p.peekTokenIs(token.LBRACKET):
		p.nextToken()
		return p.parseArrayPattern()
	default:
		if !p.expectPeek("variable declaration", token.IDENT) {
			return nil
		}
		return &ast.Ident{
			NamePos: p.curToken.StartPosition,
			Name:    p.curToken.Literal,
		}
	}
}

func (p *Parser) parseObjectPattern() ast.Expr {
	pattern := &ast.ObjectPattern{Lbrace: p.curToken.StartPosition}
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		if !p.expectPeek("destructuring pattern", token.IDENT) {
			return nil
		}
		pattern.Names = append(pattern.Names, p.curToken.Literal)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("destructuring pattern", token.RBRACE) {
			return nil
		}
		break
	}
	pattern.Rbrace = p.curToken.StartPosition
	return pattern
}

func (p *Parser) parseArrayPattern() ast.Expr {
	pattern := &ast.ArrayPattern{Lbracket: p.curToken.StartPosition}
	for {
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			break
		}
		if !p.expectPeek("destructuring pattern", token.IDENT) {
			return nil
		}
		pattern.Names = append(pattern.Names, p.curToken.Literal)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("destructuring pattern", token.RBRACKET) {
			return nil
		}
		break
	}
	pattern.Rbracket = p.curToken.StartPosition
	return pattern
}

func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.If{IfPos: p.curToken.StartPosition}
	if !p.expectPeek("if statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek("if statement", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("if statement", token.LBRACE) {
		return nil
	}
	stmt.Consequent = p.parseBlock()
	if stmt.Consequent == nil {
		return nil
	}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			alt := p.parseIf()
			if alt == nil {
				return nil
			}
			stmt.Alternate = alt
		} else {
			if !p.expectPeek("else branch", token.LBRACE) {
				return nil
			}
			block := p.parseBlock()
			if block == nil {
				return nil
			}
			stmt.Alternate = block
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	stmt := &ast.While{WhilePos: p.curToken.StartPosition}
	if !p.expectPeek("while statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek("while statement", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("while statement", token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseFor dispatches between for-in, for-of and C-style for loops after
// inspecting the tokens that follow "for (".
func (p *Parser) parseFor() ast.Stmt {
	forPos := p.curToken.StartPosition
	if !p.expectPeek("for statement", token.LPAREN) {
		return nil
	}

	// C-style loop with an empty initializer: for (;;...
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return p.parseForClassic(forPos, nil)
	}

	var declKind string
	var target ast.Expr
	if p.peekTokenIs(token.LET) || p.peekTokenIs(token.CONST) || p.peekTokenIs(token.VAR) {
		p.nextToken()
		declKind = p.curToken.Literal
		target = p.parseDeclTarget()
	} else {
		p.nextToken()
		target = p.parseExpression(LOWEST)
	}
	if target == nil {
		return nil
	}

	switch {
	case p.peekTokenIs(token.IN):
		p.nextToken()
		p.nextToken()
		object := p.parseExpression(LOWEST)
		if object == nil {
			return nil
		}
		body := p.parseForBody()
		if body == nil {
			return nil
		}
		return &ast.ForIn{
			ForPos: forPos,
			Decl:   declKind,
			Target: target,
			Object: object,
			Body:   body,
		}
	case p.peekTokenIs(token.OF):
		p.nextToken()
		p.nextToken()
		iterable := p.parseExpression(LOWEST)
		if iterable == nil {
			return nil
		}
		body := p.parseForBody()
		if body == nil {
			return nil
		}
		return &ast.ForOf{
			ForPos:   forPos,
			Decl:     declKind,
			Target:   target,
			Iterable: iterable,
			Body:     body,
		}
	}

	// C-style loop: finish parsing the initializer clause.
	init := p.parseForClassicInit(declKind, target)
	if init == nil {
		return nil
	}
	if !p.expectPeek("for statement", token.SEMICOLON) {
		return nil
	}
	return p.parseForClassic(forPos, init)
}

// parseForBody parses the ") {...}" tail shared by for-in and for-of.
func (p *Parser) parseForBody() *ast.Block {
	if !p.expectPeek("for statement", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("for statement", token.LBRACE) {
		return nil
	}
	return p.parseBlock()
}

// parseForClassicInit completes the initializer of a C-style for loop from
// the already-parsed declaration keyword and first target.
func (p *Parser) parseForClassicInit(declKind string, target ast.Expr) ast.Stmt {
	if declKind == "" {
		return &ast.ExprStmt{X: target}
	}
	decl := &ast.VarDecl{
		DeclPos: target.Pos(),
		Kind:    declKind,
	}
	first := &ast.Declarator{Target: target}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		first.Value = p.parseExpression(LOWEST)
		if first.Value == nil {
			return nil
		}
	}
	decl.Decls = append(decl.Decls, first)
	decl.EndPos = p.curToken.EndPosition
	return decl
}

// parseForClassic parses the remainder of a C-style for loop with curToken
// at the first semicolon. The compiler diagnoses these loops; the parser
// still builds a faithful node.
func (p *Parser) parseForClassic(forPos token.Position, init ast.Stmt) ast.Stmt {
	stmt := &ast.ForClassic{ForPos: forPos, Init: init}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Cond = p.parseExpression(LOWEST)
		if stmt.Cond == nil {
			return nil
		}
		if !p.expectPeek("for statement", token.SEMICOLON) {
			return nil
		}
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Post = p.parseExpression(LOWEST)
		if stmt.Post == nil {
			return nil
		}
		if !p.expectPeek("for statement", token.RPAREN) {
			return nil
		}
	}
	if !p.expectPeek("for statement", token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseSwitch() ast.Stmt {
	stmt := &ast.Switch{SwitchPos: p.curToken.StartPosition}
	if !p.expectPeek("switch statement", token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if !p.expectPeek("switch statement", token.RPAREN) {
		return nil
	}
	if !p.expectPeek("switch statement", token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.tokenErrorf(p.curToken, "unterminated switch statement")
			return nil
		}
		c := p.parseSwitchCase()
		if c == nil {
			return nil
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	stmt.Rbrace = p.curToken.StartPosition
	return stmt
}

// parseSwitchCase parses one "case expr:" or "default:" clause and its
// statement list, ending with curToken at the start of the next clause or
// at the closing brace.
func (p *Parser) parseSwitchCase() *ast.SwitchCase {
	c := &ast.SwitchCase{CasePos: p.curToken.StartPosition}
	switch p.curToken.Type {
	case token.CASE:
		p.nextToken()
		c.Test = p.parseExpression(LOWEST)
		if c.Test == nil {
			return nil
		}
		if !p.expectPeek("case clause", token.COLON) {
			return nil
		}
	case token.DEFAULT:
		if !p.expectPeek("default clause", token.COLON) {
			return nil
		}
	default:
		p.tokenErrorf(p.curToken, "unexpected token %q in switch statement (expected case or default)",
			p.curToken.Literal)
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.CASE) && !p.curTokenIs(token.DEFAULT) &&
		!p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			from := p.curToken.StartPosition
			p.synchronize()
			c.Body = append(c.Body, &ast.BadStmt{
				From: from,
				To:   p.curToken.StartPosition,
			})
			continue
		}
		c.Body = append(c.Body, stmt)
	}
	c.EndPos = p.curToken.StartPosition
	return c
}

func (p *Parser) parseFuncDecl() ast.Stmt {
	stmt := &ast.FuncDecl{FuncPos: p.curToken.StartPosition}
	if !p.expectPeek("function declaration", token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Ident{
		NamePos: p.curToken.StartPosition,
		Name:    p.curToken.Literal,
	}
	if !p.expectPeek("function declaration", token.LPAREN) {
		return nil
	}
	params := p.parseParams()
	if params == nil {
		return nil
	}
	stmt.Params = *params
	if !p.expectPeek("function declaration", token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseParams parses a parenthesized parameter list with curToken at "(",
// ending with curToken at ")". Returns a pointer so an empty list can be
// distinguished from a parse failure.
func (p *Parser) parseParams() *[]ast.Expr {
	params := []ast.Expr{}
	for {
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return &params
		}
		p.nextToken()
		param := p.parseExpression(LOWEST)
		if param == nil {
			return nil
		}
		params = append(params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("parameter list", token.RPAREN) {
			return nil
		}
		return &params
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{ReturnPos: p.curToken.StartPosition}
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseImport() ast.Stmt {
	stmt := &ast.Import{ImportPos: p.curToken.StartPosition}

	// Default import: import name [, ...] from "mod"
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		stmt.Specs = append(stmt.Specs, &ast.ImportSpec{
			Kind:  ast.ImportDefault,
			Local: p.curToken.Literal,
		})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	// Namespace import: * as name
	if p.peekTokenIs(token.ASTERISK) {
		p.nextToken()
		if !p.expectPeek("namespace import", token.AS) {
			return nil
		}
		if !p.expectPeek("namespace import", token.IDENT) {
			return nil
		}
		stmt.Specs = append(stmt.Specs, &ast.ImportSpec{
			Kind:  ast.ImportNamespace,
			Local: p.curToken.Literal,
		})
	}

	// Named imports: { a, b as c }
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		for {
			if p.peekTokenIs(token.RBRACE) {
				p.nextToken()
				break
			}
			if !p.expectPeek("import specifier", token.IDENT) {
				return nil
			}
			spec := &ast.ImportSpec{
				Kind:     ast.ImportNamed,
				Imported: p.curToken.Literal,
				Local:    p.curToken.Literal,
			}
			if p.peekTokenIs(token.AS) {
				p.nextToken()
				if !p.expectPeek("import alias", token.IDENT) {
					return nil
				}
				spec.Local = p.curToken.Literal
			}
			stmt.Specs = append(stmt.Specs, spec)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			if !p.expectPeek("import specifiers", token.RBRACE) {
				return nil
			}
			break
		}
	}

	if len(stmt.Specs) == 0 {
		p.tokenErrorf(p.peekToken, "import statement has no specifiers")
		return nil
	}
	if !p.expectPeek("import statement", token.FROM) {
		return nil
	}
	if !p.expectPeek("import statement", token.STRING) {
		return nil
	}
	stmt.Source = p.curToken.Literal
	stmt.EndPos = p.curToken.EndPosition
	return stmt
}

func (p *Parser) parseExport() ast.Stmt {
	exportPos := p.curToken.StartPosition

	// Inline declaration: export let/const/var/function ...
	switch p.peekToken.Type {
	case token.LET, token.CONST, token.VAR:
		p.nextToken()
		decl := p.parseVarDecl()
		if decl == nil {
			return nil
		}
		return &ast.ExportDecl{ExportPos: exportPos, Decl: decl}
	case token.FUNCTION:
		p.nextToken()
		decl := p.parseFuncDecl()
		if decl == nil {
			return nil
		}
		return &ast.ExportDecl{ExportPos: exportPos, Decl: decl}
	}

	// Specifier list: export { a, b as c }
	if !p.expectPeek("export statement", token.LBRACE) {
		return nil
	}
	stmt := &ast.ExportNamed{ExportPos: exportPos}
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		if !p.expectPeek("export specifier", token.IDENT) {
			return nil
		}
		spec := &ast.ExportSpec{
			Local:    p.curToken.Literal,
			Exported: p.curToken.Literal,
		}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if !p.expectPeek("export alias", token.IDENT) {
				return nil
			}
			spec.Exported = p.curToken.Literal
		}
		stmt.Specs = append(stmt.Specs, spec)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("export specifiers", token.RBRACE) {
			return nil
		}
		break
	}
	stmt.EndPos = p.curToken.EndPosition
	return stmt
}
