package parser

import (
	"mapscript/ast"
	"mapscript/token"
)

// ParseProgram parses a whole script, or one line of one, into a list
// of statements. Errors accumulate in p.Errors; the returned list is
// whatever parsed cleanly before the first of them.
func (p *Parser) ParseProgram(source, input string) []ast.Statement {
	p.start(source, input)
	stmts := p.parseStatements(token.EOF)
	p.takeLexerErrors()
	return stmts
}

func (p *Parser) atAny(stops []token.TokenType) bool {
	for _, s := range stops {
		if p.curToken.Type == s {
			return true
		}
	}
	return false
}

// parseStatements parses until it reaches one of the stop keywords,
// which it leaves as the current token, or the end of the input.
func (p *Parser) parseStatements(stops ...token.TokenType) []ast.Statement {
	stmts := []ast.Statement{}
	for {
		for p.curToken.Type == token.NEWLINE || p.curToken.Type == token.SEMICOLON {
			p.nextToken()
		}
		if p.atAny(stops) || p.curToken.Type == token.EOF {
			return stmts
		}
		s := p.parseStatement()
		if s == nil {
			return stmts
		}
		stmts = append(stmts, s)
		p.nextToken()
		if p.curToken.Type != token.NEWLINE && p.curToken.Type != token.SEMICOLON &&
			p.curToken.Type != token.EOF && !p.atAny(stops) {
			p.Throw("parse/statement", p.curToken, "end of line")
			return stmts
		}
	}
}

// parseStatement parses one statement, leaving the current token on
// the statement's last token.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.PRINT:
		return p.parsePrintStatement()
	case token.LET:
		p.nextToken()
		return p.parseExpressionStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BEGIN:
		return p.parseProcedureStatement()
	case token.IDENT:
		if p.startsExpressionStatement() {
			return p.parseExpressionStatement()
		}
		return p.parseCallStatement()
	}
	return p.parseExpressionStatement()
}

// startsExpressionStatement decides what a line opening with a bare
// word is: followed by anything operator-like it is an expression,
// otherwise it is an awk-style call of a procedure, 'circle 10, 20'.
func (p *Parser) startsExpressionStatement() bool {
	switch p.peekToken.Type {
	case token.ASSIGN, token.LBRACK, token.INCREMENT, token.DECREMENT, token.LPAREN:
		return true
	}
	_, isOperator := precedences[p.peekToken.Type]
	return isOperator
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	exp := p.parseWholeExpression()
	if exp == nil {
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expression: exp}
}

func (p *Parser) atLineEnd() bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON, token.EOF:
		return true
	}
	return false
}

func (p *Parser) parseExpressionList() []*ast.Expression {
	args := []*ast.Expression{}
	for {
		p.nextToken()
		exp := p.parseWholeExpression()
		if exp == nil {
			return nil
		}
		args = append(args, exp)
		if p.peekToken.Type != token.COMMA {
			return args
		}
		p.nextToken()
	}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	tok := p.curToken
	if p.atLineEnd() {
		// A bare 'print' prints an empty line.
		return &ast.PrintStatement{Token: tok, Args: []*ast.Expression{}}
	}
	args := p.parseExpressionList()
	if args == nil {
		return nil
	}
	return &ast.PrintStatement{Token: tok, Args: args}
}

func (p *Parser) parseCallStatement() ast.Statement {
	tok := p.curToken
	args := []*ast.Expression{}
	if !p.atLineEnd() {
		args = p.parseExpressionList()
		if args == nil {
			return nil
		}
	}
	return &ast.CallStatement{Token: tok, Name: tok.Literal, Args: args}
}

// expectKeyword is expectPeek for the statement keywords, with its
// own error so the message can spell out the statement's shape.
func (p *Parser) expectKeyword(t token.TokenType, name string) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.Throw("parse/statement", p.peekToken, name)
	return false
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	conditions := []*ast.Expression{}
	consequences := [][]ast.Statement{}

	p.nextToken()
	cond := p.parseWholeExpression()
	if cond == nil {
		return nil
	}
	if !p.expectKeyword(token.THEN, "then") {
		return nil
	}
	p.nextToken()
	conditions = append(conditions, cond)
	consequences = append(consequences, p.parseStatements(token.ELIF, token.ELSE, token.ENDIF))

	for p.curToken.Type == token.ELIF {
		p.nextToken()
		cond = p.parseWholeExpression()
		if cond == nil {
			return nil
		}
		if !p.expectKeyword(token.THEN, "then") {
			return nil
		}
		p.nextToken()
		conditions = append(conditions, cond)
		consequences = append(consequences, p.parseStatements(token.ELIF, token.ELSE, token.ENDIF))
	}

	var alternative []ast.Statement
	if p.curToken.Type == token.ELSE {
		p.nextToken()
		alternative = p.parseStatements(token.ENDIF)
	}
	if p.curToken.Type != token.ENDIF {
		p.Throw("parse/statement", p.curToken, "endif")
		return nil
	}
	return &ast.IfStatement{
		Token:        tok,
		Conditions:   conditions,
		Consequences: consequences,
		Alternative:  alternative,
	}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	cond := p.parseWholeExpression()
	if cond == nil {
		return nil
	}
	if !p.expectKeyword(token.DO, "do") {
		return nil
	}
	p.nextToken()
	body := p.parseStatements(token.DONE)
	if p.curToken.Type != token.DONE {
		p.Throw("parse/statement", p.curToken, "done")
		return nil
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if p.peekToken.Type != token.IDENT {
		p.Throw("parse/statement", p.peekToken, "a loop variable")
		return nil
	}
	p.nextToken()
	variable := p.curToken.Literal
	if !p.expectKeyword(token.IN, "in") {
		return nil
	}
	p.nextToken()
	over := p.parseWholeExpression()
	if over == nil {
		return nil
	}
	if !p.expectKeyword(token.DO, "do") {
		return nil
	}
	p.nextToken()
	body := p.parseStatements(token.DONE)
	if p.curToken.Type != token.DONE {
		p.Throw("parse/statement", p.curToken, "done")
		return nil
	}
	return &ast.ForStatement{Token: tok, Variable: variable, Over: over, Body: body}
}

func (p *Parser) parseProcedureStatement() ast.Statement {
	tok := p.curToken
	if p.peekToken.Type != token.IDENT {
		p.Throw("parse/statement", p.peekToken, "a procedure name")
		return nil
	}
	p.nextToken()
	name := p.curToken.Literal
	params := []string{}
	if p.peekToken.Type == token.IDENT {
		p.nextToken()
		params = append(params, p.curToken.Literal)
		for p.peekToken.Type == token.COMMA {
			p.nextToken()
			if p.peekToken.Type != token.IDENT {
				p.Throw("parse/statement", p.peekToken, "a parameter name")
				return nil
			}
			p.nextToken()
			params = append(params, p.curToken.Literal)
		}
	}
	// Registered before the body parses, so the procedure can call
	// itself in function position.
	p.procedures[name] = len(params)
	p.nextToken()
	body := p.parseStatements(token.END)
	if p.curToken.Type != token.END {
		p.Throw("parse/statement", p.curToken, "end")
		return nil
	}
	return &ast.ProcedureStatement{Token: tok, Name: name, Parameters: params, Body: body}
}
