package parser

import (
	"strconv"

	"mapscript/ast"
	"mapscript/lexer"
	"mapscript/object"
	"mapscript/token"
)

// Precedence levels, lowest first. 'not' binds looser than a
// comparison, so that 'not a == b' negates the comparison, and a
// conditional expression binds tighter than 'or', so that
// 'a or b ? c : d' applies the conditional to 'b'.
const (
	_ int = iota
	LOWEST
	ASSIGN   // =
	OR       // or
	AND      // and
	NOT      // not
	TERNARY  // ?:
	COMPARE  // == != < > <= >= lt gt le ge eq ne
	SUM      // + - .
	PRODUCT  // * / % x
	PREFIX   // -a, +a
	POSTFIX  // a++, a--
	INDEX    // a[1]
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:    ASSIGN,
	token.OR:        OR,
	token.AND:       AND,
	token.QUESTION:  TERNARY,
	token.EQ:        COMPARE,
	token.NOT_EQ:    COMPARE,
	token.LT:        COMPARE,
	token.GT:        COMPARE,
	token.LE:        COMPARE,
	token.GE:        COMPARE,
	token.LEX_LT:    COMPARE,
	token.LEX_GT:    COMPARE,
	token.LEX_LE:    COMPARE,
	token.LEX_GE:    COMPARE,
	token.LEX_EQ:    COMPARE,
	token.LEX_NE:    COMPARE,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.CONCAT:    SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.PERCENT:   PRODUCT,
	token.INCREMENT: POSTFIX,
	token.DECREMENT: POSTFIX,
	token.LBRACK:    INDEX,
}

// FunctionChecker is what the parser knows about callable functions:
// enough to reject an unknown name or a wrong argument count at parse
// time. The registry is passed in, never global.
type FunctionChecker interface {
	Arity(name string) (min, max int, ok bool)
}

type Parser struct {
	lex       *lexer.Lexer
	curToken  token.Token
	peekToken token.Token

	Errors    object.Errors
	Functions FunctionChecker

	// Procedures the parser has seen 'begin' blocks for, so a later
	// line can call them in function position. Name to arity.
	procedures map[string]int
}

func New(functions FunctionChecker) *Parser {
	return &Parser{
		Functions:  functions,
		Errors:     []*object.Error{},
		procedures: map[string]int{},
	}
}

func (p *Parser) Throw(errorID string, tok token.Token, args ...any) {
	p.Errors = object.Throw(errorID, p.Errors, tok, args...)
}

func (p *Parser) ErrorsExist() bool {
	return len(p.Errors) > 0
}

func (p *Parser) ReturnErrors() string {
	return object.GetList(p.Errors)
}

func (p *Parser) ClearErrors() {
	p.Errors = []*object.Error{}
}

func (p *Parser) start(source, input string) {
	p.lex = lexer.New(source, input)
	p.curToken = p.lex.NextNonCommentToken()
	p.peekToken = p.lex.NextNonCommentToken()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextNonCommentToken()
}

func (p *Parser) expectPeek(t token.TokenType, closer string) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.Throw("parse/close", p.peekToken, closer)
	return false
}

// takeLexerErrors moves whatever the lexer complained about into the
// parser's own error list. They go in front: a parse error after a
// lex error is usually its knock-on effect.
func (p *Parser) takeLexerErrors() {
	p.Errors = append(p.lex.Ers, p.Errors...)
	p.lex.Ers = []*object.Error{}
}

// ParseExpressionLine parses one complete expression and complains
// about anything left over.
func (p *Parser) ParseExpressionLine(source, input string) *ast.Expression {
	p.start(source, input)
	exp := p.parseWholeExpression()
	if exp != nil && p.peekToken.Type != token.EOF && p.peekToken.Type != token.NEWLINE {
		p.Throw("parse/prefix", p.peekToken)
	}
	p.takeLexerErrors()
	return exp
}

// parseWholeExpression parses an expression starting at the current
// token and wraps it for the statement layer.
func (p *Parser) parseWholeExpression() *ast.Expression {
	tok := p.curToken
	node := p.parseExpression(LOWEST)
	if node == nil {
		return nil
	}
	return &ast.Expression{Token: tok, Node: node}
}

func (p *Parser) parseExpression(precedence int) ast.Node {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) peekPrecedence() int {
	// The string-repeat operator is spelled 'x', which the lexer can't
	// tell from a variable; in operator position it is one.
	if p.peekToken.Type == token.IDENT && p.peekToken.Literal == "x" {
		return PRODUCT
	}
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parsePrefix() ast.Node {
	switch p.curToken.Type {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.IDENT:
		if p.peekToken.Type == token.LPAREN {
			return p.parseFunctionCall()
		}
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case token.MINUS, token.PLUS:
		return p.parseUnary()
	case token.NOT:
		tok := p.curToken
		p.nextToken()
		right := p.parseExpression(NOT)
		if right == nil {
			return nil
		}
		return &ast.PrefixExpression{Token: tok, Operator: "not", Right: right}
	case token.INCREMENT, token.DECREMENT:
		return p.parsePrefixIncrement()
	case token.LPAREN:
		return p.parseGrouped()
	case token.LBRACK:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseHashLiteral()
	case token.EOF, token.NEWLINE, token.SEMICOLON:
		p.Throw("parse/eof", p.curToken)
		return nil
	}
	p.Throw("parse/prefix", p.curToken)
	return nil
}

func (p *Parser) parseNumberLiteral() ast.Node {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		// The lexer validates number tokens, so this is unreachable
		// for its output; guard anyway for hand-made tokens.
		p.Throw("lex/num", p.curToken, p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseUnary() ast.Node {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parsePrefixIncrement() ast.Node {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	if !p.checkTarget(right, tok) {
		return nil
	}
	return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseGrouped() ast.Node {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, ")") {
		return nil
	}
	return exp
}

// checkTarget enforces that the operand of an assignment or of '++'
// and '--' is a variable or a single subscript of a variable.
func (p *Parser) checkTarget(node ast.Node, tok token.Token) bool {
	switch node := node.(type) {
	case *ast.Identifier:
		return true
	case *ast.IndexExpression:
		if _, ok := node.Left.(*ast.Identifier); ok {
			return true
		}
	}
	p.Throw("parse/variable", tok, node.String())
	return false
}

func (p *Parser) parseInfix(left ast.Node) ast.Node {
	switch p.curToken.Type {
	case token.ASSIGN:
		return p.parseAssignment(left)
	case token.QUESTION:
		return p.parseConditional(left)
	case token.INCREMENT, token.DECREMENT:
		return p.parsePostfix(left)
	case token.LBRACK:
		return p.parseIndex(left)
	}
	// Everything else, the 'x' operator included, is an ordinary
	// left-associative binary operator.
	tok := p.curToken
	precedence := PRODUCT
	if prec, ok := precedences[tok.Type]; ok {
		precedence = prec
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseAssignment(left ast.Node) ast.Node {
	tok := p.curToken
	if !p.checkTarget(left, tok) {
		return nil
	}
	p.nextToken()
	// Recursing at one level below makes assignment right-associative,
	// so 'a = b = 1' assigns 1 to both.
	right := p.parseExpression(ASSIGN - 1)
	if right == nil {
		return nil
	}
	return &ast.AssignmentExpression{Token: tok, Left: left, Right: right}
}

func (p *Parser) parseConditional(condition ast.Node) ast.Node {
	tok := p.curToken
	p.nextToken()
	consequence := p.parseExpression(LOWEST)
	if consequence == nil {
		return nil
	}
	if p.peekToken.Type != token.COLON {
		p.Throw("parse/colon", p.peekToken)
		return nil
	}
	p.nextToken()
	p.nextToken()
	alternative := p.parseExpression(LOWEST)
	if alternative == nil {
		return nil
	}
	return &ast.ConditionalExpression{
		Token:       tok,
		Condition:   condition,
		Consequence: consequence,
		Alternative: alternative,
	}
}

func (p *Parser) parsePostfix(left ast.Node) ast.Node {
	tok := p.curToken
	if _, doubled := left.(*ast.PrefixExpression); doubled {
		// Rejects '++x++' and friends.
		p.Throw("parse/variable", tok, left.String())
		return nil
	}
	if !p.checkTarget(left, tok) {
		return nil
	}
	return &ast.PostfixExpression{Token: tok, Operator: tok.Literal, Left: left}
}

func (p *Parser) parseIndex(left ast.Node) ast.Node {
	tok := p.curToken
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACK, "]") {
		return nil
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: index}
}

// isLiteralNode spots a '[...]' or '{...}' literal used where the flat
// hashmap model forbids one.
func isLiteralNode(node ast.Node) bool {
	switch node.(type) {
	case *ast.ArrayLiteral, *ast.HashLiteral:
		return true
	}
	return false
}

func (p *Parser) parseArrayLiteral() ast.Node {
	tok := p.curToken
	elements := []ast.Node{}
	if p.peekToken.Type == token.RBRACK {
		p.nextToken()
		return &ast.ArrayLiteral{Token: tok, Elements: elements}
	}
	for {
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		if isLiteralNode(el) {
			p.Throw("parse/nested", el.GetToken())
			return nil
		}
		elements = append(elements, el)
		if p.peekToken.Type != token.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACK, "]") {
		return nil
	}
	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseHashLiteral() ast.Node {
	tok := p.curToken
	keys := []ast.Node{}
	values := []ast.Node{}
	if p.peekToken.Type == token.RBRACE {
		p.nextToken()
		return &ast.HashLiteral{Token: tok, Keys: keys, Values: values}
	}
	for {
		p.nextToken()
		key := p.parseExpression(TERNARY)
		if key == nil {
			return nil
		}
		if isLiteralNode(key) {
			p.Throw("parse/nested", key.GetToken())
			return nil
		}
		if p.peekToken.Type != token.COLON {
			p.Throw("parse/close", p.peekToken, ":")
			return nil
		}
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		if isLiteralNode(value) {
			p.Throw("parse/nested", value.GetToken())
			return nil
		}
		keys = append(keys, key)
		values = append(values, value)
		if p.peekToken.Type != token.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE, "}") {
		return nil
	}
	return &ast.HashLiteral{Token: tok, Keys: keys, Values: values}
}

func (p *Parser) parseFunctionCall() ast.Node {
	nameTok := p.curToken
	name := nameTok.Literal
	p.nextToken() // onto the '('
	args := []ast.Node{}
	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
	} else {
		for {
			p.nextToken()
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.peekToken.Type != token.COMMA {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.RPAREN, ")") {
			return nil
		}
	}
	if p.Functions != nil {
		min, max, ok := p.Functions.Arity(name)
		if !ok {
			arity, isProc := p.procedures[name]
			if !isProc {
				p.Throw("parse/found", nameTok, name)
				return nil
			}
			min, max = arity, arity
		}
		if len(args) < min || len(args) > max {
			p.Throw("parse/arity", nameTok, name, len(args))
			return nil
		}
	}
	return &ast.FunctionCall{Token: nameTok, Name: name, Arguments: args}
}
