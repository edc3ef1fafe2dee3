package ast

import (
	"bytes"
	"strings"

	"mapscript/token"
)

// The base Node interface
type Node interface {
	GetToken() token.Token
	TokenLiteral() string
	String() string
}

// Expression wraps the root node of one parsed expression. It is the
// unit handed to the evaluator, and the unit the statement executor
// asks for a variable name.
type Expression struct {
	Token token.Token // the first token of the expression
	Node  Node
}

func (es *Expression) GetToken() token.Token { return es.Token }
func (es *Expression) TokenLiteral() string  { return es.Token.Literal }
func (es *Expression) String() string        { return es.Node.String() }

// VariableName returns the variable's name if the whole expression is
// a bare variable reference, and "" otherwise.
func (es *Expression) VariableName() string {
	if ident, ok := es.Node.(*Identifier); ok {
		return ident.Value
	}
	return ""
}

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) String() string        { return i.Value }

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) GetToken() token.Token { return nl.Token }
func (nl *NumberLiteral) TokenLiteral() string  { return nl.Token.Literal }
func (nl *NumberLiteral) String() string        { return nl.Token.Literal }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) GetToken() token.Token { return sl.Token }
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Literal }
func (sl *StringLiteral) String() string        { return "\"" + sl.Value + "\"" }

type PrefixExpression struct {
	Token    token.Token
	Operator string // "-", "+", "not", "++", "--"
	Right    Node
}

func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(pe.Operator)
	out.WriteString(" ")
	out.WriteString(pe.Right.String())
	out.WriteString(")")

	return out.String()
}

type PostfixExpression struct {
	Token    token.Token
	Operator string // "++", "--"
	Left     Node
}

func (se *PostfixExpression) GetToken() token.Token { return se.Token }
func (se *PostfixExpression) TokenLiteral() string  { return se.Token.Literal }
func (se *PostfixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(se.Left.String() + " ")
	out.WriteString(se.Operator)
	out.WriteString(")")

	return out.String()
}

type InfixExpression struct {
	Token    token.Token
	Left     Node
	Operator string
	Right    Node
}

func (ie *InfixExpression) GetToken() token.Token { return ie.Token }
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	out.WriteString(")")

	return out.String()
}

type AssignmentExpression struct {
	Token token.Token
	Left  Node // an *Identifier or an *IndexExpression
	Right Node
}

func (ae *AssignmentExpression) GetToken() token.Token { return ae.Token }
func (ae *AssignmentExpression) TokenLiteral() string  { return "=" }
func (ae *AssignmentExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ae.Left.String())
	out.WriteString(" = ")
	out.WriteString(ae.Right.String())
	out.WriteString(")")

	return out.String()
}

type ConditionalExpression struct {
	Token       token.Token // the ? token
	Condition   Node
	Consequence Node
	Alternative Node
}

func (ce *ConditionalExpression) GetToken() token.Token { return ce.Token }
func (ce *ConditionalExpression) TokenLiteral() string  { return "?" }
func (ce *ConditionalExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ce.Condition.String())
	out.WriteString(" ? ")
	out.WriteString(ce.Consequence.String())
	out.WriteString(" : ")
	out.WriteString(ce.Alternative.String())
	out.WriteString(")")

	return out.String()
}

type IndexExpression struct {
	Token token.Token // the [ token
	Left  Node
	Index Node
}

func (ie *IndexExpression) GetToken() token.Token { return ie.Token }
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Literal }
func (ie *IndexExpression) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ie.Left.String())
	out.WriteString("[")
	out.WriteString(ie.Index.String())
	out.WriteString("])")

	return out.String()
}

// ArrayLiteral is '[e1, e2, ...]', a hashmap with auto-numbered keys
// "1", "2", ...
type ArrayLiteral struct {
	Token    token.Token // the [ token
	Elements []Node
}

func (al *ArrayLiteral) GetToken() token.Token { return al.Token }
func (al *ArrayLiteral) TokenLiteral() string  { return "[" }
func (al *ArrayLiteral) String() string {
	var out bytes.Buffer

	elements := []string{}
	for _, e := range al.Elements {
		elements = append(elements, e.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

// HashLiteral is '{k1: v1, k2: v2, ...}' with explicit keys.
type HashLiteral struct {
	Token  token.Token // the { token
	Keys   []Node
	Values []Node
}

func (hl *HashLiteral) GetToken() token.Token { return hl.Token }
func (hl *HashLiteral) TokenLiteral() string  { return "{" }
func (hl *HashLiteral) String() string {
	var out bytes.Buffer

	pairs := []string{}
	for i, k := range hl.Keys {
		pairs = append(pairs, k.String()+": "+hl.Values[i].String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")

	return out.String()
}

type FunctionCall struct {
	Token     token.Token // the function's name
	Name      string
	Arguments []Node
}

func (fc *FunctionCall) GetToken() token.Token { return fc.Token }
func (fc *FunctionCall) TokenLiteral() string  { return fc.Token.Literal }
func (fc *FunctionCall) String() string {
	var out bytes.Buffer

	args := []string{}
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	out.WriteString(fc.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")

	return out.String()
}

// --- Statements ------------------------------------------------------------

// Statements are what the interpreter's outer loop executes; every
// construct below ultimately drives expressions through the evaluator.

type Statement interface {
	Node
	statementNode()
}

type ExpressionStatement struct {
	Token      token.Token
	Expression *Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Literal }
func (es *ExpressionStatement) String() string        { return es.Expression.String() }

type PrintStatement struct {
	Token token.Token
	Args  []*Expression
}

func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) GetToken() token.Token { return ps.Token }
func (ps *PrintStatement) TokenLiteral() string  { return "print" }
func (ps *PrintStatement) String() string {
	args := []string{}
	for _, a := range ps.Args {
		args = append(args, a.String())
	}
	return "print " + strings.Join(args, ", ")
}

type IfStatement struct {
	Token        token.Token
	Conditions   []*Expression // the if condition, then one per elif
	Consequences [][]Statement
	Alternative  []Statement // the else block, possibly nil
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) GetToken() token.Token { return is.Token }
func (is *IfStatement) TokenLiteral() string  { return "if" }
func (is *IfStatement) String() string        { return "if " + is.Conditions[0].String() + " then ... endif" }

type WhileStatement struct {
	Token     token.Token
	Condition *Expression
	Body      []Statement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }
func (ws *WhileStatement) TokenLiteral() string  { return "while" }
func (ws *WhileStatement) String() string        { return "while " + ws.Condition.String() + " do ... done" }

// ForStatement iterates a hashmap's keys in sorted order, binding each
// key in turn to the loop variable.
type ForStatement struct {
	Token    token.Token
	Variable string
	Over     *Expression
	Body     []Statement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) GetToken() token.Token { return fs.Token }
func (fs *ForStatement) TokenLiteral() string  { return "for" }
func (fs *ForStatement) String() string {
	return "for " + fs.Variable + " in " + fs.Over.String() + " do ... done"
}

type ProcedureStatement struct {
	Token      token.Token
	Name       string
	Parameters []string
	Body       []Statement
}

func (ps *ProcedureStatement) statementNode()        {}
func (ps *ProcedureStatement) GetToken() token.Token { return ps.Token }
func (ps *ProcedureStatement) TokenLiteral() string  { return "begin" }
func (ps *ProcedureStatement) String() string {
	return "begin " + ps.Name + " " + strings.Join(ps.Parameters, ", ") + " ... end"
}

// CallStatement invokes a user-defined procedure by name, awk-style,
// without parentheses: 'circle 10, 20'.
type CallStatement struct {
	Token token.Token
	Name  string
	Args  []*Expression
}

func (cs *CallStatement) statementNode()        {}
func (cs *CallStatement) GetToken() token.Token { return cs.Token }
func (cs *CallStatement) TokenLiteral() string  { return cs.Name }
func (cs *CallStatement) String() string {
	args := []string{}
	for _, a := range cs.Args {
		args = append(args, a.String())
	}
	return cs.Name + " " + strings.Join(args, ", ")
}
