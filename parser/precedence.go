package parser

import "github.com/stackstep-io/stackstep/token"

// Operator precedence levels, from loosest to tightest binding.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT // =
	COALESCE   // ??
	LOGICAL_OR // ||
	LOGICAL_AND
	EQUALITY   // == != === !==
	RELATIONAL // < > <= >=
	SUM        // + -
	PRODUCT    // * / %
	PREFIX     // -x !x
	POSTFIX    // x++ x--
	CALL       // foo(x) foo.bar foo[x]
)

var precedences = map[token.Type]int{
	token.ASSIGN:       ASSIGNMENT,
	token.NULLISH:      COALESCE,
	token.OR:           LOGICAL_OR,
	token.AND:          LOGICAL_AND,
	token.EQ:           EQUALITY,
	token.STRICT_EQ:    EQUALITY,
	token.NOT_EQ:       EQUALITY,
	token.STRICT_NOTEQ: EQUALITY,
	token.LT:           RELATIONAL,
	token.GT:           RELATIONAL,
	token.LT_EQUALS:    RELATIONAL,
	token.GT_EQUALS:    RELATIONAL,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.ASTERISK:     PRODUCT,
	token.SLASH:        PRODUCT,
	token.MOD:          PRODUCT,
	token.PLUS_PLUS:    POSTFIX,
	token.MINUS_MINUS:  POSTFIX,
	token.LPAREN:       CALL,
	token.PERIOD:       CALL,
	token.LBRACKET:     CALL,
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}
