package parser

import (
	"errors"
	"fmt"
	"github.com/bsparks/simple-script/internal/ast"
	"github.com/bsparks/simple-script/internal/lexer"
	"github.com/bsparks/simple-script/internal/token"
	"github.com/bsparks/simple-script/internal/util"
	"strconv"
)

const (
	_           int = iota
	LOWEST          // lowest binding power
	EQUALS          // ==
	LESSGREATER     // > or <
	SUM             // +
	PRODUCT         // *
	PREFIX          // -X or !X
	CALL            // myFunction(X)
	INDEX           // array[index]
)

var precedences = map[token.TokenType]int{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
}

// Parse functions report failure through the bool so a malformed expression
// never leaves a nil node inside the tree; the enclosing statement is dropped
// instead.
type (
	prefixParseFn func() (ast.Expression, bool)
	infixParseFn  func(ast.Expression) (ast.Expression, bool)
)

type Parser struct {
	l      *lexer.Lexer
	src    string // source code here
	errors []string

	curToken  token.Token
	peekToken token.Token

	lexErrors  int // lexer diagnostics already copied into errors
	blockDepth int // nesting of << >> blocks currently being parsed

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{
		l:      l,
		src:    source,
		errors: []string{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.OPEN_BLOCK, p.parseHashLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)

	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()

	if errs := p.l.Errors(); len(errs) > p.lexErrors {
		for _, e := range errs[p.lexErrors:] {
			p.addErrorAt(e.Position, "%s", e.Message)
		}
		p.lexErrors = len(errs)
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addErrorAt(position int, message string, args ...interface{}) {
	line, col := util.GetLineAndColumn(p.src, position)
	m := fmt.Sprintf(message, args...)
	msg := fmt.Sprintf("[%3d:%2d] %s", line, col, m)
	p.errors = append(p.errors, msg)
}

func (p *Parser) addError(message string, args ...interface{}) {
	p.addErrorAt(p.curToken.Position, message, args...)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addErrorAt(p.peekToken.Position, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.addError("no prefix parse function for %s found", t)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	} else {
		p.peekError(t)
		return false
	}
}

// Errors returns the parse diagnostics, lexical ones included, in the order
// they were found.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipToTerminator()
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		if stmt := p.parseLetStatement(); stmt != nil {
			return stmt
		}
	case token.RETURN:
		if stmt := p.parseReturnStatement(); stmt != nil {
			return stmt
		}
	default:
		if stmt := p.parseExpressionStatement(); stmt != nil {
			return stmt
		}
	}
	// typed nil pointers must not escape as non-nil interfaces
	return nil
}

// skipToTerminator advances to the next ';' or EOF. Inside a block it also
// stops in front of the closing '>>' so the block can still be closed.
func (p *Parser) skipToTerminator() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		if p.blockDepth > 0 && (p.curTokenIs(token.CLOSE_BLOCK) || p.peekTokenIs(token.CLOSE_BLOCK)) {
			return
		}
		p.nextToken()
	}
}

// endStatement moves from the last token of a let or return value onto the
// statement's ';'. A value that ends in '>>' (fn body, if branch, hash) is
// not the end of the enclosing block.
func (p *Parser) endStatement() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return
	}
	if p.peekTokenIs(token.EOF) || (p.blockDepth > 0 && p.peekTokenIs(token.CLOSE_BLOCK)) {
		return
	}
	p.nextToken()
	p.skipToTerminator()
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}

	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	p.nextToken()

	value, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil
	}
	stmt.Value = value

	p.endStatement()

	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	p.nextToken()

	value, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil
	}
	stmt.ReturnValue = value

	p.endStatement()

	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	expression, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil
	}
	stmt.Expression = expression

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseExpression(precedence int) (ast.Expression, bool) {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil, false
	}
	leftExp, ok := prefix()
	if !ok {
		return nil, false
	}

	for !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp, true
		}

		p.nextToken()

		leftExp, ok = infix(leftExp)
		if !ok {
			return nil, false
		}
	}

	return leftExp, true
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) parseIdentifier() (ast.Expression, bool) {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}, true
}

func (p *Parser) parseNumberLiteral() (ast.Expression, bool) {
	lit := &ast.NumberLiteral{Token: p.curToken}

	// out of range literals saturate to Infinity or 0
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.addError("could not parse %q as number", p.curToken.Literal)
		return nil, false
	}

	lit.Value = value
	return lit, true
}

func (p *Parser) parseStringLiteral() (ast.Expression, bool) {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}, true
}

func (p *Parser) parseBoolean() (ast.Expression, bool) {
	return &ast.Boolean{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}, true
}

func (p *Parser) parsePrefixExpression() (ast.Expression, bool) {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	right, ok := p.parseExpression(PREFIX)
	if !ok {
		return nil, false
	}
	expression.Right = right

	return expression, true
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, bool) {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()

	right, ok := p.parseExpression(precedence)
	if !ok {
		return nil, false
	}
	expression.Right = right

	return expression, true
}

func (p *Parser) parseGroupedExpression() (ast.Expression, bool) {
	p.nextToken()

	exp, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}

	return exp, true
}

func (p *Parser) parseIfExpression() (ast.Expression, bool) {
	expression := &ast.IfExpression{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil, false
	}

	p.nextToken()
	condition, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}
	expression.Condition = condition

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}

	if !p.expectPeek(token.OPEN_BLOCK) {
		return nil, false
	}

	expression.Consequence, ok = p.parseBlockStatement()
	if !ok {
		return nil, false
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		if !p.expectPeek(token.OPEN_BLOCK) {
			return nil, false
		}

		expression.Alternative, ok = p.parseBlockStatement()
		if !ok {
			return nil, false
		}
	}

	return expression, true
}

// parseBlockStatement expects curToken to be '<<' and leaves it on '>>'.
// A statement that fails inside the block is dropped like at top level.
func (p *Parser) parseBlockStatement() (*ast.BlockStatement, bool) {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.blockDepth++
	defer func() { p.blockDepth-- }()

	p.nextToken()

	for !p.curTokenIs(token.CLOSE_BLOCK) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			if p.curTokenIs(token.CLOSE_BLOCK) {
				break
			}
			p.skipToTerminator()
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.CLOSE_BLOCK) {
		p.addError("expected %s to close block opened at %s, got %s instead",
			token.CLOSE_BLOCK, p.position(block.Token.Position), p.curToken.Type)
		return nil, false
	}

	return block, true
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, bool) {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil, false
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil, false
	}
	lit.Parameters = params

	if !p.expectPeek(token.OPEN_BLOCK) {
		return nil, false
	}

	lit.Body, ok = p.parseBlockStatement()
	if !ok {
		return nil, false
	}

	return lit, true
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return identifiers, true
	}

	if !p.expectPeek(token.IDENT) {
		return nil, false
	}
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}

	return identifiers, true
}

func (p *Parser) parseCallExpression(function ast.Expression) (ast.Expression, bool) {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}

	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil, false
	}
	exp.Arguments = args

	return exp, true
}

func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	item, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}
	list = append(list, item)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		item, ok = p.parseExpression(LOWEST)
		if !ok {
			return nil, false
		}
		list = append(list, item)
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}

func (p *Parser) parseArrayLiteral() (ast.Expression, bool) {
	array := &ast.ArrayLiteral{Token: p.curToken}

	elements, ok := p.parseExpressionList(token.RBRACKET)
	if !ok {
		return nil, false
	}
	array.Elements = elements

	return array, true
}

func (p *Parser) parseIndexExpression(left ast.Expression) (ast.Expression, bool) {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	index, ok := p.parseExpression(LOWEST)
	if !ok {
		return nil, false
	}
	exp.Index = index

	if !p.expectPeek(token.RBRACKET) {
		return nil, false
	}

	return exp, true
}

// parseHashLiteral handles << key: value, ... >> in expression position.
// Blocks are only parsed where the grammar asks for one, so an opening '<<'
// reached through prefix dispatch is always a hash.
func (p *Parser) parseHashLiteral() (ast.Expression, bool) {
	hash := &ast.HashLiteral{Token: p.curToken}
	hash.Pairs = []ast.HashPair{}

	for !p.peekTokenIs(token.CLOSE_BLOCK) {
		p.nextToken()
		key, ok := p.parseExpression(LOWEST)
		if !ok {
			return nil, false
		}

		if !p.expectPeek(token.COLON) {
			return nil, false
		}

		p.nextToken()
		value, ok := p.parseExpression(LOWEST)
		if !ok {
			return nil, false
		}

		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})

		if !p.peekTokenIs(token.CLOSE_BLOCK) && !p.expectPeek(token.COMMA) {
			return nil, false
		}
	}

	if !p.expectPeek(token.CLOSE_BLOCK) {
		return nil, false
	}

	return hash, true
}

func (p *Parser) position(pos int) string {
	line, col := util.GetLineAndColumn(p.src, pos)
	return fmt.Sprintf("%d:%d", line, col)
}
