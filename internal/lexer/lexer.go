package lexer

import (
	"github.com/bsparks/simple-script/internal/token"
	"unicode"
	"unicode/utf8"
)

// Error is a lexical diagnostic. Scanning never stops on one; the token that
// triggered it is still returned with whatever text was read.
type Error struct {
	Position int
	Message  string
}

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 at EOF

	errors []Error
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Errors returns the lexical diagnostics collected so far.
func (l *Lexer) Errors() []Error {
	return l.errors
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	startPosition := l.position

	if l.atEOF() {
		return token.Token{Type: token.EOF, Literal: "", Position: startPosition}
	}

	switch l.ch {
	case '=':
		tok = l.handleCompoundToken(token.ASSIGN, '=', token.EQ)
	case '!':
		tok = l.handleCompoundToken(token.BANG, '=', token.NOT_EQ)
	case '<':
		tok = l.handleCompoundToken(token.LT, '<', token.OPEN_BLOCK)
	case '>':
		tok = l.handleCompoundToken(token.GT, '>', token.CLOSE_BLOCK)
	case '+':
		tok = newToken(token.PLUS, l.ch, startPosition)
	case '-':
		tok = newToken(token.MINUS, l.ch, startPosition)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, startPosition)
	case '/':
		tok = newToken(token.SLASH, l.ch, startPosition)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, startPosition)
	case ':':
		tok = newToken(token.COLON, l.ch, startPosition)
	case ',':
		tok = newToken(token.COMMA, l.ch, startPosition)
	case '(':
		tok = newToken(token.LPAREN, l.ch, startPosition)
	case ')':
		tok = newToken(token.RPAREN, l.ch, startPosition)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, startPosition)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, startPosition)
	case '{':
		tok = token.Token{
			Type:     token.IDENT,
			Literal:  l.readDelimited('}', "unterminated identifier"),
			Position: startPosition,
		}
	case '}':
		tok = newToken(token.RBRACE, l.ch, startPosition)
	case '"':
		tok = token.Token{
			Type:     token.STRING,
			Literal:  l.readDelimited('"', "unterminated string literal"),
			Position: startPosition,
		}
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Position = startPosition
			return tok
		} else if isDigit(l.ch) {
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			tok.Position = startPosition
			return tok
		} else {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	startPosition := l.position
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		return token.Token{Type: t1, Literal: literal, Position: startPosition}
	}
	return newToken(t, l.ch, startPosition)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// atEOF is true once every byte of input has been consumed. A NUL rune in
// the input is not the end.
func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readDelimited consumes the opening delimiter and everything up to, not
// including, the closing one. The caller's trailing readChar steps over the
// closing delimiter. End of input ends the span and records a diagnostic.
func (l *Lexer) readDelimited(closing rune, unterminated string) string {
	open := l.position
	l.readChar()
	start := l.position
	for l.ch != closing && !l.atEOF() {
		l.readChar()
	}
	if l.atEOF() {
		l.errors = append(l.errors, Error{Position: open, Message: unterminated})
	}
	return l.input[start:l.position]
}

// readIdentifier keeps '.' inside identifiers so stage.vft.Score is one name
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber does not validate the dot count; 1.2.3 comes back as one token
// and is rejected by the parser.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, ch rune, position int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Position: position}
}
