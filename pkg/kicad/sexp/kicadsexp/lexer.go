package kicadsexp

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenWhitespace
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
	// TokenInvalid covers text that cannot start a token, such as an
	// unterminated string. It is reported by the parser, not the lexer.
	TokenInvalid
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenWhitespace:
		return "whitespace"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	case TokenInvalid:
		return "invalid"
	}
	return "unknown"
}

// Position of a token in the source text (offset, line and column).
type Position = lexer.Position

// Token represents a lexical token. Value is the exact source text.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// sexpLexer defines the lexical structure of KiCad S-expressions.
// Whitespace is kept as a token so the parser can record layout.
var sexpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	// Quoted strings with backslash escapes
	{Name: "String", Pattern: `(?s)"(?:[^"\\]|\\.)*"`},

	// A quote with no closing partner swallows the rest of the input
	{Name: "Unterminated", Pattern: `(?s)"(?:[^"\\]|\\.)*\\?`},

	// Keywords, numbers and bare identifiers
	{Name: "Symbol", Pattern: `[^\s()"]+`},
})

var tokenTypes = func() map[lexer.TokenType]TokenType {
	symbols := sexpLexer.Symbols()
	return map[lexer.TokenType]TokenType{
		symbols["Whitespace"]:   TokenWhitespace,
		symbols["LParen"]:       TokenLeftParen,
		symbols["RParen"]:       TokenRightParen,
		symbols["String"]:       TokenString,
		symbols["Unterminated"]: TokenInvalid,
		symbols["Symbol"]:       TokenSymbol,
	}
}()

// Tokenize splits text into tokens. It never fails: input that cannot form
// a token is returned as a TokenInvalid token. The last token is always TokenEOF.
func Tokenize(text string) []Token {
	start := Position{Line: 1, Column: 1}
	lex, err := sexpLexer.LexString("", text)
	if err != nil {
		return invalidTail(nil, text, start)
	}

	tokens := make([]Token, 0, len(text)/4+1)
	for {
		tok, err := lex.Next()
		if err != nil {
			pos := start
			var lexErr *lexer.Error
			if errors.As(err, &lexErr) {
				pos = lexErr.Pos
			}
			return invalidTail(tokens, text, pos)
		}
		if tok.EOF() {
			return append(tokens, Token{Type: TokenEOF, Pos: tok.Pos})
		}
		tokens = append(tokens, Token{Type: tokenTypes[tok.Type], Value: tok.Value, Pos: tok.Pos})
	}
}

// invalidTail turns everything from pos onwards into a single invalid token.
func invalidTail(tokens []Token, text string, pos Position) []Token {
	rest := text[pos.Offset:]
	end := pos
	end.Advance(rest)
	if rest != "" {
		tokens = append(tokens, Token{Type: TokenInvalid, Value: rest, Pos: pos})
	}
	return append(tokens, Token{Type: TokenEOF, Pos: end})
}

// Unquote decodes a quoted string token. Recognised escapes are \n, \t, \r,
// \\ and \"; any other escaped character stands for itself.
func Unquote(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.Contains(raw, `\`) {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	escaped := false
	for _, ch := range raw {
		if escaped {
			switch ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteRune(ch)
			}
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote encodes s as a KiCad quoted string.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// needsQuoting reports whether s cannot be written as a bare symbol.
func needsQuoting(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\n\r\f\v()\"\\")
}
