package kicadsexp

import (
	"fmt"
	"io"
)

// Parse reads all of r and parses it as a single top-level S-expression.
func Parse(r io.Reader) (*List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString parses a document held in a string.
func ParseString(s string) (*List, error) {
	return ParseTokens(Tokenize(s))
}

// ParseTokens builds the tree for a tokenized document. The document must
// hold exactly one top-level list, optionally surrounded by whitespace.
func ParseTokens(tokens []Token) (*List, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		tokens = append(tokens, Token{Type: TokenEOF})
	}
	p := &parser{tokens: tokens}

	lead := p.space()
	tok := p.peek()
	switch tok.Type {
	case TokenLeftParen:
	case TokenEOF:
		return nil, &SyntaxError{Pos: tok.Pos, Reason: "empty document"}
	default:
		return nil, p.unexpected(tok, "expected '(' at top level")
	}

	root, err := p.parseList()
	if err != nil {
		return nil, err
	}
	root.pre = lead
	root.trail = p.space()

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.unexpected(tok, "unexpected content after top-level list")
	}
	return root, nil
}

// parser consumes a token slice in a single pass
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// space consumes whitespace tokens and returns their text
func (p *parser) space() string {
	var ws string
	for p.peek().Type == TokenWhitespace {
		ws += p.next().Value
	}
	return ws
}

// parseList parses a list: ( ... )
func (p *parser) parseList() (*List, error) {
	open := p.next()
	list := &List{layout: layout{parsed: true}}

	for {
		pre := p.space()
		tok := p.peek()

		switch tok.Type {
		case TokenRightParen:
			p.next()
			if len(list.items) == 0 {
				return nil, &SyntaxError{Pos: open.Pos, Reason: "empty list"}
			}
			list.tail = pre
			return list, nil

		case TokenEOF:
			return nil, &SyntaxError{Pos: open.Pos, Reason: "unterminated list"}

		case TokenLeftParen:
			child, err := p.parseList()
			if err != nil {
				return nil, err
			}
			child.pre = pre
			list.items = append(list.items, child)

		case TokenSymbol:
			p.next()
			list.items = append(list.items, &Leaf{
				layout: layout{pre: pre, parsed: true},
				value:  tok.Value,
				raw:    tok.Value,
			})

		case TokenString:
			p.next()
			list.items = append(list.items, &Leaf{
				layout: layout{pre: pre, parsed: true},
				value:  Unquote(tok.Value),
				quoted: true,
				raw:    tok.Value,
			})

		default:
			return nil, p.unexpected(tok, "")
		}
	}
}

func (p *parser) unexpected(tok Token, context string) error {
	var reason string
	switch {
	case tok.Type == TokenRightParen:
		reason = "unmatched ')'"
	case tok.Type == TokenInvalid && len(tok.Value) > 0 && tok.Value[0] == '"':
		reason = "unterminated string"
	case tok.Type == TokenInvalid:
		reason = fmt.Sprintf("invalid input %q", sample(tok.Value))
	case context != "":
		reason = fmt.Sprintf("%s, got %s %q", context, tok.Type, sample(tok.Value))
	default:
		reason = fmt.Sprintf("unexpected %s", tok.Type)
	}
	return &SyntaxError{Pos: tok.Pos, Reason: reason}
}

func sample(s string) string {
	r := []rune(s)
	if len(r) > 16 {
		return string(r[:16]) + "..."
	}
	return s
}
