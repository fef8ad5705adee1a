package parser

import (
	"fmt"
	"strconv"

	"nestbox/internal/engine"
	"nestbox/internal/errors"
	"nestbox/internal/lexer"
)

// Span is a range of text in a source.
type Span struct {
	source Source
	start  int
	end    int
}

// NewSpan creates a span from a source and a byte range.
func NewSpan(source Source, start, end int) Span {
	return Span{source: source, start: start, end: end}
}

// Source returns the span's source.
func (s Span) Source() Source {
	return s.source
}

// Text returns the spanned text.
func (s Span) Text() string {
	return s.source.Text()[s.start:s.end]
}

// Locate returns the 1-based (line, column) of the span's start.
func (s Span) Locate() (int, int) {
	return s.source.Locate(s.start)
}

// SpannedCommand is a command together with the span it was parsed from.
type SpannedCommand struct {
	Command Command
	Span    Span
}

// Parse parses a source into a list of commands. The error, if any, is a
// *errors.ScriptError carrying the location of the offending token.
func Parse(source Source) ([]SpannedCommand, error) {
	var spanned []SpannedCommand

	for index := 0; index < source.LineLen(); index++ {
		text, _ := source.Line(index)
		lineStart := source.LineStart(index)

		commands, lexErr := parseLine(text)
		if lexErr != nil {
			line, column := source.Locate(lineStart + lexErr.Start)
			return nil, errors.New(errors.SyntaxError, lexErr.Message,
				source.Name(), line, column).WithSource(text)
		}

		span := NewSpan(source, lineStart, lineStart+len(text))
		for _, command := range commands {
			spanned = append(spanned, SpannedCommand{Command: command, Span: span})
		}
	}

	return spanned, nil
}

func parseLine(text string) ([]Command, *lexer.Error) {
	p := newLineParser(text)
	var commands []Command

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.TokenEOL {
			break
		}

		tok, _ = p.next()
		switch tok.Type {
		case lexer.TokenDefine:
			defined, err := parseDefine(p)
			if err != nil {
				return nil, err
			}
			commands = append(commands, defined...)
		case lexer.TokenPlace:
			command, err := parsePlace(p)
			if err != nil {
				return nil, err
			}
			commands = append(commands, command)
		case lexer.TokenPush:
			command, err := parsePush(p)
			if err != nil {
				return nil, err
			}
			commands = append(commands, command)
		case lexer.TokenExpect:
			command, err := parseExpect(p)
			if err != nil {
				return nil, err
			}
			commands = append(commands, command)
		default:
			return nil, p.expected("statement keyword")
		}
	}

	return commands, nil
}

func parseDefine(p *lineParser) ([]Command, *lexer.Error) {
	proto, err := p.expectProto()
	if err != nil {
		return nil, err
	}
	block, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var size *engine.Size
	var reference *string
	solid := false

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == lexer.TokenEOL {
			break
		}

		tok, _ = p.next()
		switch tok.Type {
		case lexer.TokenSize:
			if !proto.NeedsSize() {
				return nil, p.unexpected("`size` keyword")
			}
			if solid {
				return nil, p.conflict("`size` keyword", "`solid` keyword")
			}
			if size != nil {
				return nil, p.multiple("`size` keywords")
			}
			s, err := p.expectSize()
			if err != nil {
				return nil, err
			}
			size = &s
		case lexer.TokenRef:
			if !proto.NeedsRef() {
				return nil, p.unexpected("`ref` keyword")
			}
			if reference != nil {
				return nil, p.multiple("`ref` keywords")
			}
			r, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			reference = &r
		case lexer.TokenSolid:
			if proto != lexer.TokenBox {
				return nil, p.unexpected("`solid` keyword")
			}
			if size != nil {
				return nil, p.conflict("`solid` keyword", "`size` keyword")
			}
			if solid {
				return nil, p.multiple("`solid` keywords")
			}
			solid = true
		default:
			return nil, p.expected("`size`, `ref` or `solid`")
		}
	}

	resolved := engine.Size{}
	if size != nil {
		resolved = *size
	}
	if solid {
		resolved = engine.Size{Width: 1, Height: 1}
	}

	var meta MetaProtoType
	switch proto {
	case lexer.TokenWall:
		meta = MetaProtoType{Kind: engine.Wall}
	case lexer.TokenBox:
		meta = MetaProtoType{Kind: engine.Box, Size: resolved}
	case lexer.TokenAlias, lexer.TokenInfinity, lexer.TokenEpsilon:
		if reference == nil {
			return nil, p.missing("`ref` keyword")
		}
		switch proto {
		case lexer.TokenAlias:
			meta = MetaProtoType{Kind: engine.Alias, Reference: *reference}
		case lexer.TokenInfinity:
			meta = MetaProtoType{Kind: engine.Infinity, Reference: *reference}
		default:
			meta = MetaProtoType{Kind: engine.Epsilon, Size: resolved, Reference: *reference}
		}
	case lexer.TokenVoid:
		meta = MetaProtoType{Kind: engine.Void, Size: resolved}
	}

	commands := []Command{Define(block, meta)}

	if solid {
		// A solid box is a (1, 1) box with a wall placed inside.
		interior := block + "::interior"
		commands = append(commands,
			Define(interior, MetaProtoType{Kind: engine.Wall}),
			Place(interior, block, 0, 0),
		)
	}

	return commands, nil
}

func parsePlace(p *lineParser) (Command, *lexer.Error) {
	block, err := p.expectIdent()
	if err != nil {
		return Command{}, err
	}

	position, err := parsePositionProps(p)
	if err != nil {
		return Command{}, err
	}
	return Place(block, position.Container, position.X, position.Y), nil
}

func parseExpect(p *lineParser) (Command, *lexer.Error) {
	block, err := p.expectIdent()
	if err != nil {
		return Command{}, err
	}

	position, err := parsePositionProps(p)
	if err != nil {
		return Command{}, err
	}
	return Expect(block, position.Container, position.X, position.Y), nil
}

// parsePositionProps parses the shared property grammar of place and
// expect: either both `at` and `in`, or `orphan`.
func parsePositionProps(p *lineParser) (MetaPosition, *lexer.Error) {
	var container *string
	var pos *engine.Size
	orphan := false

	for {
		tok, err := p.peek()
		if err != nil {
			return MetaPosition{}, err
		}
		if tok.Type == lexer.TokenEOL {
			break
		}

		tok, _ = p.next()
		switch tok.Type {
		case lexer.TokenAt:
			if orphan {
				return MetaPosition{}, p.conflict("`at` keyword", "`orphan` keyword")
			}
			if pos != nil {
				return MetaPosition{}, p.multiple("`at` keywords")
			}
			s, err := p.expectSize()
			if err != nil {
				return MetaPosition{}, err
			}
			pos = &s
		case lexer.TokenIn:
			if orphan {
				return MetaPosition{}, p.conflict("`in` keyword", "`orphan` keyword")
			}
			if container != nil {
				return MetaPosition{}, p.multiple("`in` keywords")
			}
			c, err := p.expectIdent()
			if err != nil {
				return MetaPosition{}, err
			}
			container = &c
		case lexer.TokenOrphan:
			if container != nil {
				return MetaPosition{}, p.conflict("`orphan` keyword", "`in` keyword")
			}
			if pos != nil {
				return MetaPosition{}, p.conflict("`orphan` keyword", "`at` keyword")
			}
			if orphan {
				return MetaPosition{}, p.multiple("`orphan` keywords")
			}
			orphan = true
		default:
			return MetaPosition{}, p.expected("`at`, `in` or `orphan`")
		}
	}

	if orphan {
		return MetaPosition{}, nil
	}
	if container == nil {
		return MetaPosition{}, p.missing("`in` keyword")
	}
	if pos == nil {
		return MetaPosition{}, p.missing("`at` keyword")
	}
	return MetaPosition{Container: *container, X: pos.Width, Y: pos.Height}, nil
}

func parsePush(p *lineParser) (Command, *lexer.Error) {
	block, err := p.expectIdent()
	if err != nil {
		return Command{}, err
	}
	direction, err := p.expectDirection()
	if err != nil {
		return Command{}, err
	}

	assertion := AssertNone
	tok, err := p.peek()
	if err != nil {
		return Command{}, err
	}
	switch tok.Type {
	case lexer.TokenMoved:
		p.next()
		assertion = AssertMoved
	case lexer.TokenStatic:
		p.next()
		assertion = AssertStatic
	}

	return Push(block, direction, assertion), nil
}

type lineParser struct {
	scanner *lexer.Scanner
	peeked  *lexer.Token
	last    lexer.Token
}

func newLineParser(text string) *lineParser {
	return &lineParser{scanner: lexer.NewScanner(text)}
}

func (p *lineParser) next() (lexer.Token, *lexer.Error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		p.last = tok
		return tok, nil
	}

	tok, err := p.scanner.Next()
	if err != nil {
		return lexer.Token{}, err
	}
	p.last = tok
	return tok, nil
}

func (p *lineParser) peek() (lexer.Token, *lexer.Error) {
	if p.peeked != nil {
		return *p.peeked, nil
	}
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	p.peeked = &tok
	return tok, nil
}

func (p *lineParser) expect(kind lexer.TokenType) (lexer.Token, *lexer.Error) {
	tok, err := p.next()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Type != kind {
		return lexer.Token{}, p.expected(string(kind))
	}
	return tok, nil
}

func (p *lineParser) expectInteger() (int, *lexer.Error) {
	tok, err := p.expect(lexer.TokenInteger)
	if err != nil {
		return 0, err
	}
	value, convErr := strconv.Atoi(tok.Lexeme)
	if convErr != nil {
		return 0, p.errorf("integer out of range")
	}
	return value, nil
}

// expectSize parses `(<x>, <y>)`. The same tuple form carries both sizes
// and coordinates.
func (p *lineParser) expectSize() (engine.Size, *lexer.Error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return engine.Size{}, err
	}
	x, err := p.expectInteger()
	if err != nil {
		return engine.Size{}, err
	}
	if _, err := p.expect(lexer.TokenComma); err != nil {
		return engine.Size{}, err
	}
	y, err := p.expectInteger()
	if err != nil {
		return engine.Size{}, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return engine.Size{}, err
	}
	return engine.Size{Width: x, Height: y}, nil
}

func (p *lineParser) expectIdent() (string, *lexer.Error) {
	tok, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

func (p *lineParser) expectProto() (lexer.TokenType, *lexer.Error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if !tok.Type.IsProto() {
		return "", p.expected("prototype keyword")
	}
	return tok.Type, nil
}

func (p *lineParser) expectDirection() (engine.Direction, *lexer.Error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	switch tok.Type {
	case lexer.TokenNorth:
		return engine.North, nil
	case lexer.TokenSouth:
		return engine.South, nil
	case lexer.TokenEast:
		return engine.East, nil
	case lexer.TokenWest:
		return engine.West, nil
	default:
		return 0, p.expected("direction")
	}
}

func (p *lineParser) errorf(format string, args ...interface{}) *lexer.Error {
	return &lexer.Error{
		Start:   p.last.Start,
		End:     p.last.End,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *lineParser) expected(what string) *lexer.Error {
	return p.errorf("expected %s", what)
}

func (p *lineParser) multiple(what string) *lexer.Error {
	return p.errorf("multiple %s", what)
}

func (p *lineParser) conflict(a, b string) *lexer.Error {
	return p.errorf("conflicting %s and %s", a, b)
}

func (p *lineParser) missing(what string) *lexer.Error {
	return p.errorf("missing %s", what)
}

func (p *lineParser) unexpected(what string) *lexer.Error {
	return p.errorf("unexpected %s", what)
}
