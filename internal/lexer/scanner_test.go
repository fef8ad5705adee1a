package lexer

import "testing"

func scanAll(t *testing.T, line string) []Token {
	t.Helper()
	s := NewScanner(line)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOL {
			return tokens
		}
	}
}

func scanError(t *testing.T, line string) *Error {
	t.Helper()
	s := NewScanner(line)
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		}
		if tok.Type == TokenEOL {
			t.Fatalf("expected a lex error in %q", line)
		}
	}
}

func TestScanDefine(t *testing.T) {
	tokens := scanAll(t, "define box #b size (2, 3)")

	want := []TokenType{
		TokenDefine, TokenBox, TokenIdent, TokenSize,
		TokenLParen, TokenInteger, TokenComma, TokenInteger, TokenRParen,
		TokenEOL,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, kind := range want {
		if tokens[i].Type != kind {
			t.Errorf("token %d: expected %s, got %s", i, kind, tokens[i].Type)
		}
	}
}

func TestScanIdentStripsHash(t *testing.T) {
	tokens := scanAll(t, "#block_1")
	if tokens[0].Lexeme != "block_1" {
		t.Errorf("expected lexeme \"block_1\", got %q", tokens[0].Lexeme)
	}
}

func TestScanKeywordsAreCaseInsensitive(t *testing.T) {
	tokens := scanAll(t, "DEFINE Box #x SIZE (1, 1)")
	if tokens[0].Type != TokenDefine || tokens[1].Type != TokenBox || tokens[3].Type != TokenSize {
		t.Errorf("expected case-insensitive keywords, got %v", tokens)
	}
}

func TestScanComment(t *testing.T) {
	tokens := scanAll(t, "push #b east // push it")
	want := []TokenType{TokenPush, TokenIdent, TokenEast, TokenEOL}
	if len(tokens) != len(want) {
		t.Fatalf("expected the comment to be skipped, got %v", tokens)
	}
}

func TestScanEmptyLine(t *testing.T) {
	tokens := scanAll(t, "   ")
	if len(tokens) != 1 || tokens[0].Type != TokenEOL {
		t.Errorf("expected only EOL, got %v", tokens)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown keyword", "banana #b"},
		{"unexpected character", "push #b @"},
		{"empty identifier", "push # east"},
		{"dash in identifier", "define wall #invalid-ident"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scanError(t, test.line)
		})
	}
}

func TestScanErrorRange(t *testing.T) {
	err := scanError(t, "push nonsense")
	if err.Start != 5 || err.End != 13 {
		t.Errorf("expected the error to span the bad keyword, got [%d, %d)", err.Start, err.End)
	}
}
