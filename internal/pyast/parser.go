package pyast

import (
	"errors"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// SyntaxError marks a file whose syntax tree contains error nodes. Callers
// decide whether it aborts the run or just skips the file.
type SyntaxError struct {
	Path string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s", e.Path)
}

type Parser struct {
	lang *sitter.Language
}

func New() *Parser {
	return &Parser{
		lang: sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

func (p *Parser) ParseFile(path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(source, path)
}

func (p *Parser) Parse(source []byte, path string) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &SyntaxError{Path: path}
	}

	return extractModule(root, source, path), nil
}
