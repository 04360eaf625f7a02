// Package parser turns Ruby source text into tagged node trees using the
// tree-sitter Ruby grammar. The tree-sitter CST is converted into
// whitequark-style tagged nodes so the accessor layer in pkg/node applies.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	ruby "github.com/alexaandru/go-sitter-forest/ruby"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/xinminlabs/parser-node-ext/pkg/node"
)

// Sentinel errors for parser operations.
var (
	errPoolType   = errors.New("parser pool returned unexpected type")
	errNoRootNode = errors.New("parse produced no root node")
)

// Parser parses Ruby source into tagged node trees. Safe for concurrent
// use; tree-sitter parser instances are pooled.
type Parser struct {
	pool   sync.Pool
	logger *slog.Logger
}

// New creates a Parser backed by the tree-sitter Ruby grammar.
func New() *Parser {
	lang := sitter.NewLanguage(ruby.GetLanguage())

	return &Parser{
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger routes conversion diagnostics (unmapped CST constructs) to the
// given logger. Returns the same parser.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	p.logger = logger

	return p
}

// Parse parses source and returns the root node, or nil for an empty
// program.
func (p *Parser) Parse(ctx context.Context, source []byte) (*node.Node, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse ruby source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	conv := &converter{source: source, logger: p.logger}

	return conv.program(root), nil
}
