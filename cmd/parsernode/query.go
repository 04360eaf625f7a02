package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xinminlabs/parser-node-ext/internal/config"
	"github.com/xinminlabs/parser-node-ext/pkg/node"
	"github.com/xinminlabs/parser-node-ext/pkg/parser"
)

// Sentinel errors for the query command.
var (
	ErrQueryPathRequired = errors.New("accessor path required")
	ErrQueryIntoLiteral  = errors.New("cannot descend into a literal child")
	ErrUnsupportedQFmt   = errors.New("unsupported format")
)

func queryCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "query <path> [files...]",
		Short: "Navigate trees by accessor path",
		Long: `Navigate parsed trees with a dot-separated accessor path. Each path
segment is a named accessor: a schema slot name, a derived helper, or a
dynamic hash lookup.

Examples:
  parsernode query name app.rb                # Method or class name
  parsernode query body.0 app.rb              # First body statement
  parsernode query arguments.foo_value app.rb # Keyword argument value
  parsernode query receiver tree.json         # Query a serialized tree
  cat app.rb | parsernode query message -     # Query from stdin`,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrQueryPathRequired
			}

			path := args[0]
			files := args[1:]

			if len(files) == 0 {
				files = []string{"-"}
			}

			return runQuery(path, files, format, cobraCmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSexp, "output format (sexp, json, source)")

	return cmd
}

func runQuery(path string, files []string, format string, writer io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	for _, file := range files {
		queryErr := queryFile(cfg, file, path, format, writer)
		if queryErr != nil {
			return fmt.Errorf("failed to query %s: %w", file, queryErr)
		}
	}

	return nil
}

func queryFile(cfg *config.Config, file, path, format string, writer io.Writer) error {
	root, err := loadTree(cfg, file)
	if err != nil {
		return err
	}

	result, err := resolvePath(root, path)
	if err != nil {
		return err
	}

	return writeQueryResult(result, format, writer)
}

// loadTree loads a node tree from a source file, a serialized JSON tree,
// or stdin.
func loadTree(cfg *config.Config, file string) (*node.Node, error) {
	if strings.HasSuffix(file, ".json") {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read tree: %w", err)
		}

		root := &node.Node{}
		if err := json.Unmarshal(data, root); err != nil {
			return nil, fmt.Errorf("decode tree: %w", err)
		}

		return root, nil
	}

	source, err := readSource(cfg, file)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	if cfg.Parse.TimeoutMS > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Parse.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	return parser.New().WithLogger(newLogger(cfg)).Parse(ctx, source)
}

// resolvePath walks the accessor path from the root. Numeric segments index
// into slice results from derived helpers.
func resolvePath(root *node.Node, path string) (any, error) {
	var current any = root

	for _, segment := range strings.Split(path, ".") {
		switch typed := current.(type) {
		case *node.Node:
			next, err := typed.ChildByName(segment)
			if err != nil {
				return nil, err
			}

			current = next
		case []any:
			idx, err := sliceIndex(segment, len(typed))
			if err != nil {
				return nil, err
			}

			current = typed[idx]
		case []*node.Node:
			idx, err := sliceIndex(segment, len(typed))
			if err != nil {
				return nil, err
			}

			current = typed[idx]
		default:
			return nil, fmt.Errorf("%w: %q", ErrQueryIntoLiteral, segment)
		}
	}

	return current, nil
}

func sliceIndex(segment string, length int) (int, error) {
	var idx int

	_, err := fmt.Sscanf(segment, "%d", &idx)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", segment, err)
	}

	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("index %d out of range 0..%d", idx, length-1)
	}

	return idx, nil
}

func writeQueryResult(result any, format string, writer io.Writer) error {
	switch format {
	case formatSexp:
		writeResultSexp(result, writer)

		return nil
	case formatJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		if err := enc.Encode(queryResultValue(result)); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}

		return nil
	case "source":
		if resultNode, ok := result.(*node.Node); ok {
			fmt.Fprintln(writer, resultNode.ToSource())

			return nil
		}

		fmt.Fprintf(writer, "%v\n", result)

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedQFmt, format)
	}
}

func writeResultSexp(result any, writer io.Writer) {
	switch typed := result.(type) {
	case nil:
		fmt.Fprintln(writer, "nil")
	case *node.Node:
		fmt.Fprintln(writer, typed.String())
	case node.Symbol:
		fmt.Fprintf(writer, ":%s\n", string(typed))
	case []any:
		for _, item := range typed {
			writeResultSexp(item, writer)
		}
	case []*node.Node:
		for _, item := range typed {
			writeResultSexp(item, writer)
		}
	default:
		fmt.Fprintf(writer, "%v\n", typed)
	}
}

// queryResultValue converts literal results to JSON-friendly values.
func queryResultValue(result any) any {
	switch typed := result.(type) {
	case node.Symbol:
		return ":" + string(typed)
	case []any:
		values := make([]any, 0, len(typed))
		for _, item := range typed {
			values = append(values, queryResultValue(item))
		}

		return values
	case []*node.Node:
		values := make([]any, 0, len(typed))
		for _, item := range typed {
			values = append(values, item)
		}

		return values
	default:
		return typed
	}
}
