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

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xinminlabs/parser-node-ext/internal/config"
	"github.com/xinminlabs/parser-node-ext/pkg/node"
	"github.com/xinminlabs/parser-node-ext/pkg/parser"
)

// Sentinel errors for the parse command.
var (
	ErrUnsupportedParseFmt = errors.New("unsupported format")
	ErrFileTooLarge        = errors.New("file too large")
)

const (
	formatSexp    = "sexp"
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatCompact = "compact"
)

func parseCmd() *cobra.Command {
	var output, format string

	var positions bool

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse Ruby source files into tagged syntax trees",
		Long: `Parse Ruby source files into tagged syntax trees.

Examples:
  parsernode parse app.rb                 # Parse a single file
  parsernode parse *.rb                   # Parse several files
  cat app.rb | parsernode parse -         # Parse from stdin
  parsernode parse -f json app.rb         # Output as JSON
  parsernode parse -f yaml app.rb         # Output as YAML
  parsernode parse -o tree.json app.rb    # Save to file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format

				if format == formatJSON && cfg.Output.Compact {
					format = formatCompact
				}
			}

			if !cmd.Flags().Changed("positions") {
				positions = cfg.Output.Positions
			}

			if !cfg.Output.Color {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			return runParse(cfg, args, output, format, positions, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultOutputFormat,
		"output format (sexp, json, yaml, compact)")
	cmd.Flags().BoolVar(&positions, "positions", false, "include source positions in output")

	return cmd
}

func runParse(cfg *config.Config, files []string, output, format string, positions bool, writer io.Writer) error {
	logger := newLogger(cfg)
	rubyParser := parser.New().WithLogger(logger)

	out, closeOut, err := openOutput(output, writer)
	if err != nil {
		return err
	}
	defer closeOut()

	if len(files) == 0 {
		files = []string{"-"}
	}

	for _, file := range files {
		parseErr := parseFile(cfg, rubyParser, file, format, positions, out)
		if parseErr != nil {
			return fmt.Errorf("failed to parse %s: %w", file, parseErr)
		}
	}

	return nil
}

func parseFile(cfg *config.Config, rubyParser *parser.Parser, file, format string, positions bool, out io.Writer) error {
	source, err := readSource(cfg, file)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if cfg.Parse.TimeoutMS > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Parse.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	root, err := rubyParser.Parse(ctx, source)
	if err != nil {
		return err
	}

	return writeTree(root, format, positions, out)
}

func readSource(cfg *config.Config, file string) ([]byte, error) {
	if file == "-" {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return source, nil
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	if cfg.Parse.MaxFileSize > 0 && info.Size() > int64(cfg.Parse.MaxFileSize) {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrFileTooLarge,
			humanize.Bytes(uint64(info.Size())), humanize.Bytes(uint64(cfg.Parse.MaxFileSize)))
	}

	source, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return source, nil
}

// writeTree renders one tree in the requested format. A nil tree (empty
// source) renders as an empty line so multi-file output stays aligned.
func writeTree(root *node.Node, format string, positions bool, out io.Writer) error {
	switch format {
	case formatSexp:
		if root == nil {
			fmt.Fprintln(out)

			return nil
		}

		writeColorSexp(root, out)

		return nil
	case formatJSON, formatCompact:
		return writeJSON(root, format == formatCompact, positions, out)
	case formatYAML:
		return writeYAML(root, positions, out)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedParseFmt, format)
	}
}

func writeJSON(root *node.Node, compact, positions bool, out io.Writer) error {
	if !positions {
		stripPositions(root)
	}

	enc := json.NewEncoder(out)
	if !compact {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func writeYAML(root *node.Node, positions bool, out io.Writer) error {
	if !positions {
		stripPositions(root)
	}

	enc := yaml.NewEncoder(out)
	defer enc.Close()

	if err := enc.Encode(root.ToMap()); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}

// writeColorSexp renders the tree in s-expression notation with tag names
// highlighted. With colors disabled the output is byte-identical to the
// node's own String rendering.
func writeColorSexp(root *node.Node, out io.Writer) {
	var buf strings.Builder

	writeColorSexpNode(&buf, root)
	fmt.Fprintln(out, buf.String())
}

func writeColorSexpNode(buf *strings.Builder, n *node.Node) {
	if n == nil {
		buf.WriteString("nil")

		return
	}

	buf.WriteString("s(")
	buf.WriteString(color.New(color.FgCyan).Sprintf(":%s", string(n.Type)))

	for _, child := range n.Children {
		buf.WriteString(", ")
		writeColorSexpChild(buf, child)
	}

	buf.WriteString(")")
}

func writeColorSexpChild(buf *strings.Builder, child any) {
	switch typed := child.(type) {
	case nil:
		buf.WriteString("nil")
	case *node.Node:
		writeColorSexpNode(buf, typed)
	case node.Symbol:
		buf.WriteString(color.New(color.FgYellow).Sprintf(":%s", string(typed)))
	case string:
		buf.WriteString(color.New(color.FgGreen).Sprintf("%q", typed))
	default:
		fmt.Fprintf(buf, "%v", typed)
	}
}

func stripPositions(root *node.Node) {
	if root == nil {
		return
	}

	root.Pos = nil

	for _, child := range root.ChildNodes() {
		stripPositions(child)
	}
}

// openOutput returns the destination writer and a close function. An empty
// path writes to the command writer.
func openOutput(output string, fallback io.Writer) (io.Writer, func(), error) {
	if output == "" {
		return fallback, func() {}, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}
