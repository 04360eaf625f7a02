package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/xinminlabs/parser-node-ext/pkg/node"
)

func schemaCmd() *cobra.Command {
	var accessors bool

	var tag string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the tag schema and accessor surface",
		Long: `Show the grammar tag schema: every supported tag with its ordered
slot names, or the union of all accessor names.

Examples:
  parsernode schema               # Full tag table
  parsernode schema -t send       # Slots of one tag
  parsernode schema --accessors   # All accessor names`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runSchema(tag, accessors, cobraCmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "show slots for a single tag")
	cmd.Flags().BoolVar(&accessors, "accessors", false, "list every accessor name")

	return cmd
}

func runSchema(tag string, accessors bool, writer io.Writer) error {
	if accessors {
		for _, name := range node.AccessorNames() {
			fmt.Fprintln(writer, name)
		}

		return nil
	}

	if tag != "" {
		return writeTagSlots(node.Type(tag), writer)
	}

	writeSchemaTable(writer)

	return nil
}

func writeTagSlots(tag node.Type, writer io.Writer) error {
	slots, ok := node.SlotNames(tag)
	if !ok {
		return fmt.Errorf("unknown tag %q", tag)
	}

	for _, slot := range slots {
		fmt.Fprintln(writer, slot)
	}

	return nil
}

func writeSchemaTable(writer io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(table.Row{"Tag", "Slots"})

	types := node.Types()
	for _, tag := range types {
		slots, _ := node.SlotNames(tag)
		tbl.AppendRow(table.Row{string(tag), strings.Join(slots, ", ")})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %s tags", humanize.Comma(int64(len(types)))), ""})

	tbl.Render()
}
