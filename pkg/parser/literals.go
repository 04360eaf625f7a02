package parser

import (
	"strconv"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/xinminlabs/parser-node-ext/pkg/node"
)

// convertInteger parses an integer literal including underscore separators
// and the 0x/0b/0o prefixes. Unparseable text degrades to the raw string
// so the node stays inspectable.
func (c *converter) convertInteger(ts sitter.Node) *node.Node {
	text := strings.ReplaceAll(c.text(ts), "_", "")

	value, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		c.logger.Debug("unparseable integer literal", "text", text, "error", err)

		return c.newNode(node.TypeInt, ts, c.text(ts))
	}

	return c.newNode(node.TypeInt, ts, value)
}

func (c *converter) convertFloat(ts sitter.Node) *node.Node {
	text := strings.ReplaceAll(c.text(ts), "_", "")

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		c.logger.Debug("unparseable float literal", "text", text, "error", err)

		return c.newNode(node.TypeFloat, ts, c.text(ts))
	}

	return c.newNode(node.TypeFloat, ts, value)
}
