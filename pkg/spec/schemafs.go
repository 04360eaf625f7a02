// Package spec provides the embedded node serialization schema.
package spec

import "embed"

// NodeSchemaFS contains the embedded JSON schema describing the node wire
// format produced by the node package's JSON encoding.
//
//go:embed node-schema.json
var NodeSchemaFS embed.FS

// NodeSchemaPath is the schema file name inside NodeSchemaFS.
const NodeSchemaPath = "node-schema.json"
