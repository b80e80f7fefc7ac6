// Package schema embeds the JSON Schema for rustcfg.yaml so editors and the
// loader share one definition.
package schema

import _ "embed"

// ConfigFile is the name the schema is published under. Configuration
// files may reference it with a yaml-language-server comment.
const ConfigFile = "config.schema.json"

// Config is the raw config schema document.
//
//go:embed config.schema.json
var Config []byte
