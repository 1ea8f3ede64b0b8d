// Package assets holds files compiled into the binaries.
package assets

import _ "embed"

// Vocabulary is the default question bank document.
//
//go:embed vocabulary.json
var Vocabulary []byte
