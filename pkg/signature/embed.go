package signature

import "embed"

// builtinSignaturesFS embeds the built-in signature directory.
// The table is deliberately partial: common formats only, extended by
// shipping additional YAML files rather than patching entries in place.
//
//go:embed signatures/*.yml
var builtinSignaturesFS embed.FS
