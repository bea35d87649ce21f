// Package schema builds a renderer-agnostic description of a settings
// struct: a tree of nodes with typed leaf fields, defaults, aliases and
// environment-variable prefixes.
//
// The tree is the single input format for every generator. It can be built
// from a Go struct (or live instance) via Describe, or from a YAML manifest
// via the manifest package.
package schema
