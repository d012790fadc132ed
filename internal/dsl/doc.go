// Package dsl implements the modeling-language importer. It parses .afm
// files (or inline text) describing applications, entities, and deployments,
// validates cross-references, and translates the result into the
// format-agnostic model consumed by the orchestrator.
package dsl
