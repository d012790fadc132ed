// Package model holds the unified, format-agnostic representation of an
// imported project model: applications, entities, deployments, and the
// per-application entity groupings derived from them. It is produced once per
// run by the importer and is read-only afterwards.
package model
