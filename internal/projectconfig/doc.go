// Package projectconfig reads and writes the persisted on-disk project
// configuration: the .yo-rc.json settings file and per-entity JSON files
// under the .appforge config directory. Writes are idempotent: identical
// input always reproduces byte-identical output.
package projectconfig
