// Package common keeps enums shared between configuration and processing
// packages so neither has to import the other.
package common

//go:generate go tool go-enum --marshal --names

// How top-level at-rule blocks with nested rules are treated.
// ENUM(flat, passthrough)
type NestedMode int

// Verbatim reports whether nested at-rule blocks are copied without
// rewriting.
func (n NestedMode) Verbatim() bool {
	return n == NestedModePassthrough
}
