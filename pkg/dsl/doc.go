/*
Package dsl provides a Go DSL for programmatically constructing argot command catalogs.

It lets developers declare command usages with a fluent builder instead of
YAML or JSON files, which is handy for embedding a catalog in a binary and
for unit tests.

Example usage:

	package main

	import (
		"github.com/aretw0/argot/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Add("move").
			Describe("Move a piece").
			Arg("steps", "number").
			Arg("dir", "enum", "string").With("values", []string{"north", "south"}).Optional()

		b.Add("swap").
			Group("pair", 2, "number", "string")

		// The resulting store can be used as a ports.CommandStore
		store, err := b.Build()
		// ...
	}
*/
package dsl
