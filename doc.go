/*
Package argot is a pluggable argument engine for command-dispatch frameworks.

A command declares the shape of its positional arguments as a usage: an ordered list
of slots, each naming a type (or a union of types) and optionally a fixed token count.
The engine validates the usage, walks the raw tokens left to right and converts each
one with the type's descriptor, returning typed values or a precise error.

# Concept

Types live in a registry owned by each Engine. Two are always present:

  - string: any string-like value, converted with an identity string conversion.
  - number: numeric or numeric-coercible values, converted to int (fractions truncated).

More can be registered at runtime, either from the supplemental built-ins
(schema.Float, schema.Boolean, schema.Enum, schema.Duration) or as custom
schema.Descriptor values.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/argot"
		"github.com/aretw0/argot/pkg/schema"
	)

	func main() {
		eng, err := argot.New()
		if err != nil {
			log.Fatal(err)
		}

		usage := schema.Usage{
			{Name: "greeting", Type: schema.Types("string")},
			{Name: "times", Type: schema.Types("number")},
		}

		values, err := eng.Parse(context.Background(), []any{"hello", "42"}, usage)
		if err != nil {
			log.Fatal(err) // *schema.ArgumentError or *schema.SchemaError
		}
		fmt.Println(values) // [hello 42]
	}

# Errors

Every failure is returned as a value, never logged or retried by the engine.
Match the kind with errors.Is (schema.ErrTokenValidation, schema.ErrNoMatchingType,
schema.ErrCountMismatch, schema.ErrSchemaArity, ...) and read the details
(offending value, absolute position, attempted types) with errors.As on
*schema.ArgumentError or *schema.SchemaError.
*/
package argot
