// Package schema defines the building blocks of an argument usage: type descriptors,
// usage slots and the errors raised when tokens or usages do not conform.
//
// A Descriptor bundles a validity check and a coercion for one named type.
// A Usage is an ordered list of slots; each slot consumes one token (or a fixed-size
// group of tokens) and names the type, or the union of types, the tokens must match.
//
// Basic usage:
//
//	usage := schema.Usage{
//	    {Name: "greeting", Type: schema.Types("string")},
//	    {Name: "times", Type: schema.Types("number")},
//	    {Name: "extra", Type: schema.Types("string", "number"), Optional: true},
//	}
//
// Usages can also be decoded from loosely typed data (YAML, JSON, maps):
//
//	usage, err := schema.DecodeUsage([]any{
//	    map[string]any{"type": "string", "required": true},
//	    map[string]any{"type": []any{"string", "number"}, "count": 2},
//	})
//
// Custom descriptors are plain values:
//
//	even := schema.Descriptor{
//	    Name:  "even",
//	    Info:  "An even integer",
//	    Check: func(v any, _ schema.Options) bool { n, ok := v.(int); return ok && n%2 == 0 },
//	    Exec:  func(v any, _ schema.Options) (any, error) { return v, nil },
//	}
//
// The package performs no I/O and has no knowledge of how descriptors are stored;
// see package registry for that.
package schema
