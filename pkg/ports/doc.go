/*
Package ports defines the driven ports (interfaces) around the argot engine.

These interfaces decouple command catalogs and parsers from their implementations,
so the same dispatcher and servers run on top of memory, Redis or file-seeded stores.

# Key Interfaces

  - CommandStore: persists named commands and their usages.
  - Parser: the subset of the engine that outer adapters depend on.
*/
package ports
