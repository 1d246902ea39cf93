/*
Package domain contains the host-facing entities built around the argument engine.

It is kept pure and free of I/O: adapters in pkg/adapters persist and expose these
types, while the engine itself only sees schema.Usage values and raw tokens.

# Key Entities

  - Command: a named entry point of a host application and the usage of its arguments.
  - LifecycleHooks: callbacks fired by the engine around each parse and each resolved slot.
  - ParseEvent / SlotEvent: the payloads handed to those callbacks.
*/
package domain
