package cli

// Options carries the persistent flags shared by every subcommand.
type Options struct {
	Catalog     string // Path to commands.yaml / commands.json
	LogLevel    string
	Strict      bool // Reject leftover tokens
	Builtins    bool // Register float, boolean, enum and duration too
	RedisAddr   string
	RedisPrefix string
}

// DefaultCatalog is looked up in the working directory when --catalog is not set.
const DefaultCatalog = "commands.yaml"
