package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"github.com/aretw0/argot/internal/presentation/tui"
	"github.com/aretw0/argot/pkg/dispatch"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

// ErrInvalidCatalog is returned by RunValidate when at least one usage is broken.
var ErrInvalidCatalog = errors.New("catalog has invalid usages")

// Exit statuses of `argot parse`.
const (
	ExitFailure      = 1
	ExitParseFailure = 2
)

// ExitCode returns ExitParseFailure when err was raised by the engine for the
// given tokens or usage, and ExitFailure for anything else (unknown command,
// missing handler, store errors).
func ExitCode(err error) int {
	var argErr *schema.ArgumentError
	var schemaErr *schema.SchemaError
	if errors.As(err, &argErr) || errors.As(err, &schemaErr) {
		return ExitParseFailure
	}
	return ExitFailure
}

// ParseResult is what `argot parse` prints.
type ParseResult struct {
	Command string `json:"command"`
	Values  []any  `json:"values"`
}

// SplitLine tokenizes a command line with shell quoting rules.
func SplitLine(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return tokens, nil
}

// newDispatcher routes every catalog command to a handler printing its values as JSON.
func newDispatcher(ctx context.Context, env *Env, w io.Writer) (*dispatch.Dispatcher, error) {
	d := dispatch.New(env.Engine, env.Store, dispatch.WithLogger(env.Logger))

	names, err := env.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	for _, name := range names {
		d.Handle(name, func(ctx context.Context, cmd domain.Command, values []any) error {
			return enc.Encode(ParseResult{Command: cmd.Name, Values: values})
		})
	}
	return d, nil
}

// RunParse parses one command line (tokens[0] is the command) and prints the
// result as JSON to w.
func RunParse(ctx context.Context, env *Env, w io.Writer, tokens []string) error {
	d, err := newDispatcher(ctx, env, w)
	if err != nil {
		return err
	}
	return d.Dispatch(ctx, tokens)
}

// RunValidate checks every catalog usage against the engine's registry,
// printing one line per command.
func RunValidate(ctx context.Context, env *Env, w io.Writer) error {
	names, err := env.Store.List(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, name := range names {
		cmd, err := env.Store.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := env.Engine.Validate(cmd.Usage); err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", cmd.Synopsis(), err)
			continue
		}
		fmt.Fprintf(w, "ok   %s\n", cmd.Synopsis())
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidCatalog, failed, len(names))
	}
	return nil
}

// RunTypes prints the registered types, as a rendered markdown table when rich.
func RunTypes(env *Env, w io.Writer, rich bool) error {
	types := env.Engine.Types()
	if !rich {
		_, err := io.WriteString(w, tui.TypesPlain(types))
		return err
	}

	out, err := tui.NewRenderer()(tui.TypesMarkdown(types))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RunCommands prints the catalog, one synopsis per command.
func RunCommands(ctx context.Context, env *Env, w io.Writer, rich bool) error {
	names, err := env.Store.List(ctx)
	if err != nil {
		return err
	}
	cmds := make([]domain.Command, 0, len(names))
	for _, name := range names {
		cmd, err := env.Store.Load(ctx, name)
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}

	if !rich {
		for _, cmd := range cmds {
			fmt.Fprintf(w, "%s\t%s\n", cmd.Synopsis(), cmd.Description)
		}
		return nil
	}

	out, err := tui.NewRenderer()(tui.CommandsMarkdown(cmds))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RunShell reads command lines from r until EOF or "exit", parsing each one.
// Errors are printed and do not stop the loop.
func RunShell(ctx context.Context, env *Env, r io.Reader, w io.Writer, color bool) error {
	d, err := newDispatcher(ctx, env, w)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		tokens, err := SplitLine(line)
		if err != nil {
			fmt.Fprintln(w, tui.FormatError(err, nil, color))
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		if err := d.Dispatch(ctx, tokens); err != nil {
			fmt.Fprintln(w, tui.FormatError(err, tokens[1:], color))
		}
	}
}
