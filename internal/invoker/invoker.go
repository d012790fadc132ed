package invoker

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// CommandNamespace prefixes every generator command handled by this tool.
const CommandNamespace = "appforge"

// Options is the flat option record attached to a generation request. When the
// subprocess implementation runs, it is translated to command-line arguments.
type Options map[string]any

// Invoker executes one code-generation step in a given working directory.
//
// Implementations must treat a failing generation unit as an error, with one
// exception carried by the subprocess form: a child that exits non-zero has
// already reported its own failure, so the exit code is recorded (ExitCode)
// instead of raised.
type Invoker interface {
	Invoke(ctx context.Context, command string, dir string, options Options) error

	// ExitCode returns the worst child exit status observed so far, or zero.
	ExitCode() int
}

// CommandArgs translates a namespaced command ("appforge:entity:Product")
// into child-process arguments ("entity", "Product").
func CommandArgs(command string) ([]string, error) {
	parts := strings.Split(command, ":")
	if len(parts) < 2 || parts[0] != CommandNamespace {
		return nil, fmt.Errorf("malformed generator command %q: want %s:<subcommand>[:<name>]", command, CommandNamespace)
	}
	return parts[1:], nil
}

// EncodeOptions renders an option record as command-line arguments in a
// deterministic order. True booleans become bare flags, false booleans are
// dropped, everything else becomes a flag/value pair; empty values are dropped.
func EncodeOptions(options Options) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var args []string
	for _, k := range keys {
		flag := "--" + kebabCase(k)
		switch v := options[k].(type) {
		case bool:
			if v {
				args = append(args, flag)
			}
		case string:
			if v != "" {
				args = append(args, flag, v)
			}
		case int:
			args = append(args, flag, strconv.Itoa(v))
		case int64:
			args = append(args, flag, strconv.FormatInt(v, 10))
		case nil:
			// skip
		default:
			args = append(args, flag, fmt.Sprintf("%v", v))
		}
	}
	return args
}

// kebabCase converts a camelCase option name to its flag spelling.
func kebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
