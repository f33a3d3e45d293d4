package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func parseDeleteArgs(name string, args []string) (int64, bool, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	force := fs.Bool("force", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return 0, false, newExitError(ExitInvalidUsage, "%v", err)
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return 0, false, newExitError(ExitInvalidUsage, "usage: skydesk %s <id> [--force]", name)
	}
	id, err := strconv.ParseInt(rest[0], 10, 64)
	if err != nil {
		return 0, false, newExitError(ExitInvalidUsage, "invalid id %q", rest[0])
	}
	return id, *force, nil
}

// confirmDestructive gates irreversible operations: --force skips the
// prompt, --no-input without --force refuses.
func confirmDestructive(g globalFlags, force bool, question string) error {
	if force {
		return nil
	}
	if g.NoInput {
		return newExitError(ExitInvalidUsage, "refusing to run destructive operation without --force in --no-input mode")
	}
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return newExitError(ExitGenericFailure, "read confirmation: %v", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != "yes" {
		return newExitError(ExitGenericFailure, "aborted")
	}
	return nil
}
