package cli

import (
	"fmt"
	"strings"
)

func (a App) help(args []string) error {
	fmt.Print(helpText(args))
	return nil
}

func helpText(args []string) string {
	if len(args) == 0 {
		return usageText()
	}
	k := strings.ToLower(strings.Join(args, " "))
	switch k {
	case "doctor":
		return doctorHelpText()
	case "bookings":
		return bookingsHelpText()
	default:
		return usageText()
	}
}

func usageText() string {
	return `skydesk - Airline booking back-office console

USAGE:
  skydesk [global flags] <command> [args]

COMMANDS:
  console            Launch the full-screen admin console
  login              Authenticate and store the session token
  logout             Discard the stored session
  whoami             Show the authenticated account
  overview           Dashboard statistics
  locations          Manage locations (list/add/update/delete)
  aircraft           Manage aircraft (list/add/update/delete)
  flights            Manage flights (list/search/add/update/delete)
  bookings           Manage bookings (list/confirm/cancel/purge-cancelled)
  news               Manage news (list/create/update/publish/delete)
  config get/set     Read/write config values
  doctor             Run preflight checks
  completion         Shell completion scripts

GLOBAL FLAGS:
  --json             JSON output
  --plain            Stable plain output
  -q, --quiet        Suppress non-essential text
  -v, --verbose      Extra diagnostics to stderr
  --no-input         Disable prompts
  --no-color         Disable color output
  --state-dir PATH   Override state directory
  --version          Print version
  -h, --help         Show help
`
}

func doctorHelpText() string {
	return `skydesk doctor - Run preflight checks

USAGE:
  skydesk doctor [--strict] [global flags]

CHECKS:
  - config/state path writability
  - backend reachability
  - stored session token and role

BEHAVIOR:
  - default: warnings do not fail the command
  - --strict: warnings are treated as failures
`
}

func bookingsHelpText() string {
	return `skydesk bookings - Manage passenger bookings

USAGE:
  skydesk bookings list [--search TEXT] [--status STATUS] [--page N] [--page-size N]
  skydesk bookings confirm <id>
  skydesk bookings cancel <id>
  skydesk bookings purge-cancelled [--force]

RULES:
  - confirm and cancel apply to PENDING bookings
  - purge-cancelled removes every CANCELLED booking; repeating it is a no-op
  - destructive commands prompt unless --force is given
`
}
