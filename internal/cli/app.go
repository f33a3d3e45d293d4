package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agisilaos/skydesk/internal/api"
	"github.com/agisilaos/skydesk/internal/config"
	"github.com/agisilaos/skydesk/internal/session"
)

type App struct {
	Version string
}

type globalFlags struct {
	JSON     bool
	Plain    bool
	Quiet    bool
	Verbose  bool
	NoInput  bool
	NoColor  bool
	StateDir string
	Help     bool
	Version  bool
}

func NewApp(version string) App {
	return App{Version: version}
}

var commandNames = []string{
	"login", "logout", "whoami", "console", "overview",
	"locations", "aircraft", "flights", "bookings", "news",
	"config", "doctor", "completion", "help", "version",
}

func (a App) Run(args []string) error {
	g, rest, err := parseGlobal(args)
	if err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if g.Help {
		return a.help(nil)
	}
	if g.Version {
		fmt.Println(a.Version)
		return nil
	}
	if len(rest) == 0 {
		return a.help(nil)
	}
	cmd := rest[0]
	argv := rest[1:]

	switch cmd {
	case "help", "-h", "--help":
		return a.help(argv)
	case "--version", "version":
		fmt.Println(a.Version)
		return nil
	case "login":
		return a.cmdLogin(g, argv)
	case "logout":
		return a.cmdLogout(g, argv)
	case "whoami":
		return a.cmdWhoami(g, argv)
	case "console":
		return a.cmdConsole(g, argv)
	case "overview":
		return a.cmdOverview(g, argv)
	case "locations":
		return a.cmdLocations(g, argv)
	case "aircraft":
		return a.cmdAircraft(g, argv)
	case "flights":
		return a.cmdFlights(g, argv)
	case "bookings":
		return a.cmdBookings(g, argv)
	case "news":
		return a.cmdNews(g, argv)
	case "config":
		return a.cmdConfig(g, argv)
	case "doctor":
		return a.cmdDoctor(g, argv)
	case "completion":
		return a.cmdCompletion(g, argv)
	default:
		if s := suggestClosest(cmd, commandNames); s != "" {
			return newExitError(ExitInvalidUsage, "unknown command %q (did you mean %q?)\n\n%s", cmd, s, usageText())
		}
		return newExitError(ExitInvalidUsage, "unknown command %q\n\n%s", cmd, usageText())
	}
}

func parseGlobal(args []string) (globalFlags, []string, error) {
	var g globalFlags
	for len(args) > 0 {
		a := args[0]
		switch a {
		case "-h", "--help":
			g.Help = true
			args = args[1:]
		case "--version":
			g.Version = true
			args = args[1:]
		case "--json":
			g.JSON = true
			args = args[1:]
		case "--plain":
			g.Plain = true
			args = args[1:]
		case "-q", "--quiet":
			g.Quiet = true
			args = args[1:]
		case "-v", "--verbose":
			g.Verbose = true
			args = args[1:]
		case "--no-input":
			g.NoInput = true
			args = args[1:]
		case "--no-color":
			g.NoColor = true
			args = args[1:]
		case "--state-dir":
			if len(args) < 2 {
				return g, nil, fmt.Errorf("--state-dir requires a value")
			}
			g.StateDir = args[1]
			args = args[2:]
		default:
			if strings.HasPrefix(a, "-") {
				return g, nil, fmt.Errorf("unknown global flag %q", a)
			}
			return g, args, nil
		}
	}
	return g, args, nil
}

// env bundles the loaded config, the persisted session and the API client a
// command needs; every command goes through here so overrides apply
// uniformly.
type env struct {
	cfg    config.Config
	sess   *session.Session
	client *api.Client
}

func (a App) environment(g globalFlags) (env, error) {
	cfg, err := config.Load()
	if err != nil {
		return env{}, wrapExitError(ExitGenericFailure, err)
	}
	stateDir, err := config.StateDir(g.StateDir)
	if err != nil {
		return env{}, wrapExitError(ExitGenericFailure, err)
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return env{}, wrapExitError(ExitGenericFailure, err)
	}
	sess, err := session.Open(session.Store{Path: filepath.Join(stateDir, "session.json")})
	if err != nil {
		return env{}, wrapExitError(ExitGenericFailure, err)
	}
	client := api.New(cfg.APIBaseURL, sess)
	client.Timeout = time.Duration(cfg.TimeoutSec) * time.Second
	client.Retries = cfg.Retries
	client.Backoff = time.Duration(cfg.BackoffMS) * time.Millisecond
	if g.Verbose {
		client.Diagnostics = os.Stderr
	}
	return env{cfg: cfg, sess: sess, client: client}, nil
}

func (a App) authedEnvironment(g globalFlags) (env, error) {
	e, err := a.environment(g)
	if err != nil {
		return env{}, err
	}
	if !e.sess.LoggedIn() {
		return env{}, newExitError(ExitAuthRequired, "not logged in; run `skydesk login` first")
	}
	return e, nil
}
