package cli

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agisilaos/skydesk/internal/config"
	"github.com/agisilaos/skydesk/internal/session"
)

type doctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type doctorReport struct {
	OK       bool          `json:"ok"`
	Failures int           `json:"failures"`
	Warnings int           `json:"warnings"`
	Checks   []doctorCheck `json:"checks"`
}

func (a App) cmdDoctor(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	strict := fs.Bool("strict", false, "Treat warnings as failures")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if len(fs.Args()) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk doctor [--strict]")
	}
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	report := runDoctorChecks(cfg, g.StateDir)
	effectiveFailures := report.Failures
	if *strict {
		effectiveFailures += report.Warnings
	}
	if g.JSON {
		if err := writeJSON(report); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	} else {
		for _, c := range report.Checks {
			fmt.Printf("%s\t%s\t%s\n", strings.ToUpper(c.Status), c.Name, c.Message)
		}
		fmt.Printf("summary\tfailures=%d\twarnings=%d\n", report.Failures, report.Warnings)
	}
	if effectiveFailures > 0 {
		if *strict && report.Warnings > 0 && report.Failures == 0 {
			return newExitError(ExitGenericFailure, "doctor strict mode found %d warning(s)", report.Warnings)
		}
		return newExitError(ExitGenericFailure, "doctor found %d failing check(s)", report.Failures)
	}
	return nil
}

func runDoctorChecks(cfg config.Config, stateOverride string) doctorReport {
	checks := []doctorCheck{}
	add := func(name, status, message string) {
		checks = append(checks, doctorCheck{Name: name, Status: status, Message: message})
	}

	if dir, err := config.ConfigDir(); err != nil {
		add("paths.config", "fail", err.Error())
	} else if err := ensureWritableDir(dir); err != nil {
		add("paths.config", "fail", err.Error())
	} else {
		add("paths.config", "ok", dir)
	}

	stateDir, err := config.StateDir(stateOverride)
	if err != nil {
		add("paths.state", "fail", err.Error())
	} else if err := ensureWritableDir(stateDir); err != nil {
		add("paths.state", "fail", err.Error())
	} else {
		add("paths.state", "ok", stateDir)
	}

	if cfg.APIBaseURL == "" {
		add("api.base_url", "fail", "api_base_url is empty")
	} else {
		client := &http.Client{Timeout: 3 * time.Second}
		resp, err := client.Get(cfg.APIBaseURL + "/locations/all")
		if err != nil {
			add("api.reachable", "warn", fmt.Sprintf("backend unreachable: %v", err))
		} else {
			resp.Body.Close()
			add("api.reachable", "ok", fmt.Sprintf("%s (%s)", cfg.APIBaseURL, resp.Status))
		}
	}

	if stateDir != "" {
		sess, err := session.Open(session.Store{Path: filepath.Join(stateDir, "session.json")})
		switch {
		case err != nil:
			add("session.token", "fail", err.Error())
		case !sess.LoggedIn():
			add("session.token", "warn", "no stored session; run `skydesk login`")
		case sess.IsAdmin():
			add("session.token", "ok", "stored token carries admin role")
		default:
			add("session.token", "warn", "stored token does not carry admin role")
		}
	}

	report := doctorReport{Checks: checks}
	for _, c := range checks {
		switch c.Status {
		case "fail":
			report.Failures++
		case "warn":
			report.Warnings++
		}
	}
	report.OK = report.Failures == 0
	return report
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}
