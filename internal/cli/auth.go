package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/session"
)

func (a App) cmdLogin(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	username := fs.String("username", "", "Account username")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if len(fs.Args()) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk login [--username NAME] [--password PASS]")
	}

	creds := model.Credentials{Username: *username, Password: *password}
	if creds.Username == "" || creds.Password == "" {
		if g.NoInput {
			return newExitError(ExitInvalidUsage, "--username and --password are required with --no-input")
		}
		reader := bufio.NewReader(os.Stdin)
		if creds.Username == "" {
			fmt.Fprint(os.Stderr, "Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return newExitError(ExitInvalidUsage, "read username: %v", err)
			}
			creds.Username = strings.TrimSpace(line)
		}
		if creds.Password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return newExitError(ExitInvalidUsage, "read password: %v", err)
			}
			creds.Password = strings.TrimSpace(line)
		}
	}
	if creds.Username == "" || creds.Password == "" {
		return newExitError(ExitInvalidUsage, "username and password are required")
	}

	e, err := a.environment(g)
	if err != nil {
		return err
	}
	token, err := e.client.Login(creds)
	if err != nil {
		return wrapAPIError(err)
	}
	role := session.RoleFromToken(token)
	if role != session.AdminRole {
		return newExitError(ExitAuthRequired, "account role %q is not permitted; admin access required", firstOr(role, "none"))
	}
	if err := e.sess.Login(token); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if g.JSON {
		return writeJSON(map[string]string{"status": "ok", "role": role})
	}
	if !g.Quiet {
		fmt.Println("Logged in.")
	}
	return nil
}

func (a App) cmdLogout(g globalFlags, args []string) error {
	if len(args) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk logout")
	}
	e, err := a.environment(g)
	if err != nil {
		return err
	}
	// Idempotent: logging out twice is fine.
	if err := e.sess.Logout(); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if g.JSON {
		return writeJSON(map[string]string{"status": "ok"})
	}
	if !g.Quiet {
		fmt.Println("Logged out.")
	}
	return nil
}

func (a App) cmdWhoami(g globalFlags, args []string) error {
	if len(args) != 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk whoami")
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	profile, err := e.client.UserInfo()
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(profile)
	}
	writePlainKV(
		"username", profile.Username,
		"role", firstOr(profile.Role, e.sess.Role()),
		"email", firstOr(profile.Email, "-"),
	)
	return nil
}
