package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (a App) cmdCompletion(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk completion <bash|zsh|fish> | skydesk completion path <bash|zsh|fish>")
	}
	if len(args) == 2 && strings.EqualFold(args[0], "path") {
		p, err := completionInstallPath(args[1])
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	}
	if len(args) != 1 {
		return newExitError(ExitInvalidUsage, "usage: skydesk completion <bash|zsh|fish> | skydesk completion path <bash|zsh|fish>")
	}
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Print(bashCompletionScript())
		return nil
	case "zsh":
		fmt.Print(zshCompletionScript())
		return nil
	case "fish":
		fmt.Print(fishCompletionScript())
		return nil
	default:
		return newExitError(ExitInvalidUsage, "unsupported shell %q (use bash, zsh, or fish)", args[0])
	}
}

func completionInstallPath(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", wrapExitError(ExitGenericFailure, err)
	}
	switch strings.ToLower(shell) {
	case "bash":
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "skydesk"), nil
	case "zsh":
		return filepath.Join(home, ".zsh", "completions", "_skydesk"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "completions", "skydesk.fish"), nil
	default:
		return "", newExitError(ExitInvalidUsage, "unsupported shell %q (use bash, zsh, or fish)", shell)
	}
}

func bashCompletionScript() string {
	return `_skydesk() {
  local cur prev
  cur="${COMP_WORDS[COMP_CWORD]}"
  prev="${COMP_WORDS[COMP_CWORD-1]}"
  local commands="console login logout whoami overview locations aircraft flights bookings news config doctor completion help version"
  case "$prev" in
    locations|aircraft) COMPREPLY=( $(compgen -W "list add update delete" -- "$cur") ); return ;;
    flights) COMPREPLY=( $(compgen -W "list search add update delete" -- "$cur") ); return ;;
    bookings) COMPREPLY=( $(compgen -W "list confirm cancel purge-cancelled" -- "$cur") ); return ;;
    news) COMPREPLY=( $(compgen -W "list create update publish delete" -- "$cur") ); return ;;
    config) COMPREPLY=( $(compgen -W "get set path" -- "$cur") ); return ;;
    completion) COMPREPLY=( $(compgen -W "bash zsh fish path" -- "$cur") ); return ;;
  esac
  COMPREPLY=( $(compgen -W "$commands" -- "$cur") )
}
complete -F _skydesk skydesk
`
}

func zshCompletionScript() string {
	return `#compdef skydesk
_skydesk() {
  local -a commands
  commands=(
    'console:Launch the admin console'
    'login:Authenticate and store the session token'
    'logout:Discard the stored session'
    'whoami:Show the authenticated account'
    'overview:Dashboard statistics'
    'locations:Manage locations'
    'aircraft:Manage aircraft'
    'flights:Manage flights'
    'bookings:Manage bookings'
    'news:Manage news'
    'config:Read or write config values'
    'doctor:Run preflight checks'
    'completion:Shell completion scripts'
  )
  _describe 'command' commands
}
_skydesk "$@"
`
}

func fishCompletionScript() string {
	return `complete -c skydesk -f
complete -c skydesk -n __fish_use_subcommand -a console -d 'Launch the admin console'
complete -c skydesk -n __fish_use_subcommand -a login -d 'Authenticate and store the session token'
complete -c skydesk -n __fish_use_subcommand -a logout -d 'Discard the stored session'
complete -c skydesk -n __fish_use_subcommand -a whoami -d 'Show the authenticated account'
complete -c skydesk -n __fish_use_subcommand -a overview -d 'Dashboard statistics'
complete -c skydesk -n __fish_use_subcommand -a locations -d 'Manage locations'
complete -c skydesk -n __fish_use_subcommand -a aircraft -d 'Manage aircraft'
complete -c skydesk -n __fish_use_subcommand -a flights -d 'Manage flights'
complete -c skydesk -n __fish_use_subcommand -a bookings -d 'Manage bookings'
complete -c skydesk -n __fish_use_subcommand -a news -d 'Manage news'
complete -c skydesk -n __fish_use_subcommand -a config -d 'Read or write config values'
complete -c skydesk -n __fish_use_subcommand -a doctor -d 'Run preflight checks'
complete -c skydesk -n __fish_use_subcommand -a completion -d 'Shell completion scripts'
`
}
