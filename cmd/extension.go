package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/etnz/ledger/config"
	"github.com/google/subcommands"
)

// ExtensionPrefix is the name prefix of the external binaries run as
// subcommands: "ldg foo" runs "ldg-foo" when foo is not a builtin command.
const ExtensionPrefix = "ldg-"

// IsBuiltin reports whether name is a subcommand registered in c.
func IsBuiltin(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// RunExtension attempts to find and execute an external ldg-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The resolved settings are passed down as LEDGER_* environment variables,
// so the extension sees the same database as the builtin commands.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cfg, err := Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, int(subcommands.ExitFailure)
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv(cfg)...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, int(subcommands.ExitFailure)
	}
	return true, 0
}

func extensionEnv(cfg config.Config) []string {
	return []string{
		config.EnvDBPath + "=" + cfg.DBPath,
		config.EnvDefaultVenue + "=" + cfg.DefaultVenue,
		config.EnvExportDir + "=" + cfg.ExportDir,
		config.EnvLogLevel + "=" + cfg.LogLevel,
	}
}
