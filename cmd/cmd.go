package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leaktk/precommit/pkg/config"
	"github.com/leaktk/precommit/pkg/fs"
	"github.com/leaktk/precommit/pkg/git"
	"github.com/leaktk/precommit/pkg/logger"
	"github.com/leaktk/precommit/pkg/response"
	"github.com/leaktk/precommit/pkg/scanner"
	"github.com/leaktk/precommit/version"
)

const cliLong = `Name:
  leaktk-precommit - Block commits that look like they leak secrets

Description:
  Run without a subcommand from a git pre-commit hook. It checks every
  staged file for lines that look like API keys, passwords, bearer tokens,
  private keys or AWS credentials and exits non-zero when it finds any.
  Findings are heuristics: a line that mentions "api key" is enough.

Exit codes:
  0  nothing to check or no potential secrets
  1  the check could not finish (the commit is rejected)
  3  potential secrets were found
`

const configDescription = `config file path
order of precedence:
1. --config/-c
2. env var LEAKTK_PRECOMMIT_CONFIG
3. ${XDG_CONFIG_HOME}/leaktk/precommit.toml
4. /etc/leaktk/precommit.toml
5. The default config
`

// app carries the streams, config and outcome of one invocation
type app struct {
	cfg      *config.Config
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	exitCode int
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.LocateAndLoadConfig(configPath)
	if err != nil {
		return response.NewError(true, response.ConfigError, err)
	}

	if format, _ := cmd.Flags().GetString("format"); len(format) > 0 {
		cfg.Formatter.Format = format
	}

	if err := cfg.ApplyLogger(); err != nil {
		return response.NewError(true, response.ConfigError, err)
	}

	a.cfg = cfg
	return nil
}

func hookCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leaktk-precommit",
		Short: "Check staged files for potential secrets",
		Long:  cliLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := cmd.Flags().GetString("repo")
			if err != nil {
				return err
			}

			if !fs.PathExists(repo) {
				return response.NewError(true, response.GitError, fmt.Errorf("repo path does not exist: repo=%q", repo))
			}

			staged, err := git.StagedFiles(repo)
			if err != nil {
				return response.NewError(true, response.GitError, err)
			}

			a.exitCode = check(cmd.Context(), a.cfg, fs.NewDir(staged.Root), staged.Paths, a.stdout, a.stderr)
			return nil
		},
	}
}

func scanCommand(a *app) *cobra.Command {
	scanCommand := &cobra.Command{
		Use:   "scan [flags] [path...]",
		Short: "Check the given files for potential secrets",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args

			if readStdin, _ := cmd.Flags().GetBool("stdin"); readStdin {
				stdinPaths, err := readPaths(a.stdin)
				if err != nil {
					return fmt.Errorf("could not read paths from stdin: error=%q", err)
				}

				paths = append(paths, stdinPaths...)
			}

			a.exitCode = check(cmd.Context(), a.cfg, fs.NewDir("."), paths, a.stdout, a.stderr)
			return nil
		},
	}

	flags := scanCommand.Flags()
	flags.Bool("stdin", false, "also read newline separated paths from stdin")

	return scanCommand
}

func rulesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules that are checked",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := scanner.NewScannerFromConfig(&a.cfg.Scanner, fs.NewDir("."))
			if err != nil {
				return err
			}

			for _, rule := range s.Rules() {
				fmt.Fprintf(a.stdout, "%s\t%s\t%s\n", rule.ID, rule.Description, rule.Pattern)
			}

			return nil
		},
	}
}

func versionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// The version doesn't depend on the config
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(*cobra.Command, []string) {
			version.PrintVersion(a.stdout)
		},
	}
}

// readPaths returns the non-empty lines of r. Spaces are part of a file
// name so only the line ending is removed.
func readPaths(r io.Reader) ([]string, error) {
	var paths []string

	lines := bufio.NewScanner(r)
	for lines.Scan() {
		if path := lines.Text(); len(path) > 0 {
			paths = append(paths, path)
		}
	}

	return paths, lines.Err()
}

// rootCommand wires the subcommands onto the hook command
func rootCommand(a *app) *cobra.Command {
	rootCommand := hookCommand(a)
	rootCommand.SilenceErrors = true
	rootCommand.SilenceUsage = true
	rootCommand.PersistentPreRunE = a.loadConfig

	flags := rootCommand.PersistentFlags()
	flags.StringP("config", "c", "", configDescription)
	flags.StringP("format", "f", "", "output format [HUMAN, JSON, TOML, YAML, CSV] (overrides the config)")
	rootCommand.Flags().String("repo", ".", "path inside the git repository to check")

	rootCommand.AddCommand(scanCommand(a))
	rootCommand.AddCommand(rulesCommand(a))
	rootCommand.AddCommand(versionCommand(a))

	return rootCommand
}

// run executes the CLI and returns the exit code. Any error that escapes a
// command rejects the commit.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	command := rootCommand(a)
	command.SetArgs(args)
	command.SetIn(stdin)
	command.SetOut(stdout)
	command.SetErr(stderr)

	if err := command.ExecuteContext(ctx); err != nil {
		logger.Debug("command failed: error=%q", err)
		response.NewConsole(stdout, stderr).Failed(err)
		return config.ExitCodeBlockingError
	}

	return a.exitCode
}

// Execute the command and parse the args
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
