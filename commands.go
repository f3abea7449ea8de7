package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pinpad/internal/config"
	"pinpad/internal/constants"
	"pinpad/internal/credential"
	"pinpad/internal/lockout"
)

var (
	configPath string
	reasonFlag string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           constants.ApplicationName,
		Short:         "Lock screen PIN pad",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPad()
		},
	}

	root.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Enable debug mode")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default per-user config dir)")
	root.Flags().StringVar(&reasonFlag, "reason", "", "prompt reason: none, restart, timeout, device-admin, user-request or a numeric code")

	root.AddCommand(setPINCmd(), clearPINCmd(), statusCmd())
	return root
}

func setPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-pin",
		Short: "Enroll or replace the PIN",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			pin, err := readPIN(in, cmd.ErrOrStderr(), "New PIN: ")
			if err != nil {
				return err
			}
			defer zero(pin)
			if err := env.checker.ValidatePIN(pin); err != nil {
				return err
			}

			again, err := readPIN(in, cmd.ErrOrStderr(), "Repeat PIN: ")
			if err != nil {
				return err
			}
			defer zero(again)
			if !bytes.Equal(pin, again) {
				return errors.New("PINs do not match")
			}

			if err := env.checker.Enroll(pin); err != nil {
				return err
			}
			if err := env.tracker.Reset(); err != nil {
				debugPrint("Lockout reset after enroll failed: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN set.")
			return nil
		},
	}
}

func clearPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-pin",
		Short: "Remove the enrolled PIN and any lockout",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.checker.Clear(); err != nil {
				return err
			}
			if err := env.tracker.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN cleared.")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show enrollment and lockout state",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment()
			if err != nil {
				return err
			}
			defer env.Close()

			enrolled, err := env.checker.Enrolled()
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), env, enrolled)
			return nil
		},
	}
}

func printStatus(w io.Writer, env *environment, enrolled bool) {
	state := env.tracker.State()
	fmt.Fprintf(w, "config:          %s\n", env.manager.Path())
	fmt.Fprintf(w, "backend:         %s\n", env.backend)
	fmt.Fprintf(w, "enrolled:        %t\n", enrolled)
	fmt.Fprintf(w, "failed attempts: %d\n", state.FailedAttempts)
	if left := env.tracker.Remaining(); left > 0 {
		fmt.Fprintf(w, "locked for:      %s\n", left.Round(time.Second))
	} else {
		fmt.Fprintf(w, "attempts left:   %d\n", env.tracker.AttemptsBeforeLockout())
	}
}

// environment is the storage shared by the pad and the subcommands
type environment struct {
	manager  *config.Manager
	config   *config.Config
	backend  string
	checker  *credential.Checker
	tracker  *lockout.Tracker
	database *lockout.SQLiteStore
}

func openEnvironment() (*environment, error) {
	var manager *config.Manager
	if configPath != "" {
		manager = config.NewManagerWithPath(configPath, debugPrint)
	} else {
		manager = config.NewManager(debugPrint)
	}
	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}

	backend := cfg.Storage.Backend
	store, err := credential.NewStore(backend)
	if err != nil {
		debugPrint("Credential backend %q unavailable, using memory: %v", backend, err)
		backend = "memory"
		store = credential.NewMemoryStore()
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath == "" {
		dbPath = manager.DataPath(constants.LockoutDatabaseName)
	}
	database, err := lockout.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	tracker, err := lockout.NewTracker(lockoutPolicy(cfg), database)
	if err != nil {
		database.Close()
		return nil, err
	}

	return &environment{
		manager:  manager,
		config:   cfg,
		backend:  backend,
		checker:  credential.NewChecker(store, cfg.Entry.MinLength, cfg.Entry.MaxLength),
		tracker:  tracker,
		database: database,
	}, nil
}

// Close releases the lockout database
func (e *environment) Close() {
	if err := e.database.Close(); err != nil {
		debugPrint("Closing lockout database failed: %v", err)
	}
}

func lockoutPolicy(cfg *config.Config) lockout.Policy {
	return lockout.Policy{
		MaxAttempts: cfg.Lockout.MaxAttempts,
		Duration:    cfg.LockoutDuration(),
	}
}

// readPIN prompts on w and reads one line without echo when stdin is a
// terminal, or a plain line otherwise
func readPIN(in *bufio.Reader, w io.Writer, prompt string) ([]byte, error) {
	fmt.Fprint(w, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pin, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return nil, fmt.Errorf("reading PIN: %w", err)
		}
		return pin, nil
	}

	line, err := in.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, fmt.Errorf("reading PIN: %w", err)
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
