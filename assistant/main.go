package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"rhystmorgan/assistant/internal/audit"
	"rhystmorgan/assistant/internal/commands"
	"rhystmorgan/assistant/internal/config"
	"rhystmorgan/assistant/internal/storage"
	"rhystmorgan/assistant/internal/views"
)

func main() {
	cmd, err := NewRootCmd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("assistant failed")
		os.Exit(1)
	}
}

// NewRootCmd builds the assistant command; exposed for tests.
func NewRootCmd() (*cobra.Command, error) {
	cfg, err := config.GetDefaultConfig()
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           "assistant",
		Short:         "Personal assistant with an address book and notes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger(cmd.ErrOrStderr(), cfg.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Resolve(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.DataFile, "file", "f", cfg.DataFile, "data file; .db/.sqlite uses SQLite, anything else JSON")
	flags.StringVar(&cfg.Passphrase, "passphrase", "", "encrypt the JSON data file with this passphrase")
	flags.StringVar(&cfg.AuditDir, "audit-dir", "", "directory for the change journal; enables the history command")
	flags.BoolVar(&cfg.Plain, "plain", false, "use the line based REPL even on a terminal")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "enable debug logging on stderr")

	return rootCmd, nil
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	backend, err := storage.Open(cfg.DataFile, cfg.Passphrase)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer backend.Close()

	state, err := backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	var opts []commands.Option
	if cfg.AuditDir != "" {
		journal, err := audit.NewJournal(cfg.AuditDir)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() {
			if err := journal.Close(); err != nil {
				log.Warn().Err(err).Str("path", journal.Path()).Msg("failed to flush journal")
			}
		}()
		opts = append(opts, commands.WithJournal(journal))
	}

	session := commands.NewSession(commands.NewHandler(state.Book, state.Notes, opts...))

	if !cfg.Plain && isTerminal(in) {
		err = views.RunInteractive(session, tea.WithInput(in), tea.WithOutput(out))
	} else {
		err = views.RunPlain(in, out, session)
	}
	if err != nil {
		log.Error().Err(err).Msg("input loop stopped")
	}

	if saveErr := backend.Save(ctx, state); saveErr != nil {
		return fmt.Errorf("failed to save data: %w", saveErr)
	}
	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
