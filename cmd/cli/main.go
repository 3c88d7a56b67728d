package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"placementcms/adapters/excel"
	domain "placementcms/domain/roster"
	"placementcms/internal"
	"placementcms/internal/config"
	"placementcms/internal/container"
	"placementcms/internal/migration"
	"placementcms/internal/roster"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

// errRejected makes the process exit non-zero without printing a second message
var errRejected = errors.New("roster rejected")

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "placementctl",
		Short:         "Placement CMS command line tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newImportCmd(),
		newTemplateCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}

func newValidateCmd() *cobra.Command {
	var policy, aliases string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a student roster without storing it",
		Long: `Run a roster spreadsheet through the ingestion pipeline and print the
result as JSON. No database is needed. Exits 1 when the roster is rejected.

Example: placementctl validate batch-2025.xlsx --policy partial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadRoster()
			if err != nil {
				return err
			}
			if policy != "" {
				cfg.AcceptPolicy = policy
			}
			if aliases != "" {
				cfg.AliasesFile = aliases
			}

			ingestor, err := container.NewIngestor(*cfg, internal.NewNopLogger())
			if err != nil {
				return err
			}
			return runValidate(cmd.Context(), cmd.OutOrStdout(), ingestor, args[0])
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Accept policy: all_or_nothing|partial (default from ROSTER_ACCEPT_POLICY)")
	cmd.Flags().StringVar(&aliases, "aliases", "", "Extra header aliases file (.toml or .yaml)")
	return cmd
}

func runValidate(ctx context.Context, out io.Writer, ingestor *roster.Ingestor, path string) error {
	upload, err := readUpload(path)
	if err != nil {
		return err
	}

	result, err := ingestor.Ingest(ctx, upload)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if result.Outcome == domain.OutcomeRejected {
		return errRejected
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Validate a student roster and store the accepted students",
		Long: `Validate a roster spreadsheet and persist the accepted records in one
transaction. Requires DATABASE_URL.

Example: placementctl import batch-2025.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
			defer func() { _ = logger.Sync() }()

			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			c, err := container.New(cfg, logger)
			if err != nil {
				return err
			}
			if err := c.InitWithDatabase(ctx, db); err != nil {
				return err
			}

			upload, err := readUpload(args[0])
			if err != nil {
				return err
			}
			res, err := c.Roster.Import(ctx, upload)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch res.Result.Outcome {
			case domain.OutcomeRejected:
				for _, e := range res.Result.Errors {
					fmt.Fprintf(out, "row %d: %s\n", e.Row, e.Message)
				}
				fmt.Fprintf(out, "rejected: %d rows with errors, nothing stored\n", res.Result.RejectedRows())
				return errRejected
			default:
				fmt.Fprintf(out, "stored %d students (%d rows rejected, %d blank rows skipped)\n",
					len(res.Students), res.Result.RejectedRows(), res.Result.SkippedRows)
			}
			return nil
		},
	}
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [out.xlsx]",
		Short: "Write an empty roster template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := excel.WriteTemplate(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "template written to %s\n", args[0])
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := sqlx.ConnectContext(cmd.Context(), "postgres", cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			runner := migration.NewRunner(internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level)))
			if err := runner.Run(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %s\n", runner.Version())
			return nil
		},
	}
}

// openDB connects and brings the schema up to date
func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := migration.NewRunner(nil).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func readUpload(path string) (roster.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return roster.Upload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return roster.Upload{Filename: filepath.Base(path), Data: data}, nil
}
