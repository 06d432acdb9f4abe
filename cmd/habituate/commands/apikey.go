package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/paulogil93/habitua-te-api/internal/auth"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/spf13/cobra"
)

var newKey string

// apikeyCmd groups administration of admin API keys
var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage administrator API keys",
	Long: `Manage the keys stored in api_keys. A request carrying one of these
keys in X-Api-Key is granted admin access.

Examples:
  habituate apikey create              # Generate and store a random key
  habituate apikey create --key SECRET # Store a chosen key
  habituate apikey list
  habituate apikey revoke SECRET`,
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Store a new administrator key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKeys(cmd.Context(), func(ctx context.Context, keys repository.APIKeyRepository) error {
			key := newKey
			if key == "" {
				var err error
				if key, err = auth.GenerateKey(); err != nil {
					return err
				}
			}
			if _, err := keys.Create(ctx, key); err != nil {
				if errors.Is(err, repository.ErrDuplicateKey) {
					return fmt.Errorf("key already exists")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		})
	},
}

var apikeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List administrator keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKeys(cmd.Context(), func(ctx context.Context, keys repository.APIKeyRepository) error {
			rows, err := keys.List(ctx)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No API keys")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKEY")
			for _, row := range rows {
				fmt.Fprintf(w, "%d\t%s\n", row.ID, row.Key)
			}
			return w.Flush()
		})
	},
}

var apikeyRevokeCmd = &cobra.Command{
	Use:   "revoke KEY",
	Short: "Delete an administrator key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withKeys(cmd.Context(), func(ctx context.Context, keys repository.APIKeyRepository) error {
			if err := keys.Revoke(ctx, args[0]); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("key not found")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Key revoked")
			return nil
		})
	},
}

func init() {
	apikeyCreateCmd.Flags().StringVar(&newKey, "key", "", "Key to store instead of a generated one")

	apikeyCmd.AddCommand(apikeyCreateCmd, apikeyListCmd, apikeyRevokeCmd)
	rootCmd.AddCommand(apikeyCmd)
}

// withKeys opens the configured database for the duration of fn.
func withKeys(ctx context.Context, fn func(context.Context, repository.APIKeyRepository) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr)

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, repository.NewAPIKeyRepository(db.DB(), logger))
}
