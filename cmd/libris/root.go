// Package libris implements the libris command line interface.
package libris

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkarvo/libris/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "A GraphQL service for a small book catalog",
	Long: `Libris serves a GraphQL API over a catalog of books, authors and
users backed by MongoDB. Reads are open; a subset of mutations
requires a bearer token obtained via the login mutation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
