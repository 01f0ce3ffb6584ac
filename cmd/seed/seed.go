// Package seed writes the starter reference data into the store
package seed

import (
	"errors"
	"fmt"

	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/store"

	"github.com/spf13/cobra"
)

var force bool

// Cmd represents the seed command
var Cmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty reference store with the starter data",
	Long: `Seed writes the starter keyword tables, bank codes and status keywords into
the configured store. A store that already holds data is left alone unless
--force is given; the old data is then backed up to a .bak file first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		defer c.Close()

		tables := reference.SeedTables()
		err = c.GetStore().Seed(cmd.Context(), tables, force)
		if errors.Is(err, store.ErrAlreadySeeded) {
			return fmt.Errorf("%w; run with --force to replace it", err)
		}
		if err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d receiver keywords, %d payer keywords, %d bank codes, %d status keywords\n",
			len(tables.Receiver), len(tables.Payer), len(tables.BankCodes), len(tables.StatusKeywords))
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing reference data after backing it up")
}
