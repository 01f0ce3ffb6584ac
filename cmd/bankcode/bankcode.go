// Package bankcode manages the bank code table
package bankcode

import (
	"fmt"

	"lldbank/lld-validator/cmd/common"
	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/internal/store"

	"github.com/spf13/cobra"
)

var search string

// Cmd represents the bankcode command
var Cmd = &cobra.Command{
	Use:   "bankcode",
	Short: "Manage the three-digit bank codes and their bank names",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		defer c.Close()

		codes, err := c.GetStore().BankCodes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list bank codes: %w", err)
		}
		var rows [][]string
		for _, code := range common.SortedKeys(codes) {
			if common.Matches(search, code, codes[code]) {
				rows = append(rows, []string{code, codes[code]})
			}
		}
		if err := common.PrintTable(cmd.OutOrStdout(), []string{"CODE", "BANK"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d bank codes\n", len(rows), len(codes))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <code> <bank name>",
	Short: "Add a bank code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, "add", args[0], func(s store.ReferenceStore) error {
			return s.AddBankCode(cmd.Context(), args[0], args[1])
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <code> <bank name>",
	Short: "Change the bank name of a code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, "update", args[0], func(s store.ReferenceStore) error {
			return s.UpdateBankCode(cmd.Context(), args[0], args[1])
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Delete a bank code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, "delete", args[0], func(s store.ReferenceStore) error {
			return s.DeleteBankCode(cmd.Context(), args[0])
		})
	},
}

func init() {
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Only show codes or names containing this text")
	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
}

func mutate(cmd *cobra.Command, action, code string, op func(store.ReferenceStore) error) error {
	c, err := root.Container()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := op(c.GetStore()); err != nil {
		return fmt.Errorf("failed to %s bank code %q: %w", action, code, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s bank code %q\n", action, code)
	return nil
}
