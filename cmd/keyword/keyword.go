// Package keyword manages the keyword-to-category tables
package keyword

import (
	"fmt"

	"lldbank/lld-validator/cmd/common"
	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/store"

	"github.com/spf13/cobra"
)

var (
	role   string
	search string
)

// Cmd represents the keyword command
var Cmd = &cobra.Command{
	Use:   "keyword",
	Short: "Manage the keyword tables used to suggest categories",
	Long: `Manage the receiver (penerima) and payer (pembayar) keyword tables. Each
keyword maps a word or phrase found in a party name to a category code.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List keywords of a role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := common.ParseRoleFlag(role)
		if err != nil {
			return err
		}
		c, err := root.Container()
		if err != nil {
			return err
		}
		defer c.Close()

		table, err := c.GetStore().Keywords(cmd.Context(), r)
		if err != nil {
			return fmt.Errorf("failed to list keywords: %w", err)
		}
		var rows [][]string
		for _, kw := range common.SortedKeys(table) {
			if common.Matches(search, kw, table[kw]) {
				rows = append(rows, []string{kw, table[kw]})
			}
		}
		if err := common.PrintTable(cmd.OutOrStdout(), []string{"KEYWORD", "CATEGORY"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d %s keywords\n", len(rows), len(table), r)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <keyword> <category>",
	Short: "Add a keyword",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, "add", args[0], func(s store.ReferenceStore, r models.Role) error {
			return s.AddKeyword(cmd.Context(), r, args[0], args[1])
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <keyword> <category>",
	Short: "Change the category of a keyword",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, "update", args[0], func(s store.ReferenceStore, r models.Role) error {
			return s.UpdateKeyword(cmd.Context(), r, args[0], args[1])
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <keyword>",
	Short: "Delete a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, "delete", args[0], func(s store.ReferenceStore, r models.Role) error {
			return s.DeleteKeyword(cmd.Context(), r, args[0])
		})
	},
}

func init() {
	Cmd.PersistentFlags().StringVar(&role, "role", string(models.RoleReceiver), "Party role: penerima (receiver) or pembayar (payer)")
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Only show keywords or categories containing this text")
	Cmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
}

func mutate(cmd *cobra.Command, action, keyword string, op func(store.ReferenceStore, models.Role) error) error {
	r, err := common.ParseRoleFlag(role)
	if err != nil {
		return err
	}
	c, err := root.Container()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := op(c.GetStore(), r); err != nil {
		return fmt.Errorf("failed to %s %s keyword %q: %w", action, r, keyword, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s %s keyword %q\n", action, r, keyword)
	return nil
}
