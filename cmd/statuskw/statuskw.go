// Package statuskw manages the keyword-to-status table
package statuskw

import (
	"fmt"
	"strings"

	"lldbank/lld-validator/cmd/common"
	"lldbank/lld-validator/cmd/root"

	"github.com/spf13/cobra"
)

var search string

// Cmd represents the statuskw command
var Cmd = &cobra.Command{
	Use:   "statuskw",
	Short: "Manage the keywords that imply a party status",
	Long: `Manage the status keyword table. A keyword found in a party name implies
one or more two-letter status codes; a keyword may carry several statuses.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List status keywords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		defer c.Close()

		table, err := c.GetStore().StatusKeywords(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list status keywords: %w", err)
		}
		var rows [][]string
		for _, kw := range common.SortedKeys(table) {
			statuses := strings.Join(table[kw], "/")
			if common.Matches(search, kw, statuses) {
				rows = append(rows, []string{kw, statuses})
			}
		}
		if err := common.PrintTable(cmd.OutOrStdout(), []string{"KEYWORD", "STATUS"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d status keywords\n", len(rows), len(table))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <keyword> <status>",
	Short: "Map a keyword to a status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.GetStore().AddStatusKeyword(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to add status keyword %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: add status keyword %q -> %s\n", args[0], strings.ToUpper(args[1]))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <keyword> <status>",
	Short: "Remove a status from a keyword",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.Container()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.GetStore().DeleteStatusKeyword(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to delete status keyword %q: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: delete status keyword %q -> %s\n", args[0], strings.ToUpper(args[1]))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Only show keywords or statuses containing this text")
	Cmd.AddCommand(listCmd, addCmd, deleteCmd)
}
