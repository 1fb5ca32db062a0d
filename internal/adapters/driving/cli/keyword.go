package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var keywordCmd = &cobra.Command{
	Use:   "keyword",
	Short: "Browse the keyword catalog",
}

var keywordSearchCmd = &cobra.Command{
	Use:   "search [prefix]",
	Short: "Find keywords by prefix",
	Long: `List catalog keywords starting with the prefix, ignoring case.
Without a prefix the whole catalog is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeywordSearch,
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Browse keyword models",
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keyword models",
	Args:  cobra.NoArgs,
	RunE:  runModelList,
}

var (
	keywordFormat string
	modelFormat   string
)

func init() {
	addFormatFlag(keywordSearchCmd, &keywordFormat)
	addFormatFlag(modelListCmd, &modelFormat)

	keywordCmd.AddCommand(keywordSearchCmd)
	modelCmd.AddCommand(modelListCmd)
	rootCmd.AddCommand(keywordCmd)
	rootCmd.AddCommand(modelCmd)
}

var errCatalogNotConfigured = errors.New("keyword catalog not configured")

func runKeywordSearch(cmd *cobra.Command, args []string) error {
	if keywordCatalog == nil {
		return errCatalogNotConfigured
	}
	if err := validateFormat(keywordFormat); err != nil {
		return err
	}
	if err := keywordCatalog.Load(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	term := ""
	if len(args) == 1 {
		term = args[0]
	}
	entries := keywordCatalog.Search(term)
	if handled, err := writeStructured(cmd.OutOrStdout(), keywordFormat, entries); handled {
		return err
	}

	if len(entries) == 0 {
		cmd.Printf("No keywords match %q\n", term)
		return nil
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.ID, e.KWM, strings.Join(e.Parents, ", ")}
	}
	renderTable(cmd.OutOrStdout(), []string{"Keyword", "Model", "Parents"}, rows)
	cmd.Printf("%d keywords\n", len(entries))
	return nil
}

func runModelList(cmd *cobra.Command, _ []string) error {
	if keywordCatalog == nil {
		return errCatalogNotConfigured
	}
	if err := validateFormat(modelFormat); err != nil {
		return err
	}
	if err := keywordCatalog.Load(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to load keyword models: %w", err)
	}

	models := keywordCatalog.Models()
	if handled, err := writeStructured(cmd.OutOrStdout(), modelFormat, models); handled {
		return err
	}

	if len(models) == 0 {
		cmd.Println("No keyword models found")
		return nil
	}
	rows := make([][]string, len(models))
	for i, m := range models {
		rows[i] = []string{m.ID, fmt.Sprint(len(m.Keywords)), strings.Join(m.Keywords, ", ")}
	}
	renderTable(cmd.OutOrStdout(), []string{"Model", "Size", "Keywords"}, rows)
	return nil
}
