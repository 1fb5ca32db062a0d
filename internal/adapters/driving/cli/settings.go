package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change settings stored in ~/.infinitag/config.toml.

Keys:
  backend.url                   Tagging server URL
  backend.timeout_seconds       Request timeout
  backend.rate_limit            Requests per second
  backend.breaker_failures      Consecutive failures before calls are refused
  backend.breaker_open_seconds  How long calls are refused
  bulk.concurrency              Parallel saves in a bulk tag
  workspace.data_dir            Where the local table is stored`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configFormat string

func init() {
	addFormatFlag(configShowCmd, &configFormat)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var errSettingsNotConfigured = errors.New("settings service not configured")

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := validateFormat(configFormat); err != nil {
		return err
	}
	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if handled, err := writeStructured(cmd.OutOrStdout(), configFormat, values); handled {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%-28s %s\n", k, values[k])
	}
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (known keys: %v)", err, domain.SettingKeys())
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
