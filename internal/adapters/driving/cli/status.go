package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the tagging server",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}
	status := statusService.Status(commandContext(cmd))

	cmd.Printf("Server:  %s\n", status.URL)
	if status.Err != nil {
		cmd.Printf("Status:  DOWN\n")
		return fmt.Errorf("server unreachable: %w", status.Err)
	}
	cmd.Printf("Status:  %s\n", status.Status)
	cmd.Printf("Latency: %s\n", status.Latency.Round(time.Microsecond))
	if !status.Up() {
		return fmt.Errorf("server reports %s", status.Status)
	}
	return nil
}
