package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Alma-hanif/infinitag/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive document table.

Controls:
  ↑/k, ↓/j - Move between rows
  Space    - Select the row
  a        - Select all / clear the selection
  /        - Filter rows
  t, Enter - Tag the row
  T        - Tag the selection
  x        - Remove a keyword from the row
  m        - Run a tagging method on the selection
  s, S     - Change sort column / reverse
  r        - Fetch the documents again
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := requireTagging(); err != nil {
		return err
	}

	ports := &tui.Ports{
		Tagging:       taggingService,
		Table:         tableView,
		Catalog:       keywordCatalog,
		Workspace:     workspaceService,
		Notifications: notificationFeed,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := commandContext(cmd)
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	saveTable(ctx)
	// Notifications were shown in the status bar.
	if notices != nil {
		notices.Drain()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
