package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage tagged documents",
	Long: `List, select, tag and transfer documents held by the tagging server.

The table is fetched once and kept locally together with the selection and
filter. Use "document list --refresh" to fetch it again.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Long: `List documents in the table.

--filter keeps rows where the term occurs (case-sensitive) in the title,
language, size in bytes, type or any keyword. The filter and sort are
remembered for later commands.`,
	Args: cobra.NoArgs,
	RunE: runDocumentList,
}

var documentSelectCmd = &cobra.Command{
	Use:   "select [doc-id...]",
	Short: "Add documents to the selection",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentSelect,
}

var documentDeselectCmd = &cobra.Command{
	Use:   "deselect [doc-id...]",
	Short: "Remove documents from the selection",
	RunE:  runDocumentDeselect,
}

var documentSelectAllCmd = &cobra.Command{
	Use:   "select-all",
	Short: "Toggle selection of every visible document",
	Long: `Select every document passing the current filter. When all of them are
already selected, clear the whole selection instead, including documents
hidden by the filter.`,
	Args: cobra.NoArgs,
	RunE: runDocumentSelectAll,
}

var documentSelectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Show selected documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentSelection,
}

var documentTagCmd = &cobra.Command{
	Use:   "tag [doc-id] [keyword]",
	Short: "Attach a keyword and its parents to a document",
	Long: `Attach a keyword to a document. When the keyword is in the catalog its
parent keywords are attached as well. Keywords already present are reported
and skipped.

With --selected the keyword is applied to every selected document and only
the keyword argument is given.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if tagSelected {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runDocumentTag,
}

var documentUntagCmd = &cobra.Command{
	Use:   "untag [doc-id] [keyword]",
	Short: "Remove a keyword from a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentUntag,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload files to the server",
	Long: `Upload files and add the created documents to the table.

With --watch DIR, files dropped into DIR are uploaded until interrupted.`,
	RunE: runDocumentUpload,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [doc-id...]",
	Short: "Download documents",
	Long: `Download documents from the server. A single document is written as is,
several documents arrive as a zip archive. Without ids the selection is used.`,
	RunE: runDocumentDownload,
}

var documentExportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Export the table to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentExport,
}

// Flags.
var (
	listFilter     string
	listSort       string
	listDescending bool
	listRefresh    bool
	listFormat     string
	deselectAll    bool
	tagSelected    bool
	uploadWatch    string
	downloadOutput string
	exportAll      bool
)

func init() {
	documentListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Filter term (use --filter '' to clear)")
	documentListCmd.Flags().StringVarP(&listSort, "sort", "s", "",
		"Sort column: title, type, language, size, creation_date")
	documentListCmd.Flags().BoolVar(&listDescending, "desc", false, "Sort descending")
	documentListCmd.Flags().BoolVarP(&listRefresh, "refresh", "r", false, "Fetch documents from the server")
	addFormatFlag(documentListCmd, &listFormat)

	documentDeselectCmd.Flags().BoolVar(&deselectAll, "all", false, "Clear the whole selection")
	documentTagCmd.Flags().BoolVar(&tagSelected, "selected", false, "Apply to every selected document")
	documentUploadCmd.Flags().StringVarP(&uploadWatch, "watch", "w", "", "Upload files dropped into this directory")
	documentDownloadCmd.Flags().StringVarP(&downloadOutput, "output", "O", "", "Output file")
	documentExportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every document, ignoring the filter")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentSelectCmd)
	documentCmd.AddCommand(documentDeselectCmd)
	documentCmd.AddCommand(documentSelectAllCmd)
	documentCmd.AddCommand(documentSelectionCmd)
	documentCmd.AddCommand(documentTagCmd)
	documentCmd.AddCommand(documentUntagCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	documentCmd.AddCommand(documentExportCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(listFormat); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	if err := loadTable(ctx, listRefresh); err != nil {
		return err
	}

	state := tableView.State()
	if cmd.Flags().Changed("filter") {
		state.Filter = listFilter
	}
	if cmd.Flags().Changed("sort") {
		column := domain.SortColumn(listSort)
		if !column.Valid() {
			return fmt.Errorf("%w: unknown sort column %q", domain.ErrInvalidInput, listSort)
		}
		state.SortColumn = column
		state.Descending = listDescending
	} else if cmd.Flags().Changed("desc") {
		state.Descending = listDescending
	}
	tableView.SetFilter(state.Filter)
	tableView.SetSort(state.SortColumn, state.Descending)
	defer saveTable(ctx)

	rows := tableView.Rows()
	if handled, err := writeStructured(cmd.OutOrStdout(), listFormat, rows); handled {
		return err
	}

	if len(rows) == 0 {
		if state.Filter != "" {
			cmd.Printf("No documents match %q\n", state.Filter)
			return nil
		}
		cmd.Println("No documents found")
		return nil
	}
	renderTable(cmd.OutOrStdout(), documentHeaders, documentRows(rows, tableView.IsSelected, tableView.Unsynced()))
	cmd.Printf("%d of %d documents", len(rows), len(tableView.All()))
	if n := len(tableView.Selected()); n > 0 {
		cmd.Printf(", %d selected", n)
	}
	cmd.Println()
	return nil
}

func runDocumentSelect(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	for _, id := range args {
		if _, ok := tableView.Get(id); !ok {
			return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
	}
	for _, id := range args {
		if !tableView.IsSelected(id) {
			tableView.ToggleSelected(id)
		}
	}
	saveTable(ctx)
	cmd.Printf("%d documents selected\n", len(tableView.Selected()))
	return nil
}

func runDocumentDeselect(cmd *cobra.Command, args []string) error {
	if !deselectAll && len(args) == 0 {
		return errors.New("give document ids or --all")
	}
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	if deselectAll {
		tableView.ClearSelection()
	}
	for _, id := range args {
		if tableView.IsSelected(id) {
			tableView.ToggleSelected(id)
		}
	}
	saveTable(ctx)
	cmd.Printf("%d documents selected\n", len(tableView.Selected()))
	return nil
}

func runDocumentSelectAll(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	tableView.ToggleAll()
	saveTable(ctx)
	if tableView.IsAllSelected() && len(tableView.Selected()) > 0 {
		cmd.Printf("Selected all %d visible documents\n", len(tableView.Rows()))
		return nil
	}
	cmd.Println("Selection cleared")
	return nil
}

func runDocumentSelection(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	selected := tableView.Selected()
	if len(selected) == 0 {
		cmd.Println("No documents selected")
		return nil
	}
	for i := range selected {
		cmd.Printf("  %s  %s\n", selected[i].ID, selected[i].DisplayTitle())
	}
	cmd.Printf("\nTotal: %d selected\n", len(selected))
	return nil
}

// catalogEntry resolves a keyword through the catalog. Unknown keywords
// become entries without parents.
func catalogEntry(cmd *cobra.Command, keyword string) domain.KeywordCatalogEntry {
	if keywordCatalog != nil {
		if err := keywordCatalog.Load(commandContext(cmd)); err != nil {
			cmd.PrintErrf("warning: keyword catalog unavailable: %v\n", err)
		} else if entry, ok := keywordCatalog.Entry(keyword); ok {
			return entry
		}
	}
	return domain.KeywordCatalogEntry{ID: keyword}
}

func runDocumentTag(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	defer saveTable(ctx)

	if tagSelected {
		entry := catalogEntry(cmd, args[0])
		result, err := taggingService.ApplyBulkKeywords(ctx, entry)
		if err != nil {
			return err
		}
		for _, item := range result.Results {
			if item.Err != nil {
				cmd.Printf("  %s: failed: %v\n", item.DocumentID, item.Err)
				continue
			}
			cmd.Printf("  %s: added %s\n", item.DocumentID, listOrNone(item.Result.Added))
		}
		cmd.Printf("Applied %q to %d of %d documents\n", entry.ID, result.Succeeded(), len(result.Results))
		if failed := len(result.Failed()); failed > 0 {
			return fmt.Errorf("%d documents were not updated", failed)
		}
		return nil
	}

	entry := catalogEntry(cmd, args[1])
	result, err := taggingService.ApplyKeyword(ctx, args[0], entry)
	if err != nil {
		return err
	}
	cmd.Printf("Added %s to %s\n", listOrNone(result.Added), result.Document.DisplayTitle())
	cmd.Printf("Keywords: %s\n", strings.Join(result.Document.KeywordValues(), ", "))
	return nil
}

func runDocumentUntag(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	defer saveTable(ctx)

	result, err := taggingService.RemoveKeyword(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if len(result.Removed) == 0 {
		cmd.Printf("%s has no keyword %q\n", result.Document.DisplayTitle(), args[1])
		return nil
	}
	cmd.Printf("Removed %q from %s\n", args[1], result.Document.DisplayTitle())
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if uploadWatch == "" && len(args) == 0 {
		return errors.New("give files to upload or --watch DIR")
	}
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	defer saveTable(ctx)

	for _, path := range args {
		if err := uploadFile(cmd, path); err != nil {
			return err
		}
	}
	if uploadWatch == "" {
		return nil
	}

	if watchDir == nil {
		return errors.New("directory watching not configured")
	}
	paths, err := watchDir(ctx, uploadWatch)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s, press Ctrl+C to stop\n", uploadWatch)
	for path := range paths {
		if err := uploadFile(cmd, path); err != nil {
			cmd.PrintErrf("error: %v\n", err)
			continue
		}
		saveTable(ctx)
	}
	return nil
}

func uploadFile(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := taggingService.Upload(commandContext(cmd), filepath.Base(path), f)
	if err != nil {
		return err
	}
	cmd.Printf("Uploaded %s as %s\n", path, doc.ID)
	return nil
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		for _, doc := range tableView.Selected() {
			ids = append(ids, doc.ID)
		}
	}
	if len(ids) == 0 {
		return domain.ErrNoSelection
	}

	out := downloadOutput
	if out == "" {
		out = "documents.zip"
		if len(ids) == 1 {
			out = filepath.Base(ids[0])
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := taggingService.Download(ctx, ids, f); err != nil {
		f.Close()
		_ = os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	cmd.Printf("Downloaded %d documents to %s\n", len(ids), out)
	return nil
}

func runDocumentExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export not configured")
	}
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}

	path := args[0]
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := exportService.Export(f, exportAll)
	if err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("Exported %d documents to %s\n", n, path)
	return nil
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "nothing"
	}
	return strings.Join(values, ", ")
}
