package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

var taggingCmd = &cobra.Command{
	Use:   "tagging",
	Short: "Run tagging methods on the server",
}

var taggingApplyCmd = &cobra.Command{
	Use:   "apply [doc-id...]",
	Short: "Submit a tagging job",
	Long: `Ask the server to tag documents with a tagging method.

Methods:
  kwm - Keyword Model: tag with the keywords of --model
  ml  - Automated: let the server pick keywords

Without ids the selected documents are tagged. The selection is cleared
afterwards, and on success the table is fetched again.`,
	RunE: runTaggingApply,
}

var taggingMethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List tagging methods",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, m := range domain.TaggingMethods() {
			cmd.Printf("  %-4s %s\n", strings.ToLower(string(m.Type)), m.Name)
		}
	},
}

var (
	taggingMethod string
	taggingModel  string
)

func init() {
	taggingApplyCmd.Flags().StringVarP(&taggingMethod, "method", "m", "ml", "Tagging method: kwm or ml")
	taggingApplyCmd.Flags().StringVar(&taggingModel, "model", "", "Keyword model id (kwm method)")
	taggingMethodsCmd.Annotations = map[string]string{annotationSetup: setupSkip}

	taggingCmd.AddCommand(taggingApplyCmd)
	taggingCmd.AddCommand(taggingMethodsCmd)
	rootCmd.AddCommand(taggingCmd)
}

func runTaggingApply(cmd *cobra.Command, args []string) error {
	method, ok := domain.TaggingMethodByType(domain.KeywordType(strings.ToUpper(taggingMethod)))
	if !ok {
		return fmt.Errorf("%w: unknown tagging method %q", domain.ErrInvalidInput, taggingMethod)
	}
	ctx := commandContext(cmd)
	if err := loadTable(ctx, false); err != nil {
		return err
	}
	defer saveTable(ctx)

	req := domain.TaggingRequest{Method: method}
	if method.Type == domain.KeywordModelType {
		if taggingModel == "" {
			return errors.New("the kwm method needs --model")
		}
		if keywordCatalog == nil {
			return errCatalogNotConfigured
		}
		if err := keywordCatalog.Load(ctx); err != nil {
			return fmt.Errorf("failed to load keyword models: %w", err)
		}
		model, ok := keywordCatalog.Model(taggingModel)
		if !ok {
			return fmt.Errorf("keyword model %s: %w", taggingModel, domain.ErrNotFound)
		}
		req.KeywordModel = &model
	}
	for _, id := range args {
		doc, ok := tableView.Get(id)
		if !ok {
			return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		req.Documents = append(req.Documents, doc)
	}

	resp, err := taggingService.ApplyTaggingMethod(ctx, req)
	if err != nil {
		return err
	}
	cmd.Printf("%s tagging accepted (status %d)\n", method.Name, resp.Status)
	return nil
}
