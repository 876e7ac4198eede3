package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/civiclens/internal/extract"
	"github.com/ppiankov/civiclens/internal/normalize"
	"github.com/spf13/cobra"
)

var articleOnly bool

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]",
	Short: "Print the cleaned text that highlighting runs on",
	Long: `Normalize decodes HTML entities, removes markup along with script and style
content, strips tracking artifacts and collapses whitespace. Span offsets in
highlight output index into exactly this text.

Example:
  civiclens normalize story.html
  curl -s https://example.com/story | civiclens normalize - --article`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().BoolVar(&articleOnly, "article", false, "select the article body from HTML before normalizing")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
		name = "-"
	)
	if len(args) == 1 {
		name = args[0]
	}

	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	raw := string(data)
	ext := strings.ToLower(filepath.Ext(name))
	if articleOnly || ext == ".html" || ext == ".htm" {
		body, _, err := extract.ArticleHTML(raw, "", "text/html")
		if err != nil {
			return fmt.Errorf("select article: %w", err)
		}
		raw = body
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), normalize.Normalize(raw))
	return err
}
