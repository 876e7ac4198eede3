package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/civiclens/internal/model"
	"github.com/ppiankov/civiclens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	sourceURL   string
	outJSON     string
	outMD       string
	threshold   float64
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	noRobots    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
	httpProxy   string
	httpsProxy  string
)

// highlightCmd represents the highlight command
var highlightCmd = &cobra.Command{
	Use:   "highlight [file|-]",
	Short: "Highlight political entities in one article",
	Long: `Highlight reads one article (plain text or HTML) and reports the political
entities it names:
- Bill identifiers and formal legislation
- Congressional committees and government agencies
- Entitlement programs, movements and political institutions
- Generic references ("this bill") bound to the entity they refer to

Input is a file, standard input ("-" or no argument), or a URL via --url.
Without --json or --md the document is written to stdout as JSON.

Example:
  civiclens highlight article.txt
  civiclens highlight --url https://www.congress.gov/bill/117th-congress/house-bill/3684 --md report.md
  cat story.html | civiclens highlight - --threshold 8
  civiclens highlight article.txt --llm --llm-provider anthropic --llm-model claude-3-5-haiku-latest`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)

	highlightCmd.Flags().StringVar(&sourceURL, "url", "", "fetch the article from this URL")
	highlightCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	highlightCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	highlightCmd.Flags().Float64Var(&threshold, "threshold", 7, "minimum relevance score (1-10)")
	highlightCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	highlightCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	highlightCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	highlightCmd.Flags().BoolVar(&noRobots, "ignore-robots", false, "fetch even when robots.txt disallows it")
	highlightCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	highlightCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	addLLMFlags(highlightCmd)
}

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "use an LLM provider for highlighting (falls back to local patterns)")
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama, gemini)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyFlags overlays explicitly set flags on the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *model.Config) error {
	flags := cmd.Flags()

	if flags.Changed("threshold") {
		if threshold < 1 || threshold > 10 {
			return fmt.Errorf("--threshold must be between 1 and 10, got %v", threshold)
		}
		cfg.Highlight.Threshold = threshold
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}

	if llmEnabled {
		cfg.LLM.Enabled = true
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" && cfg.LLM.Provider == "ollama" && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = url
	}
	return nil
}

func runHighlight(cmd *cobra.Command, args []string) error {
	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	if sourceURL != "" {
		if len(args) == 1 {
			return errors.New("pass either a file or --url, not both")
		}
		if !pipeline.IsURL(sourceURL) {
			return fmt.Errorf("--url must be http or https: %s", sourceURL)
		}
		source = sourceURL
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") && timeout < cfg.HTTP.Timeout {
		cfg.HTTP.Timeout = timeout
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Source: %s\n", source)
		fmt.Fprintf(os.Stderr, "Threshold: %v\n", cfg.Highlight.Threshold)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		if cfg.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "LLM: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg, pipeline.WithLogger(logger))

	doc, err := p.ProcessSource(ctx, source)
	if err != nil {
		return fmt.Errorf("highlight failed: %w", err)
	}

	if outJSON == "" && outMD == "" {
		if err := p.Renderer().WriteJSON(cmd.OutOrStdout(), doc); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			p.Renderer().RenderSummary(os.Stderr, doc)
		}
		return nil
	}

	if err := p.RenderReport(doc, outJSON, outMD, verbose, os.Stderr); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
