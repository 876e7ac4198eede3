package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/civiclens/internal/logging"
	"github.com/ppiankov/civiclens/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Version is set at build time with -ldflags "-X github.com/ppiankov/civiclens/internal/cli.Version=..."
var Version = "0.1.0-dev"

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "civiclens",
	Short: "CivicLens - political entity highlighting for news text",
	Long: `CivicLens finds the political entities named in news articles (bills,
agencies, congressional committees, programs, movements) and annotates
each with a category and a relevance score.

Generic references such as "this bill" are bound to the entity they refer to.
An LLM provider can be enabled as an alternative source of spans; any
provider failure falls back to the local pattern library.

CivicLens highlights names. It does not judge them.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "civiclens %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.civiclens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".civiclens"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// CIVICLENS_LLM_API_KEY maps to llm.api_key
	viper.SetEnvPrefix("CIVICLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := registerDefaults(viper.GetViper(), model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper so that environment
// variables are seen by Unmarshal
func registerDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}

	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, val := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := val.(map[string]any); ok && key != "highlight.category_weights" {
				walk(key, child)
				continue
			}
			v.SetDefault(key, val)
		}
	}
	walk("", tree)

	// Kept out of YAML so it is never written to disk
	v.SetDefault("llm.api_key", "")
	return nil
}

// loadConfig resolves defaults, config file and environment into a Config
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Highlight.Threshold < 1 || cfg.Highlight.Threshold > 10 {
		return nil, fmt.Errorf("highlight.threshold must be between 1 and 10, got %v", cfg.Highlight.Threshold)
	}
	return cfg, nil
}

// newLogger builds the command logger; --verbose raises the default level to info
func newLogger(cfg *model.Config) *zap.Logger {
	logCfg := cfg.Log
	if verbose && logLevel == "" && strings.EqualFold(logCfg.Level, "warn") {
		logCfg.Level = "info"
	}
	return logging.Must(logCfg)
}
