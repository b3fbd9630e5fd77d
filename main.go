package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	configFile       string
	debugMode        bool
	outputFormat     string
	htmlFile         string
	templatePath     string
	apiKey           string
	digestPromptPath string
)

var rootCmd = &cobra.Command{
	Use:   "tldr",
	Short: "Read TLDR newsletter issues from the terminal",
	Long:  `Fetches a dated TLDR newsletter issue and prints its articles as a table, markdown, JSON or YAML.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			SetDebugMode(true)
		}
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [category] [date]",
	Short: "Fetch an issue and print it",
	Long: `Fetches the issue for category and date (YYYY-MM-DD). The category defaults
to default_category from the settings and the date to today.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config := newConfig()
		category, date, err := parseTarget(args, config.Settings.DefaultCategory, civil.DateOf(time.Now()))
		if err != nil {
			log.Fatal(err)
		}

		format := config.Settings.Format
		if outputFormat != "" {
			if format, err = ParseOutputFormat(outputFormat); err != nil {
				log.Fatal(err)
			}
		}

		processor := NewNewsletterProcessor(config)
		newsletter, err := processor.LoadNewsletter(cmd.Context(), category, date, htmlFile)
		if err != nil {
			log.Fatalf("Fetch failed: %v", err)
		}
		if err := processor.Render(os.Stdout, newsletter, format); err != nil {
			log.Fatalf("Rendering failed: %v", err)
		}
	},
}

var readCmd = &cobra.Command{
	Use:   "read [category] [date] <n>",
	Short: "Print the page behind article n of an issue as markdown",
	Args:  cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		config := newConfig()
		index, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			log.Fatalf("Invalid article number %q: %v", args[len(args)-1], err)
		}
		category, date, err := parseTarget(args[:len(args)-1], config.Settings.DefaultCategory, civil.DateOf(time.Now()))
		if err != nil {
			log.Fatal(err)
		}

		processor := NewNewsletterProcessor(config)
		newsletter, err := processor.LoadNewsletter(cmd.Context(), category, date, htmlFile)
		if err != nil {
			log.Fatalf("Fetch failed: %v", err)
		}
		content, err := processor.ReadArticle(cmd.Context(), newsletter, index)
		if err != nil {
			log.Fatalf("Read failed: %v", err)
		}
		fmt.Println(content.Text)
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest [category] [date]",
	Short: "Write a short LLM digest of an issue",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		config := newConfig()
		category, date, err := parseTarget(args, config.Settings.DefaultCategory, civil.DateOf(time.Now()))
		if err != nil {
			log.Fatal(err)
		}

		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		agent, err := NewDigestAgent(apiKey, config)
		if err != nil {
			log.Fatal(err)
		}

		processor := NewNewsletterProcessor(config)
		newsletter, err := processor.LoadNewsletter(cmd.Context(), category, date, htmlFile)
		if err != nil {
			log.Fatalf("Fetch failed: %v", err)
		}
		digest, err := processor.Digest(agent, newsletter)
		if err != nil {
			log.Fatalf("Digest failed: %v", err)
		}
		fmt.Println(digest)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the configured newsletter categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := newConfig()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Category", "Default"})
		for _, c := range config.Settings.Categories {
			mark := ""
			if c == config.Settings.DefaultCategory {
				mark = "*"
			}
			t.AppendRow(table.Row{c, mark})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to settings file (default .tldr/settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{fetchCmd, readCmd, digestCmd} {
		cmd.Flags().StringVar(&htmlFile, "file", "", "Parse a saved HTML page instead of fetching it")
		cmd.Flags().StringVar(&templatePath, "template", "", "Path to custom markdown template file")
	}
	fetchCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: json, yaml, table or markdown")
	digestCmd.Flags().StringVar(&apiKey, "api-key", "", "Anthropic API key")
	digestCmd.Flags().StringVar(&digestPromptPath, "digest-prompt", "", "Path to custom digest system prompt file")

	rootCmd.AddCommand(fetchCmd, readCmd, digestCmd, categoriesCmd)
}

// newConfig builds the config from the global flags, exiting on failure
func newConfig() *Config {
	overrides := &ConfigOverrides{}
	if configFile != "" {
		overrides.SettingsPath = &configFile
	}
	if templatePath != "" {
		overrides.TemplatePath = &templatePath
	}
	if digestPromptPath != "" {
		overrides.DigestPromptPath = &digestPromptPath
	}

	config, err := NewConfig(overrides)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return config
}

// parseTarget resolves the optional [category] [date] arguments. A single
// argument is taken as a date when it parses as one.
func parseTarget(args []string, defaultCategory string, today civil.Date) (string, civil.Date, error) {
	switch len(args) {
	case 0:
		return defaultCategory, today, nil
	case 1:
		if date, err := civil.ParseDate(args[0]); err == nil {
			return defaultCategory, date, nil
		}
		return args[0], today, nil
	case 2:
		date, err := civil.ParseDate(args[1])
		if err != nil {
			return "", civil.Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[1])
		}
		return args[0], date, nil
	default:
		return "", civil.Date{}, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
