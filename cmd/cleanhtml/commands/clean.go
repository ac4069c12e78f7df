package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleanhtml/internal/logger"
	"github.com/jmylchreest/cleanhtml/internal/output"
	"github.com/jmylchreest/cleanhtml/internal/version"
	"github.com/jmylchreest/cleanhtml/pkg/autop"
	"github.com/jmylchreest/cleanhtml/pkg/cleaner"
	"github.com/jmylchreest/cleanhtml/pkg/cleanhtml"
	"github.com/jmylchreest/cleanhtml/pkg/fetcher"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file|url|-]",
	Short: "Clean HTML from a file, URL or stdin",
	Long: `Clean HTML and write the result to stdout or --output.

By default only headings, paragraphs, bold, lists, rules, pre and code
survive. Use --images, --italics, --links and --table to allow more, or
--strip to remove every tag. The same keys can be set in the "options"
section of the config file.

Examples:
  cleanhtml clean page.html
  cat paste.html | cleanhtml clean --links --italics
  cleanhtml clean https://example.com/post --extract --format markdown
  cleanhtml clean page.html --report report.yaml --report-format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Allowed tag groups
	flags.Bool("images", false, "keep <img> with src and alt")
	flags.Bool("italics", false, "keep <em> and <i>")
	flags.Bool("links", false, "keep <a> with href and target")
	flags.Bool("table", false, "keep <table>, <tr> and <td>")
	flags.Bool("strip", false, "remove every tag, overriding the other options")

	// Pipeline stages
	flags.Bool("extract", false, "extract the main article with readability before cleaning")
	flags.Bool("autop", false, "convert plain-text line breaks to paragraphs before cleaning")
	flags.Bool("quotes", false, "replace typographic quotes with ASCII quotes")
	flags.Bool("pretty", false, "indent the HTML output")
	flags.String("format", "html", "output format: html, markdown")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "print a cleaning summary to stderr")
	flags.String("report", "", "write a cleaning report to this file (- for stdout)")
	flags.String("report-format", "json", "report format: json, yaml")

	// Input settings
	flags.String("max-size", "10MB", "max input size (e.g., 512KB, 10MB, 0=unlimited)")
	flags.Duration("timeout", 30*time.Second, "request timeout for URL input")
	flags.String("user-agent", "", "User-Agent for URL input")

	for _, name := range []string{"extract", "autop", "quotes", "pretty", "format", "output", "stats", "report", "timeout"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	_ = viper.BindPFlag("report_format", flags.Lookup("report-format"))
	_ = viper.BindPFlag("max_size", flags.Lookup("max-size"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runClean(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadCleanConfig()
	if err != nil {
		return err
	}
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	logger.Debug("clean command starting", "options", opts.String(), "format", cfg.Format)

	src := sourceFromArgs(args)
	input, err := readInput(ctx, src, cfg.maxBytes, fetcher.StaticConfig{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return err
	}

	before := buildPreStages(cfg, src)
	markup, err := before.Clean(input)
	if err != nil {
		return err
	}

	result := cleanhtml.New(opts).CleanWithStats(markup)
	if result.Error != nil {
		return result.Error
	}
	for _, w := range result.Warnings {
		logger.Warn("cleaning warning", "warning", w.String())
	}

	after := buildPostStages(cfg, opts)
	out, err := after.Clean(result.Content)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg.Output, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if cfg.Stats {
		logInfo("%s: %s -> %s (%.1f%% smaller)", src.Name,
			humanize.Bytes(uint64(len(input))), humanize.Bytes(uint64(len(out))),
			result.Stats.ReductionPercent())
		logInfo("%s", result.Stats.String())
	}

	if cfg.Report != "" {
		if err := writeReport(cfg, src, opts, result); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	return nil
}

// buildPreStages returns the stages run on the raw input.
func buildPreStages(cfg *cleanConfig, src inputSource) *cleaner.ChainCleaner {
	var stages []cleaner.Cleaner
	if cfg.Extract {
		rc := &cleaner.ReadabilityConfig{}
		if src.IsURL {
			rc.BaseURL = src.Name
		}
		stages = append(stages, cleaner.NewReadability(rc))
	}
	if cfg.Autop {
		stages = append(stages, autop.New())
	}
	return cleaner.NewChain(stages...)
}

// buildPostStages returns the stages run on the cleaned markup.
func buildPostStages(cfg *cleanConfig, opts cleanhtml.Options) *cleaner.ChainCleaner {
	var stages []cleaner.Cleaner
	if cfg.Quotes {
		stages = append(stages, quoteCleaner{})
	}
	switch cfg.Format {
	case "markdown":
		if cfg.Pretty {
			logger.Warn("--pretty has no effect with markdown output")
		}
		stages = append(stages, cleaner.NewMarkdown(
			cleaner.WithStripLinks(!opts.Links),
			cleaner.WithStripImages(!opts.Images),
		))
	default:
		if cfg.Pretty {
			stages = append(stages, cleaner.NewPretty())
		}
	}
	return cleaner.NewChain(stages...)
}

func writeReport(cfg *cleanConfig, src inputSource, opts cleanhtml.Options, result *cleanhtml.Result) error {
	format, err := output.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return err
	}

	var dst io.Writer = os.Stdout
	if cfg.Report != "-" {
		file, err := os.Create(cfg.Report)
		if err != nil {
			return err
		}
		defer file.Close()
		dst = file
	}

	w, err := output.NewWriter(dst, format, output.WithPretty(true))
	if err != nil {
		return err
	}
	if err := w.Write(output.NewReport(src.Name, opts, result, version.String())); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Debug("report written", "path", cfg.Report, "format", format)
	return nil
}

// quoteCleaner adapts cleanhtml.ChangeQuotes to the cleaner.Cleaner interface.
type quoteCleaner struct{}

func (quoteCleaner) Clean(html string) (string, error) {
	return cleanhtml.ChangeQuotes(html), nil
}

func (quoteCleaner) Name() string {
	return "quotes"
}
