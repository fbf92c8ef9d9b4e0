package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-langneg"
)

var moduleBuilder = langneg.New

type matchOutput struct {
	Locale    string `json:"locale"`
	Requested string `json:"requested,omitempty"`
	Tier      string `json:"tier"`
}

type output struct {
	Strategy  string        `json:"strategy"`
	Default   string        `json:"default,omitempty"`
	Supported []string      `json:"supported"`
	Matches   []matchOutput `json:"matches,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("langneg: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := langneg.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("langneg", flag.ContinueOnError)
	requested := fs.String("requested", "", "Comma separated requested locales, most preferred first")
	available := fs.String("available", strings.Join(cfg.Locales, ","), "Comma separated available locales")
	defaultLocale := fs.String("default", cfg.DefaultLocale, "Default locale appended to the result (empty for none)")
	strategy := fs.String("strategy", cfg.Strategy, "Negotiation strategy: filtering, matching or lookup")
	maximizer := fs.String("maximizer", strings.Join(cfg.Maximizer.Providers, ","), "Comma separated likely-subtags providers: cldr, static")
	format := fs.String("format", "text", "Output format: text or json")
	explain := fs.Bool("explain", false, "Report the requested tag and tier behind each result")
	verbose := fs.Bool("verbose", false, "Log negotiation steps to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format %q", *format)
	}

	// -available and -default travel on the command and skip config validation.
	cfg.Strategy = *strategy
	cfg.Maximizer.Providers = splitList(*maximizer)
	if *verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "trace"
	}

	var result langneg.NegotiateResult
	module, err := moduleBuilder(cfg, langneg.WithResultSink(
		func(_ context.Context, _ langneg.NegotiateCommand, r langneg.NegotiateResult) {
			result = r
		},
	))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	msg := langneg.NegotiateCommand{
		Requested: splitList(*requested),
		Available: splitList(*available),
		Default:   *defaultLocale,
		Strategy:  cfg.Strategy,
	}
	if err := module.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute negotiate command: %w", err)
	}

	out := output{
		Strategy:  result.Strategy,
		Default:   result.Default,
		Supported: result.Supported,
	}
	if *explain {
		parsed, err := langneg.ParseStrategy(result.Strategy)
		if err != nil {
			return err
		}
		for _, match := range module.Explain(msg.Requested, msg.Available, msg.Default, parsed) {
			out.Matches = append(out.Matches, matchOutput{
				Locale:    match.Locale,
				Requested: match.Requested,
				Tier:      match.Tier.String(),
			})
		}
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	if *explain {
		for _, match := range out.Matches {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", match.Locale, match.Requested, match.Tier)
		}
		return nil
	}
	for _, locale := range out.Supported {
		fmt.Fprintln(stdout, locale)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
