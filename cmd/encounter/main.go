package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/encounter"
	"github.com/fwojciec/encounter/fs"
	"github.com/fwojciec/encounter/goldmark"
	"github.com/fwojciec/encounter/goquery"
	"github.com/fwojciec/encounter/htmltomarkdown"
	enchttp "github.com/fwojciec/encounter/http"
	"github.com/fwojciec/encounter/load"
	"github.com/fwojciec/encounter/search"
	encslog "github.com/fwojciec/encounter/slog"
	"github.com/fwojciec/encounter/source"
	"github.com/fwojciec/encounter/sqlite"
	"github.com/fwojciec/encounter/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the document cache.
	DB *sqlite.DB

	// Fetcher overrides the fetcher built from --source. Used by end-to-end
	// tests.
	Fetcher encounter.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("encounter"),
		kong.Description("Browse and search the artifacts of cultural traditions."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'encounter --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = encslog.NewLogger(stderr, cli.Verbose)

	registry, err := yaml.LoadRegistryFile(cli.Registry)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set ENCOUNTER_REGISTRY or pass --registry to point at a registry file")
		return fmt.Errorf("failed to load registry: %w", err)
	}
	deps.Registry = registry

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = newFetcher(cli)
	}
	defer fetcher.Close()

	m.DB = sqlite.NewDB(sqlite.MemoryPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open document cache: %w", err)
	}
	defer m.Close()

	deps.Renderer = goquery.NewRenderer(goldmark.NewRenderer())
	deps.Converter = htmltomarkdown.NewConverter()

	deps.Source = &source.Source{
		Fetcher: encslog.NewLoggingFetcher(fetcher, deps.Logger),
		Parser: &encounter.Parser{
			Renderer:    deps.Renderer,
			Diagnostics: encslog.NewDiagnostics(deps.Logger),
			Strict:      cli.Strict,
		},
		Cache:  encslog.NewLoggingCache(sqlite.NewDocumentCache(m.DB), deps.Logger),
		Logger: deps.Logger,
	}
	deps.Index = encslog.NewLoggingIndex(search.NewIndex(registry), deps.Logger)
	deps.Loader = &load.Loader{
		Registry:    registry,
		Source:      deps.Source,
		Index:       deps.Index,
		Concurrency: cli.Concurrency,
	}

	return kongCtx.Run(deps)
}

// newFetcher returns an HTTP fetcher for URL sources and a filesystem
// fetcher for everything else.
func newFetcher(cli *CLI) encounter.Fetcher {
	if strings.HasPrefix(cli.Source, "http://") || strings.HasPrefix(cli.Source, "https://") {
		return enchttp.NewFetcher(cli.Source,
			enchttp.WithTimeout(cli.Timeout),
			enchttp.WithRateLimit(cli.Rate),
		)
	}
	return fs.NewFetcher(cli.Source)
}
