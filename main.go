package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/trmquang93/medium-writer-sub001/config"
	"github.com/trmquang93/medium-writer-sub001/generator"
	"github.com/trmquang93/medium-writer-sub001/gist"
	"github.com/trmquang93/medium-writer-sub001/medium"
	"github.com/trmquang93/medium-writer-sub001/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	mdPath := flag.String("md", "", "path to markdown file to export")
	formatName := flag.String("format", "optimized", "export format (optimized|sections|rich-html)")
	gists := flag.Bool("gists", false, "publish code blocks as GitHub gists")
	outDir := flag.String("out", ".", "output directory for exported files")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	mock := flag.Bool("mock", false, "serve with the mock LLM (no config needed)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	if *serve {
		runServe(*configPath, *addr, *mock)
		return
	}

	if *mdPath == "" {
		fmt.Fprintln(os.Stderr, "--md is required (or use --serve)")
		os.Exit(1)
	}
	runExport(*configPath, *mdPath, *formatName, *outDir, *gists)
}

func runServe(configPath, addr string, mock bool) {
	var cfg config.Config
	var llm generator.LLMClient
	if mock {
		llm = &generator.MockLLM{}
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
		settings, err := cfg.LLMSettings()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		llm, err = generator.NewLLMClient(settings)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	agent, err := generator.NewAgent(llm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	exporter := medium.NewExporter(
		medium.WithPublisherFactory(gistFactory()),
		medium.WithLogger(log.Default(), verbose),
	)
	srv, err := server.New(agent, exporter, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if addr != "" {
		listen = addr
	}
	if listen == "" {
		listen = ":8080"
	}
	log.Printf("Starting web server on %s", listen)
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runExport(configPath, mdPath, formatName, outDir string, gists bool) {
	format, ok := medium.ParseFormat(formatName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format %q (optimized|sections|rich-html)\n", formatName)
		os.Exit(1)
	}
	raw, err := os.ReadFile(mdPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The config is optional here; without it the export simply runs
	// without a gist token.
	var token string
	if cfg, err := config.Load(configPath); err == nil {
		token = cfg.GitHubToken()
	} else if gists {
		log.Printf("[cli] config not loaded: %v; exporting without a gist token", err)
	}

	exporter := medium.NewExporter(
		medium.WithPublisherFactory(gistFactory()),
		medium.WithLogger(log.Default(), verbose),
	)
	log.Printf("[cli] exporting md=%s format=%s gists=%t", mdPath, format, gists)
	result := exporter.Export(context.Background(), string(raw), format, medium.ExportOptions{
		GistToken:   token,
		CreateGists: gists,
	})
	for _, warn := range result.Validation.Warnings {
		log.Printf("[cli] warning: %s", warn)
	}
	if !result.Success {
		fmt.Fprintln(os.Stderr, result.Error)
		os.Exit(1)
	}

	ext := ".html"
	if format == medium.FormatSections {
		ext = ".md"
	}
	outPath := filepath.Join(outDir, result.Filename+ext)
	if err := os.WriteFile(outPath, []byte(result.Content), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Printf("[cli] export done file=%s artifacts=%d", outPath, len(result.Artifacts))
	fmt.Println(outPath)
}

func gistFactory() medium.PublisherFactory {
	return func(token string) (medium.ArtifactPublisher, error) {
		return gist.NewClient(token, gist.WithLogger(log.Default(), verbose))
	}
}
