// Command magiclens is a thin host over the Magic Analyzer core: it wires
// the demo operation registry, the signature catalogue, and the engine
// together and prints a text report for one or more files.
//
// It is not the product: it exists to exercise the core end to end the way
// the teacher's own cmd/gofile once drove its magic-byte detector from the
// command line, with the same -b/-i/-m/-d/-l flag spirit re-expressed as
// urfave/cli flags.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/shirou/magiclens"
	"github.com/shirou/magiclens/engine"
	"github.com/shirou/magiclens/internal/demoops"
	"github.com/shirou/magiclens/registry"
	"github.com/shirou/magiclens/report"
	"github.com/shirou/magiclens/signature"
)

func main() {
	app := &cli.App{
		Name:  "magiclens",
		Usage: "search decode/transform pipelines over a file for human-readable content",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "maximum recipe length to search",
				Value:   engine.DefaultDepth,
			},
			&cli.BoolFlag{
				Name:    "intensive",
				Aliases: []string{"i"},
				Usage:   "relax pruning and explore operations with no firing pattern hint",
			},
			&cli.StringFlag{
				Name:    "match",
				Aliases: []string{"m"},
				Usage:   "regex a candidate buffer must match to be treated as a crib hit",
			},
			&cli.BoolFlag{
				Name:  "extensive-languages",
				Usage: "enable the wider codepage set in the encoding detector",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"b"},
				Usage:   "log engine activity to stderr",
			},
			&cli.IntFlag{
				Name:  "max-nodes",
				Usage: "hard cap on node expansions",
				Value: engine.DefaultMaxNodes,
			},
			&cli.StringFlag{
				Name:  "catalogue-overlay",
				Usage: "path to a YAML file adding extra file-type signatures",
			},
			&cli.StringFlag{
				Name:  "tuning",
				Usage: "path to a YAML file overriding rank weights/thresholds",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "list the operations the demo registry exposes, then exit",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "magiclens:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	catalogue, err := signature.New()
	if err != nil {
		return fmt.Errorf("build catalogue: %w", err)
	}
	if overlayPath := c.String("catalogue-overlay"); overlayPath != "" {
		overlay, err := signature.LoadOverlay(overlayPath)
		if err != nil {
			return err
		}
		if len(overlay.FileSignatures) > 0 {
			catalogue, err = catalogue.WithFileSignatures(overlay.FileSignatures)
			if err != nil {
				return fmt.Errorf("apply catalogue overlay: %w", err)
			}
		}
	}

	reg, err := demoops.New(catalogue)
	if err != nil {
		return fmt.Errorf("build operation registry: %w", err)
	}

	var engineOpts []engine.Option
	if c.Bool("verbose") {
		engineOpts = append(engineOpts, engine.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	if tuningPath := c.String("tuning"); tuningPath != "" {
		overlay, err := engine.LoadTuningOverlay(tuningPath)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, overlay.Options()...)
	}

	analyzer, err := magiclens.New(reg, magiclens.WithCatalogue(catalogue), magiclens.WithEngineOptions(engineOpts...))
	if err != nil {
		return fmt.Errorf("build analyzer: %w", err)
	}

	if c.Bool("list") {
		return listOperations(reg)
	}

	if c.NArg() < 1 {
		return cli.ShowAppHelp(c)
	}

	cfg := engine.Config{
		Depth:                    c.Int("depth"),
		Intensive:                c.Bool("intensive"),
		ExtensiveLanguageSupport: c.Bool("extensive-languages"),
		CribRegex:                c.String("match"),
		MaxNodes:                 c.Int("max-nodes"),
		KeepTopK:                 engine.DefaultKeepTopK,
	}

	for _, path := range c.Args().Slice() {
		if err := analyzeFile(c.Context, analyzer, path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "magiclens: %s: %v\n", path, err)
		}
	}
	return nil
}

func analyzeFile(ctx context.Context, analyzer *magiclens.Analyzer, path string, cfg engine.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rendered, err := analyzer.Analyze(ctx, data, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("== %s ==\n", path)
	fmt.Println(report.Text(rendered))
	return nil
}

func listOperations(reg *demoops.Registry) error {
	for _, t := range []registry.Type{registry.RawBytes, registry.Utf8String, registry.NumberString, registry.ByteList} {
		for _, d := range reg.ListByInputType(t) {
			fmt.Printf("%s (%s -> %s)\n", d.Name, d.InputType, d.OutputType)
		}
	}
	return nil
}
