package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/cognicore/wordstat/internal/logger"
	"github.com/cognicore/wordstat/pkg/wordstat/config"
	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
	"github.com/cognicore/wordstat/pkg/wordstat/report"
	"github.com/cognicore/wordstat/pkg/wordstat/source"
	"github.com/cognicore/wordstat/pkg/wordstat/stats"
)

const configKey = "config"

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "wordstat",
		Usage:     "word frequency, rank and collocation statistics",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,

		// --text values are free text and may contain commas.
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.StringFlag{Name: "file", Usage: "plain text file to analyse"},
			&cli.StringFlag{Name: "jsonl", Usage: "JSONL corpus, one {\"text\": ...} document per line"},
			&cli.BoolFlag{Name: "titles", Usage: "include JSONL titles in the text"},
			&cli.StringFlag{Name: "html", Usage: "HTML page to analyse"},
			&cli.StringFlag{Name: "sqlite", Usage: "SQLite corpus database"},
			&cli.StringFlag{Name: "query", Usage: "query returning one text column", Value: source.DefaultQuery},
			&cli.StringSliceFlag{Name: "text", Usage: "in-memory text (repeatable)"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			logger.SetupWriter(c.App.ErrWriter, cfg.Logging.Level, cfg.Logging.Format)
			c.App.Metadata = map[string]interface{}{configKey: cfg}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "print how often a word occurs",
				ArgsUsage: "WORD",
				Action:    countAction,
			},
			{
				Name:      "rank",
				Usage:     "print the competition rank of a word (0 if absent)",
				ArgsUsage: "WORD",
				Action:    rankAction,
			},
			{
				Name:      "top",
				Usage:     "print the K most frequent words",
				ArgsUsage: "K",
				Action:    topAction,
			},
			{
				Name:      "bottom",
				Usage:     "print the K least frequent words",
				ArgsUsage: "K",
				Action:    bottomAction,
			},
			{
				Name:      "collocations",
				Usage:     "print the K most frequent words around the first BASEWORD",
				ArgsUsage: "K BASEWORD",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "follow", Usage: "use words after the base word instead of before"},
				},
				Action: collocationsAction,
			},
			{
				Name:      "report",
				Usage:     "print a JSON report",
				ArgsUsage: "[WORD...]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "top", Usage: "most common words to list (default from config)", Value: -1},
					&cli.IntFlag{Name: "bottom", Usage: "least common words to list (default from config)", Value: -1},
					&cli.StringFlag{Name: "base", Usage: "base word for collocations"},
					&cli.IntFlag{Name: "k", Usage: "collocations per side", Value: 5},
				},
				Action: reportAction,
			},
		},
	}
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loadStat builds the engine from whichever source flag is set, or stdin.
func loadStat(c *cli.Context) (*stats.Stat, string, error) {
	cfg := appConfig(c)
	opts, err := cfg.StatOptions()
	if err != nil {
		return nil, "", err
	}

	var loader source.Loader
	var name string
	set := 0
	if p := c.String("file"); p != "" {
		set++
		name = p
	}
	if p := c.String("jsonl"); p != "" {
		set++
		loader, name = source.JSONL{Path: p, IncludeTitle: c.Bool("titles")}, p
	}
	if p := c.String("html"); p != "" {
		set++
		loader, name = source.HTML{Path: p}, p
	}
	if p := c.String("sqlite"); p != "" {
		set++
		loader, name = source.SQLite{Path: p, Query: c.String("query")}, p
	}
	if texts := c.StringSlice("text"); len(texts) > 0 {
		set++
		loader, name = source.Strings(texts), "text"
	}

	switch {
	case set > 1:
		return nil, "", fmt.Errorf("use only one of --file, --jsonl, --html, --sqlite, --text: %w", internalerr.ErrInvalidInput)
	case set == 0:
		s, err := stats.FromReader(c.App.Reader, opts...)
		return s, "stdin", err
	case loader == nil:
		s, err := stats.FromFile(name, opts...)
		return s, name, err
	}

	texts, err := loader.Load(c.Context)
	if err != nil {
		return nil, "", err
	}
	logger.WithComponent("cli").Debug("loaded source", "source", name, "texts", len(texts))
	s, err := stats.FromStrings(texts, opts...)
	return s, name, err
}

func argInt(c *cli.Context, i int, name string) (int, error) {
	raw := c.Args().Get(i)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", name, raw, internalerr.ErrInvalidInput)
	}
	return n, nil
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s expects %d argument(s): %s: %w", c.Command.Name, n, c.Command.ArgsUsage, internalerr.ErrInvalidInput)
	}
	return nil
}

func countAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	s, _, err := loadStat(c)
	if err != nil {
		return err
	}
	n, err := s.WordCount(c.Args().First())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, n)
	return err
}

func rankAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	s, _, err := loadStat(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, s.WordRank(c.Args().First()))
	return err
}

func topAction(c *cli.Context) error {
	return listAction(c, (*stats.Stat).MostCommonWords)
}

func bottomAction(c *cli.Context) error {
	return listAction(c, (*stats.Stat).LeastCommonWords)
}

func listAction(c *cli.Context, query func(*stats.Stat, int) ([]string, error)) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	k, err := argInt(c, 0, "K")
	if err != nil {
		return err
	}
	s, _, err := loadStat(c)
	if err != nil {
		return err
	}
	words, err := query(s, k)
	if err != nil {
		return err
	}
	return printWords(c.App.Writer, words)
}

func collocationsAction(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	k, err := argInt(c, 0, "K")
	if err != nil {
		return err
	}
	s, _, err := loadStat(c)
	if err != nil {
		return err
	}
	words, err := s.MostCommonCollocations(k, c.Args().Get(1), !c.Bool("follow"))
	if err != nil {
		return err
	}
	return printWords(c.App.Writer, words)
}

func reportAction(c *cli.Context) error {
	cfg := appConfig(c)
	s, name, err := loadStat(c)
	if err != nil && !errors.Is(err, internalerr.ErrSourceUnavailable) {
		return err
	}
	if err != nil {
		// An unreadable file still yields an (empty) report.
		logger.WithComponent("cli").Warn("source unavailable", "source", name, "error", err)
	}
	if s == nil {
		return err
	}

	req := report.Request{
		Source:       name,
		TopK:         cfg.Report.TopK,
		BottomK:      cfg.Report.BottomK,
		Words:        c.Args().Slice(),
		BaseWord:     c.String("base"),
		CollocationK: c.Int("k"),
	}
	if v := c.Int("top"); v >= 0 {
		req.TopK = v
	}
	if v := c.Int("bottom"); v >= 0 {
		req.BottomK = v
	}

	rep, err := report.New().Build(s, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func printWords(w io.Writer, words []string) error {
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}
