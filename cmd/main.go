// Command voynich parses an IVTFF transcription, resolves its ambiguous
// tokens per Currier group and writes the results, substitution mappings
// and word statistics to the output directory.
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment; flags override both.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"voynich/internal/app"
	"voynich/internal/config"
	"voynich/internal/logger"
)

func main() {
	corpusPath := flag.String("corpus", "", "transcription file (overrides corpus.path)")
	outDir := flag.String("out", "", "output directory (overrides output.dir)")
	format := flag.String("format", "", "artifact format: json or msgpack")
	groups := flag.String("groups", "", "comma-separated groups: a, b, all")
	ranges := flag.Bool("ranges", false, "use static folio ranges instead of $L labels")
	noRedis := flag.Bool("no-redis", false, "do not push mappings to Redis")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *groups != "" {
		cfg.Corpus.Groups = strings.Split(*groups, ",")
	}
	if *ranges {
		cfg.Corpus.Ranges = true
	}
	if *noRedis {
		cfg.Redis.Addr = ""
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flags", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log, closer := logger.New(cfg.Log)
	if err := run(cfg, log); err != nil {
		log.Error("batch failed", slog.String("error", err.Error()))
		closer.Close()
		os.Exit(1)
	}
	closer.Close()
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := app.OpenStore(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer closeStore()

	rep, err := app.RunBatch(ctx, cfg, log, st)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
