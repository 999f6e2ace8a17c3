// Command render composes the victim and killer images of one kill event
// JSON file, without running the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/youruser/killfeedapp/internal/config"
	imagepkg "github.com/youruser/killfeedapp/internal/image"
	"github.com/youruser/killfeedapp/internal/killboard"
	"github.com/youruser/killfeedapp/internal/logging"
	"github.com/youruser/killfeedapp/internal/util"
)

func main() {
	eventPath := flag.String("event", "", "kill event JSON file (required)")
	outDir := flag.String("out", "out", "output directory")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if *eventPath == "" {
		fmt.Fprintln(os.Stderr, "usage: render -event kill.json [-out dir] [-config file]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Logging)

	ev, err := killboard.LoadEvent(*eventPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load event")
	}
	format, err := imagepkg.ParseFormat(cfg.Render.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("render format")
	}

	fetcher := imagepkg.NewHTTPFetcher(cfg.Render.FetchTimeout, cfg.Render.RatePerSec)
	composer := imagepkg.NewComposer(fetcher, imagepkg.NewResources(fetcher, cfg.Render.IconSheetURL), imagepkg.Options{
		ItemBaseURL:          cfg.Render.ItemBaseURL,
		MaxConcurrentFetches: cfg.Render.MaxConcurrentFetches,
		MinFame:              cfg.Kill.MinFame,
		Format:               format,
		Logger:               log,
	})

	ctx := context.Background()
	for _, side := range []killboard.Side{killboard.Victim, killboard.Killer} {
		b, err := composer.Compose(ctx, side, ev)
		if err != nil {
			log.Fatal().Err(err).Str("side", string(side)).Msg("compose")
		}
		name := strconv.FormatInt(ev.EventID, 10) + "-" + strings.ToLower(string(side)) + "." + string(format)
		path, err := util.WriteFile(*outDir, name, b)
		if err != nil {
			log.Fatal().Err(err).Msg("write image")
		}
		log.Info().Str("path", path).Int("bytes", len(b)).Msg("wrote kill image")
	}
}
