// Pelican is a UCI chess engine. Run with no arguments for the UCI loop,
// or `pelican bench` for the deterministic fixed-depth self-check.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/op/go-logging"

	"github.com/pelicanchess/pelican/internal/config"
	"github.com/pelicanchess/pelican/internal/engine"
	"github.com/pelicanchess/pelican/internal/nnue"
	"github.com/pelicanchess/pelican/internal/storage"
	"github.com/pelicanchess/pelican/internal/uci"
)

var log = logging.MustGetLogger("pelican")

var configPath = flag.String("config", config.DefaultPath, "path to the configuration file")

func main() {
	flag.Parse()
	setupLogging()

	options := engine.DefaultOptions()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warningf("%v", err)
		cfg = &config.File{}
	}
	if err := cfg.Apply(&options); err != nil {
		log.Warningf("%v", err)
	}

	loadNetwork(cfg)

	if flag.Arg(0) == "bench" {
		runBench()
		return
	}

	// persisted options from earlier runs sit between the config file and
	// setoption in precedence; a locked or broken store just disables
	// persistence
	store, err := storage.Open()
	if err != nil {
		log.Warningf("option store disabled: %v", err)
		store = nil
	} else {
		defer store.Close()
		applyStoredOptions(store, &options)
	}

	driver := uci.NewDriver(options, store)
	driver.Run(uci.StdinReader(os.Stdin))
}

// setupLogging routes diagnostics to stderr so the protocol stream on
// stdout stays clean.
func setupLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter("%{module}: %{level:.4s} %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
}

func loadNetwork(cfg *config.File) {
	path := cfg.Net
	if env := os.Getenv("PELICAN_NET"); env != "" {
		path = env
	}
	if path == "" {
		return
	}
	if err := nnue.LoadFile(path); err != nil {
		log.Warningf("network not loaded: %v", err)
	}
}

func applyStoredOptions(store *storage.Store, options *engine.SearchOptions) {
	stored, err := store.LoadOptions()
	if err != nil {
		log.Warningf("failed to load stored options: %v", err)
		return
	}
	for name, value := range stored {
		if err := options.Set(name, strconv.Itoa(value)); err != nil {
			log.Warningf("stored option ignored: %v", err)
		}
	}
}

func runBench() {
	result := engine.RunBench()
	fmt.Printf("%d Nodes %d NPS\n", result.Nodes, result.Nps)

	// best effort: a bench history makes regressions visible across runs
	if store, err := storage.Open(); err == nil {
		defer store.Close()
		_ = store.RecordBench(storage.BenchRecord{
			Nodes:   result.Nodes,
			Nps:     result.Nps,
			Version: uci.Version,
			RunAt:   time.Now(),
		})
	}
}
