//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

const usage = `Usage: voyage-optimizer [flags] <crew.json> [roster.json]

Positional arguments:
  crew.json     Crew catalog with per-skill rolls
  roster.json   Player roster (omit with -best or -serve)

Flags:
`

func main() {
	primaryFlag := flag.String("primary", "cmd", "Primary voyage skill: cmd|dip|sec|eng|sci|med")
	secondaryFlag := flag.String("secondary", "dip", "Secondary voyage skill: cmd|dip|sec|eng|sci|med")
	start := flag.Float64("start", 0, "Initial antimatter level (0 = VOYAGE_DEFAULT_START)")
	best := flag.Bool("best", false, "Use every catalog crew member instead of the player roster")
	sweep := flag.Bool("sweep", false, "Optimize every primary/secondary pair and rank them")
	serve := flag.Bool("serve", false, "Serve the optimize API over HTTP on VOYAGE_LISTEN_ADDR")
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Print detailed search progress to stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || (len(args) < 2 && !*best && !*serve) {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := LoadConfig()
	if err != nil {
		fatalf("config: %v", err)
	}
	log, err := newLogger(*verbose)
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer log.Sync()

	var rosterPath string
	if len(args) >= 2 {
		rosterPath = args[1]
	}
	input, err := LoadRawData(args[0], rosterPath)
	if err != nil {
		fatalf("%v", err)
	}
	log.Info("loaded", zap.Int("catalog", len(input.Catalog.Crew)), zap.Bool("roster", input.Roster != nil))

	oracle := NewHazardEstimator(cfg.OracleMaxHours)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		if err := newService(input.Catalog, oracle, cfg, log).serve(ctx, cfg.ListenAddr); err != nil {
			fatalf("serve: %v", err)
		}
		return
	}

	startAM := *start
	if startAM == 0 {
		startAM = cfg.DefaultStart
	}

	if *sweep {
		runSweep(ctx, input.Source(*best), startAM, oracle, cfg, log, *jsonOut)
		return
	}

	primary, ok := parseSkill(*primaryFlag)
	if !ok {
		fatalf("invalid primary skill %q", *primaryFlag)
	}
	secondary, ok := parseSkill(*secondaryFlag)
	if !ok {
		fatalf("invalid secondary skill %q", *secondaryFlag)
	}

	r, err := OptimizeFrom(input.Source(*best), primary, secondary, startAM, oracle, cfg, log)
	if err != nil {
		fatalf("%v", err)
	}
	if *jsonOut {
		writeJSON(newOptimizeResponse(r, false))
		return
	}
	fmt.Print(FormatResult(r))
}

func runSweep(ctx context.Context, src RosterSource, startAM float64, oracle DurationOracle,
	cfg Config, log *zap.Logger, jsonOut bool) {
	roster, err := src.ListCrew()
	if err != nil {
		fatalf("list crew: %v", err)
	}
	results, err := Sweep(ctx, roster, startAM, oracle, cfg, log)
	if err != nil {
		fatalf("%v", err)
	}
	if jsonOut {
		out := make([]optimizeResponse, len(results))
		for i, r := range results {
			out[i] = newOptimizeResponse(r, false)
		}
		writeJSON(out)
		return
	}
	fmt.Print(FormatSweep(results))
	fmt.Println()
	fmt.Print(FormatResult(results[0]))
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("encode: %v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", a...)
	os.Exit(1)
}
