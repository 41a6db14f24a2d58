// Package main provides the entry point for spsim.
// spsim is a cycle-accurate simulator for the SP pipeline: a 16-bit-PC
// scalar processor with a six-stage in-order datapath and an
// asynchronous block-copy DMA engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/archlab/spsim/loader"
	"github.com/archlab/spsim/pipeline"
	"github.com/archlab/spsim/runconfig"
	"github.com/archlab/spsim/sram"
	"github.com/archlab/spsim/trace"
)

var (
	configPath = flag.String("config", "", "Path to a run configuration JSON file")
	maxCycles  = flag.Uint64("max-cycles", 0, "Override the configured cycle bound (0 keeps the config/default)")
	noTrace    = flag.Bool("no-trace", false, "Disable cycle trace and SRAM dump output")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: spsim [options] <program.hex>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := runconfig.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = runconfig.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading run config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Program = flag.Arg(0)
	if *maxCycles > 0 {
		cfg.MaxCycles = *maxCycles
	}
	if *noTrace {
		cfg.CycleTracePath = ""
		cfg.SramiDumpPath = ""
		cfg.SramdDumpPath = ""
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid run config: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg))
}

func run(cfg *runconfig.Config) int {
	var loadOpts []loader.LoadOption
	if cfg.InstTracePath != "" {
		f, err := os.Create(cfg.InstTracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening instruction trace file: %v\n", err)
			return 1
		}
		defer f.Close()
		loadOpts = append(loadOpts, loader.WithTraceWriter(f))
	}

	img, err := loader.Load(cfg.Program, loadOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	srami := sram.NewPort()
	sramd := sram.NewPort()
	img.InjectInto(srami, sramd)

	if *verbose {
		fmt.Printf("Loaded: %s (%d words)\n", cfg.Program, len(img.Words))
	}

	var cycleTrace *trace.CycleWriter
	if cfg.CycleTracePath != "" {
		f, err := os.Create(cfg.CycleTracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening cycle trace file: %v\n", err)
			return 1
		}
		defer f.Close()
		cycleTrace = trace.NewCycleWriter(f)
	}

	p := pipeline.New(srami, sramd)
	for uint64(p.Stats.Cycles) < cfg.MaxCycles && !p.Halted() {
		p.Tick()
		if cycleTrace != nil {
			if err := cycleTrace.Write(p.Current(), p.Registers()); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing cycle trace: %v\n", err)
				return 1
			}
		}
		if *verbose {
			trace.WriteVerboseEcho(os.Stdout, p.Stats.Cycles, p.Current(), p.Registers())
		}
	}

	if err := dumpSRAM(cfg.SramiDumpPath, srami); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing instruction memory dump: %v\n", err)
		return 1
	}
	if err := dumpSRAM(cfg.SramdDumpPath, sramd); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing data memory dump: %v\n", err)
		return 1
	}

	fmt.Printf("\n")
	fmt.Printf("Program: %s\n", cfg.Program)
	fmt.Printf("Halted: %t\n", p.Halted())
	fmt.Printf("Cycles: %d\n", p.Stats.Cycles)
	fmt.Printf("Instructions retired: %d\n", p.Stats.Retired)
	fmt.Printf("Mispredicts: %d\n", p.Stats.Mispredicts)

	if *verbose {
		if p.Stats.Retired > 0 {
			cpi := float64(p.Stats.Cycles) / float64(p.Stats.Retired)
			fmt.Printf("CPI: %.2f\n", cpi)
		}
		fmt.Printf("Stalls: %d\n", p.Stats.Stalls)
		fmt.Printf("Flushes: %d\n", p.Stats.Flushes)
	}

	if !p.Halted() {
		fmt.Fprintf(os.Stderr, "did not halt within %d cycles\n", cfg.MaxCycles)
		return 1
	}
	return 0
}

func dumpSRAM(path string, port *sram.Port) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return trace.DumpSRAM(f, port)
}
