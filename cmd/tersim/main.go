// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/ezrec/tersim/asm"
	"github.com/ezrec/tersim/emulator"
	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/manifest"
	"github.com/ezrec/tersim/translate"
)

func main() {
	var compile string
	var image string
	var steps int
	var dump bool
	var rows string
	var listing bool
	var verbose bool
	var fuzz int
	var seed int64

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&image, "m", "", ".toml machine manifest to load")
	flag.IntVar(&steps, "n", 0, "Step limit (default from manifest, or 100000)")
	flag.BoolVar(&dump, "d", false, "Dump memory after execution")
	flag.StringVar(&rows, "r", "", fmt.Sprintf("Dump row range, as MIN:MAX (default all of %d:%d)", machine.DUMP_ROW_MIN, machine.DUMP_ROW_MAX))
	flag.BoolVar(&listing, "l", false, "Print the assembly listing")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&fuzz, "fuzz", 0, "Run this many random programs instead")
	flag.Int64Var(&seed, "seed", 5, "Random seed for -fuzz")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if verbose {
		log.Printf("language: %v", translate.Language())
	}

	var rowMin, rowMax int
	if len(rows) != 0 {
		_, err := fmt.Sscanf(rows, "%d:%d", &rowMin, &rowMax)
		if err != nil {
			log.Fatalf("-r %v: %v", rows, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(image) != 0 {
		m, err := manifest.Load(image)
		if err != nil {
			log.Fatal(err)
		}
		err = m.Apply(emu)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			assembler.Predefine(key, value)
		}
		prog, err := assembler.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.SetProgram(prog)
	}

	if steps > 0 {
		emu.Limit = steps
	}

	if fuzz > 0 {
		if steps <= 0 {
			steps = emulator.FUZZ_STEPS
		}
		report := emu.Fuzz(seed, fuzz, steps)
		fmt.Printf("programs: %d\n", report.Programs)
		fmt.Printf("steps: %d\n", report.Steps)
		fmt.Printf("completed: %d\n", report.Completed)
		fmt.Printf("unimplemented: %d\n", report.Unimplemented)
		fmt.Printf("failed: %d\n", report.Failed)
		for _, op := range slices.Sorted(maps.Keys(report.Opcodes)) {
			fmt.Printf("% 6s: %d\n", op, report.Opcodes[op])
		}
		return
	}

	if listing {
		err := emu.Program.Listing(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	fmt.Print(emu.Machine.String())
	if dump {
		var derr error
		if len(rows) == 0 {
			derr = emu.Machine.DumpAll(os.Stdout)
		} else {
			derr = emu.Machine.Dump(os.Stdout, rowMin, rowMax)
		}
		if derr != nil {
			log.Fatalf("-r %v: %v", rows, derr)
		}
	}
	if err != nil {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%d ticks", emu.Machine.Ticks)
	}
}
