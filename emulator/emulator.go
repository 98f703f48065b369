// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tersim/asm"
	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/tryte"
)

const (
	STACK_DEFAULT      = tryte.Tryte(364) // _ZZ: Initial stack pointer.
	STEP_LIMIT_DEFAULT = 100000           // Default ticks before Run gives up.
)

var _emulator_defines = map[string]string{
	"STACK":      fmt.Sprintf("%d", STACK_DEFAULT.Int()),
	"STEP_LIMIT": fmt.Sprintf("%d", STEP_LIMIT_DEFAULT),
}

// Segment is raw tribble text loaded at a base address on reset.
type Segment struct {
	Base tryte.Tryte
	Text string
}

// Emulator state. Machine + program listing + reset image.
type Emulator struct {
	Verbose          bool         // If set, enables verbose logging.
	*machine.Machine              // Reference to the machine simulation.
	Program          *asm.Program // Reference to the currently running program listing.

	Entry     tryte.Tryte          // Program counter after reset.
	Stack     tryte.Tryte          // Stack pointer after reset.
	Halt      tryte.Tryte          // Program counter that completes execution.
	Limit     int                  // Maximum ticks for Run; unlimited if not positive.
	Segments  []Segment            // Raw segments loaded after the program.
	Registers map[byte]tryte.Tryte // Register presets, by symbol.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine:   machine.NewMachine(),
		Program:   &asm.Program{},
		Entry:     asm.ORIGIN_DEFAULT,
		Stack:     STACK_DEFAULT,
		Halt:      asm.ORIGIN_DEFAULT,
		Limit:     STEP_LIMIT_DEFAULT,
		Registers: map[byte]tryte.Tryte{},
	}

	emu.Machine.Hardware = &traceHardware{emu: emu}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return maps.All(_emulator_defines)
}

// SetProgram sets the program listing, and its entry and halt addresses.
func (emu *Emulator) SetProgram(prog *asm.Program) {
	emu.Program = prog
	emu.Entry = prog.Origin()
	emu.Halt = prog.End()
}

// Reset clears the machine, installs the program and segments, then sets
// the registers. Register presets override Entry and Stack.
func (emu *Emulator) Reset() (err error) {
	emu.Machine.Reset()

	emu.Program.Install(emu.Machine)

	for _, seg := range emu.Segments {
		_, err = emu.Machine.Load(seg.Base, seg.Text)
		if err != nil {
			return
		}
	}

	emu.Machine.SetPC(emu.Entry)
	emu.Machine.SetSP(emu.Stack)

	for symbol, value := range emu.Registers {
		var reg tryte.Tryte
		reg, err = machine.Register(symbol)
		if err != nil {
			return
		}
		emu.Machine.Write(reg, value)
	}

	if emu.Verbose {
		log.Printf("reset: entry %v stack %v halt %v", emu.Entry, emu.Stack, emu.Halt)
	}

	return
}

// LineNo returns the current line number for the executing word.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Machine.PC())
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	pc := emu.Machine.PC()
	if pc == emu.Halt {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: pc, Err: err}
		}
	}()

	if emu.Verbose {
		word := emu.Machine.Read(pc)
		ins, ierr := machine.Decode(word)
		if ierr != nil {
			log.Printf("%v: %v (line %d) %v", pc, word, lineno, ierr)
		} else {
			log.Printf("%v: %v (line %d) %v", pc, word, lineno, ins)
		}
	}

	err = emu.Machine.Step()

	return
}

// Run ticks until the halt address is reached or the limit is exceeded.
func (emu *Emulator) Run() (err error) {
	for ticks := 0; emu.Limit <= 0 || ticks < emu.Limit; ticks++ {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if done {
			if emu.Verbose {
				depth := emu.Machine.Stack(machine.REG_SP).Depth(emu.Stack)
				log.Printf("halt: %v stack depth %d", emu.Machine.PC(), depth)
			}
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Address: emu.Machine.PC(), Err: ErrStepLimit}

	return
}

// traceHardware logs hardware opcodes when the emulator is verbose.
type traceHardware struct {
	emu *Emulator
}

func (hw *traceHardware) Interact(m *machine.Machine, high, low byte) (err error) {
	if hw.emu.Verbose {
		log.Printf("hw: %c %c", high, low)
	}
	return
}
