package emulator

import (
	"errors"
	"log"
	"math/rand"

	"github.com/ezrec/tersim/machine"
	"github.com/ezrec/tersim/tryte"
)

const (
	FUZZ_WORDS = 486 // Random trytes loaded per program.
	FUZZ_STEPS = 100 // Default steps per program.
)

// FuzzReport summarizes a fuzz run.
type FuzzReport struct {
	Programs      int                    // Programs run.
	Steps         int                    // Total instructions executed.
	Completed     int                    // Programs that ran every step.
	Unimplemented int                    // Programs stopped by an unimplemented opcode.
	Failed        int                    // Programs stopped by any other error.
	Opcodes       map[machine.Opcode]int // Executed instructions, by opcode.
}

// Fuzz runs randomly generated programs, each on its own machine. A program
// stops at its first error; the run continues with the next program.
func (emu *Emulator) Fuzz(seed int64, programs int, steps int) (report FuzzReport) {
	rands := rand.New(rand.NewSource(seed))

	report.Opcodes = map[machine.Opcode]int{}

	text := make([]byte, FUZZ_WORDS*tryte.TRIBBLES)
	for n := range programs {
		for i := range text {
			text[i] = tryte.DIGITS[rands.Intn(len(tryte.DIGITS))]
		}

		m := machine.NewMachine()
		m.Hardware = emu.Machine.Hardware
		_, err := m.Load(emu.Entry, string(text))
		if err != nil {
			// Generated text is always loadable.
			panic(err)
		}
		m.SetPC(emu.Entry)
		m.SetSP(emu.Stack)

		report.Programs++
		for range steps {
			var ins machine.Instruction
			ins, err = machine.Decode(m.Read(m.PC()))
			if err == nil {
				report.Opcodes[ins.Opcode]++
			}
			err = m.Step()
			if err != nil {
				break
			}
		}
		report.Steps += m.Ticks

		switch {
		case err == nil:
			report.Completed++
		case errors.Is(err, machine.ErrOpcode{}):
			report.Unimplemented++
		default:
			report.Failed++
		}

		if emu.Verbose {
			log.Printf("fuzz %d: %d steps, %v", n, m.Ticks, err)
		}
	}

	return
}
