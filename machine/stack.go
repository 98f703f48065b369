package machine

import (
	"github.com/ezrec/tersim/tryte"
)

// Stack is a software stack in machine memory. The stack pointer is held
// in the register at Pointer, and addresses the next free slot; the stack
// grows towards higher addresses.
type Stack struct {
	Machine *Machine
	Pointer tryte.Tryte
}

// Stack returns the stack whose pointer is held at addr.
func (m *Machine) Stack(addr tryte.Tryte) Stack {
	return Stack{Machine: m, Pointer: addr}
}

func (s Stack) Push(value tryte.Tryte) {
	top := s.Machine.Read(s.Pointer)
	s.Machine.Write(top, value)
	s.Machine.Write(s.Pointer, top.Add(1))
}

func (s Stack) Pop() (value tryte.Tryte) {
	top := s.Machine.Read(s.Pointer).Sub(1)
	s.Machine.Write(s.Pointer, top)
	return s.Machine.Read(top)
}

// Depth returns the number of slots between base and the stack pointer.
func (s Stack) Depth(base tryte.Tryte) int {
	return s.Machine.Read(s.Pointer).Sub(base).Int()
}
