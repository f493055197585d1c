// movOp.go

// Copyright (C) 2023  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"github.com/SMerrony/dgemug/dg"
)

// movOp executes every form of MOV, including the segment-register moves.
// Flags are never touched.
func movOp(cpuPtr *CPUT, memory *memoryT, iPtr *decodedInstrT, step *simulationStepT) error {
	value, err := getOperandValue(cpuPtr, memory, iPtr, iPtr.operands[1])
	if err != nil {
		return err
	}

	switch dest := iPtr.operands[0].(type) {

	case regAccessT:
		oldVal := cpuPtr.regs[dest.index]
		var newVal dg.WordT
		switch {
		case dest.count == 2:
			newVal = value
		case dest.offset == 0: // replace low byte, keep high
			newVal = (oldVal & 0xff00) | (value & 0x00ff)
		default: // replace high byte, keep low
			newVal = (oldVal & 0x00ff) | (value << 8)
		}
		cpuPtr.regs[dest.index] = newVal
		step.destination = dest
		step.oldValue = oldVal
		step.newValue = newVal

	case directAddrT:
		writeMem(memory, dg.PhysAddrT(dest.address), value, iPtr.wide())

	case effAddrT:
		writeMem(memory, resolveEffAddr(cpuPtr, dest), value, iPtr.wide())

	default:
		return errUnsupportedOperand
	}

	return nil
}

// writeMem honours the wide flag: a byte write touches one cell, a word
// write the cell and its successor, little-endian
func writeMem(memory *memoryT, addr dg.PhysAddrT, value dg.WordT, wide bool) {
	if wide {
		memWriteWord(memory, addr, value)
	} else {
		memWriteByte(memory, addr, dg.ByteT(value))
	}
}
