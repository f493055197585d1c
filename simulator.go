// simulator.go

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

// simulationStepT reports the effect of one executed instruction for
// diffing and printing.  A zero destination with oldValue == newValue
// means no register transition is reported.
type simulationStepT struct {
	destination regAccessT
	oldValue    dg.WordT
	newValue    dg.WordT
	oldFlags    dg.WordT
	newFlags    dg.WordT
	oldIP       dg.WordT
	newIP       dg.WordT
}

// Execute a single decoded instruction against the passed register file
// and memory.  All state changes go through cpuPtr and memory; on error
// nothing has been mutated.
func cpuExecute(cpuPtr *CPUT, memory *memoryT, iPtr *decodedInstrT) (simulationStepT, error) {
	var step simulationStepT
	step.oldFlags = cpuPtr.regs[regFLAGS]
	step.newFlags = step.oldFlags
	step.oldIP = cpuPtr.regs[regIP]
	step.newIP = step.oldIP + dg.WordT(iPtr.size)

	var err error
	switch iPtr.instrType {
	case XFER_OP:
		err = movOp(cpuPtr, memory, iPtr, &step)
	case ARITH_OP:
		err = arithOp(cpuPtr, memory, iPtr, &step)
	case COND_PC:
		err = jumpPC(iPtr, &step)
	case LOOP_PC:
		err = loopPC(cpuPtr, iPtr, &step)
	case NO_OP:
		// no state change beyond the IP advance
	default:
		err = errUnsupportedOperand
	}
	if err != nil {
		return step, err
	}

	cpuPtr.regs[regFLAGS] = step.newFlags & flagsMask
	cpuPtr.regs[regIP] = step.newIP
	cpuPtr.instrCount++
	return step, nil
}

// getOperandValue fetches the 16-bit value of a source operand.  Memory
// fetches honour the instruction's wide flag.
func getOperandValue(cpuPtr *CPUT, memory *memoryT, iPtr *decodedInstrT, operand interface{}) (dg.WordT, error) {
	switch op := operand.(type) {

	case regAccessT:
		wd := cpuPtr.regs[op.index]
		if op.count == 1 {
			if op.offset == 0 {
				return wd & 0x00ff, nil
			}
			return wd >> 8, nil
		}
		return wd, nil

	case directAddrT:
		if iPtr.wide() {
			return memReadWord(memory, dg.PhysAddrT(op.address)), nil
		}
		return dg.WordT(memReadByte(memory, dg.PhysAddrT(op.address))), nil

	case effAddrT:
		addr := resolveEffAddr(cpuPtr, op)
		if iPtr.wide() {
			return memReadWord(memory, addr), nil
		}
		return dg.WordT(memReadByte(memory, addr)), nil

	case immediateT:
		return dg.WordT(op.value), nil
	}

	return 0, errUnsupportedOperand
}
