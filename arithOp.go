// arithOp.go

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
	"github.com/SMerrony/dgemug/util"
)

// arithOp executes ADD, SUB and CMP.  CMP computes flags like SUB but
// never writes the destination.
//
// When the destination is a high-byte register the source operand is
// positioned into the high byte and the arithmetic done on the full
// 16-bit register, so the recomputed flags reflect the positioned
// operand; the write-back still only replaces the destination byte.
func arithOp(cpuPtr *CPUT, memory *memoryT, iPtr *decodedInstrT, step *simulationStepT) error {
	value, err := getOperandValue(cpuPtr, memory, iPtr, iPtr.operands[1])
	if err != nil {
		return err
	}
	b := int32(int16(value))
	borrow := iPtr.op == opSub || iPtr.op == opCmp

	switch dest := iPtr.operands[0].(type) {

	case regAccessT:
		oldVal := cpuPtr.regs[dest.index]
		a := int32(int16(oldVal))
		byteOp := dest.count == 1
		if byteOp && dest.offset == 1 {
			b <<= 8
		}

		var result int32
		if borrow {
			result = a - b
		} else {
			result = a + b
		}
		step.newFlags = arithFlags(result, a, b, byteOp, borrow, step.oldFlags)

		newVal := oldVal
		if iPtr.op != opCmp {
			resWord := util.DwordGetLowerWord(dg.DwordT(result))
			switch {
			case dest.count == 2:
				newVal = resWord
			case dest.offset == 0:
				newVal = (oldVal & 0xff00) | (resWord & 0x00ff)
			default:
				newVal = (oldVal & 0x00ff) | (resWord & 0xff00)
			}
			cpuPtr.regs[dest.index] = newVal
		}
		step.destination = dest
		step.oldValue = oldVal
		step.newValue = newVal

	case directAddrT, effAddrT:
		var addr dg.PhysAddrT
		if da, ok := dest.(directAddrT); ok {
			addr = dg.PhysAddrT(da.address)
		} else {
			addr = resolveEffAddr(cpuPtr, dest.(effAddrT))
		}
		var oldVal dg.WordT
		if iPtr.wide() {
			oldVal = memReadWord(memory, addr)
		} else {
			oldVal = dg.WordT(memReadByte(memory, addr))
		}
		a := int32(int16(oldVal))

		var result int32
		if borrow {
			result = a - b
		} else {
			result = a + b
		}
		step.newFlags = arithFlags(result, a, b, !iPtr.wide(), borrow, step.oldFlags)

		if iPtr.op != opCmp {
			writeMem(memory, addr, util.DwordGetLowerWord(dg.DwordT(result)), iPtr.wide())
		}

	default:
		return errUnsupportedOperand
	}

	return nil
}
