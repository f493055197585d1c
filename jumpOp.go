// jumpOp.go

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

// jumpDisp extracts the signed byte displacement of a jump instruction
func jumpDisp(iPtr *decodedInstrT) (int16, error) {
	imm, ok := iPtr.operands[0].(immediateT)
	if !ok || imm.flags&immFlagRelJump == 0 {
		return 0, errUnsupportedOperand
	}
	return int16(imm.value), nil
}

// jumpPC executes the conditional jumps and the short unconditional JMP.
// The pre-instruction flags decide taken/not-taken; a taken branch adds
// the displacement to the already-advanced IP.
func jumpPC(iPtr *decodedInstrT, step *simulationStepT) error {
	disp, err := jumpDisp(iPtr)
	if err != nil {
		return err
	}

	fl := step.oldFlags
	zf := fl&flagZero != 0
	sf := fl&flagSign != 0
	of := fl&flagOverflow != 0
	cf := fl&flagCarry != 0
	pf := fl&flagParity != 0

	var taken bool
	switch iPtr.op {
	case opJe:
		taken = zf
	case opJne:
		taken = !zf
	case opJl:
		taken = sf != of
	case opJnl:
		taken = sf == of
	case opJle:
		taken = (sf != of) || zf
	case opJg:
		taken = !((sf != of) || zf)
	case opJb:
		taken = cf
	case opJnb:
		taken = !cf
	case opJbe:
		taken = cf || zf
	case opJa:
		taken = !(cf || zf)
	case opJp:
		taken = pf
	case opJnp:
		taken = !pf
	case opJo:
		taken = of
	case opJno:
		taken = !of
	case opJs:
		taken = sf
	case opJns:
		taken = !sf
	case opJmp:
		taken = true
	default:
		return errUnsupportedOperand
	}

	if taken {
		step.newIP += dg.WordT(disp)
	}
	return nil
}

// loopPC executes the LOOP family and JCXZ.  LOOP/LOOPZ/LOOPNZ decrement
// CX before testing; JCXZ only tests.  The step reports CX as the
// destination so the driver may print its change.
func loopPC(cpuPtr *CPUT, iPtr *decodedInstrT, step *simulationStepT) error {
	disp, err := jumpDisp(iPtr)
	if err != nil {
		return err
	}

	cx := cpuPtr.regs[regCX]
	oldCx := cx
	if iPtr.op != opJcxz {
		cx--
		cpuPtr.regs[regCX] = cx
	}

	zf := step.oldFlags&flagZero != 0

	var taken bool
	switch iPtr.op {
	case opLoop:
		taken = cx != 0
	case opLoopz:
		taken = cx != 0 && zf
	case opLoopnz:
		taken = cx != 0 && !zf
	case opJcxz:
		taken = cx == 0
	}

	step.destination = regAccessT{index: regCX, offset: 0, count: 2}
	step.oldValue = oldCx
	step.newValue = cx

	if taken {
		step.newIP += dg.WordT(disp)
	}
	return nil
}
