// cycles.go

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

// Operand kinds for cycle estimation; these collapse the operand
// variants, with AX/AH/AL classed separately as the accumulator.
const (
	kindNone = iota
	kindAcc
	kindReg
	kindMem
	kindImm
)

type cycleKeyT struct {
	op     int
	first  int
	second int
}

type cycleInfoT struct {
	baseCount int
	useEA     bool
	eaIndex   int
}

type cycleEstimateT struct {
	base int
	ea   int
}

// Base cycle counts per Intel's 8086 timing chart, MOV and ADD only.
// Anything absent from this table cannot be estimated.
var cycleTable = map[cycleKeyT]cycleInfoT{
	{opMov, kindMem, kindAcc}: {baseCount: 10},
	{opMov, kindAcc, kindMem}: {baseCount: 10},

	{opMov, kindReg, kindReg}: {baseCount: 2},
	{opMov, kindAcc, kindAcc}: {baseCount: 2},
	{opMov, kindAcc, kindReg}: {baseCount: 2},
	{opMov, kindReg, kindAcc}: {baseCount: 2},

	{opMov, kindReg, kindMem}: {baseCount: 8, useEA: true, eaIndex: 1},
	{opMov, kindMem, kindReg}: {baseCount: 9, useEA: true, eaIndex: 0},

	{opMov, kindReg, kindImm}: {baseCount: 4},
	{opMov, kindAcc, kindImm}: {baseCount: 4},

	{opMov, kindMem, kindImm}: {baseCount: 10, useEA: true, eaIndex: 0},

	{opAdd, kindReg, kindReg}: {baseCount: 3},
	{opAdd, kindAcc, kindAcc}: {baseCount: 3},
	{opAdd, kindAcc, kindReg}: {baseCount: 3},
	{opAdd, kindReg, kindAcc}: {baseCount: 3},

	{opAdd, kindReg, kindMem}: {baseCount: 9, useEA: true, eaIndex: 1},
	{opAdd, kindAcc, kindMem}: {baseCount: 9, useEA: true, eaIndex: 1},

	{opAdd, kindMem, kindReg}: {baseCount: 16, useEA: true, eaIndex: 0},
	{opAdd, kindMem, kindAcc}: {baseCount: 16, useEA: true, eaIndex: 0},

	{opAdd, kindReg, kindImm}: {baseCount: 4},
	{opAdd, kindAcc, kindImm}: {baseCount: 4},

	{opAdd, kindMem, kindImm}: {baseCount: 17, useEA: true, eaIndex: 0},
}

type eaKeyT struct {
	bx, bp, si, di, disp bool
}

// effective-address cost by which of bx/bp/si/di/displacement take part
var eaTable = map[eaKeyT]int{
	// displacement only
	{disp: true}: 6,

	// base or index only
	{bx: true}: 5,
	{bp: true}: 5,
	{si: true}: 5,
	{di: true}: 5,

	// displacement + base or index
	{bx: true, disp: true}: 9,
	{bp: true, disp: true}: 9,
	{si: true, disp: true}: 9,
	{di: true, disp: true}: 9,

	// base + index
	{bx: true, si: true}: 7,
	{bx: true, di: true}: 8,
	{bp: true, si: true}: 8,
	{bp: true, di: true}: 7,

	// displacement + base + index
	{bx: true, si: true, disp: true}: 11,
	{bx: true, di: true, disp: true}: 12,
	{bp: true, si: true, disp: true}: 12,
	{bp: true, di: true, disp: true}: 11,
}

func operandKind(operand interface{}) int {
	switch op := operand.(type) {
	case effAddrT:
		return kindMem
	case directAddrT:
		return kindMem
	case regAccessT:
		if op.index == regAX {
			return kindAcc
		}
		return kindReg
	case immediateT:
		return kindImm
	}
	return kindNone
}

func effAddrCost(operand interface{}) (int, error) {
	switch op := operand.(type) {

	case effAddrT:
		var key eaKeyT
		for _, idx := range []int{op.term1.reg.index, termIndex(op.term2)} {
			switch idx {
			case regBX:
				key.bx = true
			case regBP:
				key.bp = true
			case regSI:
				key.si = true
			case regDI:
				key.di = true
			}
		}
		key.disp = op.disp != 0
		cost, found := eaTable[key]
		if !found {
			return 0, errUnsupportedCycleEst
		}
		return cost, nil

	case directAddrT:
		return eaTable[eaKeyT{disp: true}], nil
	}

	return 0, nil
}

func termIndex(term *effAddrTermT) int {
	if term == nil {
		return -1
	}
	return term.reg.index
}

// estimateCycles looks up the base cycle count for the instruction's
// (operation, operand-kind, operand-kind) triple plus the cost of any
// effective-address computation
func estimateCycles(iPtr *decodedInstrT) (cycleEstimateT, error) {
	key := cycleKeyT{
		op:     iPtr.op,
		first:  operandKind(iPtr.operands[0]),
		second: operandKind(iPtr.operands[1]),
	}

	info, found := cycleTable[key]
	if !found {
		return cycleEstimateT{}, errUnsupportedCycleEst
	}

	estimate := cycleEstimateT{base: info.baseCount}
	if info.useEA {
		ea, err := effAddrCost(iPtr.operands[info.eaIndex])
		if err != nil {
			return cycleEstimateT{}, err
		}
		estimate.ea = ea
	}
	return estimate, nil
}
