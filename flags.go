// flags.go

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
	"math/bits"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/util"
)

// FLAGS word bit assignments.  Bits outside flagsMask are forced to zero
// on every write.
const (
	flagCarry     dg.WordT = 1 << 0
	flagParity    dg.WordT = 1 << 2
	flagAuxCarry  dg.WordT = 1 << 4
	flagZero      dg.WordT = 1 << 6
	flagSign      dg.WordT = 1 << 7
	flagTrap      dg.WordT = 1 << 8
	flagInterrupt dg.WordT = 1 << 9
	flagDirection dg.WordT = 1 << 10
	flagOverflow  dg.WordT = 1 << 11

	flagsMask = flagCarry | flagParity | flagAuxCarry | flagZero | flagSign |
		flagTrap | flagInterrupt | flagDirection | flagOverflow

	// never written by the supported operations
	flagsPreserved = flagTrap | flagInterrupt | flagDirection
)

const (
	maxPosS16 = 1<<15 - 1
	minNegS16 = -(maxPosS16 + 1)
	maxPosS8  = 1<<7 - 1
	minNegS8  = -(maxPosS8 + 1)
)

var flagChars = []struct {
	bit dg.WordT
	ch  byte
}{
	{flagCarry, 'C'},
	{flagParity, 'P'},
	{flagAuxCarry, 'A'},
	{flagZero, 'Z'},
	{flagSign, 'S'},
	{flagTrap, 'T'},
	{flagInterrupt, 'I'},
	{flagDirection, 'D'},
	{flagOverflow, 'O'},
}

// flagsString renders a flags word as the concatenation of the characters
// for each set flag, in C,P,A,Z,S,T,I,D,O order
func flagsString(fl dg.WordT) string {
	var str []byte
	for _, fc := range flagChars {
		if fl&fc.bit != 0 {
			str = append(str, fc.ch)
		}
	}
	return string(str)
}

// arithFlags recomputes the six arithmetic flags after an ADD, SUB or CMP.
// a and b are the aligned signed operands, r the 32-bit result; byteOp
// selects the byte-width bounds for the overflow and carry tests.
// TF, IF and DF are carried over from oldFlags.
func arithFlags(r, a, b int32, byteOp, borrow bool, oldFlags dg.WordT) dg.WordT {
	newFlags := oldFlags & flagsPreserved

	if r == 0 {
		newFlags |= flagZero
	}
	if util.TestWbit(dg.WordT(r&0xffff), 0) { // DG numbering: bit 0 is the MSB
		newFlags |= flagSign
	}
	if bits.OnesCount8(uint8(r&0xff))&1 == 0 {
		newFlags |= flagParity
	}

	maxVal, minVal := int32(maxPosS16), int32(minNegS16)
	maxUns := int32(0xffff)
	if byteOp {
		maxVal, minVal = maxPosS8, minNegS8
		maxUns = 0xff
	}
	if r > maxVal || r < minVal {
		newFlags |= flagOverflow
	}

	var ru, nibble int32
	if borrow {
		ru = (a & 0xffff) - (b & 0xffff)
		nibble = (a & 0xf) - (b & 0xf)
	} else {
		ru = (a & 0xffff) + (b & 0xffff)
		nibble = (a & 0xf) + (b & 0xf)
	}
	if ru < 0 || ru > maxUns {
		newFlags |= flagCarry
	}
	if nibble < 0 || nibble > 0xf {
		newFlags |= flagAuxCarry
	}

	return newFlags & flagsMask
}
