// instructions.go

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

import "github.com/SMerrony/dgemug/dg"

// the characteristics of each opcode class
type instrChars struct {
	bits      dg.ByteT // bit-pattern of the identifying prefix
	prefix    int      // # of leading bits of the first byte forming the prefix
	instrFmt  int      // field layout following the first byte
	instrType int      // class of opcode (execution family)
	op        int      // operation performed
}

// InstructionSet contains the map of all recognised opcode classes.
type InstructionSet map[int]instrChars

var instructionSet = make(InstructionSet)

const numPosOpcodes = 256

var opCodeLookup [numPosOpcodes]int

// The 8086 mixes opcode prefixes of 4, 6, 7 and 8 bits; the longest
// matching prefix wins.  Rather than search the tables per byte we
// precompute the class for every possible first byte.
func decoderGenAllPossOpcodes() {
	for opcode := 0; opcode < numPosOpcodes; opcode++ {
		opCodeLookup[opcode] = instructionMatch(dg.ByteT(opcode))
	}
}

// instructionMatch looks for the most specific prefix match for the first
// byte of an instruction and returns the corresponding opcode class
func instructionMatch(opcode dg.ByteT) int {
	for prefix := 8; prefix >= 4; prefix-- {
		key := opcode >> (8 - prefix)
		for class, insChar := range instructionSet {
			if insChar.prefix == prefix && insChar.bits == key {
				return class
			}
		}
	}
	return opcNone
}

func instructionLookup(opcode dg.ByteT) int {
	return opCodeLookup[opcode]
}
