// cpu.go

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
	"fmt"

	"github.com/SMerrony/dgemug/dg"
)

// Register file indices.  Byte access of a general register is
// (index, offset, count=1) with offset 0 selecting the low half;
// word access is (index, 0, 2).
const (
	regAX = iota
	regBX
	regCX
	regDX
	regSP
	regBP
	regSI
	regDI
	regCS
	regDS
	regSS
	regES
	regIP
	regFLAGS
	regCount
)

// CPUT holds the current state of a CPU
type CPUT struct {
	regs [regCount]dg.WordT

	// emulator internals
	instrCount uint64 // how many instructions executed during the current run
}

// name of each register slot: whole word, high half, low half
var regNames = [regCount][3]string{
	{"ax", "ah", "al"},
	{"bx", "bh", "bl"},
	{"cx", "ch", "cl"},
	{"dx", "dh", "dl"},
	{"sp", "sp", "sp"},
	{"bp", "bp", "bp"},
	{"si", "si", "si"},
	{"di", "di", "di"},
	{"cs", "cs", "cs"},
	{"ds", "ds", "ds"},
	{"ss", "ss", "ss"},
	{"es", "es", "es"},
	{"ip", "ip", "ip"},
	{"flags", "flags", "flags"},
}

// wire-level register encodings...

// word (w=1) registers in encoding order ax,cx,dx,bx,sp,bp,si,di
var wordRegIndices = [8]int{regAX, regCX, regDX, regBX, regSP, regBP, regSI, regDI}

// byte (w=0) registers in encoding order al,cl,dl,bl,ah,ch,dh,bh
var byteRegAccesses = [8]regAccessT{
	{regAX, 0, 1}, {regCX, 0, 1}, {regDX, 0, 1}, {regBX, 0, 1},
	{regAX, 1, 1}, {regCX, 1, 1}, {regDX, 1, 1}, {regBX, 1, 1},
}

// segment registers from the 2-bit sr field: es,cs,ss,ds
var srRegIndices = [4]int{regES, regCS, regSS, regDS}

func cpuInit() *CPUT {
	var cpu CPUT
	return &cpu
}

func regName(ra regAccessT) string {
	if ra.count == 2 {
		return regNames[ra.index][0]
	}
	if ra.offset == 1 {
		return regNames[ra.index][1]
	}
	return regNames[ra.index][2]
}

// regFromWire maps a 3-bit wire register encoding to a register access
func regFromWire(wire dg.ByteT, w bool) regAccessT {
	if w {
		return regAccessT{index: wordRegIndices[wire], offset: 0, count: 2}
	}
	return byteRegAccesses[wire]
}

// cpuPrintableRegisters reports every non-zero register, FLAGS as its
// flag-character string
func cpuPrintableRegisters(cpuPtr *CPUT) string {
	var res string
	for r := 0; r < regCount; r++ {
		val := cpuPtr.regs[r]
		if val == 0 {
			continue
		}
		if r == regFLAGS {
			res += fmt.Sprintf("%8s: %s\n", regNames[r][0], flagsString(val))
		} else {
			res += fmt.Sprintf("%8s: %#06x (%d)\n", regNames[r][0], val, val)
		}
	}
	return res
}
