// memory.go

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
	"os"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/logging"
)

const (
	// MemSizeBytes is the size of the emulated RAM: the full 1MiB an
	// 8086 can address with its 20 address lines
	MemSizeBytes = 1048576

	// addresses are 20-bit, arithmetic is done in 32 bits and masked
	addrMask = MemSizeBytes - 1

	dumpPerms = 0644
)

type memoryT struct {
	ram [MemSizeBytes]dg.ByteT
}

func memInit(debugLogging bool) *memoryT {
	var memory memoryT
	if debugLogging {
		logging.DebugPrint(logging.DebugLog, "INFO: Initialised %d bytes of main memory\n", MemSizeBytes)
	}
	return &memory
}

func memReadByte(memory *memoryT, addr dg.PhysAddrT) dg.ByteT {
	return memory.ram[addr&addrMask]
}

func memWriteByte(memory *memoryT, addr dg.PhysAddrT, b dg.ByteT) {
	memory.ram[addr&addrMask] = b
}

// multi-byte values are stored little-endian: low byte at addr, high at addr+1
func memReadWord(memory *memoryT, addr dg.PhysAddrT) dg.WordT {
	var wd dg.WordT
	wd = dg.WordT(memory.ram[addr&addrMask])
	wd |= dg.WordT(memory.ram[(addr+1)&addrMask]) << 8
	return wd
}

// memWriteWord - ALL word-sized memory-writing should go through this function
func memWriteWord(memory *memoryT, addr dg.PhysAddrT, datum dg.WordT) {
	memory.ram[addr&addrMask] = dg.ByteT(datum)
	memory.ram[(addr+1)&addrMask] = dg.ByteT(datum >> 8)
}

// memDumpToFile writes the entire RAM image to the named file, byte i of
// the file being the byte at physical address i
func memDumpToFile(memory *memoryT, filename string) error {
	dumpFile, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, dumpPerms)
	if err != nil {
		return err
	}
	defer dumpFile.Close()
	buf := make([]byte, MemSizeBytes)
	for i := range memory.ram {
		buf[i] = byte(memory.ram[i])
	}
	if _, err = dumpFile.Write(buf); err != nil {
		return err
	}
	return nil
}
