// memory_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemReadWriteByte(t *testing.T) {
	memory := memInit(false)
	memWriteByte(memory, 0, 0x12)
	if memReadByte(memory, 0) != 0x12 {
		t.Error("Expected 0x12 at address 0")
	}
	memWriteByte(memory, MemSizeBytes-1, 0x34)
	if memReadByte(memory, MemSizeBytes-1) != 0x34 {
		t.Error("Expected 0x34 at top of memory")
	}
}

func TestMemWordLittleEndian(t *testing.T) {
	memory := memInit(false)
	memWriteWord(memory, 1000, 0x1234)
	if memReadByte(memory, 1000) != 0x34 {
		t.Errorf("Expected low byte first, got %#x", memReadByte(memory, 1000))
	}
	if memReadByte(memory, 1001) != 0x12 {
		t.Errorf("Expected high byte second, got %#x", memReadByte(memory, 1001))
	}
	if memReadWord(memory, 1000) != 0x1234 {
		t.Errorf("Expected 0x1234, got %#x", memReadWord(memory, 1000))
	}
}

func TestMemAddressMasking(t *testing.T) {
	memory := memInit(false)
	// addresses are 20-bit; higher bits are masked off
	memWriteByte(memory, MemSizeBytes+5, 0x77)
	if memReadByte(memory, 5) != 0x77 {
		t.Error("Expected address to wrap at 1MiB")
	}
	// a word write at the top of memory wraps its high byte
	memWriteWord(memory, MemSizeBytes-1, 0xbbaa)
	if memReadByte(memory, MemSizeBytes-1) != 0xaa || memReadByte(memory, 0) != 0xbb {
		t.Error("Expected word write to wrap at 1MiB")
	}
}

func TestMemDumpToFile(t *testing.T) {
	memory := memInit(false)
	memWriteByte(memory, 42, 0x99)
	dumpPath := filepath.Join(t.TempDir(), "dump.data")
	if err := memDumpToFile(memory, dumpPath); err != nil {
		t.Fatal(err)
	}
	dump, err := os.ReadFile(dumpPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(dump) != MemSizeBytes {
		t.Errorf("Expected %d bytes, got %d", MemSizeBytes, len(dump))
	}
	if dump[42] != 0x99 {
		t.Errorf("Expected byte at offset 42 to be the byte at address 42, got %#x", dump[42])
	}
}
