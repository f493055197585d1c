// decoder_test.go
package main

import (
	"errors"
	"testing"

	"github.com/SMerrony/dgemug/dg"
)

func testDecode(bytes ...dg.ByteT) (*decodedInstrT, error) {
	instructionsInit()
	decoderGenAllPossOpcodes()
	rdr := &byteReaderT{data: bytes}
	return instructionDecode(rdr)
}

func TestDecodeDisassembly(t *testing.T) {
	ttable := []struct {
		bytes []dg.ByteT
		asm   string
		size  int
	}{
		{[]dg.ByteT{0x89, 0xd9}, "mov cx, bx", 2},
		{[]dg.ByteT{0xb1, 0x0c}, "mov cl, 12", 2},
		{[]dg.ByteT{0xb9, 0x0c, 0x00}, "mov cx, 12", 3},
		{[]dg.ByteT{0xb9, 0xf4, 0xff}, "mov cx, -12", 3},
		{[]dg.ByteT{0x8b, 0x5e, 0x00}, "mov bx, [bp]", 3},
		{[]dg.ByteT{0x8a, 0x80, 0x87, 0x13}, "mov al, [bx + si + 4999]", 4},
		{[]dg.ByteT{0x8b, 0x41, 0xdb}, "mov ax, [bx + di - 37]", 3},
		{[]dg.ByteT{0x89, 0x0c}, "mov [si], cx", 2},
		{[]dg.ByteT{0xc6, 0x06, 0xe8, 0x03, 0x07}, "mov byte [1000], 7", 5},
		{[]dg.ByteT{0xc7, 0x44, 0x04, 0x27, 0x01}, "mov word [si + 4], 295", 5},
		{[]dg.ByteT{0xa1, 0xe8, 0x03}, "mov ax, [1000]", 3},
		{[]dg.ByteT{0xa0, 0x10}, "mov al, [16]", 2},
		{[]dg.ByteT{0xa3, 0xe8, 0x03}, "mov [1000], ax", 3},
		{[]dg.ByteT{0x8e, 0xd8}, "mov ds, ax", 2},
		{[]dg.ByteT{0x8c, 0xc0}, "mov ax, es", 2},
		{[]dg.ByteT{0x83, 0xc3, 0x05}, "add bx, 5", 3},
		{[]dg.ByteT{0x83, 0xee, 0x05}, "sub si, 5", 3},
		{[]dg.ByteT{0x83, 0xf8, 0x05}, "cmp ax, 5", 3},
		{[]dg.ByteT{0x81, 0xc3, 0xe8, 0x03}, "add bx, 1000", 4},
		{[]dg.ByteT{0x03, 0x18}, "add bx, [bx + si]", 2},
		{[]dg.ByteT{0x01, 0xd8}, "add ax, bx", 2},
		{[]dg.ByteT{0x05, 0xe8, 0x03}, "add ax, 1000", 3},
		{[]dg.ByteT{0x2c, 0x09}, "sub al, 9", 2},
		{[]dg.ByteT{0x3d, 0xe8, 0x03}, "cmp ax, 1000", 3},
		{[]dg.ByteT{0x39, 0xd8}, "cmp ax, bx", 2},
		{[]dg.ByteT{0x80, 0x3f, 0x22}, "cmp byte [bx], 34", 3},
		{[]dg.ByteT{0x75, 0xfe}, "jne $+0", 2},
		{[]dg.ByteT{0x75, 0x02}, "jne $+4", 2},
		{[]dg.ByteT{0x74, 0xfc}, "je $-2", 2},
		{[]dg.ByteT{0xe2, 0xfe}, "loop $+0", 2},
		{[]dg.ByteT{0xe1, 0xfe}, "loopz $+0", 2},
		{[]dg.ByteT{0xe0, 0xfe}, "loopnz $+0", 2},
		{[]dg.ByteT{0xe3, 0xfe}, "jcxz $+0", 2},
		{[]dg.ByteT{0xeb, 0xfe}, "jmp $+0", 2},
		{[]dg.ByteT{0x90}, "nop", 1},
	}
	for _, tt := range ttable {
		iPtr, err := testDecode(tt.bytes...)
		if err != nil {
			t.Errorf("Failed to decode %v: %v", tt.bytes, err)
			continue
		}
		if iPtr.disassembly != tt.asm {
			t.Errorf("Expected <%s>, got <%s>", tt.asm, iPtr.disassembly)
		}
		if iPtr.size != tt.size {
			t.Errorf("%s: expected size %d, got %d", tt.asm, tt.size, iPtr.size)
		}
	}
}

func TestDecodeConsumesExactlySize(t *testing.T) {
	instructionsInit()
	decoderGenAllPossOpcodes()
	// two instructions back to back
	rdr := &byteReaderT{data: []dg.ByteT{0xb9, 0x0c, 0x00, 0x89, 0xd9}}
	iPtr, err := instructionDecode(rdr)
	if err != nil {
		t.Fatal(err)
	}
	if rdr.pos != iPtr.size {
		t.Errorf("Expected cursor at %d, got %d", iPtr.size, rdr.pos)
	}
	if iPtr.size < 1 || iPtr.size > 6 {
		t.Errorf("Instruction size %d out of range", iPtr.size)
	}
	second, err := instructionDecode(rdr)
	if err != nil {
		t.Fatal(err)
	}
	if second.addr != dg.DwordT(iPtr.size) {
		t.Errorf("Expected second instruction at %d, got %d", iPtr.size, second.addr)
	}
	if rdr.pos != len(rdr.data) {
		t.Errorf("Expected cursor at end (%d), got %d", len(rdr.data), rdr.pos)
	}
}

func TestDecodeOperandOrdering(t *testing.T) {
	// d clear: reg field is the source
	iPtr, err := testDecode(0x89, 0xd9) // mov cx, bx
	if err != nil {
		t.Fatal(err)
	}
	dst, ok := iPtr.operands[0].(regAccessT)
	if !ok || dst.index != regCX {
		t.Errorf("Expected destination cx, got %v", iPtr.operands[0])
	}
	src, ok := iPtr.operands[1].(regAccessT)
	if !ok || src.index != regBX {
		t.Errorf("Expected source bx, got %v", iPtr.operands[1])
	}

	// d set: reg field is the destination
	iPtr, err = testDecode(0x8b, 0x0b) // mov cx, [bp + di]
	if err != nil {
		t.Fatal(err)
	}
	if dst, ok = iPtr.operands[0].(regAccessT); !ok || dst.index != regCX {
		t.Errorf("Expected destination cx, got %v", iPtr.operands[0])
	}
	if _, ok = iPtr.operands[1].(effAddrT); !ok {
		t.Errorf("Expected effective-address source, got %v", iPtr.operands[1])
	}
}

func TestDecodeErrors(t *testing.T) {
	ttable := []struct {
		bytes []dg.ByteT
		want  error
	}{
		{[]dg.ByteT{}, errEndOfStream},
		{[]dg.ByteT{0xb9, 0x0c}, errEndOfStream},
		{[]dg.ByteT{0x8b}, errEndOfStream},
		{[]dg.ByteT{0x0f}, errUnrecognizedOpcode},
		{[]dg.ByteT{0xf4}, errUnrecognizedOpcode},
		{[]dg.ByteT{0x80, 0xdb, 0x05}, errUnrecognizedOpcode}, // 100000sw with reg=011
	}
	for _, tt := range ttable {
		_, err := testDecode(tt.bytes...)
		if !errors.Is(err, tt.want) {
			t.Errorf("bytes %v: expected %v, got %v", tt.bytes, tt.want, err)
		}
	}
}

func TestDecodeJumpOperandFlag(t *testing.T) {
	iPtr, err := testDecode(0x75, 0xfe)
	if err != nil {
		t.Fatal(err)
	}
	imm, ok := iPtr.operands[0].(immediateT)
	if !ok {
		t.Fatalf("Expected immediate operand, got %v", iPtr.operands[0])
	}
	if imm.flags&immFlagRelJump == 0 {
		t.Error("Expected relative-jump flag to be set")
	}
	if imm.value != -2 {
		t.Errorf("Expected stored displacement -2, got %d", imm.value)
	}
	if iPtr.operands[1] != nil {
		t.Error("Expected absent second operand")
	}
}
