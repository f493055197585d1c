// decoder.go

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
	"errors"
	"fmt"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/logging"
	"github.com/SMerrony/dgemug/util"
)

var (
	errEndOfStream         = errors.New("unexpected end of instruction stream")
	errUnrecognizedOpcode  = errors.New("unrecognised opcode")
	errUnsupportedOperand  = errors.New("unsupported operand for operation")
	errUnsupportedCycleEst = errors.New("unsupported instruction for cycle estimation")
)

// instruction flag bits
const (
	instrFlagLock  dg.WordT = 1 << 0
	instrFlagRep   dg.WordT = 1 << 1
	instrFlagSeg   dg.WordT = 1 << 2
	instrFlagWide  dg.WordT = 1 << 3
	instrFlagFar   dg.WordT = 1 << 4
	instrFlagRepNe dg.WordT = 1 << 5
)

// immediate operand flag bits
const (
	immFlagRelJump dg.WordT = 1 << 0
)

// Operand variants.  An operand slot holds one of these (or nil for an
// absent operand) and is dispatched on by type switch.
type regAccessT struct {
	index  int
	offset int // 0 = low byte, 1 = high byte
	count  int // 1 = byte half, 2 = full word
}

type directAddrT struct {
	address dg.DwordT // 20-bit
}

type effAddrTermT struct {
	reg   regAccessT
	scale int // always 0 on the 8086
}

type effAddrT struct {
	term1       effAddrTermT
	term2       *effAddrTermT
	disp        int16
	segOverride int // register index, -1 when none
}

type immediateT struct {
	value int32
	flags dg.WordT
}

// decodedInstrT defines the internal decode of an opcode: the raw wire
// fields plus the semantic operands and disassembly.
type decodedInstrT struct {
	addr        dg.DwordT
	size        int
	opcodeClass int
	op          int
	instrFmt    int
	instrType   int
	flags       dg.WordT
	mod         dg.ByteT
	reg         dg.ByteT
	rm          dg.ByteT
	sr          dg.ByteT
	dispLo      dg.ByteT
	dispHi      dg.ByteT
	dataLo      dg.ByteT
	dataHi      dg.ByteT
	d, w, s     bool
	operands    [2]interface{}
	segOverride int
	disassembly string
}

func (iPtr *decodedInstrT) wide() bool {
	return iPtr.flags&instrFlagWide != 0
}

// byteReaderT is a sequential cursor over a finite byte slice.  It is
// owned by the caller; a decode consumes exactly the instruction's bytes
// and leaves the cursor positioned after them.
type byteReaderT struct {
	data []dg.ByteT
	pos  int
}

func (rdr *byteReaderT) readByte() (dg.ByteT, error) {
	if rdr.pos >= len(rdr.data) {
		return 0, errEndOfStream
	}
	b := rdr.data[rdr.pos]
	rdr.pos++
	return b, nil
}

// effective-address terms from the 3-bit rm field (mod != 11); -1 marks
// a missing second term.  rm 110 is a direct address when mod = 00.
var effAddrRegs = [8]struct{ t1, t2 int }{
	{regBX, regSI},
	{regBX, regDI},
	{regBP, regSI},
	{regBP, regDI},
	{regSI, -1},
	{regDI, -1},
	{regBP, -1},
	{regBX, -1},
}

// instructionDecode decodes one instruction from the reader.
//
// N.B. For the moment this function both decodes and disassembles the given
// instruction, for performance in the future these two tasks should probably
// either be separated or controlled by a flag passed into the function.
func instructionDecode(rdr *byteReaderT) (*decodedInstrT, error) {
	start := rdr.pos

	b, err := rdr.readByte()
	if err != nil {
		return nil, err
	}

	class := instructionLookup(b)
	if class == opcNone {
		if debugLogging {
			logging.DebugPrint(logging.DebugLog, "INFO: instructionLookup found nothing for byte %s at location %d\n",
				util.WordToBinStr(dg.WordT(b)), start)
		}
		return nil, errUnrecognizedOpcode
	}

	chars := instructionSet[class]
	iPtr := &decodedInstrT{
		addr:        dg.DwordT(start),
		opcodeClass: class,
		op:          chars.op,
		instrFmt:    chars.instrFmt,
		instrType:   chars.instrType,
		segOverride: -1,
	}

	switch chars.instrFmt {

	case REG_RM_FMT: // eg. MOV/ADD/SUB/CMP r/m with register
		iPtr.w = b&1 != 0
		iPtr.d = (b>>1)&1 != 0
		if err = readModRegRM(rdr, iPtr); err != nil {
			return nil, err
		}
		if err = readDisplacement(rdr, iPtr); err != nil {
			return nil, err
		}

	case IMM_RM_FMT: // eg. MOV imm to r/m, and the 100000sw arithmetic group
		if class == opcArithImm {
			iPtr.s = (b>>1)&1 != 0
		}
		iPtr.w = b&1 != 0
		if err = readModRegRM(rdr, iPtr); err != nil {
			return nil, err
		}
		if class == opcArithImm {
			// ADD/SUB/CMP identity hides in the reg field
			switch iPtr.reg {
			case 0b000:
				iPtr.opcodeClass = opcAddImmToRegMem
				iPtr.op = opAdd
			case 0b101:
				iPtr.opcodeClass = opcSubImmFromRegMem
				iPtr.op = opSub
			case 0b111:
				iPtr.opcodeClass = opcCmpImmWithRegMem
				iPtr.op = opCmp
			default:
				return nil, errUnrecognizedOpcode
			}
		}
		if err = readDisplacement(rdr, iPtr); err != nil {
			return nil, err
		}
		if err = readData(rdr, iPtr, iPtr.w && !iPtr.s); err != nil {
			return nil, err
		}

	case IMM_REG_FMT: // 1011wreg
		iPtr.w = (b>>3)&1 != 0
		iPtr.reg = b & 0b111
		if err = readData(rdr, iPtr, iPtr.w); err != nil {
			return nil, err
		}

	case IMM_ACC_FMT: // eg. ADD/SUB/CMP imm to accumulator
		iPtr.w = b&1 != 0
		if err = readData(rdr, iPtr, iPtr.w); err != nil {
			return nil, err
		}

	case MEM_ACC_FMT: // MOV accumulator to/from a direct address
		iPtr.w = b&1 != 0
		if err = readData(rdr, iPtr, iPtr.w); err != nil {
			return nil, err
		}

	case SEG_RM_FMT: // MOV segment register to/from r/m
		iPtr.w = true
		if err = readModRegRM(rdr, iPtr); err != nil {
			return nil, err
		}
		iPtr.sr = iPtr.reg & 0b11
		if err = readDisplacement(rdr, iPtr); err != nil {
			return nil, err
		}

	case JUMP_DISP_FMT: // conditional jumps, LOOPs, JCXZ, short JMP
		if iPtr.dataLo, err = rdr.readByte(); err != nil {
			return nil, err
		}

	case NO_OPERAND_FMT:
		// nothing to do in this case
	}

	if iPtr.w {
		iPtr.flags |= instrFlagWide
	}
	iPtr.size = rdr.pos - start

	decodeOperands(iPtr)
	iPtr.disassembly = renderInstruction(iPtr)

	if debugLogging {
		logging.DebugPrint(logging.DebugLog, "instructionDecode: %s from byte %s at %d., %d byte(s)\n",
			iPtr.disassembly, util.WordToBinStr(dg.WordT(b)), start, iPtr.size)
	}

	return iPtr, nil
}

/* readers for the raw wire fields below here... */

func readModRegRM(rdr *byteReaderT, iPtr *decodedInstrT) error {
	b, err := rdr.readByte()
	if err != nil {
		return err
	}
	iPtr.rm = b & 0b111
	iPtr.reg = (b >> 3) & 0b111
	iPtr.mod = b >> 6
	return nil
}

func displacementBytes(mod, rm dg.ByteT) int {
	switch mod {
	case 0b00: // memory mode, no displacement unless direct address
		if rm == 0b110 {
			return 2
		}
		return 0
	case 0b01: // memory mode, 8-bit displacement
		return 1
	case 0b10: // memory mode, 16-bit displacement
		return 2
	default: // register mode, no displacement
		return 0
	}
}

func readDisplacement(rdr *byteReaderT, iPtr *decodedInstrT) error {
	var err error
	bytes := displacementBytes(iPtr.mod, iPtr.rm)
	if bytes > 0 {
		if iPtr.dispLo, err = rdr.readByte(); err != nil {
			return err
		}
	}
	if bytes > 1 {
		if iPtr.dispHi, err = rdr.readByte(); err != nil {
			return err
		}
	}
	return nil
}

func readData(rdr *byteReaderT, iPtr *decodedInstrT, wide bool) error {
	var err error
	if iPtr.dataLo, err = rdr.readByte(); err != nil {
		return err
	}
	if wide {
		if iPtr.dataHi, err = rdr.readByte(); err != nil {
			return err
		}
	}
	return nil
}

func dataWord(iPtr *decodedInstrT) dg.WordT {
	return dg.WordT(iPtr.dataLo) | dg.WordT(iPtr.dataHi)<<8
}

// dataValue returns the immediate, sign-extended to 16 bits when it was
// a single byte on the wire
func dataValue(iPtr *decodedInstrT) int32 {
	if iPtr.w && !iPtr.s {
		return int32(int16(dataWord(iPtr)))
	}
	return int32(int8(iPtr.dataLo))
}

func dispValue(iPtr *decodedInstrT) int16 {
	switch displacementBytes(iPtr.mod, iPtr.rm) {
	case 1:
		return int16(int8(iPtr.dispLo))
	case 2:
		return int16(dg.WordT(iPtr.dispLo) | dg.WordT(iPtr.dispHi)<<8)
	default:
		return 0
	}
}

/* structural decode: raw fields to semantic operands */

// rmOperand builds the register-or-memory operand selected by mod and rm
func rmOperand(iPtr *decodedInstrT) interface{} {
	if iPtr.mod == 0b11 { // register mode
		return regFromWire(iPtr.rm, iPtr.w)
	}
	if iPtr.mod == 0b00 && iPtr.rm == 0b110 { // direct address
		return directAddrT{address: dg.DwordT(dg.WordT(dispValue(iPtr)))}
	}
	ea := effAddrT{
		term1:       effAddrTermT{reg: regAccessT{index: effAddrRegs[iPtr.rm].t1, offset: 0, count: 2}},
		disp:        dispValue(iPtr),
		segOverride: iPtr.segOverride,
	}
	if t2 := effAddrRegs[iPtr.rm].t2; t2 != -1 {
		ea.term2 = &effAddrTermT{reg: regAccessT{index: t2, offset: 0, count: 2}}
	}
	return ea
}

func accOperand(iPtr *decodedInstrT) regAccessT {
	count := 1
	if iPtr.w {
		count = 2
	}
	return regAccessT{index: regAX, offset: 0, count: count}
}

// decodeOperands fills the two operand slots.  Operand 0 is always the
// destination: when the wire d bit is clear for the two-operand
// register-or-memory forms, the operands are swapped here so that
// invariant holds.
func decodeOperands(iPtr *decodedInstrT) {
	switch iPtr.instrFmt {

	case REG_RM_FMT:
		regOp := regFromWire(iPtr.reg, iPtr.w)
		rmOp := rmOperand(iPtr)
		if iPtr.d {
			iPtr.operands[0] = regOp
			iPtr.operands[1] = rmOp
		} else {
			iPtr.operands[0] = rmOp
			iPtr.operands[1] = regOp
		}

	case IMM_RM_FMT:
		iPtr.operands[0] = rmOperand(iPtr)
		iPtr.operands[1] = immediateT{value: dataValue(iPtr)}

	case IMM_REG_FMT:
		iPtr.operands[0] = regFromWire(iPtr.reg, iPtr.w)
		iPtr.operands[1] = immediateT{value: dataValue(iPtr)}

	case IMM_ACC_FMT:
		iPtr.operands[0] = accOperand(iPtr)
		iPtr.operands[1] = immediateT{value: dataValue(iPtr)}

	case MEM_ACC_FMT:
		addrOp := directAddrT{address: dg.DwordT(dataWord(iPtr))}
		if iPtr.opcodeClass == opcMovMemToAcc {
			iPtr.operands[0] = accOperand(iPtr)
			iPtr.operands[1] = addrOp
		} else {
			iPtr.operands[0] = addrOp
			iPtr.operands[1] = accOperand(iPtr)
		}

	case SEG_RM_FMT:
		segOp := regAccessT{index: srRegIndices[iPtr.sr], offset: 0, count: 2}
		rmOp := rmOperand(iPtr)
		if iPtr.opcodeClass == opcMovToSegReg {
			iPtr.operands[0] = segOp
			iPtr.operands[1] = rmOp
		} else {
			iPtr.operands[0] = rmOp
			iPtr.operands[1] = segOp
		}

	case JUMP_DISP_FMT:
		iPtr.operands[0] = immediateT{value: int32(int8(iPtr.dataLo)), flags: immFlagRelJump}
	}
}

/* disassembly rendering below here... */

func widthPrefix(iPtr *decodedInstrT) string {
	if iPtr.wide() {
		return "word "
	}
	return "byte "
}

// operandString renders a single operand.  withWidth adds the word/byte
// prefix to a memory operand (used when the opposing operand is an
// immediate, which carries no width of its own).
func operandString(iPtr *decodedInstrT, operand interface{}, withWidth bool) string {
	switch op := operand.(type) {

	case regAccessT:
		return regName(op)

	case directAddrT:
		str := fmt.Sprintf("[%d]", op.address)
		if withWidth {
			str = widthPrefix(iPtr) + str
		}
		return str

	case effAddrT:
		str := "[" + regName(op.term1.reg)
		if op.term2 != nil {
			str += " + " + regName(op.term2.reg)
		}
		if op.disp > 0 {
			str += fmt.Sprintf(" + %d", op.disp)
		} else if op.disp < 0 {
			str += fmt.Sprintf(" - %d", -op.disp)
		}
		str += "]"
		if withWidth {
			str = widthPrefix(iPtr) + str
		}
		return str

	case immediateT:
		if op.flags&immFlagRelJump != 0 {
			// the printed offset is from the start of this instruction,
			// not from its end where the stored offset is based
			return fmt.Sprintf("$%+d", op.value+int32(iPtr.size))
		}
		return fmt.Sprintf("%d", op.value)
	}

	return ""
}

func isImmediate(operand interface{}) bool {
	_, ok := operand.(immediateT)
	return ok
}

func renderInstruction(iPtr *decodedInstrT) string {
	asm := opNames[iPtr.op]
	first := operandString(iPtr, iPtr.operands[0], isImmediate(iPtr.operands[1]))
	second := operandString(iPtr, iPtr.operands[1], isImmediate(iPtr.operands[0]))
	if first != "" {
		asm += " " + first
	}
	if second != "" {
		asm += ", " + second
	}
	return asm
}
