// instructionDefinitions.go

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

// Instruction Types
const (
	XFER_OP = iota
	ARITH_OP
	COND_PC
	LOOP_PC
	NO_OP
)

// Instruction Formats
const (
	NO_OPERAND_FMT = iota
	REG_RM_FMT
	IMM_RM_FMT
	IMM_REG_FMT
	IMM_ACC_FMT
	MEM_ACC_FMT
	SEG_RM_FMT
	JUMP_DISP_FMT
)

// Operation types
const (
	opMov = iota
	opAdd
	opSub
	opCmp
	opJe
	opJl
	opJle
	opJb
	opJbe
	opJp
	opJo
	opJs
	opJne
	opJnl
	opJg
	opJnb
	opJa
	opJnp
	opJno
	opJns
	opLoop
	opLoopz
	opLoopnz
	opJcxz
	opJmp
	opNop
	numOps
)

var opNames = [numOps]string{
	"mov", "add", "sub", "cmp",
	"je", "jl", "jle", "jb", "jbe", "jp", "jo", "js",
	"jne", "jnl", "jg", "jnb", "ja", "jnp", "jno", "jns",
	"loop", "loopz", "loopnz", "jcxz",
	"jmp", "nop",
}

// Opcode classes.  The wire encoding distinguishes more classes than there
// are operations: each class implies a field layout as well as an operation.
const (
	opcNone = iota
	opcMovNormal
	opcMovImmToRegMem
	opcMovImmToReg
	opcMovMemToAcc
	opcMovAccToMem
	opcMovToSegReg
	opcMovFromSegReg
	opcAddNormal
	opcAddImmToRegMem
	opcAddImmToAcc
	opcSubNormal
	opcSubImmFromRegMem
	opcSubImmFromAcc
	opcCmpNormal
	opcCmpImmWithRegMem
	opcCmpImmWithAcc
	opcArithImm
	opcJe
	opcJl
	opcJle
	opcJb
	opcJbe
	opcJp
	opcJo
	opcJs
	opcJne
	opcJnl
	opcJg
	opcJnb
	opcJa
	opcJnp
	opcJno
	opcJns
	opcLoop
	opcLoopz
	opcLoopnz
	opcJcxz
	opcJmpShort
	opcNop
)

// instructionsInit initialises the characteristics for each opcode class.
// The prefix field is the number of leading bits of the first byte that
// identify the class; classes only reachable via the ModR/M reg field
// (the 100000sw group) carry a zero prefix and are never matched directly.
func instructionsInit() {
	instructionSet[opcMovNormal] = instrChars{0b100010, 6, REG_RM_FMT, XFER_OP, opMov}
	instructionSet[opcMovImmToRegMem] = instrChars{0b1100011, 7, IMM_RM_FMT, XFER_OP, opMov}
	instructionSet[opcMovImmToReg] = instrChars{0b1011, 4, IMM_REG_FMT, XFER_OP, opMov}
	instructionSet[opcMovMemToAcc] = instrChars{0b1010000, 7, MEM_ACC_FMT, XFER_OP, opMov}
	instructionSet[opcMovAccToMem] = instrChars{0b1010001, 7, MEM_ACC_FMT, XFER_OP, opMov}
	instructionSet[opcMovToSegReg] = instrChars{0b10001110, 8, SEG_RM_FMT, XFER_OP, opMov}
	instructionSet[opcMovFromSegReg] = instrChars{0b10001100, 8, SEG_RM_FMT, XFER_OP, opMov}

	instructionSet[opcAddNormal] = instrChars{0b000000, 6, REG_RM_FMT, ARITH_OP, opAdd}
	instructionSet[opcAddImmToRegMem] = instrChars{0, 0, IMM_RM_FMT, ARITH_OP, opAdd}
	instructionSet[opcAddImmToAcc] = instrChars{0b0000010, 7, IMM_ACC_FMT, ARITH_OP, opAdd}

	instructionSet[opcSubNormal] = instrChars{0b001010, 6, REG_RM_FMT, ARITH_OP, opSub}
	instructionSet[opcSubImmFromRegMem] = instrChars{0, 0, IMM_RM_FMT, ARITH_OP, opSub}
	instructionSet[opcSubImmFromAcc] = instrChars{0b0010110, 7, IMM_ACC_FMT, ARITH_OP, opSub}

	instructionSet[opcCmpNormal] = instrChars{0b001110, 6, REG_RM_FMT, ARITH_OP, opCmp}
	instructionSet[opcCmpImmWithRegMem] = instrChars{0, 0, IMM_RM_FMT, ARITH_OP, opCmp}
	instructionSet[opcCmpImmWithAcc] = instrChars{0b0011110, 7, IMM_ACC_FMT, ARITH_OP, opCmp}

	instructionSet[opcArithImm] = instrChars{0b100000, 6, IMM_RM_FMT, ARITH_OP, opAdd}

	instructionSet[opcJe] = instrChars{0b01110100, 8, JUMP_DISP_FMT, COND_PC, opJe}
	instructionSet[opcJl] = instrChars{0b01111100, 8, JUMP_DISP_FMT, COND_PC, opJl}
	instructionSet[opcJle] = instrChars{0b01111110, 8, JUMP_DISP_FMT, COND_PC, opJle}
	instructionSet[opcJb] = instrChars{0b01110010, 8, JUMP_DISP_FMT, COND_PC, opJb}
	instructionSet[opcJbe] = instrChars{0b01110110, 8, JUMP_DISP_FMT, COND_PC, opJbe}
	instructionSet[opcJp] = instrChars{0b01111010, 8, JUMP_DISP_FMT, COND_PC, opJp}
	instructionSet[opcJo] = instrChars{0b01110000, 8, JUMP_DISP_FMT, COND_PC, opJo}
	instructionSet[opcJs] = instrChars{0b01111000, 8, JUMP_DISP_FMT, COND_PC, opJs}
	instructionSet[opcJne] = instrChars{0b01110101, 8, JUMP_DISP_FMT, COND_PC, opJne}
	instructionSet[opcJnl] = instrChars{0b01111101, 8, JUMP_DISP_FMT, COND_PC, opJnl}
	instructionSet[opcJg] = instrChars{0b01111111, 8, JUMP_DISP_FMT, COND_PC, opJg}
	instructionSet[opcJnb] = instrChars{0b01110011, 8, JUMP_DISP_FMT, COND_PC, opJnb}
	instructionSet[opcJa] = instrChars{0b01110111, 8, JUMP_DISP_FMT, COND_PC, opJa}
	instructionSet[opcJnp] = instrChars{0b01111011, 8, JUMP_DISP_FMT, COND_PC, opJnp}
	instructionSet[opcJno] = instrChars{0b01110001, 8, JUMP_DISP_FMT, COND_PC, opJno}
	instructionSet[opcJns] = instrChars{0b01111001, 8, JUMP_DISP_FMT, COND_PC, opJns}

	instructionSet[opcLoop] = instrChars{0b11100010, 8, JUMP_DISP_FMT, LOOP_PC, opLoop}
	instructionSet[opcLoopz] = instrChars{0b11100001, 8, JUMP_DISP_FMT, LOOP_PC, opLoopz}
	instructionSet[opcLoopnz] = instrChars{0b11100000, 8, JUMP_DISP_FMT, LOOP_PC, opLoopnz}
	instructionSet[opcJcxz] = instrChars{0b11100011, 8, JUMP_DISP_FMT, LOOP_PC, opJcxz}

	instructionSet[opcJmpShort] = instrChars{0b11101011, 8, JUMP_DISP_FMT, COND_PC, opJmp}
	instructionSet[opcNop] = instrChars{0b10010000, 8, NO_OPERAND_FMT, NO_OP, opNop}
}
