// sim8086 project main.go

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
	"os"
	"path/filepath"
	"strings"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/logging"
	"github.com/pkg/profile"
)

const (
	// Displayable name of the simulator
	appName = "sim8086"
	// appVersion number
	appVersion = "v0.1.0"

	// SegmentSize is the extent of one memory segment; a code image
	// must fit within a single segment
	SegmentSize = 64 * 1024

	// the code segment is loaded at the bottom of memory
	csLocation = 0

	dumpFilename = "dump.data"

	usageMessage = "Usage: sim8086 [-exec] [-dump] [-showclocks] [-debug] [-profile] input_file"
)

var (
	// debugLogging - the simulator runs considerably faster without it
	debugLogging = false
)

type sim8086Arguments struct {
	inputPath   string
	executeMode bool
	dumpMemory  bool
	showClocks  bool
	profileRun  bool
}

func main() {
	os.Exit(main1())
}

func main1() int {
	args, ok := parseArgs(os.Args)
	if !ok {
		return 1
	}

	if args.profileRun {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	instructionsInit()
	decoderGenAllPossOpcodes()

	memory := memInit(debugLogging)
	cpuPtr := cpuInit()
	cpuPtr.regs[regCS] = csLocation >> 4

	action := "decoding"
	if args.executeMode {
		action = "execution"
	}
	fmt.Printf("--- %s %s ---\n\n", filepath.Base(args.inputPath), action)

	data, err := os.ReadFile(args.inputPath)
	if err != nil {
		fmt.Printf("ERROR!! Cannot open binary file: %v\n", err)
		return 1
	}
	if len(data) > SegmentSize {
		fmt.Println("ERROR!! Instructions must fit within a single memory segment.")
		return 1
	}

	// copy the image into the code segment and decode through a cursor
	// over that region of memory
	csBase := dg.PhysAddrT(cpuPtr.regs[regCS]) << 4
	for i, b := range data {
		memWriteByte(memory, csBase+dg.PhysAddrT(i), dg.ByteT(b))
	}
	rdr := &byteReaderT{data: memory.ram[csBase : csBase+dg.PhysAddrT(len(data))]}

	if rc := run(cpuPtr, memory, rdr, &args); rc != 0 {
		return rc
	}

	if args.executeMode {
		fmt.Printf("\nFinal registers:\n%s", cpuPrintableRegisters(cpuPtr))

		if args.dumpMemory {
			if err = memDumpToFile(memory, dumpFilename); err != nil {
				fmt.Printf("ERROR!! Cannot write to memory dump file: %v\n", err)
				return 1
			}
			fmt.Printf("\nSaved memory to '%s'.\n", dumpFilename)
		}
	}

	if debugLogging {
		logging.DebugLogsDump("logs/")
	}

	return 0
}

// Options are case-insensitive, order-insensitive, and only recognised
// before the positional input path.
func parseArgs(argv []string) (sim8086Arguments, bool) {
	var args sim8086Arguments

	if len(argv) < 2 {
		fmt.Println(usageMessage)
		return args, false
	}

	options := make(map[string]bool)
	for i := 1; i < len(argv)-1; i++ {
		option := strings.ToLower(argv[i])
		switch option {
		case "-exec", "-dump", "-showclocks", "-debug", "-profile":
			options[option] = true
		default:
			fmt.Printf("Unrecognized argument '%s'.\n\n%s\n", argv[i], usageMessage)
			return args, false
		}
	}

	args.inputPath = argv[len(argv)-1]
	args.executeMode = options["-exec"]
	args.dumpMemory = options["-dump"]
	args.showClocks = options["-showclocks"]
	args.profileRun = options["-profile"]
	debugLogging = options["-debug"]

	return args, true
}

// The main decode/execute loop...
func run(cpuPtr *CPUT, memory *memoryT, rdr *byteReaderT, args *sim8086Arguments) int {
	var (
		totalCycles int
		instrCounts [numOps]int
	)

	for rdr.pos < len(rdr.data) {
		// DECODE
		iPtr, err := instructionDecode(rdr)
		if err != nil {
			fmt.Printf("ERROR!! %v\n", err)
			return 1
		}

		if !args.executeMode {
			fmt.Println(iPtr.disassembly)
			continue
		}

		line := fmt.Sprintf("%-24s ; ", iPtr.disassembly)

		// EXECUTE
		step, err := cpuExecute(cpuPtr, memory, iPtr)
		if err != nil {
			fmt.Printf("ERROR!! %v\n", err)
			return 1
		}
		instrCounts[iPtr.op]++

		if args.showClocks {
			estimate, err := estimateCycles(iPtr)
			if err != nil {
				fmt.Printf("ERROR!! %v\n", err)
				return 1
			}
			currentCycles := estimate.base + estimate.ea
			totalCycles += currentCycles
			clocks := fmt.Sprintf("Clocks: %+d = %d", currentCycles, totalCycles)
			if estimate.ea != 0 {
				clocks += fmt.Sprintf(" (%d + %dea)", estimate.base, estimate.ea)
			}
			line += fmt.Sprintf("%-28s | ", clocks)
		}

		line += printSimulationStep(step)
		fmt.Println(strings.TrimRight(line, " "))

		// a taken branch moved IP somewhere other than the next
		// instruction: reposition the cursor to follow it
		delta := int(int16(step.newIP-step.oldIP)) - iPtr.size
		if delta != 0 {
			rdr.pos += delta
		}
	}

	if debugLogging && args.executeMode {
		logging.DebugPrint(logging.DebugLog, "%s executed %d instructions\n", appName, cpuPtr.instrCount)
		logging.DebugPrint(logging.DebugLog, "Instruction Execution Count by Mnemonic\n")
		for op, count := range instrCounts {
			if count > 0 {
				logging.DebugPrint(logging.DebugLog, "%s\t%d\n", opNames[op], count)
			}
		}
	}

	return 0
}

// printSimulationStep renders the register, IP and flag transitions of
// one executed instruction in fixed-width columns
func printSimulationStep(step simulationStepT) string {
	var builder strings.Builder

	if step.newValue != step.oldValue {
		transition := fmt.Sprintf("%s:0x%x->0x%x", regName(step.destination), step.oldValue, step.newValue)
		fmt.Fprintf(&builder, "%-20s", transition)
	} else {
		fmt.Fprintf(&builder, "%-20s", "")
	}

	ipTransition := fmt.Sprintf("%s:0x%x->0x%x", regNames[regIP][0], step.oldIP, step.newIP)
	fmt.Fprintf(&builder, "%-20s", ipTransition)

	if step.newFlags != step.oldFlags {
		fmt.Fprintf(&builder, "flags:%s->%s", flagsString(step.oldFlags), flagsString(step.newFlags))
	}

	return builder.String()
}
