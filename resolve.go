// resolve.go
package main

import (
	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/logging"
)

// resolveEffAddr computes the physical address of an effective-address
// expression: base + optional index + signed displacement, masked to the
// 20-bit address range.  Segmentation is not applied beyond the code
// segment load performed by the driver.
func resolveEffAddr(cpuPtr *CPUT, ea effAddrT) dg.PhysAddrT {
	intEff := int32(cpuPtr.regs[ea.term1.reg.index])
	if ea.term2 != nil {
		intEff += int32(cpuPtr.regs[ea.term2.reg.index])
	}
	intEff += int32(ea.disp)

	eff := dg.PhysAddrT(intEff) & addrMask

	if debugLogging {
		logging.DebugPrint(logging.DebugLog, "... resolveEffAddr got disp: %d., returning %d.\n", ea.disp, eff)
	}
	return eff
}
