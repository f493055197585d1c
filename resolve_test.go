// resolve_test.go
package main

import "testing"

func TestResolveEffAddr(t *testing.T) {
	cpuPtr := cpuInit()
	cpuPtr.regs[regBX] = 1000
	cpuPtr.regs[regSI] = 200

	ea := effAddrT{
		term1:       effAddrTermT{reg: regAccessT{index: regBX, offset: 0, count: 2}},
		segOverride: -1,
	}
	if res := resolveEffAddr(cpuPtr, ea); res != 1000 {
		t.Errorf("Expected 1000, got %d", res)
	}

	ea.term2 = &effAddrTermT{reg: regAccessT{index: regSI, offset: 0, count: 2}}
	if res := resolveEffAddr(cpuPtr, ea); res != 1200 {
		t.Errorf("Expected 1200, got %d", res)
	}

	ea.disp = -200
	if res := resolveEffAddr(cpuPtr, ea); res != 1000 {
		t.Errorf("Expected 1000, got %d", res)
	}
}

func TestResolveEffAddrMasks(t *testing.T) {
	cpuPtr := cpuInit()

	// a negative effective address wraps into the 20-bit range
	ea := effAddrT{
		term1:       effAddrTermT{reg: regAccessT{index: regBX, offset: 0, count: 2}},
		disp:        -4,
		segOverride: -1,
	}
	if res := resolveEffAddr(cpuPtr, ea); res != MemSizeBytes-4 {
		t.Errorf("Expected %d, got %d", MemSizeBytes-4, res)
	}
}
