package rcc_test

import (
	"errors"
	"testing"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/errcode"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rccsim"
)

func TestSetClockStatusPreservesOtherBits(t *testing.T) {
	for _, clk := range rcc.Clocks() {
		s := rccsim.New()
		// Unrelated bits that the operation must leave alone.
		background := rcc.CR_HSEBYP | uint32(1)<<19 // CSSON
		s.Load([]uint32{background})
		r := rcc.New(s)

		if err := r.SetClockStatus(clk, true); err != nil {
			t.Fatalf("enable %v: %v", clk, err)
		}
		en := uint32(1) << uint(clk)
		want := background | en | en<<1
		if got := s.Snapshot()[0]; got != want {
			t.Errorf("CR after enabling %v got: %08X, want: %08X", clk, got, want)
		}

		if err := r.SetClockStatus(clk, false); err != nil {
			t.Fatalf("disable %v: %v", clk, err)
		}
		if got := s.Snapshot()[0]; got != background {
			t.Errorf("CR after disabling %v got: %08X, want: %08X", clk, got, background)
		}
	}
}

func TestSetClockStatusIdempotent(t *testing.T) {
	s := rccsim.New()
	r := rcc.New(s)
	if err := r.SetClockStatus(rcc.HSI, true); err != nil {
		t.Fatalf("first enable: %v", err)
	}
	before := s.Snapshot()[0]
	if err := r.SetClockStatus(rcc.HSI, true); err != nil {
		t.Errorf("second enable: %v", err)
	}
	if got := s.Snapshot()[0]; got != before {
		t.Errorf("CR changed by re-enable, got: %08X, want: %08X", got, before)
	}
}

func TestSetClockStatusUnknownClock(t *testing.T) {
	s := rccsim.New()
	r := rcc.New(s)
	err := r.SetClockStatus(rcc.Clock(5), true)
	if errcode.Of(err) != errcode.InvalidParams {
		t.Errorf("unknown clock got: %v, want: %v", err, errcode.InvalidParams)
	}
	if s.Writes() != 0 {
		t.Errorf("unknown clock performed %d writes, want: 0", s.Writes())
	}
}

func TestSetClockStatusTimeout(t *testing.T) {
	s := rccsim.New()
	s.StickClock(rcc.HSE) // no crystal fitted
	r := rcc.New(s)
	r.SetPollBudget(16)
	err := r.SetClockStatus(rcc.HSE, true)
	if !errors.Is(err, errcode.Timeout) {
		t.Errorf("stuck HSE got: %v, want: %v", err, errcode.Timeout)
	}
}

func TestSetSysClock(t *testing.T) {
	tests := []struct {
		src     rcc.SysClock
		wantErr bool
	}{
		{rcc.SysHSI, false},
		{rcc.SysHSE, false},
		{rcc.SysPLLP, false},
		{rcc.SysPLLR, false}, // boundary value is accepted
		{rcc.SysClock(4), true},
		{rcc.SysClock(200), true},
	}

	for _, test := range tests {
		s := rccsim.New()
		// Prescaler fields that must survive the switch.
		background := uint32(0x9 << 4) // HPRE
		s.Load([]uint32{0, 0, background})
		r := rcc.New(s)
		writesBefore := s.Writes()

		err := r.SetSysClock(test.src)
		if test.wantErr {
			if errcode.Of(err) != errcode.InvalidParams {
				t.Errorf("SetSysClock(%d) got: %v, want: %v", uint32(test.src), err, errcode.InvalidParams)
			}
			if n := s.Writes() - writesBefore; n != 0 {
				t.Errorf("SetSysClock(%d) performed %d writes, want: 0", uint32(test.src), n)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SetSysClock(%v): %v", test.src, err)
		}
		cfgr := s.Snapshot()[2]
		if got := cfgr & rcc.CFGR_SW_MASK; got != uint32(test.src) {
			t.Errorf("SW field got: %d, want: %d", got, uint32(test.src))
		}
		if got := (cfgr & rcc.CFGR_SWS_MASK) >> rcc.CFGR_SWS_SHIFT; got != uint32(test.src) {
			t.Errorf("SWS field got: %d, want: %d", got, uint32(test.src))
		}
		if got := cfgr &^ (rcc.CFGR_SW_MASK | rcc.CFGR_SWS_MASK); got != background {
			t.Errorf("CFGR other fields got: %08X, want: %08X", got, background)
		}
	}
}

func TestSetSysClockTimeout(t *testing.T) {
	s := rccsim.New()
	s.HoldSysClockSwitch()
	r := rcc.New(s)
	r.SetPollBudget(16)
	err := r.SetSysClock(rcc.SysHSE)
	if !errors.Is(err, errcode.Timeout) {
		t.Errorf("unconfirmed switch got: %v, want: %v", err, errcode.Timeout)
	}
}

func TestSetHSEMode(t *testing.T) {
	s := rccsim.New()
	r := rcc.New(s)

	if err := r.SetHSEMode(rcc.Bypass); err != nil {
		t.Fatalf("bypass: %v", err)
	}
	if got := s.Snapshot()[0] & rcc.CR_HSEBYP; got == 0 {
		t.Error("HSEBYP not set after Bypass")
	}
	if err := r.SetHSEMode(rcc.Crystal); err != nil {
		t.Fatalf("crystal: %v", err)
	}
	if got := s.Snapshot()[0] & rcc.CR_HSEBYP; got != 0 {
		t.Error("HSEBYP still set after Crystal")
	}

	writesBefore := s.Writes()
	err := r.SetHSEMode(rcc.HSEMode(7))
	if errcode.Of(err) != errcode.InvalidParams {
		t.Errorf("bad mode got: %v, want: %v", err, errcode.InvalidParams)
	}
	if n := s.Writes() - writesBefore; n != 0 {
		t.Errorf("bad mode performed %d writes, want: 0", n)
	}
}

func TestConfigurePLL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     rcc.PLLConfig
		wantM   uint32
		wantN   uint32
		wantP   uint32
		wantSrc uint32 // PLLSRC bit value, 0 or 1
	}{
		{"hsi_m2", rcc.PLLConfig{Source: rcc.HSI, M: 2, N: 50}, 2, 50, 0, 0},
		{"hse_m4", rcc.PLLConfig{Source: rcc.HSE, M: 4, N: 432}, 4, 432, 1, 1},
		{"hsi_m6", rcc.PLLConfig{Source: rcc.HSI, M: 6, N: 180}, 6, 180, 2, 0},
		{"hsi_m8", rcc.PLLConfig{Source: rcc.HSI, M: 8, N: 336}, 8, 336, 3, 0},
	}

	for _, test := range tests {
		s := rccsim.New()
		r := rcc.New(s)
		if err := r.ConfigurePLL(test.cfg); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		pllcfgr := s.Snapshot()[1]
		if got := pllcfgr & rcc.PLLCFGR_PLLM_MASK; got != test.wantM {
			t.Errorf("%s: M field got: %d, want: %d", test.name, got, test.wantM)
		}
		if got := (pllcfgr & rcc.PLLCFGR_PLLN_MASK) >> rcc.PLLCFGR_PLLN_SHIFT; got != test.wantN {
			t.Errorf("%s: N field got: %d, want: %d", test.name, got, test.wantN)
		}
		if got := (pllcfgr & rcc.PLLCFGR_PLLP_MASK) >> rcc.PLLCFGR_PLLP_SHIFT; got != test.wantP {
			t.Errorf("%s: P code got: %d, want: %d", test.name, got, test.wantP)
		}
		if got := (pllcfgr & rcc.PLLCFGR_PLLSRC) >> 22; got != test.wantSrc {
			t.Errorf("%s: PLLSRC got: %d, want: %d", test.name, got, test.wantSrc)
		}
		cr := s.Snapshot()[0]
		if cr&rcc.CR_PLLON == 0 || cr&rcc.CR_PLLRDY == 0 {
			t.Errorf("%s: PLL not enabled and locked, CR: %08X", test.name, cr)
		}
	}
}

func TestConfigurePLLRejectsBadParams(t *testing.T) {
	tests := []struct {
		name string
		cfg  rcc.PLLConfig
	}{
		{"bad_source", rcc.PLLConfig{Source: rcc.PLLI2S, M: 2, N: 50}},
		{"n_low", rcc.PLLConfig{Source: rcc.HSI, M: 2, N: 49}},
		{"n_high", rcc.PLLConfig{Source: rcc.HSI, M: 2, N: 433}},
		{"m_low", rcc.PLLConfig{Source: rcc.HSI, M: 1, N: 50}},
		{"m_high", rcc.PLLConfig{Source: rcc.HSI, M: 64, N: 50}},
	}

	for _, test := range tests {
		s := rccsim.New()
		r := rcc.New(s)
		err := r.ConfigurePLL(test.cfg)
		if errcode.Of(err) != errcode.InvalidParams {
			t.Errorf("%s got: %v, want: %v", test.name, err, errcode.InvalidParams)
		}
		// Rejection happens before the M/N fields are touched.
		pllcfgr := s.Snapshot()[1]
		if got := pllcfgr & (rcc.PLLCFGR_PLLM_MASK | rcc.PLLCFGR_PLLN_MASK); got != 0 {
			t.Errorf("%s: M/N fields written on reject: %08X", test.name, got)
		}
	}
}

// A divider value that is legal for M but not in the {2,4,6,8} output table
// fails only after M and N have been committed. Callers must treat the
// configuration register as undefined after any ConfigurePLL error.
func TestConfigurePLLPartialFailure(t *testing.T) {
	s := rccsim.New()
	r := rcc.New(s)
	err := r.ConfigurePLL(rcc.PLLConfig{Source: rcc.HSI, M: 3, N: 50})
	if errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("divider 3 got: %v, want: %v", err, errcode.InvalidParams)
	}
	pllcfgr := s.Snapshot()[1]
	if got := pllcfgr & rcc.PLLCFGR_PLLM_MASK; got != 3 {
		t.Errorf("M field got: %d, want: 3 (already committed)", got)
	}
	if got := (pllcfgr & rcc.PLLCFGR_PLLN_MASK) >> rcc.PLLCFGR_PLLN_SHIFT; got != 50 {
		t.Errorf("N field got: %d, want: 50 (already committed)", got)
	}
	if cr := s.Snapshot()[0]; cr&rcc.CR_PLLON != 0 {
		t.Errorf("PLL re-enabled after failed configure, CR: %08X", cr)
	}
}

func TestConfigurePLLLockTimeout(t *testing.T) {
	s := rccsim.New()
	s.StickClock(rcc.PLL)
	r := rcc.New(s)
	r.SetPollBudget(16)
	err := r.ConfigurePLL(rcc.PLLConfig{Source: rcc.HSI, M: 2, N: 50})
	if !errors.Is(err, errcode.Timeout) {
		t.Errorf("unlockable PLL got: %v, want: %v", err, errcode.Timeout)
	}
}
