// Package rcc drives the STM32F446 reset and clock control block: oscillator
// enable/disable, system clock selection, PLL configuration and peripheral
// bus clock gating. All register traffic goes through an injected mmio.Mem,
// so the same driver runs against /dev/mem or a simulated register file.
package rcc

import (
	"fmt"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/errcode"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/mmio"
)

// Clock identifies a clock source by its enable-bit position in CR. The
// matching ready bit is always one position higher.
type Clock uint

const (
	HSI    Clock = 0
	HSE    Clock = 16
	PLL    Clock = 24
	PLLI2S Clock = 26
	PLLSAI Clock = 28
)

// Clocks returns all defined clock sources, in enable-bit order.
func Clocks() []Clock {
	return []Clock{HSI, HSE, PLL, PLLI2S, PLLSAI}
}

func (c Clock) String() string {
	switch c {
	case HSI:
		return "HSI"
	case HSE:
		return "HSE"
	case PLL:
		return "PLL"
	case PLLI2S:
		return "PLLI2S"
	case PLLSAI:
		return "PLLSAI"
	}
	return fmt.Sprintf("Clock(%d)", uint(c))
}

// SysClock selects what drives the core, encoded as the CFGR SW field value.
type SysClock uint32

const (
	SysHSI SysClock = iota
	SysHSE
	SysPLLP
	SysPLLR
)

func (s SysClock) String() string {
	switch s {
	case SysHSI:
		return "HSI"
	case SysHSE:
		return "HSE"
	case SysPLLP:
		return "PLLP"
	case SysPLLR:
		return "PLLR"
	}
	return fmt.Sprintf("SysClock(%d)", uint32(s))
}

// HSEMode says what feeds the HSE input: a crystal driving the internal
// oscillator circuit, or an external waveform bypassing it.
type HSEMode int

const (
	Crystal HSEMode = iota
	Bypass
)

// PLLConfig holds the main PLL parameters. The output divider P is not an
// independent input: its 2-bit code is derived from M through the table
// {2:0, 4:1, 6:2, 8:3}, matching the firmware this driver is register-
// compatible with. See ConfigurePLL.
type PLLConfig struct {
	Source Clock  // HSI or HSE
	M      uint32 // input division factor, 2..63
	N      uint32 // multiplication factor, 50..432
}

// DefaultPollBudget bounds every readiness busy-wait. The value matches the
// startup timeout ST uses for HSE in their reference sequences.
const DefaultPollBudget = 0x0500

// RCC is a handle on the clock control block. It is not safe for concurrent
// use; on real hardware these operations run at boot or from one control
// thread, and a simulation serializes inside its Mem.
type RCC struct {
	mem        mmio.Mem
	pollBudget int
}

// New returns a driver over the given register region, which must start at
// the RCC block's CR register.
func New(mem mmio.Mem) *RCC {
	return &RCC{mem, DefaultPollBudget}
}

// SetPollBudget overrides the number of status-register polls allowed before
// a wait gives up with errcode.Timeout. n must be positive.
func (r *RCC) SetPollBudget(n int) {
	if n > 0 {
		r.pollBudget = n
	}
}

// waitBits busy-polls a register until reg&mask == want. The hardware asserts
// readiness on its own schedule, so this loop does nothing but re-read; if
// the budget runs out (crystal missing, PLL never locking) it reports
// errcode.Timeout instead of hanging forever.
func (r *RCC) waitBits(offs uintptr, mask, want uint32) error {
	for i := 0; i < r.pollBudget; i++ {
		if r.mem.Read32(offs)&mask == want {
			return nil
		}
	}
	return fmt.Errorf("bits %08X of register +%#02x stuck, want %08X: %w", mask, offs, want, errcode.Timeout)
}

// SetClockStatus enables or disables a clock source, then waits for its
// ready bit to reflect the requested state. Enabling an already-running
// source is a no-op that still confirms readiness.
func (r *RCC) SetClockStatus(clk Clock, on bool) error {
	switch clk {
	case HSI, HSE, PLL, PLLI2S, PLLSAI:
	default:
		return fmt.Errorf("unknown clock source %d: %w", uint(clk), errcode.InvalidParams)
	}
	en := uint32(1) << uint(clk)
	rdy := en << 1
	cr := r.mem.Read32(CR_OFFSET)
	if on {
		r.mem.Write32(CR_OFFSET, cr|en)
		return r.waitBits(CR_OFFSET, rdy, rdy)
	}
	r.mem.Write32(CR_OFFSET, cr&^en)
	return r.waitBits(CR_OFFSET, rdy, 0)
}

// SetSysClock requests a system clock source and waits until the SWS field
// confirms the switch. Values beyond SysPLLR are rejected without touching
// the hardware.
func (r *RCC) SetSysClock(src SysClock) error {
	if src > SysPLLR {
		return fmt.Errorf("system clock source %d out of range: %w", uint32(src), errcode.InvalidParams)
	}
	cfgr := r.mem.Read32(CFGR_OFFSET)
	cfgr &^= CFGR_SW_MASK
	cfgr |= uint32(src)
	r.mem.Write32(CFGR_OFFSET, cfgr)
	return r.waitBits(CFGR_OFFSET, CFGR_SWS_MASK, uint32(src)<<CFGR_SWS_SHIFT)
}

// SetHSEMode selects crystal or bypass operation for the HSE input. Anything
// other than the two defined modes is rejected without a register write.
func (r *RCC) SetHSEMode(mode HSEMode) error {
	if mode != Crystal && mode != Bypass {
		return fmt.Errorf("unknown HSE mode %d: %w", int(mode), errcode.InvalidParams)
	}
	cr := r.mem.Read32(CR_OFFSET)
	if mode == Bypass {
		r.mem.Write32(CR_OFFSET, cr|CR_HSEBYP)
	} else {
		r.mem.Write32(CR_OFFSET, cr&^CR_HSEBYP)
	}
	return nil
}

// ConfigurePLL reprograms the main PLL. The hardware requires the PLL to be
// off and unlocked while its fields change, so the sequence is: disable and
// wait for unlock, select the input source, write M and N, derive and write
// the P code, re-enable and wait for lock.
//
// A failed call is not atomic. The source bit is committed before N and M
// are validated, and M/N are committed before the P derivation can reject;
// on error the PLL is left disabled with PLLCFGR contents undefined relative
// to their prior state.
func (r *RCC) ConfigurePLL(cfg PLLConfig) error {
	cr := r.mem.Read32(CR_OFFSET)
	r.mem.Write32(CR_OFFSET, cr&^CR_PLLON)
	if err := r.waitBits(CR_OFFSET, CR_PLLRDY, 0); err != nil {
		return err
	}

	pllcfgr := r.mem.Read32(PLLCFGR_OFFSET)
	switch cfg.Source {
	case HSI:
		pllcfgr &^= PLLCFGR_PLLSRC
	case HSE:
		pllcfgr |= PLLCFGR_PLLSRC
	default:
		return fmt.Errorf("PLL source must be HSI or HSE, not %v: %w", cfg.Source, errcode.InvalidParams)
	}
	r.mem.Write32(PLLCFGR_OFFSET, pllcfgr)

	if cfg.N < 50 || cfg.N > 432 {
		return fmt.Errorf("PLL multiplication factor %d outside 50..432: %w", cfg.N, errcode.InvalidParams)
	}
	if cfg.M < 2 || cfg.M > 63 {
		return fmt.Errorf("PLL division factor %d outside 2..63: %w", cfg.M, errcode.InvalidParams)
	}

	pllcfgr &^= PLLCFGR_PLLM_MASK | PLLCFGR_PLLN_MASK
	pllcfgr |= pllM(cfg.M) | pllN(cfg.N)
	r.mem.Write32(PLLCFGR_OFFSET, pllcfgr)

	// The output divider code is keyed off the input prescaler M, not an
	// independent parameter. That coupling is inherited from the firmware
	// whose register behavior this reproduces; changing it changes the PLL
	// output frequency of every existing caller. M/N above are already
	// committed when this rejects.
	var pcode uint32
	switch cfg.M {
	case 2:
		pcode = 0
	case 4:
		pcode = 1
	case 6:
		pcode = 2
	case 8:
		pcode = 3
	default:
		return fmt.Errorf("PLL output divider %d not in {2,4,6,8}: %w", cfg.M, errcode.InvalidParams)
	}
	pllcfgr &^= PLLCFGR_PLLP_MASK
	pllcfgr |= pllP(pcode)
	r.mem.Write32(PLLCFGR_OFFSET, pllcfgr)

	cr = r.mem.Read32(CR_OFFSET)
	r.mem.Write32(CR_OFFSET, cr|CR_PLLON)
	return r.waitBits(CR_OFFSET, CR_PLLRDY, CR_PLLRDY)
}
