// Package rccsim models the RCC block's handshake behavior over an in-memory
// register file, for tests and dry runs: oscillator and PLL ready bits track
// their enable bits, and the SWS field follows a requested SW value.
package rccsim

import (
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/mmio"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
)

// Block is a simulated RCC register file. It satisfies mmio.Mem through the
// embedded SimMem, which also serializes all accesses.
type Block struct {
	*mmio.SimMem
	stuck      map[rcc.Clock]bool
	holdSwitch bool
}

// New returns a zeroed block with healthy-hardware behavior: every readiness
// handshake completes on the write that requests it.
func New() *Block {
	b := &Block{
		SimMem: mmio.NewSimMem(rcc.RCC_BLOCK_SIZE),
		stuck:  make(map[rcc.Clock]bool),
	}
	b.OnWrite(b.react)
	return b
}

// StickClock makes a clock source stop responding: its ready bit keeps its
// current value no matter what the enable bit does. This is how a missing
// crystal or a PLL that never locks presents to the driver.
func (b *Block) StickClock(c rcc.Clock) { b.stuck[c] = true }

// HoldSysClockSwitch freezes the SWS field so a requested system clock
// switch is never confirmed.
func (b *Block) HoldSysClockSwitch() { b.holdSwitch = true }

func (b *Block) react(offs uintptr, val uint32, peek func(uintptr) uint32, poke func(uintptr, uint32)) {
	switch offs {
	case rcc.CR_OFFSET:
		cr := val
		for _, c := range rcc.Clocks() {
			if b.stuck[c] {
				continue
			}
			en := uint32(1) << uint(c)
			rdy := en << 1
			if cr&en != 0 {
				cr |= rdy
			} else {
				cr &^= rdy
			}
		}
		poke(rcc.CR_OFFSET, cr)
	case rcc.CFGR_OFFSET:
		if b.holdSwitch {
			return
		}
		cfgr := val &^ rcc.CFGR_SWS_MASK
		cfgr |= (val & rcc.CFGR_SW_MASK) << rcc.CFGR_SWS_SHIFT
		poke(rcc.CFGR_OFFSET, cfgr)
	}
}
