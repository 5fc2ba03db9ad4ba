package rcc

// RCC register block layout for the STM32F446. Offsets and bit positions are
// from RM0390; the reserved gaps between the enable registers are real.
const (
	RCC_BASE_ADDRESS = uintptr(0x40023800)
	RCC_BLOCK_SIZE   = 0x94 // through DCKCFGR2

	CR_OFFSET      = uintptr(0x00)
	PLLCFGR_OFFSET = uintptr(0x04)
	CFGR_OFFSET    = uintptr(0x08)
	CIR_OFFSET     = uintptr(0x0c)
	AHB1ENR_OFFSET = uintptr(0x30)
	AHB2ENR_OFFSET = uintptr(0x34)
	AHB3ENR_OFFSET = uintptr(0x38)
	APB1ENR_OFFSET = uintptr(0x40)
	APB2ENR_OFFSET = uintptr(0x44)
)

// CR bits. Each oscillator's ready bit sits one above its enable bit.
const (
	CR_HSION     = uint32(1) << 0
	CR_HSIRDY    = uint32(1) << 1
	CR_HSEON     = uint32(1) << 16
	CR_HSERDY    = uint32(1) << 17
	CR_HSEBYP    = uint32(1) << 18
	CR_PLLON     = uint32(1) << 24
	CR_PLLRDY    = uint32(1) << 25
	CR_PLLI2SON  = uint32(1) << 26
	CR_PLLI2SRDY = uint32(1) << 27
	CR_PLLSAION  = uint32(1) << 28
	CR_PLLSAIRDY = uint32(1) << 29
)

// CFGR fields: SW[1:0] requests the system clock source, SWS[3:2] reports
// the source actually in use.
const (
	CFGR_SW_MASK   = uint32(0x3)
	CFGR_SWS_SHIFT = 2
	CFGR_SWS_MASK  = uint32(0x3) << CFGR_SWS_SHIFT
)

// PLLCFGR fields.
const (
	PLLCFGR_PLLM_MASK  = uint32(0x3f)
	PLLCFGR_PLLN_SHIFT = 6
	PLLCFGR_PLLN_MASK  = uint32(0x1ff) << PLLCFGR_PLLN_SHIFT
	PLLCFGR_PLLP_SHIFT = 16
	PLLCFGR_PLLP_MASK  = uint32(0x3) << PLLCFGR_PLLP_SHIFT
	PLLCFGR_PLLSRC     = uint32(1) << 22
)

func pllM(val uint32) uint32 {
	return val & PLLCFGR_PLLM_MASK
}

func pllN(val uint32) uint32 {
	return (val & 0x1ff) << PLLCFGR_PLLN_SHIFT
}

func pllP(code uint32) uint32 {
	return (code & 0x3) << PLLCFGR_PLLP_SHIFT
}
