package rcc

import (
	"fmt"
	"strings"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/errcode"
)

// Each peripheral bus has its own 32-bit clock-enable register; a peripheral
// is one bit in it. The typed enums below carry the STM32F446 bit
// assignments, so enum call sites can't name an invalid position. The raw
// position guard stays in setBusBit for callers that cast integers.

// AHB1Peripheral is a bit position in AHB1ENR.
type AHB1Peripheral uint32

const (
	AHB1_GPIOA     AHB1Peripheral = 0
	AHB1_GPIOB     AHB1Peripheral = 1
	AHB1_GPIOC     AHB1Peripheral = 2
	AHB1_GPIOD     AHB1Peripheral = 3
	AHB1_GPIOE     AHB1Peripheral = 4
	AHB1_GPIOF     AHB1Peripheral = 5
	AHB1_GPIOG     AHB1Peripheral = 6
	AHB1_GPIOH     AHB1Peripheral = 7
	AHB1_CRC       AHB1Peripheral = 12
	AHB1_BKPSRAM   AHB1Peripheral = 18
	AHB1_DMA1      AHB1Peripheral = 21
	AHB1_DMA2      AHB1Peripheral = 22
	AHB1_OTGHS     AHB1Peripheral = 29
	AHB1_OTGHSULPI AHB1Peripheral = 30
)

// AHB2Peripheral is a bit position in AHB2ENR.
type AHB2Peripheral uint32

const (
	AHB2_DCMI  AHB2Peripheral = 0
	AHB2_OTGFS AHB2Peripheral = 7
)

// AHB3Peripheral is a bit position in AHB3ENR.
type AHB3Peripheral uint32

const (
	AHB3_FMC  AHB3Peripheral = 0
	AHB3_QSPI AHB3Peripheral = 1
)

// APB1Peripheral is a bit position in APB1ENR.
type APB1Peripheral uint32

const (
	APB1_TIM2    APB1Peripheral = 0
	APB1_TIM3    APB1Peripheral = 1
	APB1_TIM4    APB1Peripheral = 2
	APB1_TIM5    APB1Peripheral = 3
	APB1_TIM6    APB1Peripheral = 4
	APB1_TIM7    APB1Peripheral = 5
	APB1_TIM12   APB1Peripheral = 6
	APB1_TIM13   APB1Peripheral = 7
	APB1_TIM14   APB1Peripheral = 8
	APB1_WWDG    APB1Peripheral = 11
	APB1_SPI2    APB1Peripheral = 14
	APB1_SPI3    APB1Peripheral = 15
	APB1_SPDIFRX APB1Peripheral = 16
	APB1_USART2  APB1Peripheral = 17
	APB1_USART3  APB1Peripheral = 18
	APB1_UART4   APB1Peripheral = 19
	APB1_UART5   APB1Peripheral = 20
	APB1_I2C1    APB1Peripheral = 21
	APB1_I2C2    APB1Peripheral = 22
	APB1_I2C3    APB1Peripheral = 23
	APB1_FMPI2C1 APB1Peripheral = 24
	APB1_CAN1    APB1Peripheral = 25
	APB1_CAN2    APB1Peripheral = 26
	APB1_CEC     APB1Peripheral = 27
	APB1_PWR     APB1Peripheral = 28
	APB1_DAC     APB1Peripheral = 29
)

// APB2Peripheral is a bit position in APB2ENR.
type APB2Peripheral uint32

const (
	APB2_TIM1   APB2Peripheral = 0
	APB2_TIM8   APB2Peripheral = 1
	APB2_USART1 APB2Peripheral = 4
	APB2_USART6 APB2Peripheral = 5
	APB2_ADC1   APB2Peripheral = 8
	APB2_ADC2   APB2Peripheral = 9
	APB2_ADC3   APB2Peripheral = 10
	APB2_SDIO   APB2Peripheral = 11
	APB2_SPI1   APB2Peripheral = 12
	APB2_SPI4   APB2Peripheral = 13
	APB2_SYSCFG APB2Peripheral = 14
	APB2_TIM9   APB2Peripheral = 16
	APB2_TIM10  APB2Peripheral = 17
	APB2_TIM11  APB2Peripheral = 18
	APB2_SAI1   APB2Peripheral = 22
	APB2_SAI2   APB2Peripheral = 23
)

// setBusBit flips a single bit of a bus enable register, preserving the
// other 31. Gating has no readiness handshake, so there is nothing to poll.
func (r *RCC) setBusBit(offs uintptr, pos uint32, on bool) error {
	if pos > 31 {
		return fmt.Errorf("peripheral bit position %d out of range: %w", pos, errcode.InvalidParams)
	}
	v := r.mem.Read32(offs)
	if on {
		v |= 1 << pos
	} else {
		v &^= 1 << pos
	}
	r.mem.Write32(offs, v)
	return nil
}

func (r *RCC) EnableAHB1(p AHB1Peripheral) error {
	return r.setBusBit(AHB1ENR_OFFSET, uint32(p), true)
}

func (r *RCC) DisableAHB1(p AHB1Peripheral) error {
	return r.setBusBit(AHB1ENR_OFFSET, uint32(p), false)
}

func (r *RCC) EnableAHB2(p AHB2Peripheral) error {
	return r.setBusBit(AHB2ENR_OFFSET, uint32(p), true)
}

func (r *RCC) DisableAHB2(p AHB2Peripheral) error {
	return r.setBusBit(AHB2ENR_OFFSET, uint32(p), false)
}

func (r *RCC) EnableAHB3(p AHB3Peripheral) error {
	return r.setBusBit(AHB3ENR_OFFSET, uint32(p), true)
}

func (r *RCC) DisableAHB3(p AHB3Peripheral) error {
	return r.setBusBit(AHB3ENR_OFFSET, uint32(p), false)
}

func (r *RCC) EnableAPB1(p APB1Peripheral) error {
	return r.setBusBit(APB1ENR_OFFSET, uint32(p), true)
}

func (r *RCC) DisableAPB1(p APB1Peripheral) error {
	return r.setBusBit(APB1ENR_OFFSET, uint32(p), false)
}

func (r *RCC) EnableAPB2(p APB2Peripheral) error {
	return r.setBusBit(APB2ENR_OFFSET, uint32(p), true)
}

func (r *RCC) DisableAPB2(p APB2Peripheral) error {
	return r.setBusBit(APB2ENR_OFFSET, uint32(p), false)
}

// Bus identifies one of the five peripheral clock-enable registers, for
// boundaries (CLI, config files) that address peripherals by name or raw
// bit position instead of through the typed enums.
type Bus int

const (
	AHB1 Bus = iota
	AHB2
	AHB3
	APB1
	APB2
)

var busNames = []string{"ahb1", "ahb2", "ahb3", "apb1", "apb2"}

func (b Bus) String() string {
	if b < AHB1 || b > APB2 {
		return fmt.Sprintf("Bus(%d)", int(b))
	}
	return strings.ToUpper(busNames[b])
}

// ParseBus maps a bus name (case-insensitive) to its Bus value.
func ParseBus(name string) (Bus, error) {
	for i, n := range busNames {
		if strings.EqualFold(name, n) {
			return Bus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown bus %q: %w", name, errcode.InvalidParams)
}

func (b Bus) offset() (uintptr, error) {
	switch b {
	case AHB1:
		return AHB1ENR_OFFSET, nil
	case AHB2:
		return AHB2ENR_OFFSET, nil
	case AHB3:
		return AHB3ENR_OFFSET, nil
	case APB1:
		return APB1ENR_OFFSET, nil
	case APB2:
		return APB2ENR_OFFSET, nil
	}
	return 0, fmt.Errorf("unknown bus %d: %w", int(b), errcode.InvalidParams)
}

// EnableBusClock gates on a peripheral addressed by raw bit position.
func (r *RCC) EnableBusClock(b Bus, pos uint32) error {
	offs, err := b.offset()
	if err != nil {
		return err
	}
	return r.setBusBit(offs, pos, true)
}

// DisableBusClock gates off a peripheral addressed by raw bit position.
func (r *RCC) DisableBusClock(b Bus, pos uint32) error {
	offs, err := b.offset()
	if err != nil {
		return err
	}
	return r.setBusBit(offs, pos, false)
}

var ahb1Names = map[string]AHB1Peripheral{
	"gpioa": AHB1_GPIOA, "gpiob": AHB1_GPIOB, "gpioc": AHB1_GPIOC,
	"gpiod": AHB1_GPIOD, "gpioe": AHB1_GPIOE, "gpiof": AHB1_GPIOF,
	"gpiog": AHB1_GPIOG, "gpioh": AHB1_GPIOH, "crc": AHB1_CRC,
	"bkpsram": AHB1_BKPSRAM, "dma1": AHB1_DMA1, "dma2": AHB1_DMA2,
	"otghs": AHB1_OTGHS, "otghsulpi": AHB1_OTGHSULPI,
}

var ahb2Names = map[string]AHB2Peripheral{
	"dcmi": AHB2_DCMI, "otgfs": AHB2_OTGFS,
}

var ahb3Names = map[string]AHB3Peripheral{
	"fmc": AHB3_FMC, "qspi": AHB3_QSPI,
}

var apb1Names = map[string]APB1Peripheral{
	"tim2": APB1_TIM2, "tim3": APB1_TIM3, "tim4": APB1_TIM4,
	"tim5": APB1_TIM5, "tim6": APB1_TIM6, "tim7": APB1_TIM7,
	"tim12": APB1_TIM12, "tim13": APB1_TIM13, "tim14": APB1_TIM14,
	"wwdg": APB1_WWDG, "spi2": APB1_SPI2, "spi3": APB1_SPI3,
	"spdifrx": APB1_SPDIFRX, "usart2": APB1_USART2, "usart3": APB1_USART3,
	"uart4": APB1_UART4, "uart5": APB1_UART5, "i2c1": APB1_I2C1,
	"i2c2": APB1_I2C2, "i2c3": APB1_I2C3, "fmpi2c1": APB1_FMPI2C1,
	"can1": APB1_CAN1, "can2": APB1_CAN2, "cec": APB1_CEC,
	"pwr": APB1_PWR, "dac": APB1_DAC,
}

var apb2Names = map[string]APB2Peripheral{
	"tim1": APB2_TIM1, "tim8": APB2_TIM8, "usart1": APB2_USART1,
	"usart6": APB2_USART6, "adc1": APB2_ADC1, "adc2": APB2_ADC2,
	"adc3": APB2_ADC3, "sdio": APB2_SDIO, "spi1": APB2_SPI1,
	"spi4": APB2_SPI4, "syscfg": APB2_SYSCFG, "tim9": APB2_TIM9,
	"tim10": APB2_TIM10, "tim11": APB2_TIM11, "sai1": APB2_SAI1,
	"sai2": APB2_SAI2,
}

// LookupPeripheral maps a peripheral name (case-insensitive) on a bus to its
// bit position.
func LookupPeripheral(b Bus, name string) (uint32, bool) {
	name = strings.ToLower(name)
	switch b {
	case AHB1:
		p, ok := ahb1Names[name]
		return uint32(p), ok
	case AHB2:
		p, ok := ahb2Names[name]
		return uint32(p), ok
	case AHB3:
		p, ok := ahb3Names[name]
		return uint32(p), ok
	case APB1:
		p, ok := apb1Names[name]
		return uint32(p), ok
	case APB2:
		p, ok := apb2Names[name]
		return uint32(p), ok
	}
	return 0, false
}
