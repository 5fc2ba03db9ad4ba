package rcc

import (
	"fmt"
	"strings"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/errcode"
)

// Name parsing for the boundaries that speak strings: config files and the
// command line.

// ParseClock maps a clock source name (case-insensitive) to its Clock value.
func ParseClock(name string) (Clock, error) {
	switch strings.ToLower(name) {
	case "hsi":
		return HSI, nil
	case "hse":
		return HSE, nil
	case "pll":
		return PLL, nil
	case "plli2s":
		return PLLI2S, nil
	case "pllsai":
		return PLLSAI, nil
	}
	return 0, fmt.Errorf("unknown clock source %q: %w", name, errcode.InvalidParams)
}

// ParseSysClock maps a system clock source name to its SW encoding. "pll" is
// accepted as an alias for the PLL P output.
func ParseSysClock(name string) (SysClock, error) {
	switch strings.ToLower(name) {
	case "hsi":
		return SysHSI, nil
	case "hse":
		return SysHSE, nil
	case "pll", "pllp":
		return SysPLLP, nil
	case "pllr":
		return SysPLLR, nil
	}
	return 0, fmt.Errorf("unknown system clock source %q: %w", name, errcode.InvalidParams)
}

// ParseHSEMode maps an HSE mode name to its HSEMode value.
func ParseHSEMode(name string) (HSEMode, error) {
	switch strings.ToLower(name) {
	case "crystal":
		return Crystal, nil
	case "bypass":
		return Bypass, nil
	}
	return 0, fmt.Errorf("unknown HSE mode %q: %w", name, errcode.InvalidParams)
}
