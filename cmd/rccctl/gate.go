package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/errcode"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
)

// resolvePeripheral accepts either a peripheral name ("usart2") or a raw bit
// position ("17"). Raw positions go through the driver's own range guard.
func resolvePeripheral(bus rcc.Bus, arg string) (uint32, error) {
	if pos, ok := rcc.LookupPeripheral(bus, arg); ok {
		return pos, nil
	}
	pos, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("no peripheral %q on %v: %w", arg, bus, errcode.InvalidParams)
	}
	return uint32(pos), nil
}

func gateRun(on bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		bus, err := rcc.ParseBus(args[0])
		if err != nil {
			return err
		}
		pos, err := resolvePeripheral(bus, args[1])
		if err != nil {
			return err
		}
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		r := newDriver(mem)
		if on {
			return r.EnableBusClock(bus, pos)
		}
		return r.DisableBusClock(bus, pos)
	}
}

var enableCmd = &cobra.Command{
	Use:   "enable <bus> <peripheral>",
	Short: "Gate a peripheral clock on (peripheral by name or bit position)",
	Args:  cobra.ExactArgs(2),
	RunE:  gateRun(true),
}

var disableCmd = &cobra.Command{
	Use:   "disable <bus> <peripheral>",
	Short: "Gate a peripheral clock off (peripheral by name or bit position)",
	Args:  cobra.ExactArgs(2),
	RunE:  gateRun(false),
}
