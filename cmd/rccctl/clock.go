package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
)

var sysclkCmd = &cobra.Command{
	Use:   "sysclk <hsi|hse|pllp|pllr>",
	Short: "Switch the system clock source and wait for confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := rcc.ParseSysClock(args[0])
		if err != nil {
			return err
		}
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		if err := newDriver(mem).SetSysClock(src); err != nil {
			return err
		}
		fmt.Printf("system clock now %v\n", src)
		return nil
	},
}

var hseModeCmd = &cobra.Command{
	Use:   "hse-mode <crystal|bypass>",
	Short: "Select crystal or bypass operation for the HSE input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := rcc.ParseHSEMode(args[0])
		if err != nil {
			return err
		}
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		return newDriver(mem).SetHSEMode(mode)
	},
}

var clkCmd = &cobra.Command{
	Use:   "clk <hsi|hse|pll|plli2s|pllsai> <on|off>",
	Short: "Enable or disable a clock source and wait for its ready bit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		clk, err := rcc.ParseClock(args[0])
		if err != nil {
			return err
		}
		var on bool
		switch args[1] {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("status must be on or off, not %q", args[1])
		}
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		if err := newDriver(mem).SetClockStatus(clk, on); err != nil {
			return err
		}
		fmt.Printf("%v %s\n", clk, args[1])
		return nil
	},
}

var (
	pllM      uint32
	pllN      uint32
	pllSource string
)

var pllCmd = &cobra.Command{
	Use:   "pll",
	Short: "Reconfigure the main PLL and wait for lock",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := rcc.ParseClock(pllSource)
		if err != nil {
			return err
		}
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		cfg := rcc.PLLConfig{Source: src, M: pllM, N: pllN}
		if err := newDriver(mem).ConfigurePLL(cfg); err != nil {
			return err
		}
		fmt.Printf("PLL locked: source %v, M %d, N %d\n", src, pllM, pllN)
		return nil
	},
}

func init() {
	pllCmd.Flags().Uint32Var(&pllM, "m", 8, "input division factor (2..63; also selects the output divider)")
	pllCmd.Flags().Uint32Var(&pllN, "n", 336, "multiplication factor (50..432)")
	pllCmd.Flags().StringVar(&pllSource, "source", "hse", "PLL input source (hsi or hse)")
}
