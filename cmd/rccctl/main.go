// rccctl inspects and programs the STM32F446 clock tree, either live through
// /dev/mem on a host with the RCC block mapped in, or against a simulated
// register block for dry runs.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/mmio"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rccsim"
)

var (
	useSim  bool
	base    uint
	budget  int
	seedHex string
)

var rootCmd = &cobra.Command{
	Use:           "rccctl",
	Short:         "Inspect and program the STM32F446 clock tree",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useSim, "sim", false, "run against a simulated register block instead of /dev/mem")
	rootCmd.PersistentFlags().UintVar(&base, "base", uint(rcc.RCC_BASE_ADDRESS), "physical base address of the RCC block")
	rootCmd.PersistentFlags().IntVar(&budget, "poll-budget", rcc.DefaultPollBudget, "status polls before a readiness wait times out")
	rootCmd.PersistentFlags().StringVar(&seedHex, "load-hex", "", "seed the simulated block from an Intel HEX snapshot")

	rootCmd.AddCommand(applyCmd, sysclkCmd, hseModeCmd, clkCmd, pllCmd,
		enableCmd, disableCmd, dumpCmd, watchCmd)
}

// openMem returns the register block a subcommand talks to and a closer.
func openMem() (mmio.Mem, func() error, error) {
	if useSim {
		b := rccsim.New()
		if seedHex != "" {
			if err := seedFromHex(b, seedHex); err != nil {
				return nil, nil, err
			}
		}
		return b, func() error { return nil }, nil
	}
	dm, err := mmio.MapDevMem(uintptr(base), rcc.RCC_BLOCK_SIZE)
	if err != nil {
		return nil, nil, err
	}
	return dm, dm.Close, nil
}

func newDriver(mem mmio.Mem) *rcc.RCC {
	r := rcc.New(mem)
	r.SetPollBudget(budget)
	return r
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
