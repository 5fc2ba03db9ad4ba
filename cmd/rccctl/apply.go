package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/clockcfg"
)

var applyCmd = &cobra.Command{
	Use:   "apply [plan.yaml]",
	Short: "Run a clock plan: oscillators, PLL, system clock switch, gating",
	Long: `Apply brings the clock tree to the configuration described by a YAML
plan. With no argument the built-in Nucleo-F446RE plan is used. Steps run in
hardware order and the command stops at the first failure, leaving earlier
steps applied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan := clockcfg.Default()
		if len(args) == 1 {
			var err error
			plan, err = clockcfg.Load(args[0])
			if err != nil {
				return err
			}
		}
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		if err := plan.Apply(newDriver(mem)); err != nil {
			return err
		}
		fmt.Printf("applied plan %q\n", plan.Name)
		return nil
	},
}
