package main

import (
	"fmt"
	"os"
	"time"

	tty "github.com/mattn/go-tty"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously redraw the RCC registers (q to quit)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()

		t, err := tty.Open()
		if err != nil {
			return fmt.Errorf("couldn't open terminal: %v", err)
		}
		defer t.Close()

		quit := make(chan struct{})
		go func() {
			for {
				r, err := t.ReadRune()
				if err != nil || r == 'q' || r == 3 { // 3 = ctrl-c in raw mode
					close(quit)
					return
				}
			}
		}()

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()
		for {
			fmt.Fprintf(os.Stdout, "\033[H\033[2J") // clear
			printRegs(os.Stdout, mem)
			fmt.Fprintln(os.Stdout, "\npress q to quit")
			select {
			case <-quit:
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "redraw interval")
}
