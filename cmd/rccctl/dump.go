package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/spf13/cobra"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/mmio"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rccsim"
)

var namedRegs = []struct {
	name string
	offs uintptr
}{
	{"CR", rcc.CR_OFFSET},
	{"PLLCFGR", rcc.PLLCFGR_OFFSET},
	{"CFGR", rcc.CFGR_OFFSET},
	{"CIR", rcc.CIR_OFFSET},
	{"AHB1ENR", rcc.AHB1ENR_OFFSET},
	{"AHB2ENR", rcc.AHB2ENR_OFFSET},
	{"AHB3ENR", rcc.AHB3ENR_OFFSET},
	{"APB1ENR", rcc.APB1ENR_OFFSET},
	{"APB2ENR", rcc.APB2ENR_OFFSET},
}

func printRegs(w io.Writer, mem mmio.Mem) {
	for _, reg := range namedRegs {
		fmt.Fprintf(w, "%-8s +%#02x  %08X\n", reg.name, reg.offs, mem.Read32(reg.offs))
	}
}

var dumpHexFile string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the RCC registers, optionally snapshotting to Intel HEX",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, closer, err := openMem()
		if err != nil {
			return err
		}
		defer closer()
		printRegs(os.Stdout, mem)
		if dumpHexFile != "" {
			return writeHexSnapshot(mem, dumpHexFile)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpHexFile, "hex", "", "write the whole block to FILE in Intel HEX format")
}

// writeHexSnapshot dumps the whole register block as Intel HEX, addressed at
// the block's physical base so a snapshot round-trips through --load-hex.
func writeHexSnapshot(mem mmio.Mem, path string) error {
	data := make([]byte, rcc.RCC_BLOCK_SIZE)
	for offs := uintptr(0); offs < rcc.RCC_BLOCK_SIZE; offs += 4 {
		binary.LittleEndian.PutUint32(data[offs:], mem.Read32(offs))
	}
	m := gohex.NewMemory()
	if err := m.AddBinary(uint32(base), data); err != nil {
		return fmt.Errorf("couldn't build hex image: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("couldn't create %s: %v", path, err)
	}
	defer f.Close()
	return m.DumpIntelHex(f, 16)
}

// seedFromHex loads an Intel HEX snapshot into the simulated block. Segments
// outside the RCC block are ignored.
func seedFromHex(b *rccsim.Block, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("couldn't open %s: %v", path, err)
	}
	defer f.Close()
	m := gohex.NewMemory()
	if err := m.ParseIntelHex(f); err != nil {
		return fmt.Errorf("couldn't parse %s: %v", path, err)
	}

	data := make([]byte, rcc.RCC_BLOCK_SIZE)
	for _, seg := range m.GetDataSegments() {
		for i, by := range seg.Data {
			addr := uintptr(seg.Address) + uintptr(i)
			if addr < uintptr(base) || addr >= uintptr(base)+rcc.RCC_BLOCK_SIZE {
				continue
			}
			data[addr-uintptr(base)] = by
		}
	}
	words := make([]uint32, rcc.RCC_BLOCK_SIZE/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	b.Load(words)
	return nil
}
