// Package mmio provides 32-bit access to memory-mapped register blocks.
// The hardware-backed implementation maps physical memory via /dev/mem;
// SimMem provides an in-memory register file for tests and dry runs.
package mmio

import (
	"encoding/binary"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

const MEM_FILE = "/dev/mem"

// Mem is a block of 32-bit hardware registers. Offsets are in bytes from
// the start of the block and must be word-aligned.
type Mem interface {
	Read32(offs uintptr) uint32
	Write32(offs uintptr, val uint32)
}

// DevMem is a register block mapped from physical memory.
type DevMem struct {
	buf  mmap.MMap
	offs uintptr
}

// MapDevMem opens /dev/mem and uses mmap to map a physical register block into
// our address space. Since the mapping has to start at a page boundary, the
// physical address is rounded down to the nearest page boundary and the
// page-internal offset is carried inside the returned DevMem.
func MapDevMem(physAddr uintptr, size int) (*DevMem, error) {
	f, err := os.OpenFile(MEM_FILE, os.O_RDWR|os.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %v", MEM_FILE, err)
	}

	pagemask := ^uintptr(os.Getpagesize() - 1)
	mapAddr := physAddr & pagemask
	size += int(physAddr - mapAddr)
	mm, err := mmap.MapRegion(f, size, mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		f.Close() // Ignore error
		return nil, fmt.Errorf("couldn't map region (%v, %v): %v", physAddr, size, err)
	}
	f.Close() // Ignore error

	return &DevMem{mm, physAddr - mapAddr}, nil
}

func (m *DevMem) Read32(offs uintptr) uint32 {
	o := m.offs + offs
	return binary.LittleEndian.Uint32(m.buf[o : o+4])
}

func (m *DevMem) Write32(offs uintptr, val uint32) {
	o := m.offs + offs
	binary.LittleEndian.PutUint32(m.buf[o:o+4], val)
}

// Close unmaps the register block. The DevMem must not be used afterwards.
func (m *DevMem) Close() error {
	if m.buf == nil {
		return nil
	}
	err := m.buf.Unmap()
	m.buf = nil
	return err
}
