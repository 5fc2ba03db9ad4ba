package mmio

import "sync"

// WriteHook observes a completed write to a simulated register and may mutate
// other registers through the supplied raw accessors (which must not lock).
type WriteHook func(offs uintptr, val uint32, peek func(uintptr) uint32, poke func(uintptr, uint32))

// ReadHook runs before a simulated read returns, with the same raw accessors.
type ReadHook func(offs uintptr, peek func(uintptr) uint32, poke func(uintptr, uint32))

// SimMem is an in-memory register file. All accesses are serialized through a
// mutex: concurrent read-modify-write of real registers is a data race, so a
// host-side simulation has to funnel everything through a single lock.
// Hooks let tests model hardware reactions (e.g. a ready bit tracking its
// enable bit) without the driver knowing it's not talking to silicon.
type SimMem struct {
	mu        sync.Mutex
	regs      []uint32
	writeHook WriteHook
	readHook  ReadHook

	reads  int
	writes int
}

// NewSimMem returns a zeroed register file covering size bytes.
func NewSimMem(size int) *SimMem {
	return &SimMem{regs: make([]uint32, (size+3)/4)}
}

// OnWrite installs the write hook. Not safe to call concurrently with accesses.
func (m *SimMem) OnWrite(h WriteHook) { m.writeHook = h }

// OnRead installs the read hook. Not safe to call concurrently with accesses.
func (m *SimMem) OnRead(h ReadHook) { m.readHook = h }

func (m *SimMem) peek(offs uintptr) uint32      { return m.regs[offs/4] }
func (m *SimMem) poke(offs uintptr, val uint32) { m.regs[offs/4] = val }

func (m *SimMem) Read32(offs uintptr) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readHook != nil {
		m.readHook(offs, m.peek, m.poke)
	}
	return m.regs[offs/4]
}

func (m *SimMem) Write32(offs uintptr, val uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.regs[offs/4] = val
	if m.writeHook != nil {
		m.writeHook(offs, val, m.peek, m.poke)
	}
}

// Writes reports how many register writes have happened. Tests use it to
// assert that rejected operations touched nothing.
func (m *SimMem) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Load copies a snapshot of raw register words into the file, starting at
// word 0. Extra words are ignored.
func (m *SimMem) Load(words []uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.regs, words)
}

// Snapshot returns a copy of the whole register file.
func (m *SimMem) Snapshot() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := make([]uint32, len(m.regs))
	copy(s, m.regs)
	return s
}
