// Package clockcfg loads declarative clock plans and applies them through the
// rcc driver in hardware order: HSE mode and oscillator first, then the PLL,
// then the system clock switch, then peripheral bus gating.
package clockcfg

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/errcode"
	"github.com/Ahmed123231/RCC-Driver-For-STM32F446RE/rcc"
)

//go:embed nucleo_f446re.yaml
var rawDefault []byte

var defaultPlan Plan

func init() {
	if err := yaml.Unmarshal(rawDefault, &defaultPlan); err != nil {
		panic(fmt.Sprintf("embedded default plan: %v", err))
	}
}

// Plan is a complete boot clock configuration.
type Plan struct {
	Name     string   `yaml:"name"`
	SysClock string   `yaml:"sysclock"` // hsi, hse, pllp (or pll), pllr
	HSE      *HSEPlan `yaml:"hse,omitempty"`
	PLL      *PLLPlan `yaml:"pll,omitempty"`
	Buses    BusPlan  `yaml:"buses,omitempty"`
}

// HSEPlan configures the external oscillator input.
type HSEPlan struct {
	Mode string `yaml:"mode"` // crystal or bypass
}

// PLLPlan configures the main PLL. The output divider is derived from M,
// see rcc.ConfigurePLL.
type PLLPlan struct {
	Source string `yaml:"source"` // hsi or hse
	M      uint32 `yaml:"m"`
	N      uint32 `yaml:"n"`
}

// BusPlan lists peripherals to gate on, by name, per bus domain.
type BusPlan struct {
	AHB1 []string `yaml:"ahb1,omitempty"`
	AHB2 []string `yaml:"ahb2,omitempty"`
	AHB3 []string `yaml:"ahb3,omitempty"`
	APB1 []string `yaml:"apb1,omitempty"`
	APB2 []string `yaml:"apb2,omitempty"`
}

// Default returns the embedded Nucleo-F446RE plan.
func Default() Plan {
	return defaultPlan
}

// Parse decodes a plan from YAML.
func Parse(b []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Plan{}, fmt.Errorf("couldn't parse clock plan: %v", err)
	}
	return p, nil
}

// Load reads and decodes a plan file.
func Load(path string) (Plan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("couldn't read clock plan: %v", err)
	}
	return Parse(b)
}

// Apply brings the hardware to the planned configuration. Returns on the
// first failing step; earlier steps stay applied.
func (p Plan) Apply(r *rcc.RCC) error {
	sys, err := rcc.ParseSysClock(p.SysClock)
	if err != nil {
		return err
	}

	needHSE := sys == rcc.SysHSE
	if p.PLL != nil && p.PLL.Source != "" {
		src, err := rcc.ParseClock(p.PLL.Source)
		if err != nil {
			return err
		}
		needHSE = needHSE || src == rcc.HSE
	}

	if p.HSE != nil {
		mode, err := rcc.ParseHSEMode(p.HSE.Mode)
		if err != nil {
			return err
		}
		if err := r.SetHSEMode(mode); err != nil {
			return err
		}
	}
	if needHSE {
		if err := r.SetClockStatus(rcc.HSE, true); err != nil {
			return fmt.Errorf("HSE startup: %w", err)
		}
	}

	if p.PLL != nil {
		src, err := rcc.ParseClock(p.PLL.Source)
		if err != nil {
			return err
		}
		if src != rcc.HSI && src != rcc.HSE {
			return fmt.Errorf("PLL source %q not allowed: %w", p.PLL.Source, errcode.InvalidParams)
		}
		if err := r.ConfigurePLL(rcc.PLLConfig{Source: src, M: p.PLL.M, N: p.PLL.N}); err != nil {
			return fmt.Errorf("PLL configure: %w", err)
		}
	}

	if err := r.SetSysClock(sys); err != nil {
		return fmt.Errorf("system clock switch: %w", err)
	}

	return p.Buses.apply(r)
}

func (b BusPlan) apply(r *rcc.RCC) error {
	domains := []struct {
		bus   rcc.Bus
		names []string
	}{
		{rcc.AHB1, b.AHB1},
		{rcc.AHB2, b.AHB2},
		{rcc.AHB3, b.AHB3},
		{rcc.APB1, b.APB1},
		{rcc.APB2, b.APB2},
	}
	for _, d := range domains {
		for _, name := range d.names {
			pos, ok := rcc.LookupPeripheral(d.bus, name)
			if !ok {
				return fmt.Errorf("no peripheral %q on %v: %w", name, d.bus, errcode.InvalidParams)
			}
			if err := r.EnableBusClock(d.bus, pos); err != nil {
				return err
			}
		}
	}
	return nil
}
