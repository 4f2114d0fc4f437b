package invest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Scenario is a named, pre-filled property used by the example analyses.
type Scenario struct {
	Name       string             `yaml:"-" json:"name"` // Derived from filename (without .yml extension)
	Title      string             `yaml:"title" json:"title"`
	Summary    string             `yaml:"summary" json:"summary"`
	Financials PropertyFinancials `yaml:"financials" json:"financials"`
}

// ScenarioCache loads scenario files from a directory and keeps them in memory.
type ScenarioCache struct {
	dir   string
	cache map[string]*Scenario
	mu    sync.RWMutex
}

func NewScenarioCache(dir string) *ScenarioCache {
	return &ScenarioCache{
		dir:   dir,
		cache: make(map[string]*Scenario),
	}
}

func (sc *ScenarioCache) Run() error {
	if _, err := os.Stat(sc.dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(sc.dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	loaded := make(map[string]*Scenario, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yml")

		scenario, err := parseScenario(file)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
		scenario.Name = name
		loaded[name] = scenario

		slog.Debug("Scenario loaded", "scenario", name, "purchase_price", scenario.Financials.PurchasePrice)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache = loaded

	return nil
}

func (sc *ScenarioCache) GetScenario(name string) (*Scenario, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	scenario, ok := sc.cache[name]
	if !ok {
		return nil, fmt.Errorf("scenario with name '%s' not found", name)
	}
	return scenario, nil
}

// GetScenarios returns the loaded scenarios ordered by name.
func (sc *ScenarioCache) GetScenarios() []*Scenario {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	scenarios := make([]*Scenario, 0, len(sc.cache))
	for _, scenario := range sc.cache {
		scenarios = append(scenarios, scenario)
	}
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].Name < scenarios[j].Name
	})
	return scenarios
}

func parseScenario(file string) (*Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateFinancials(scenario.Financials); err != nil {
		return nil, fmt.Errorf("invalid financials: %w", err)
	}

	return &scenario, nil
}

type namedValue struct {
	name  string
	value float64
}

// validateFinancials applies the same bounds as the HTTP calculators so that
// scenario files cannot feed values the calculator does not expect.
func validateFinancials(p PropertyFinancials) error {
	if p.PurchasePrice <= 0 {
		return fmt.Errorf("purchase price must be positive")
	}

	nonNegativeFields := []namedValue{
		{"annual rental income", p.AnnualRentalIncome},
		{"annual operating expenses", p.AnnualOperatingExpenses},
	}
	if p.AnnualDebtService != nil {
		nonNegativeFields = append(nonNegativeFields, namedValue{"annual debt service", *p.AnnualDebtService})
	}
	for _, field := range nonNegativeFields {
		if field.value < 0 {
			return fmt.Errorf("%s must be non-negative", field.name)
		}
	}

	if p.DownPaymentPercent < 0 || p.DownPaymentPercent > 1 {
		return fmt.Errorf("down payment percent must be between 0 and 1")
	}

	rateFields := []namedValue{
		{"interest rate", p.InterestRate},
		{"appreciation rate", p.AppreciationRate},
		{"rental growth rate", p.RentalGrowthRate},
		{"expense growth rate", p.ExpenseGrowthRate},
	}
	if p.DiscountRate != nil {
		rateFields = append(rateFields, namedValue{"discount rate", *p.DiscountRate})
	}
	for _, field := range rateFields {
		if field.value < 0 || field.value > 0.5 {
			return fmt.Errorf("%s must be between 0 and 0.5", field.name)
		}
	}

	termFields := []namedValue{
		{"loan term years", float64(p.LoanTermYears)},
		{"holding period years", float64(p.HoldingPeriodYears)},
	}
	for _, field := range termFields {
		if field.value < 1 || field.value > 50 {
			return fmt.Errorf("%s must be between 1 and 50", field.name)
		}
	}

	return nil
}
