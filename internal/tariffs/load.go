package tariffs

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Load reads tables from a YAML file. Sections left empty (or zero) keep the
// built-in defaults, so a file may override only the legal rates for instance.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, eris.Wrapf(err, "tariffs: read file %s", path)
	}
	return Parse(data)
}

// presentScalars records which scalar settings a file spells out, so that an
// explicit 0 is kept and only absent keys take the default.
type presentScalars struct {
	Rates struct {
		DefaultRate *float64 `yaml:"default_rate"`
	} `yaml:"legal_rates"`
	Majoration struct {
		GraceMonths *int     `yaml:"grace_months"`
		Multiplier  *float64 `yaml:"multiplier"`
	} `yaml:"majoration"`
	CimaRate *float64 `yaml:"cima_rate"`
}

// Parse decodes YAML tables and fills absent sections and keys from Default.
func Parse(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, eris.Wrap(err, "tariffs: parse file")
	}
	var present presentScalars
	if err := yaml.Unmarshal(data, &present); err != nil {
		return Tables{}, eris.Wrap(err, "tariffs: parse file")
	}

	def := Default()
	if len(t.Rates.Rates) == 0 {
		t.Rates.Rates = def.Rates.Rates
	}
	if present.Rates.DefaultRate == nil {
		t.Rates.DefaultRate = def.Rates.DefaultRate
	}
	if len(t.Fees.WithoutTitle) == 0 {
		t.Fees.WithoutTitle = def.Fees.WithoutTitle
	}
	if len(t.Fees.WithTitle) == 0 {
		t.Fees.WithTitle = def.Fees.WithTitle
	}
	if len(t.Acts) == 0 {
		t.Acts = def.Acts
	}
	if present.Majoration.GraceMonths == nil {
		t.Majoration.GraceMonths = def.Majoration.GraceMonths
	}
	if present.Majoration.Multiplier == nil {
		t.Majoration.Multiplier = def.Majoration.Multiplier
	}
	if present.CimaRate == nil {
		t.CimaRate = def.CimaRate
	}

	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Validate checks the table invariants: non-negative rates, contiguous
// increasing fee brackets ending open-ended, unique act ids.
func (t Tables) Validate() error {
	if t.Rates.DefaultRate < 0 {
		return eris.Errorf("tariffs: negative default rate %v", t.Rates.DefaultRate)
	}
	for year, rate := range t.Rates.Rates {
		if rate < 0 {
			return eris.Errorf("tariffs: negative legal rate %v for %d", rate, year)
		}
	}
	if err := validateTiers("sans", t.Fees.WithoutTitle); err != nil {
		return err
	}
	if err := validateTiers("avec", t.Fees.WithTitle); err != nil {
		return err
	}

	seen := make(map[string]bool, len(t.Acts))
	for _, a := range t.Acts {
		if a.ID == "" {
			return eris.Errorf("tariffs: act %q has no id", a.Label)
		}
		if seen[a.ID] {
			return eris.Errorf("tariffs: duplicate act id %q", a.ID)
		}
		if a.Tariff < 0 {
			return eris.Errorf("tariffs: negative tariff for act %q", a.ID)
		}
		seen[a.ID] = true
	}

	if t.Majoration.GraceMonths < 0 {
		return eris.Errorf("tariffs: negative majoration grace period %d", t.Majoration.GraceMonths)
	}
	if t.Majoration.Multiplier < 1 {
		return eris.Errorf("tariffs: majoration multiplier %v below 1", t.Majoration.Multiplier)
	}
	if t.CimaRate < 0 {
		return eris.Errorf("tariffs: negative CIMA rate %v", t.CimaRate)
	}
	return nil
}

func validateTiers(name string, tiers []Tier) error {
	if len(tiers) == 0 {
		return eris.Errorf("tariffs: fee scale %s is empty", name)
	}
	if tiers[0].Min != 1 {
		return eris.Errorf("tariffs: fee scale %s must start at 1, got %v", name, tiers[0].Min)
	}
	for i, tier := range tiers {
		if tier.RatePercent < 0 {
			return eris.Errorf("tariffs: fee scale %s tier %d has negative rate", name, i+1)
		}
		last := i == len(tiers)-1
		if last {
			if tier.Max != 0 {
				return eris.Errorf("tariffs: fee scale %s last tier must be open-ended", name)
			}
			continue
		}
		if tier.Max <= tier.Min {
			return eris.Errorf("tariffs: fee scale %s tier %d max %v not above min %v", name, i+1, tier.Max, tier.Min)
		}
		if next := tiers[i+1]; next.Min != tier.Max+1 {
			return eris.Errorf("tariffs: fee scale %s tiers %d and %d are not contiguous", name, i+1, i+2)
		}
	}
	return nil
}
