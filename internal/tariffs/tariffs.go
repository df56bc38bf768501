// Package tariffs holds the regulated tables the recovery calculator works from:
// UEMOA legal interest rates, the proportional fee scales, the catalogue of
// procedural acts and the majoration policy.
package tariffs

import (
	"math"
	"sort"
)

// RateSchedule maps a calendar year to the legal annual rate in percent.
type RateSchedule struct {
	Rates       map[int]float64 `yaml:"rates" json:"rates"`
	DefaultRate float64         `yaml:"default_rate" json:"default_rate"`
}

// Rate returns the rate for year. Years absent from the table get DefaultRate
// and found is false.
func (s RateSchedule) Rate(year int) (rate float64, found bool) {
	if r, ok := s.Rates[year]; ok {
		return r, true
	}
	return s.DefaultRate, false
}

// Years returns the years present in the table in ascending order.
func (s RateSchedule) Years() []int {
	years := make([]int, 0, len(s.Rates))
	for y := range s.Rates {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Tier is one bracket of a proportional fee scale. Max == 0 marks the open-ended last bracket.
type Tier struct {
	Min         float64 `yaml:"min" json:"min"`
	Max         float64 `yaml:"max" json:"max,omitempty"`
	RatePercent float64 `yaml:"rate" json:"rate"`
}

// Upper returns the bracket ceiling, +Inf for the open-ended bracket.
func (t Tier) Upper() float64 {
	if t.Max == 0 {
		return math.Inf(1)
	}
	return t.Max
}

// FeeSchedule holds the two émoluments scales.
type FeeSchedule struct {
	WithoutTitle []Tier `yaml:"sans" json:"sans"`
	WithTitle    []Tier `yaml:"avec" json:"avec"`
}

// Act is a catalogued procedural act with its fixed tariff.
type Act struct {
	ID     string  `yaml:"id" json:"id"`
	Label  string  `yaml:"label" json:"label"`
	Tariff float64 `yaml:"tariff" json:"tariff"`
}

// ActCatalog is the ordered list of catalogued acts.
type ActCatalog []Act

// Find looks an act up by id.
func (c ActCatalog) Find(id string) (Act, bool) {
	for _, a := range c {
		if a.ID == id {
			return a, true
		}
	}
	return Act{}, false
}

// MajorationPolicy describes the statutory rate increase once a judicial
// decision stays unpaid past a grace period.
type MajorationPolicy struct {
	GraceMonths int     `yaml:"grace_months" json:"grace_months"`
	Multiplier  float64 `yaml:"multiplier" json:"multiplier"`
}

// Tables bundles every table the calculator needs.
type Tables struct {
	Rates      RateSchedule     `yaml:"legal_rates" json:"legal_rates"`
	Fees       FeeSchedule      `yaml:"fees" json:"fees"`
	Acts       ActCatalog       `yaml:"acts" json:"acts"`
	Majoration MajorationPolicy `yaml:"majoration" json:"majoration"`
	CimaRate   float64          `yaml:"cima_rate" json:"cima_rate"`
}

// Clone returns a deep copy so callers cannot mutate shared tables.
func (t Tables) Clone() Tables {
	out := t
	out.Rates.Rates = make(map[int]float64, len(t.Rates.Rates))
	for y, r := range t.Rates.Rates {
		out.Rates.Rates[y] = r
	}
	out.Fees.WithoutTitle = append([]Tier(nil), t.Fees.WithoutTitle...)
	out.Fees.WithTitle = append([]Tier(nil), t.Fees.WithTitle...)
	out.Acts = append(ActCatalog(nil), t.Acts...)
	return out
}

// Default returns the built-in tables.
func Default() Tables {
	return Tables{
		Rates: RateSchedule{
			Rates: map[int]float64{
				2010: 6.4800, 2011: 6.2500, 2012: 4.2500, 2013: 4.1141, 2014: 3.7274,
				2015: 3.5000, 2016: 3.5000, 2017: 3.5437, 2018: 4.5000, 2019: 4.5000,
				2020: 4.5000, 2021: 4.2391, 2022: 4.0000, 2023: 4.2205, 2024: 5.0336,
				2025: 5.5000,
			},
			DefaultRate: 5.5,
		},
		Fees: FeeSchedule{
			WithoutTitle: []Tier{
				{Min: 1, Max: 5_000_000, RatePercent: 10},
				{Min: 5_000_001, Max: 20_000_000, RatePercent: 8},
				{Min: 20_000_001, Max: 50_000_000, RatePercent: 6},
				{Min: 50_000_001, RatePercent: 4},
			},
			WithTitle: []Tier{
				{Min: 1, Max: 5_000_000, RatePercent: 10},
				{Min: 5_000_001, Max: 20_000_000, RatePercent: 3.5},
				{Min: 20_000_001, Max: 50_000_000, RatePercent: 2},
				{Min: 50_000_001, RatePercent: 1},
			},
		},
		Acts: ActCatalog{
			{ID: "cmd", Label: "Commandement de payer", Tariff: 15000},
			{ID: "sign_titre", Label: "Signification de titre exécutoire", Tariff: 10000},
			{ID: "pv_saisie", Label: "PV de Saisie-Vente", Tariff: 25000},
			{ID: "pv_carence", Label: "PV de Carence", Tariff: 15000},
			{ID: "denonc", Label: "Dénonciation de saisie", Tariff: 12000},
			{ID: "assign", Label: "Assignation", Tariff: 20000},
			{ID: "sign_ord", Label: "Signification Ordonnance", Tariff: 10000},
			{ID: "certif", Label: "Certificat de non recours", Tariff: 5000},
			{ID: "mainlevee", Label: "Mainlevée", Tariff: 15000},
			{ID: "sommation", Label: "Sommation interpellative", Tariff: 12000},
			{ID: "constat", Label: "Procès-verbal de constat", Tariff: 30000},
		},
		Majoration: MajorationPolicy{GraceMonths: 2, Multiplier: 1.5},
		// 5% per month, insurance-sector convention.
		CimaRate: 5 * 12,
	}
}
