// Package upgrades maps unit icons to veterancy tiers and technology keys to
// their combat bonuses.
package upgrades

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Tier is a unit's veterancy level as encoded in its icon.
type Tier int

const (
	Base Tier = iota + 1
	Veteran
	Elite
	Imperial
)

func (t Tier) String() string {
	switch t {
	case Veteran:
		return "veteran"
	case Elite:
		return "elite"
	case Imperial:
		return "imperial"
	default:
		return "base"
	}
}

// Effect is the bonus granted by one combat upgrade.
type Effect struct {
	Type  string
	Bonus float64
	Level int
}

type family struct {
	Key     string    `yaml:"key"`
	Type    string    `yaml:"type"`
	Bonuses []float64 `yaml:"bonuses"`
}

type table struct {
	Tiers    map[string]float64 `yaml:"tiers"`
	Families []family           `yaml:"families"`
}

//go:embed upgrades.yaml
var tableYAML []byte

var (
	multipliers map[Tier]float64
	effects     map[string]Effect
)

var romanNumerals = []string{"I", "II", "III", "IV"}

func init() {
	var t table
	if err := yaml.Unmarshal(tableYAML, &t); err != nil {
		panic(fmt.Sprintf("upgrades table: %v", err))
	}
	multipliers = map[Tier]float64{}
	for _, tier := range []Tier{Base, Veteran, Elite, Imperial} {
		m, ok := t.Tiers[tier.String()]
		if !ok {
			panic(fmt.Sprintf("upgrades table: no multiplier for %s", tier))
		}
		multipliers[tier] = m
	}
	effects = map[string]Effect{}
	for _, f := range t.Families {
		for i, bonus := range f.Bonuses {
			e := Effect{Type: f.Type, Bonus: bonus, Level: i + 1}
			effects[f.Key+romanNumerals[i]] = e
			effects[f.Key+strconv.Itoa(i+1)] = e
		}
	}
}

// Multiplier is the value multiplier of a tier.
func (t Tier) Multiplier() float64 {
	if m, ok := multipliers[t]; ok {
		return m
	}
	return multipliers[Base]
}

var tierSuffix = regexp.MustCompile(`_(\d)(?:\.[^/.]+)?$`)

// TierFromIcon reads the trailing _<digit> of an icon path, optionally
// followed by a file extension. 2, 3 and 4 are veteran, elite and imperial;
// anything else is base.
func TierFromIcon(icon string) Tier {
	m := tierSuffix.FindStringSubmatch(icon)
	if m == nil {
		return Base
	}
	switch m[1] {
	case "2":
		return Veteran
	case "3":
		return Elite
	case "4":
		return Imperial
	default:
		return Base
	}
}

// Lookup returns the effect of an upgrade key such as upgradeMeleeArmorII
// or upgradeMeleeArmor2.
func Lookup(key string) (Effect, bool) {
	e, ok := effects[key]
	return e, ok
}
