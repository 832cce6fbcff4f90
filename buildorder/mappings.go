package buildorder

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/staticdata"
)

// ManualMapping resolves a pbgid the static data does not know.
type ManualMapping struct {
	Pbgid   int              `yaml:"pbgid"`
	ID      string           `yaml:"id"`
	Name    string           `yaml:"name"`
	Cost    staticdata.Costs `yaml:"cost"`
	Classes []string         `yaml:"classes"`
	Civs    []string         `yaml:"civs"`
}

//go:embed manual_mappings.yaml
var manualYAML []byte

var manualByPbgid = mustLoadMappings(manualYAML)

func mustLoadMappings(b []byte) map[int]ManualMapping {
	var list []ManualMapping
	if err := yaml.Unmarshal(b, &list); err != nil {
		panic(fmt.Sprintf("manual mappings: %v", err))
	}
	m := make(map[int]ManualMapping, len(list))
	for _, mm := range list {
		if _, dup := m[mm.Pbgid]; dup {
			panic(fmt.Sprintf("manual mappings: pbgid %d listed twice", mm.Pbgid))
		}
		m[mm.Pbgid] = mm
	}
	return m
}

// ManualMappings lists the built-in mappings.
func ManualMappings() []ManualMapping {
	out := make([]ManualMapping, 0, len(manualByPbgid))
	for _, m := range manualByPbgid {
		out = append(out, m)
	}
	return out
}

// ErrUnresolved matches any *UnresolvedError.
var ErrUnresolved = errors.New("unresolved build order items")

// UnresolvedError lists build order entries that matched nothing.
type UnresolvedError struct {
	Entries []gamesummary.BuildOrderEntry
}

func (e *UnresolvedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "could not resolve %d build order items:", len(e.Entries))
	for _, entry := range e.Entries {
		fmt.Fprintf(&sb, "\n  - %s:%s (pbgid=%d)", entry.Type, entry.Icon, entry.Pbgid)
	}
	sb.WriteString("\nupdate the static data or add a manual mapping to buildorder/manual_mappings.yaml")
	return sb.String()
}

func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}
