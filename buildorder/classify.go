package buildorder

import (
	"strings"

	"github.com/samber/lo"
)

func lowered(ss []string) []string {
	return lo.Map(ss, func(s string, _ int) string { return strings.ToLower(s) })
}

// IsLandmark reports whether a building is a landmark or wonder. Classes are
// checked first, then the icon path, then the id and name.
func (it Item) IsLandmark() bool {
	classes := lowered(it.Classes)
	if lo.SomeBy(classes, func(c string) bool {
		return strings.Contains(c, "landmark") || strings.Contains(c, "wonder")
	}) {
		return true
	}
	icon := strings.ToLower(it.Entry.Icon)
	if strings.Contains(icon, "landmark") || strings.Contains(icon, "wonder") {
		return true
	}
	return strings.Contains(strings.ToLower(it.ID), "landmark") ||
		strings.Contains(strings.ToLower(it.Name), "landmark")
}

// IsVillager reports whether a unit is an economic worker.
func (it Item) IsVillager() bool {
	if strings.Contains(strings.ToLower(it.Name), "villager") {
		return true
	}
	classes := lowered(it.Classes)
	if lo.Contains(classes, "worker") || lo.Contains(classes, "villager") {
		return true
	}
	return strings.Contains(strings.ToLower(it.Entry.Icon), "villager")
}

// IsMilitary is a non-villager unit.
func (it Item) IsMilitary() bool {
	return it.Kind == KindUnit && !it.IsVillager()
}
