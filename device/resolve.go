package device

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Resolve finds the device a selector refers to.
// It tries an exact ID, then a case-insensitive name, then a unique fuzzy name match.
func Resolve(devices []Device, selector string) (Device, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return Device{}, fmt.Errorf("empty device selector")
	}

	if d, ok := lo.Find(devices, func(d Device) bool { return d.ID == selector }); ok {
		return d, nil
	}

	if d, ok := lo.Find(devices, func(d Device) bool { return strings.EqualFold(d.Name, selector) }); ok {
		return d, nil
	}

	matches := lo.Filter(devices, func(d Device, _ int) bool {
		return fuzzy.MatchFold(selector, d.Name) || fuzzy.MatchFold(selector, d.ID)
	})

	switch len(matches) {
	case 0:
		return Device{}, fmt.Errorf("no device matches %q", selector)
	case 1:
		return matches[0], nil
	default:
		names := lo.Map(matches, func(d Device, _ int) string { return d.String() })
		return Device{}, fmt.Errorf("device %q is ambiguous: %s", selector, strings.Join(names, ", "))
	}
}
