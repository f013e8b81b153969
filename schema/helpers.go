package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInventory parses a "TYPE:COUNT,TYPE:COUNT" string into an inventory
// map. Unknown part types and negative counts are rejected.
func ParseInventory(s string) (map[PartType]int, error) {
	inv := make(map[PartType]int)
	if strings.TrimSpace(s) == "" {
		return inv, nil
	}
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.Split(pair, ":")
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid part entry '%s', expected 'TYPE:COUNT'", pair)
		}
		t := PartType(strings.ToUpper(strings.TrimSpace(kv[0])))
		if _, ok := ValidPartTypes[t]; !ok {
			return nil, fmt.Errorf("unknown part type '%s'", kv[0])
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid count for part type %s: %w", t, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("count for part type %s cannot be negative (received %d)", t, n)
		}
		inv[t] += n
	}
	return inv, nil
}

// FormatInventory renders an inventory map as a "TYPE:COUNT,..." string in
// AllPartTypes order. Zero counts are omitted.
func FormatInventory(inv map[PartType]int) string {
	var parts []string
	for _, t := range AllPartTypes {
		if n := inv[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", t, n))
		}
	}
	return strings.Join(parts, ",")
}

// ParseMinimums parses a comma-separated list of slot minimum scores.
// Negative minimums are rejected.
func ParseMinimums(s string) ([]int, error) {
	var mins []int
	if strings.TrimSpace(s) == "" {
		return mins, nil
	}
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum '%s': %w", part, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("minimum cannot be negative (received %d)", v)
		}
		mins = append(mins, v)
	}
	return mins, nil
}

// FormatMinimums renders slot minimums as a comma-separated string.
func FormatMinimums(mins []int) string {
	parts := make([]string, len(mins))
	for i, v := range mins {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// FormatGroup renders the three part types of a group as "E+E+R2".
func FormatGroup(types [PartsPerGroup]PartType) string {
	return fmt.Sprintf("%s+%s+%s", types[0], types[1], types[2])
}
