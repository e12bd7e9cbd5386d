package dataprocessing

import (
	"strings"
)

// ColumnRole is the semantic meaning of a raw file column.
type ColumnRole string

const (
	ColumnDate     ColumnRole = "date"
	ColumnSurface  ColumnRole = "surface_temp"
	ColumnInternal ColumnRole = "internal_temp"
	ColumnRoom     ColumnRole = "room_temp"
	ColumnWallType ColumnRole = "wall_type"
)

// ColumnRule matches a header cell to a role when the cell contains
// every token. Matching is case-insensitive and position-independent,
// tolerating reordered and extra columns between logger firmware
// revisions.
type ColumnRule struct {
	Role   ColumnRole
	Tokens []string
}

// DefaultColumnRules returns the header-matching rules for the
// instrument's export format. Order matters: the first rule a cell
// satisfies claims it.
func DefaultColumnRules() []ColumnRule {
	return []ColumnRule{
		{Role: ColumnDate, Tokens: []string{"date", "time"}},
		{Role: ColumnSurface, Tokens: []string{"value", "heat", "surface"}},
		{Role: ColumnInternal, Tokens: []string{"internal", "temp"}},
		{Role: ColumnRoom, Tokens: []string{"out", "air", "temp"}},
		{Role: ColumnWallType, Tokens: []string{"wall", "type"}},
	}
}

// ColumnMap is the resolved role -> column index mapping for one file.
// It is computed once per file and carried as an explicit value so the
// caller can inspect which columns were found.
type ColumnMap map[ColumnRole]int

// ResolveColumns maps header cells to roles using the given rules.
// Each role binds to the first cell that satisfies it; each cell serves
// at most one role.
func ResolveColumns(header []string, rules []ColumnRule) ColumnMap {
	resolved := make(ColumnMap)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		for _, rule := range rules {
			if _, done := resolved[rule.Role]; done {
				continue
			}
			if containsAll(name, rule.Tokens) {
				resolved[rule.Role] = i
				break
			}
		}
	}
	return resolved
}

// Has reports whether a role was resolved.
func (m ColumnMap) Has(role ColumnRole) bool {
	_, ok := m[role]
	return ok
}

// Required returns the roles whose presence defines a complete data row:
// the date column plus whichever measurement columns resolved. The
// end-of-data truncation rule counts missing values across these.
func (m ColumnMap) Required() []ColumnRole {
	required := []ColumnRole{ColumnDate}
	for _, role := range []ColumnRole{ColumnSurface, ColumnInternal, ColumnRoom} {
		if m.Has(role) {
			required = append(required, role)
		}
	}
	return required
}

// containsAll reports whether s contains every token.
func containsAll(s string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(s, token) {
			return false
		}
	}
	return true
}
