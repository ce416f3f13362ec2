package types

import (
	"sort"
	"strconv"
)

// CountyMap is the bidirectional code<->name reference table. Both
// directions are unique; the map is read-only once built.
type CountyMap struct {
	nameToCode map[string]int
	codeToName map[int]string
}

// NewCountyMap builds a CountyMap from name->code pairs.
func NewCountyMap(nameToCode map[string]int) *CountyMap {
	m := &CountyMap{
		nameToCode: make(map[string]int, len(nameToCode)),
		codeToName: make(map[int]string, len(nameToCode)),
	}
	for name, code := range nameToCode {
		m.nameToCode[name] = code
		m.codeToName[code] = name
	}
	return m
}

// CodeOf resolves a county name to its code.
func (m *CountyMap) CodeOf(name string) (int, bool) {
	code, ok := m.nameToCode[name]
	return code, ok
}

// NameOf resolves a county code to its name.
func (m *CountyMap) NameOf(code int) (string, bool) {
	name, ok := m.codeToName[code]
	return name, ok
}

// Names returns all county names in sorted order.
func (m *CountyMap) Names() []string {
	names := make([]string, 0, len(m.nameToCode))
	for name := range m.nameToCode {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of counties.
func (m *CountyMap) Len() int {
	return len(m.nameToCode)
}

// CountyIdentity pins down which representation a county reference
// carries. References are resolved exactly once at ingestion, so the rest
// of the engine never guesses whether a value is a code or a name.
type CountyIdentity struct {
	code     int
	name     string
	resolved bool
}

// CountyByCode builds an identity from a code, resolving the name where
// the county map permits.
func CountyByCode(code int, m *CountyMap) CountyIdentity {
	id := CountyIdentity{code: code}
	if m != nil {
		if name, ok := m.NameOf(code); ok {
			id.name = name
			id.resolved = true
		}
	}
	return id
}

// CountyByName builds an identity from a name, resolving the code where
// the county map permits.
func CountyByName(name string, m *CountyMap) CountyIdentity {
	id := CountyIdentity{name: name}
	if m != nil {
		if code, ok := m.CodeOf(name); ok {
			id.code = code
			id.resolved = true
		}
	}
	return id
}

// Code returns the county code, or zero when unresolved code-less.
func (c CountyIdentity) Code() int { return c.code }

// Name returns the county name; falls back to the code rendered as text
// when the map had no entry.
func (c CountyIdentity) Name() string {
	if c.name != "" {
		return c.name
	}
	if c.code != 0 {
		return strconv.Itoa(c.code)
	}
	return ""
}

// Resolved reports whether both representations are known.
func (c CountyIdentity) Resolved() bool { return c.resolved }
