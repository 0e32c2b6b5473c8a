package palette

import (
	"bufio"
	_ "embed"
	"strings"
)

//go:embed materials.txt
var builtinMaterials string

// MaterialSet resolves labels against a fixed set of block material names.
//
// Lookups are forgiving the way block-name matching usually is: surrounding
// whitespace and a "minecraft:" namespace are dropped, the name is upper-cased,
// and spaces or hyphens become underscores. So "minecraft:white_wool",
// "White Wool" and "WHITE_WOOL" all resolve to "WHITE_WOOL".
type MaterialSet struct {
	names map[string]struct{}
}

// NewMaterialSet returns a set containing names (normalized).
func NewMaterialSet(names ...string) *MaterialSet {
	m := &MaterialSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n = normalizeMaterial(n); n != "" {
			m.names[n] = struct{}{}
		}
	}
	return m
}

// Materials returns the embedded set of known block materials.
func Materials() *MaterialSet {
	var names []string
	sc := bufio.NewScanner(strings.NewReader(builtinMaterials))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return NewMaterialSet(names...)
}

// Resolve implements LabelResolver.
func (m *MaterialSet) Resolve(name string) (string, bool) {
	n := normalizeMaterial(name)
	if n == "" {
		return "", false
	}
	_, ok := m.names[n]
	return n, ok
}

// Len returns the number of known materials.
func (m *MaterialSet) Len() int {
	return len(m.names)
}

func normalizeMaterial(name string) string {
	n := strings.TrimSpace(name)
	if i := strings.IndexByte(n, ':'); i >= 0 && strings.EqualFold(n[:i], "minecraft") {
		n = n[i+1:]
	}
	n = strings.ToUpper(n)
	n = strings.NewReplacer(" ", "_", "-", "_").Replace(n)
	return n
}
