package tileset

import (
	"fmt"
	"sort"
)

// Circuit returns the 13-tile circuit-board set. Assets are the image
// paths "circuit/<n>.png". Tile 5, the bent trace, must never touch a
// copy of itself. The catalog built from it holds 33 tiles: tile 12
// duplicates tile 6, and symmetric tiles lose their repeated rotations.
func Circuit() []BaseTile {
	defs := [][NumDirections]Signature{
		{"AAA", "AAA", "AAA", "AAA"},
		{"BBB", "BBB", "BBB", "BBB"},
		{"BBB", "BCB", "BBB", "BBB"},
		{"BBB", "BDB", "BBB", "BDB"},
		{"ABB", "BCB", "BBA", "AAA"},
		{"ABB", "BBB", "BBB", "BBA"},
		{"BBB", "BCB", "BBB", "BCB"},
		{"BDB", "BCB", "BDB", "BCB"},
		{"BDB", "BBB", "BCB", "BBB"},
		{"BCB", "BCB", "BBB", "BCB"},
		{"BCB", "BCB", "BCB", "BCB"},
		{"BCB", "BCB", "BBB", "BBB"},
		{"BBB", "BCB", "BBB", "BCB"},
	}
	out := make([]BaseTile, len(defs))
	for i, d := range defs {
		out[i] = BaseTile{
			Borders:       d[:],
			Asset:         fmt.Sprintf("circuit/%d.png", i),
			SelfExcluding: i == 5,
		}
	}
	return out
}

// Demo returns the 5-tile pipe demo: a blank tile and a T-junction in
// each orientation. The rotations collapse onto the base tiles, so the
// catalog has exactly 5 entries.
func Demo() []BaseTile {
	return []BaseTile{
		{Borders: []Signature{"AAA", "AAA", "AAA", "AAA"}, Asset: "demo/blank.png"},
		{Borders: []Signature{"ABA", "ABA", "AAA", "ABA"}, Asset: "demo/up.png"},
		{Borders: []Signature{"ABA", "ABA", "ABA", "AAA"}, Asset: "demo/right.png"},
		{Borders: []Signature{"AAA", "ABA", "ABA", "ABA"}, Asset: "demo/down.png"},
		{Borders: []Signature{"ABA", "AAA", "ABA", "ABA"}, Asset: "demo/left.png"},
	}
}

var themes = map[string]func() []BaseTile{
	"circuit": Circuit,
	"demo":    Demo,
}

// Theme returns the base tiles registered under name.
// Returns ErrUnknownTheme for unregistered names.
func Theme(name string) ([]BaseTile, error) {
	fn, ok := themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return fn(), nil
}

// ThemeNames lists the registered theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
