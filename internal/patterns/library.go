// Package patterns ships the built-in pattern library. The library is
// read-only: the core looks patterns up through engine.PatternSource and
// never mutates the content.
package patterns

import (
	"sort"
	"strings"

	"github.com/sworgkh/game-of-life-studio/internal/engine"
)

const (
	CategoryStillLife  = "still life"
	CategoryOscillator = "oscillator"
	CategorySpaceship  = "spaceship"
	CategoryMethuselah = "methuselah"
	CategoryGun        = "gun"
)

// def is the compact source form of a built-in pattern. Rows use 'O' for
// live cells and '.' for dead ones.
type def struct {
	name        string
	category    string
	description string
	rows        []string
}

var defs = []def{
	{"block", CategoryStillLife, "The smallest still life: a 2x2 square that never changes.", []string{
		"OO",
		"OO",
	}},
	{"beehive", CategoryStillLife, "Six-cell still life shaped like a hexagon.", []string{
		".OO.",
		"O..O",
		".OO.",
	}},
	{"loaf", CategoryStillLife, "Seven-cell still life with a distinctive notch.", []string{
		".OO.",
		"O..O",
		".O.O",
		"..O.",
	}},
	{"boat", CategoryStillLife, "Five-cell still life, the only one of its size.", []string{
		"OO.",
		"O.O",
		".O.",
	}},
	{"tub", CategoryStillLife, "Four cells in a diamond; stable on its own.", []string{
		".O.",
		"O.O",
		".O.",
	}},
	{"blinker", CategoryOscillator, "Period-2 oscillator: three cells flipping between a row and a column.", []string{
		"OOO",
	}},
	{"toad", CategoryOscillator, "Period-2 oscillator of six cells discovered by Simon Norton.", []string{
		".OOO",
		"OOO.",
	}},
	{"beacon", CategoryOscillator, "Period-2 oscillator: two diagonal blocks blinking at the join.", []string{
		"OO..",
		"OO..",
		"..OO",
		"..OO",
	}},
	{"pulsar", CategoryOscillator, "Large period-3 oscillator with fourfold symmetry.", []string{
		"..OOO...OOO..",
		".............",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		"..OOO...OOO..",
		".............",
		"..OOO...OOO..",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		".............",
		"..OOO...OOO..",
	}},
	{"pentadecathlon", CategoryOscillator, "Period-15 oscillator; ten cells in a row with bulges.", []string{
		"..O....O..",
		"OO.OOOO.OO",
		"..O....O..",
	}},
	{"glider", CategorySpaceship, "The classic diagonal spaceship; travels one cell down-right every four generations.", []string{
		".O.",
		"..O",
		"OOO",
	}},
	{"lwss", CategorySpaceship, "Lightweight spaceship; moves two cells left every four generations.", []string{
		".O..O",
		"O....",
		"O...O",
		"OOOO.",
	}},
	{"mwss", CategorySpaceship, "Middleweight spaceship, one cell wider than the LWSS.", []string{
		"..O...",
		"O...O.",
		".....O",
		"O....O",
		".OOOOO",
	}},
	{"r-pentomino", CategoryMethuselah, "Five cells that erupt for 1103 generations before settling.", []string{
		".OO",
		"OO.",
		".O.",
	}},
	{"diehard", CategoryMethuselah, "Vanishes completely after 130 generations.", []string{
		"......O.",
		"OO......",
		".O...OOO",
	}},
	{"acorn", CategoryMethuselah, "Seven cells that take 5206 generations to stabilize.", []string{
		".O.....",
		"...O...",
		"OO..OOO",
	}},
	{"gosper-glider-gun", CategoryGun, "The first known gun; emits a glider every 30 generations.", []string{
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................",
	}},
}

// Library indexes the built-in patterns by name.
type Library struct {
	byName  map[string]engine.Pattern
	ordered []engine.Pattern
}

// New parses the built-in definitions into a Library.
func New() *Library {
	lib := &Library{byName: make(map[string]engine.Pattern, len(defs))}
	for _, d := range defs {
		p := engine.NewPattern(d.name, d.category, d.description, parseRows(d.rows))
		lib.byName[d.name] = p
		lib.ordered = append(lib.ordered, p)
	}
	return lib
}

func parseRows(rows []string) [][]bool {
	cells := make([][]bool, len(rows))
	for i, row := range rows {
		cells[i] = make([]bool, len(row))
		for j := 0; j < len(row); j++ {
			switch row[j] {
			case 'O', '*', '#', '1':
				cells[i][j] = true
			}
		}
	}
	return cells
}

// Get returns the named pattern. Lookup is case-insensitive.
func (l *Library) Get(name string) (engine.Pattern, bool) {
	p, ok := l.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Search returns patterns whose name, category or description contains the
// query, case-insensitively. An empty query returns the whole library.
// Results are sorted by category then name.
func (l *Library) Search(query string) []engine.Pattern {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []engine.Pattern
	for _, p := range l.ordered {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of built-in patterns.
func (l *Library) Len() int { return len(l.ordered) }
