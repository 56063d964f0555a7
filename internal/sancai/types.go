// Package sancai provides the core types and arithmetic of the Three-Talent Five-Grid method.
package sancai

// Element is one of the five elements a grid number maps to.
type Element string

const (
	Wood  Element = "wood"  // 木 - remainder 1, 2
	Fire  Element = "fire"  // 火 - remainder 3, 4
	Earth Element = "earth" // 土 - remainder 5, 6
	Metal Element = "metal" // 金 - remainder 7, 8
	Water Element = "water" // 水 - remainder 9, 0
)

// Hanzi returns the Chinese label of the element.
func (e Element) Hanzi() string {
	switch e {
	case Wood:
		return "木"
	case Fire:
		return "火"
	case Earth:
		return "土"
	case Metal:
		return "金"
	case Water:
		return "水"
	default:
		return "?"
	}
}

// NameInput is the name to analyze. Both fields hold Chinese characters only.
type NameInput struct {
	Surname   string `json:"surname" yaml:"surname"`
	GivenName string `json:"givenName" yaml:"given_name"`
}

// CharStrokes records the resolved stroke count of one input character.
type CharStrokes struct {
	Char    string `json:"char"`
	Strokes int    `json:"strokes"`
	Source  string `json:"source"` // kangxi, traditional or simplified
}

// GridSet holds the five grids (五格). Every value is derived from the stroke counts.
type GridSet struct {
	Heaven int `json:"heaven"` // 天格
	Human  int `json:"human"`  // 人格
	Earth  int `json:"earth"`  // 地格
	Total  int `json:"total"`  // 总格
	Outer  int `json:"outer"`  // 外格
}

// ElementAssignment holds the element of each grid.
type ElementAssignment struct {
	Heaven Element `json:"heaven"`
	Human  Element `json:"human"`
	Earth  Element `json:"earth"`
	Total  Element `json:"total"`
	Outer  Element `json:"outer"`
}

// ThreeTalents is the ordered (heaven, human, earth) element triple (三才).
type ThreeTalents [3]Element

// String renders the triple in heaven-human-earth order, e.g. "土土火".
func (t ThreeTalents) String() string {
	return t[0].Hanzi() + t[1].Hanzi() + t[2].Hanzi()
}

// Result is a successful analysis.
type Result struct {
	Input        NameInput         `json:"input"`
	Surname      []CharStrokes     `json:"surname"`
	GivenName    []CharStrokes     `json:"givenName"`
	Grids        GridSet           `json:"grids"`
	Elements     ElementAssignment `json:"elements"`
	ThreeTalents ThreeTalents      `json:"threeTalents"`
	DictVersion  string            `json:"dictVersion"` // dictionary snapshot the strokes came from
}
