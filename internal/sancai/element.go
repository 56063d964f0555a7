package sancai

// ElementOf maps a grid number to its element by the last digit.
func ElementOf(n int) Element {
	r := n % 10
	if r < 0 {
		r += 10
	}
	switch r {
	case 1, 2:
		return Wood
	case 3, 4:
		return Fire
	case 5, 6:
		return Earth
	case 7, 8:
		return Metal
	default:
		return Water
	}
}

// AssignElements maps every grid of g independently.
func AssignElements(g GridSet) ElementAssignment {
	return ElementAssignment{
		Heaven: ElementOf(g.Heaven),
		Human:  ElementOf(g.Human),
		Earth:  ElementOf(g.Earth),
		Total:  ElementOf(g.Total),
		Outer:  ElementOf(g.Outer),
	}
}

// Compose returns the three talents. Only heaven, human and earth participate, in that order.
func Compose(g GridSet) ThreeTalents {
	return ThreeTalents{ElementOf(g.Heaven), ElementOf(g.Human), ElementOf(g.Earth)}
}
