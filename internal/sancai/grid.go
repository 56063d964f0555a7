package sancai

// ComputeGrids derives the five grids from resolved stroke counts.
//
// surname is the total surname stroke count (summed over every surname character).
// given holds the stroke counts of the given-name characters and must have one or two
// entries; callers validate the name before computing.
func ComputeGrids(surname int, given []int) GridSet {
	g1 := given[0]
	g2 := 0
	if len(given) > 1 {
		g2 = given[1]
	}

	var earth int
	if len(given) > 1 {
		earth = g1 + g2
	} else {
		// A single-character given name borrows a virtual 1, it is not doubled.
		earth = g1 + 1
	}

	total := surname + g1 + g2
	human := surname + g1

	return GridSet{
		Heaven: surname + 1,
		Human:  human,
		Earth:  earth,
		Total:  total,
		Outer:  total - human + 1,
	}
}
