package sancai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementOf(t *testing.T) {
	cases := map[int]Element{
		0: Water, 1: Wood, 2: Wood, 3: Fire, 4: Fire,
		5: Earth, 6: Earth, 7: Metal, 8: Metal, 9: Water,
		10: Water, 15: Earth, 23: Fire, 27: Metal, 81: Wood,
	}
	for n, want := range cases {
		assert.Equal(t, want, ElementOf(n), "ElementOf(%d)", n)
	}
}

func TestElementOfPeriodTen(t *testing.T) {
	valid := map[Element]bool{Wood: true, Fire: true, Earth: true, Metal: true, Water: true}
	for n := 0; n < 500; n++ {
		e := ElementOf(n)
		require.True(t, valid[e], "ElementOf(%d) = %q", n, e)
		assert.Equal(t, e, ElementOf(n+10), "period broken at %d", n)
	}
}

func TestComputeGrids(t *testing.T) {
	t.Run("two character given name", func(t *testing.T) {
		g := ComputeGrids(4, []int{11, 12})
		assert.Equal(t, GridSet{Heaven: 5, Human: 15, Earth: 23, Total: 27, Outer: 13}, g)
		assert.Equal(t, ThreeTalents{Earth, Earth, Fire}, Compose(g))
	})

	t.Run("single character given name adds one instead of doubling", func(t *testing.T) {
		g := ComputeGrids(4, []int{11})
		assert.Equal(t, 12, g.Earth)
		assert.Equal(t, 15, g.Total)
		assert.Equal(t, GridSet{Heaven: 5, Human: 15, Earth: 12, Total: 15, Outer: 1}, g)
	})

	t.Run("outer grid identity", func(t *testing.T) {
		for s := 1; s < 40; s++ {
			for g1 := 1; g1 < 30; g1++ {
				for _, given := range [][]int{{g1}, {g1, s + 3}} {
					g := ComputeGrids(s, given)
					assert.Equal(t, g.Total-g.Human+1, g.Outer)
				}
			}
		}
	})
}

func TestAssignElements(t *testing.T) {
	got := AssignElements(GridSet{Heaven: 5, Human: 15, Earth: 23, Total: 27, Outer: 13})
	assert.Equal(t, ElementAssignment{Heaven: Earth, Human: Earth, Earth: Fire, Total: Metal, Outer: Fire}, got)
}

func TestThreeTalentsString(t *testing.T) {
	assert.Equal(t, "土土火", ThreeTalents{Earth, Earth, Fire}.String())
	assert.Equal(t, "木金水", ThreeTalents{Wood, Metal, Water}.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		in     NameInput
		field  string
		reason InvalidReason
	}{
		{"empty surname", NameInput{Surname: "", GivenName: "浩然"}, FieldSurname, ReasonEmpty},
		{"empty given name", NameInput{Surname: "王", GivenName: ""}, FieldGivenName, ReasonEmpty},
		{"latin in given name", NameInput{Surname: "王", GivenName: "浩a"}, FieldGivenName, ReasonNonChinese},
		{"punctuation in surname", NameInput{Surname: "王。", GivenName: "浩"}, FieldSurname, ReasonNonChinese},
		{"space in given name", NameInput{Surname: "王", GivenName: "浩 然"}, FieldGivenName, ReasonNonChinese},
		{"fullwidth latin", NameInput{Surname: "王", GivenName: "Ａ"}, FieldGivenName, ReasonNonChinese},
		{"three character given name", NameInput{Surname: "王", GivenName: "浩然之"}, FieldGivenName, ReasonTooLong},
		{"surname checked first", NameInput{Surname: "x", GivenName: ""}, FieldSurname, ReasonNonChinese},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.in)
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, tt.reason, invalid.Reason)
			assert.Equal(t, CodeInvalidInput, invalid.Code())
		})
	}

	t.Run("valid input is returned unchanged", func(t *testing.T) {
		in := NameInput{Surname: "欧阳", GivenName: "浩然"}
		got, err := Validate(in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})
}

func TestErrorMessages(t *testing.T) {
	err := &UnresolvedCharacterError{Chars: []string{"䶮", "𠀀"}}
	assert.Contains(t, err.Error(), "䶮, 𠀀")

	cause := errors.New("connection refused")
	unavailable := &DictionaryUnavailableError{Source: "http://example.com/d.json", Cause: cause}
	assert.ErrorIs(t, unavailable, cause)
	assert.True(t, unavailable.Retryable())

	invalid := &InvalidInputError{Field: FieldGivenName, Reason: ReasonNonChinese, Offending: "a"}
	assert.Equal(t, `invalid givenName: "a" is not a Chinese character`, invalid.Error())
}

func TestNormalize(t *testing.T) {
	// U+F9B2 is a compatibility ideograph for 零 (U+96F6).
	in := NameInput{Surname: " 王\t", GivenName: "\uF9B2 "}
	got := Normalize(in)
	assert.Equal(t, NameInput{Surname: "王", GivenName: "零"}, got)

	_, err := Validate(got)
	assert.NoError(t, err)
}
