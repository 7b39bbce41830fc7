package rotor

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrder(t *testing.T, s string) Order {
	t.Helper()
	order, err := ParseOrder(s)
	if err != nil {
		t.Fatalf("ParseOrder(%q) failed: %v", s, err)
	}
	return order
}

func setAll(positions [Slots]int, v int) [Slots]int {
	for i := range positions {
		positions[i] = v
	}
	return positions
}

func TestParseOrder(t *testing.T) {
	order := mustOrder(t, "3R1N9r2N6X")
	want := Order{
		{Selector: 3, Reversed: true},
		{Selector: 1},
		{Selector: 9, Reversed: true},
		{Selector: 2},
		{Selector: 6},
	}
	assert.Equal(t, want, order)
}

func TestParseOrderRejectsWrongLength(t *testing.T) {
	for _, s := range []string{"", "0N1N2N3N4", "0N1N2N3N4N5N"} {
		_, err := ParseOrder(s)
		if !errors.Is(err, ErrMalformedOrder) {
			t.Fatalf("ParseOrder(%q): expected ErrMalformedOrder, got %v", s, err)
		}
	}
}

func TestNonDigitSelectorFallsBackToDefaultWiring(t *testing.T) {
	bank := NewCipherBank(mustOrder(t, "#N1N2N3N4N"))
	assert.Equal(t, 0, bank.Rotor(0).Selector())

	plain := NewCipherBank(mustOrder(t, "0N1N2N3N4N"))
	for x := 0; x < 26; x++ {
		require.Equal(t, plain.Encipher(x), bank.Encipher(x))
	}
}

func TestBankInstallsOrientation(t *testing.T) {
	bank := NewControlBank(mustOrder(t, "5N6R7N8R9N"))
	assert.False(t, bank.Rotor(0).Reversed())
	assert.True(t, bank.Rotor(1).Reversed())
	assert.True(t, bank.Rotor(3).Reversed())
	assert.Equal(t, 8, bank.Rotor(3).Selector())
}

func TestCipherBankChainsLeftToRightOnEncipher(t *testing.T) {
	bank := NewCipherBank(mustOrder(t, "0N1N2N3N4N"))
	bank.SetPositions(setAll(bank.Positions(), 14))

	got := make([]int, 5)
	for x := range got {
		got[x] = bank.Encipher(x)
	}
	assert.Equal(t, []int{21, 18, 17, 20, 3}, got)

	for x := 0; x < 26; x++ {
		manual := x
		for slot := 0; slot < Slots; slot++ {
			manual = bank.Rotor(slot).EncipherPath(manual)
		}
		require.Equal(t, manual, bank.Encipher(x))

		back := x
		for slot := Slots - 1; slot >= 0; slot-- {
			back = bank.Rotor(slot).DecipherPath(back)
		}
		require.Equal(t, back, bank.Decipher(x))
	}
}

func TestControlBankChainsRightToLeft(t *testing.T) {
	bank := NewControlBank(mustOrder(t, "5N6N7N8N9N"))
	bank.SetPositions(setAll(bank.Positions(), 14))

	taps := []int{bank.Path(5), bank.Path(6), bank.Path(7), bank.Path(8)}
	assert.Equal(t, []int{8, 5, 16, 10}, taps)

	for x := 0; x < 26; x++ {
		manual := x
		for slot := Slots - 1; slot >= 0; slot-- {
			manual = bank.Rotor(slot).ControlPath(manual)
		}
		require.Equal(t, manual, bank.Path(x))
	}
}

func TestIndexBankChainsLeftToRight(t *testing.T) {
	bank := NewIndexBank(mustOrder(t, "0N1N2N3N4N"))

	got := make([]int, 10)
	for x := range got {
		got[x] = bank.Path(x)
	}
	assert.Equal(t, []int{8, 4, 0, 1, 9, 6, 7, 2, 3, 5}, got)
}

func TestBankPositionsRoundTrip(t *testing.T) {
	bank := NewIndexBank(mustOrder(t, "0N1N2N3N4N"))
	bank.SetPositions([Slots]int{1, 3, 5, 7, 9})
	assert.Equal(t, [Slots]int{1, 3, 5, 7, 9}, bank.Positions())
}

func TestBanksOwnIndependentRotors(t *testing.T) {
	order := mustOrder(t, "1N1N1N1N1N")
	bank := NewCipherBank(order)
	bank.Rotor(2).SetPosition(9)
	assert.Equal(t, [Slots]int{0, 0, 9, 0, 0}, bank.Positions())

	other := NewCipherBank(order)
	assert.Equal(t, [Slots]int{}, other.Positions())
}

func TestCipherBankInversionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("bank decipher undoes bank encipher", prop.ForAll(
		func(selectors []int, positions []int, flips []bool, x int) bool {
			var order Order
			var pos [Slots]int
			for i := 0; i < Slots; i++ {
				order[i] = Placement{Selector: selectors[i], Reversed: flips[i]}
				pos[i] = positions[i]
			}
			bank := NewCipherBank(order)
			bank.SetPositions(pos)
			return bank.Decipher(bank.Encipher(x)) == x
		},
		gen.SliceOfN(Slots, gen.IntRange(0, 9)),
		gen.SliceOfN(Slots, gen.IntRange(0, 25)),
		gen.SliceOfN(Slots, gen.Bool()),
		gen.IntRange(0, 25),
	))

	properties.TestingRun(t)
}
