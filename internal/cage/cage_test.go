package cage

import (
	"errors"
	"testing"

	"github.com/ecm-dev/ecm/internal/rotor"
	"github.com/ecm-dev/ecm/internal/wiring"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultCipher  = "0N1N2N3N4N"
	defaultControl = "5N6N7N8N9N"
	defaultIndex   = "0N1N2N3N4N"
)

func newZeroized(t *testing.T, cipher, control, index, indexPos string) *Cage {
	t.Helper()
	c, err := New(cipher, control, index, CSP889)
	require.NoError(t, err)
	c.Zeroize()
	require.NoError(t, c.SetIndexPositions(indexPos))
	return c
}

func runText(t *testing.T, c *Cage, text string, dir Direction) string {
	t.Helper()
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		o, err := c.Cycle(int(text[i]-'A'), dir)
		if err != nil {
			t.Fatalf("cycle %q failed: %v", text[i], err)
		}
		out[i] = byte('A' + o)
	}
	return string(out)
}

func TestNewStartsAtZero(t *testing.T) {
	c, err := New(defaultCipher, defaultControl, defaultIndex, CSP889)
	require.NoError(t, err)
	assert.Equal(t, Positions{Cipher: "AAAAA", Control: "AAAAA", Index: "00000"}, c.Positions())
	assert.Equal(t, 0, c.Rollover())
	assert.Equal(t, CSP889, c.Machine())
}

func TestZeroizeLeavesIndexBank(t *testing.T) {
	c, err := New(defaultCipher, defaultControl, defaultIndex, CSP889)
	require.NoError(t, err)
	require.NoError(t, c.SetIndexPositions("13579"))
	c.Zeroize()
	assert.Equal(t, Positions{Cipher: "OOOOO", Control: "OOOOO", Index: "13579"}, c.Positions())
}

func TestReferenceVector(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	assert.Equal(t, "AHIVPGEEF", runText(t, c, "TESTZTEST", Encrypt))
	assert.Equal(t, Positions{Cipher: "GLJII", Control: "ONFNO", Index: "00000"}, c.Positions())
	assert.Equal(t, 1, c.Rollover())

	d := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	assert.Equal(t, "TESTZTEST", runText(t, d, "AHIVPGEEF", Decrypt))
	assert.Equal(t, c.Positions(), d.Positions(), "stepping does not depend on direction")
}

func TestReversedRotorVector(t *testing.T) {
	const (
		cipher  = "3R1N9R2N6N"
		control = "4N0R8N7R5N"
		index   = "2N4R1N0N3R"
	)
	c := newZeroized(t, cipher, control, index, "26713")
	assert.Equal(t, "SQAIWPCAHOLDIB", runText(t, c, "ATTACKZATZDAWN", Encrypt))
	assert.Equal(t, Positions{Cipher: "SHXJC", Control: "OPAPO", Index: "26713"}, c.Positions())

	d := newZeroized(t, cipher, control, index, "26713")
	assert.Equal(t, "ATTACKZATZDAWN", runText(t, d, "SQAIWPCAHOLDIB", Decrypt))
}

func TestLongMessageVector(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	got := runText(t, c, "THEZQUICKZBROWNZFOXZJUMPSZOVERZTHEZLAYZDOG", Encrypt)
	assert.Equal(t, "ABSNWWOAGLCOUJZUHGYHCLQGDWBWDHTXBBYRZHRFFL", got)
	assert.Equal(t, Positions{Cipher: "OVOKJ", Control: "ONYMO", Index: "00000"}, c.Positions())
}

func TestExplicitStartPositions(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "13579")
	require.NoError(t, c.SetCipherPositions("ABCDE"))
	require.NoError(t, c.SetControlPositions("VWXYZ"))
	assert.Equal(t, "JNFAJ", runText(t, c, "HELLO", Encrypt))
	assert.Equal(t, Positions{Cipher: "AXAAZ", Control: "VWSYZ", Index: "13579"}, c.Positions())
}

func TestOutOfRangeSelectorMatchesSelectorZero(t *testing.T) {
	c := newZeroized(t, "#N1N2N3N4N", defaultControl, defaultIndex, "00000")
	assert.Equal(t, "AHIVPGEEF", runText(t, c, "TESTZTEST", Encrypt))
}

func TestCageBanksAreNotShared(t *testing.T) {
	a := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	b := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	runText(t, a, "TESTZTEST", Encrypt)
	assert.Equal(t, Positions{Cipher: "OOOOO", Control: "OOOOO", Index: "00000"}, b.Positions())
}

func TestControlOdometerCarry(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	bank := c.ControlBank()

	mediumMoves := 0
	for i := 0; i < 26; i++ {
		before := bank.Rotor(mediumSlot).Position()
		c.StepControlBank()
		if bank.Rotor(mediumSlot).Position() != before {
			mediumMoves++
		}
		require.Equal(t, ReferencePosition, bank.Rotor(0).Position(), "slot 0 never steps")
		require.Equal(t, ReferencePosition, bank.Rotor(4).Position(), "slot 4 never steps")
	}
	assert.Equal(t, 1, mediumMoves)
	assert.Equal(t, ReferencePosition, bank.Rotor(fastSlot).Position())
	assert.Equal(t, "ONONO", c.ControlPositions())

	for i := 0; i < 26*26-26; i++ {
		c.StepControlBank()
	}
	assert.Equal(t, "ONOOO", c.ControlPositions(), "slow rotor carries once medium and fast line up")
}

func TestCipherRotorStepsAtMostOncePerCycle(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")

	hits := map[int]int{}
	for _, tap := range c.coupling.Taps() {
		contact, ok := c.coupling.IndexContact(c.ControlPath(tap))
		require.True(t, ok)
		hits[wiring.Magnet(c.IndexPath(contact))]++
	}
	require.Equal(t, 2, hits[2], "two taps energize slot 2 in this state")

	moved := c.StepCipherBank()
	assert.Equal(t, [rotor.Slots]bool{true, false, true, false, true}, moved)
	assert.Equal(t, "NONON", c.CipherPositions())
	assert.Equal(t, 0, c.Rollover())
}

func TestStepCipherBankLeavesControlBank(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	c.StepCipherBank()
	assert.Equal(t, "OOOOO", c.ControlPositions())
}

func TestRolloverCounter(t *testing.T) {
	c := newZeroized(t, "3R1N9R2N6N", "4N0R8N7R5N", "2N4R1N0N3R", "26713")

	var rolls []int
	for _, ch := range "ATTACKZATZDAWN" {
		_, err := c.Cycle(int(ch-'A'), Encrypt)
		require.NoError(t, err)
		rolls = append(rolls, c.Rollover())
	}
	assert.Equal(t, []int{1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1}, rolls)
}

func TestSetCipherPositionsResetsRollover(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	runText(t, c, "TEST", Encrypt)
	require.Equal(t, 1, c.Rollover())

	pos := []byte(c.CipherPositions())
	pos[2] = 'A' + (pos[2]-'A'+1)%26
	require.NoError(t, c.SetCipherPositions(string(pos)))
	assert.Equal(t, 1, c.Rollover(), "middle slots do not touch the counter")

	pos[4] = 'A' + (pos[4]-'A'+1)%26
	require.NoError(t, c.SetCipherPositions(string(pos)))
	assert.Equal(t, 0, c.Rollover())
}

func TestZeroizeStep(t *testing.T) {
	c, err := New(defaultCipher, defaultControl, defaultIndex, CSP889)
	require.NoError(t, err)
	require.NoError(t, c.SetCipherPositions("ABCDE"))
	require.NoError(t, c.SetControlPositions("VWXYZ"))

	assert.False(t, c.ZeroizeStep())
	assert.Equal(t, "ZABCD", c.CipherPositions())
	assert.Equal(t, "UVWXY", c.ControlPositions())
}

func TestZeroizeStepFollowsOrientation(t *testing.T) {
	c, err := New(defaultCipher, "5N6R7N8N9N", defaultIndex, CSP889)
	require.NoError(t, err)
	require.NoError(t, c.SetCipherPositions("ABCDE"))
	require.NoError(t, c.SetControlPositions("VWXYZ"))

	steps := 0
	for !c.ZeroizeStep() {
		steps++
		require.Less(t, steps, 26)
	}
	assert.Equal(t, 17, steps)
	assert.Equal(t, "OOOOO", c.CipherPositions())
	assert.Equal(t, "OOOOO", c.ControlPositions())
	assert.True(t, c.ZeroizeStep(), "an already zeroized cage stays put")
}

func TestAdvanceControlRotor(t *testing.T) {
	c := newZeroized(t, defaultCipher, "5N6N7R8N9N", defaultIndex, "00000")
	require.NoError(t, c.AdvanceControlRotor(0))
	require.NoError(t, c.AdvanceControlRotor(2))
	assert.Equal(t, "NOPOO", c.ControlPositions())

	err := c.AdvanceControlRotor(5)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "NOPOO", c.ControlPositions())
}

func TestCycleRejectsInvalidInputWithoutStepping(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	before := c.Positions()

	for _, in := range []int{-1, 26, 100} {
		_, err := c.Cycle(in, Encrypt)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
	_, err := c.Cycle(3, Direction(9))
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, before, c.Positions())
	assert.Equal(t, 0, c.Rollover())
}

func TestPositionSettersAreStrict(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	before := c.Positions()

	for _, s := range []string{"", "ABCD", "ABCDEF", "abcde", "ABC1E"} {
		require.ErrorIs(t, c.SetCipherPositions(s), ErrInvalidInput, "cipher %q", s)
		require.ErrorIs(t, c.SetControlPositions(s), ErrInvalidInput, "control %q", s)
	}
	for _, s := range []string{"1234", "123456", "1234A"} {
		require.ErrorIs(t, c.SetIndexPositions(s), ErrInvalidInput, "index %q", s)
	}

	err := c.SetPositions(Positions{Cipher: "ABCDE", Control: "ABCDE", Index: "xx"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, before, c.Positions())
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	_, err := New("0N1N", defaultControl, defaultIndex, CSP889)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, rotor.ErrMalformedOrder)

	_, err = New(defaultCipher, defaultControl, defaultIndex, CSP2900)
	require.ErrorIs(t, err, ErrUnsupportedConfiguration)

	_, err = New(defaultCipher, defaultControl, defaultIndex, Machine(42))
	require.ErrorIs(t, err, ErrUnsupportedConfiguration)
}

func TestSetMachine(t *testing.T) {
	c := newZeroized(t, defaultCipher, defaultControl, defaultIndex, "00000")
	require.ErrorIs(t, c.SetMachine(CSP2900), ErrUnsupportedConfiguration)
	assert.Equal(t, CSP889, c.Machine())
	require.NoError(t, c.SetMachine(CSP889))
}

func TestParseMachine(t *testing.T) {
	for in, want := range map[string]Machine{
		"csp889":   CSP889,
		"CSP-889":  CSP889,
		" 889 ":    CSP889,
		"csp2900":  CSP2900,
		"CSP-2900": CSP2900,
	} {
		got, err := ParseMachine(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMachine("sigaba")
	require.ErrorIs(t, err, ErrUnsupportedConfiguration)
	assert.Equal(t, "csp889", CSP889.String())
	assert.Equal(t, "decrypt", Decrypt.String())
}

func TestCycleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	start := func() *Cage {
		c, err := New("3R1N9R2N6N", "4N0R8N7R5N", "2N4R1N0N3R", CSP889)
		if err != nil {
			panic(err)
		}
		c.Zeroize()
		return c
	}

	properties.Property("decrypting from the same start restores the message", prop.ForAll(
		func(msg []int) bool {
			enc, dec := start(), start()
			for _, x := range msg {
				ct, err := enc.Cycle(x, Encrypt)
				if err != nil {
					return false
				}
				pt, err := dec.Cycle(ct, Decrypt)
				if err != nil || pt != x {
					return false
				}
			}
			return enc.Positions() == dec.Positions()
		},
		gen.SliceOf(gen.IntRange(0, 25)),
	))

	properties.Property("replaying a message gives the same ciphertext and positions", prop.ForAll(
		func(msg []int) bool {
			a, b := start(), start()
			for _, x := range msg {
				ca, _ := a.Cycle(x, Encrypt)
				cb, _ := b.Cycle(x, Encrypt)
				if ca != cb {
					return false
				}
			}
			return a.Positions() == b.Positions() && a.Rollover() == b.Rollover()
		},
		gen.SliceOf(gen.IntRange(0, 25)),
	))

	properties.Property("no cipher rotor moves more than one step per cycle", prop.ForAll(
		func(msg []int) bool {
			c := start()
			for _, x := range msg {
				before := c.CipherBank().Positions()
				if _, err := c.Cycle(x, Encrypt); err != nil {
					return false
				}
				after := c.CipherBank().Positions()
				for slot := range before {
					d := (after[slot] - before[slot] + 26) % 26
					if d != 0 && d != 1 && d != 25 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 25)),
	))

	properties.TestingRun(t)
}
