package wiring

// NotConnected marks a control contact with no wire to the index bank.
const NotConnected = -1

// Magnets is the number of cipher-rotor stepping magnets, one per cipher slot.
const Magnets = 5

// Coupling is the fixed wiring from the left side of the control bank to the
// left side of the index bank, plus the control contacts energized each cycle.
type Coupling struct {
	firstTap, lastTap int
	controlIndex      [LargeContacts]int
}

var csp889 = Coupling{
	firstTap: 'F' - 'A',
	lastTap:  'I' - 'A',
	controlIndex: [LargeContacts]int{
		// a b c d e f g h i j k l m n o p q r s t u v w x y z
		9, 1, 2, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6, 6, 6, 7, 7, 7, 7, 7, 8, 8, 8, 8, 8, 8,
	},
}

// P, Q and R are open on the CSP-2900.
var csp2900 = Coupling{
	firstTap: 'D' - 'A',
	lastTap:  'I' - 'A',
	controlIndex: [LargeContacts]int{
		9, 1, 2, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6, 6, 6,
		NotConnected, NotConnected, NotConnected,
		7, 7, 0, 0, 8, 8, 8, 8,
	},
}

// CSP889 returns the coupling of the CSP-889 machine type.
func CSP889() Coupling {
	return csp889
}

// CSP2900 returns the coupling of the CSP-2900 machine type.
func CSP2900() Coupling {
	return csp2900
}

// Taps returns the control contacts sampled each cycle, in ascending order.
func (c Coupling) Taps() []int {
	taps := make([]int, 0, c.lastTap-c.firstTap+1)
	for tap := c.firstTap; tap <= c.lastTap; tap++ {
		taps = append(taps, tap)
	}
	return taps
}

// IndexContact follows the wire from a control-bank output contact to the
// index bank. ok is false for an open contact.
func (c Coupling) IndexContact(control int) (contact int, ok bool) {
	contact = c.controlIndex[control]
	return contact, contact != NotConnected
}

// Magnets on the right side of the index bank, numbered 1-5 as on the machine.
var indexMagnet = [IndexContacts]int{1, 5, 5, 4, 4, 3, 3, 2, 2, 1}

// Magnet returns the 0-based cipher slot whose magnet is wired to the given
// index-bank output contact.
func Magnet(indexContact int) int {
	return indexMagnet[indexContact] - 1
}
