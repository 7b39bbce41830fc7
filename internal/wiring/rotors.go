package wiring

const (
	// LargeContacts is the contact count of cipher and control rotors.
	LargeContacts = 26
	// IndexContacts is the contact count of index rotors.
	IndexContacts = 10
)

// Large rotors serve as either cipher or control rotors. Selector 0 is the
// straight-through test rotor and is the fallback for unknown selectors.
// The entry at position i is the right-side contact wired to left-side contact i.
var largeWirings = []string{
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"INPXBWETGUYSAOCHVLDMQKZJFR",
	"WNDRIOZPTAXHFJYQBMSVEKUCGL",
	"TZGHOBKRVUXLQDMPNFWCJYEIAS",
	"YWTAHRQJVLCEXUNGBIPZMSDFOK",
	"QSLRBTEKOGAICFWYVMHJNXZUDP",
	"CHJDQIGNBSAKVTUOXFWLEPRMZY",
	"CDFAJXTIMNBEQHSUGRYLWZKVPO",
	"XHFESZDNRBCGKQIJLTVMUOYAPW",
	"EZJQXMOGYTCSFRIUPVNADLHWBK",
}

// Index rotors 10, 20, 30, 40 and 50, in that order.
var indexWirings = [][]int{
	{7, 5, 9, 1, 4, 8, 2, 6, 3, 0},
	{3, 8, 1, 0, 5, 9, 2, 7, 6, 4},
	{4, 0, 8, 6, 1, 5, 3, 2, 9, 7},
	{3, 9, 8, 0, 5, 2, 6, 1, 7, 4},
	{6, 4, 9, 7, 1, 3, 5, 2, 8, 0},
}

var (
	largeTables = buildLarge()
	indexTables = buildIndex()
)

func buildLarge() []Table {
	tables := make([]Table, len(largeWirings))
	for i, letters := range largeWirings {
		tables[i] = mustTable(lettersToContacts(letters))
	}
	return tables
}

func buildIndex() []Table {
	tables := make([]Table, len(indexWirings))
	for i, contacts := range indexWirings {
		tables[i] = mustTable(contacts)
	}
	return tables
}

// Large returns the wiring of a cipher or control rotor. Out-of-range
// selectors fall back to selector 0 without error, the way the machine
// tolerated a rotor number it did not know.
func Large(selector int) Table {
	return largeTables[ClampLarge(selector)]
}

// Index returns the wiring of an index rotor, clamping like Large.
func Index(selector int) Table {
	return indexTables[ClampIndex(selector)]
}

// ClampLarge returns the selector Large actually uses.
func ClampLarge(selector int) int {
	if selector < 0 || selector >= len(largeTables) {
		return 0
	}
	return selector
}

// ClampIndex returns the selector Index actually uses.
func ClampIndex(selector int) int {
	if selector < 0 || selector >= len(indexTables) {
		return 0
	}
	return selector
}

// LargeCount is the number of available cipher/control wirings.
func LargeCount() int {
	return len(largeTables)
}

// IndexCount is the number of available index wirings.
func IndexCount() int {
	return len(indexTables)
}
