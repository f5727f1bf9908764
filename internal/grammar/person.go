// internal/grammar/person.go
//
// Grammatical person enum for the present indicative.
// Defines:
//   - Person: one of six fixed persons with a stable 0–5 ordering.
//   - Token/Label accessors used for lexicon keys and display.

package grammar

// Person identifies one of the six grammatical persons of the
// present indicative. The zero-based ordering is stable and indexes
// the regular-ending tables directly.
type Person int

const (
	FirstSingular Person = iota
	SecondSingular
	ThirdSingular
	FirstPlural
	SecondPlural
	ThirdPlural
)

// NumPersons is the size of the person enum.
const NumPersons = 6

// Persons lists all six persons in table order.
func Persons() []Person {
	return []Person{
		FirstSingular, SecondSingular, ThirdSingular,
		FirstPlural, SecondPlural, ThirdPlural,
	}
}

var personTokens = [NumPersons]string{"1sg", "2sg", "3sg", "1pl", "2pl", "3pl"}

var personLabels = [NumPersons]string{
	"1st person singular",
	"2nd person singular",
	"3rd person singular",
	"1st person plural",
	"2nd person plural",
	"3rd person plural",
}

// Valid reports whether p is one of the six defined persons.
func (p Person) Valid() bool { return p >= 0 && p < NumPersons }

// Token returns the compact lexicon key for p (e.g. "1sg"), or "" when invalid.
func (p Person) Token() string {
	if !p.Valid() {
		return ""
	}
	return personTokens[p]
}

// Label returns the human-readable display label for p.
func (p Person) Label() string {
	if !p.Valid() {
		return "unknown person"
	}
	return personLabels[p]
}

// String implements fmt.Stringer using the compact token form.
func (p Person) String() string { return p.Token() }
