// internal/lexicon/lexicon.go
//
// Verb lexicon loading for the conjugation engine.
//
// Responsibilities:
//   - Load the verb lexicon from an environment-provided JSON file or fall
//     back to the embedded default set.
//   - Index verbs by infinitive for quick lookups.
//   - Supply the read-only operations the rule engine consumes:
//     Infinitives, PresentForm, Verb.
//
// Data format (JSON):
//   {"verbs": [{"infinitive": "...", "present_indicative": {"1sg": "...", ...}}]}
//   Present-indicative forms are keyed by the compact person tokens
//   "1sg".."3pl" (see grammar.Person.Token).
//
// Environment variables:
//   LEXICON_FILE=/path/to/verbs.json
//
// Constraints:
//   • Entries without an infinitive are skipped.
//   • Load failure degrades: callers proceed without a lexicon rather than
//     aborting the game.

package lexicon

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BNDS-Robin23/spanish-rogue/internal/grammar"
)

//go:embed verbs.json
var embeddedVerbs []byte

// Verb is one lexicon entry: an infinitive plus its recorded
// present-indicative forms keyed by person token.
type Verb struct {
	Infinitive        string            `json:"infinitive"`
	PresentIndicative map[string]string `json:"present_indicative"`
}

// Lexicon is an immutable, indexed verb lexicon. It implements
// grammar.Lexicon.
type Lexicon struct {
	verbs []Verb
	byInf map[string]int // infinitive → index into verbs
}

// fileFormat is the on-disk JSON envelope.
type fileFormat struct {
	Verbs []Verb `json:"verbs"`
}

// New builds a Lexicon from a verb list, skipping entries without an
// infinitive. The first entry wins on duplicate infinitives.
func New(verbs []Verb) *Lexicon {
	l := &Lexicon{byInf: make(map[string]int, len(verbs))}
	for _, v := range verbs {
		if v.Infinitive == "" {
			continue
		}
		if _, dup := l.byInf[v.Infinitive]; dup {
			continue
		}
		l.byInf[v.Infinitive] = len(l.verbs)
		l.verbs = append(l.verbs, v)
	}
	return l
}

// Load builds the lexicon from LEXICON_FILE when set, otherwise from the
// embedded default verb set. An empty result is an error so callers can
// fall back to lexicon-less play.
func Load() (*Lexicon, error) {
	if path := os.Getenv("LEXICON_FILE"); path != "" {
		return LoadFile(path)
	}
	return parse(embeddedVerbs)
}

// LoadFile builds the lexicon from a JSON file on disk.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Lexicon, error) {
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	l := New(f.Verbs)
	if l.Size() == 0 {
		return nil, errors.New("lexicon: no verbs loaded")
	}
	return l, nil
}

// Size returns the number of verbs in the lexicon.
func (l *Lexicon) Size() int {
	if l == nil {
		return 0
	}
	return len(l.verbs)
}

// Infinitives lists every known verb infinitive, in lexicon order.
func (l *Lexicon) Infinitives() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.verbs))
	for i, v := range l.verbs {
		out[i] = v.Infinitive
	}
	return out
}

// PresentForm returns the recorded present-indicative form for
// (infinitive, person), or ok=false when the verb or the form is unknown.
func (l *Lexicon) PresentForm(infinitive string, p grammar.Person) (string, bool) {
	v, ok := l.Verb(infinitive)
	if !ok {
		return "", false
	}
	form, ok := v.PresentIndicative[p.Token()]
	if !ok || form == "" {
		return "", false
	}
	return form, true
}

// Verb returns the full lexicon entry for an infinitive.
func (l *Lexicon) Verb(infinitive string) (Verb, bool) {
	if l == nil {
		return Verb{}, false
	}
	i, ok := l.byInf[infinitive]
	if !ok {
		return Verb{}, false
	}
	return l.verbs[i], true
}
