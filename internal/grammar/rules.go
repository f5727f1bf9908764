// internal/grammar/rules.go
//
// Conjugation rule cards for the present indicative.
// Responsibilities:
//   - Generate the universe of rule cards: 18 generic regular-ending rules
//     plus one irregular rule per (verb, person) pair found in the lexicon.
//   - Apply a rule card to an infinitive, producing the conjugated form or
//     reporting that the rule is not applicable.
//   - Compute the expected (correct) form for an (infinitive, person) pair,
//     preferring lexicon data and falling back to the regular endings.
//
// Notes:
//   - Generation is a pure function of its input; callers shuffle downstream.
//   - Irregular stem/ending splits use longest-suffix-first matching against
//     the regular endings so short suffixes ("o", "e") cannot shadow longer
//     ones ("emos", "éis").

package grammar

import (
	"sort"
	"strings"
)

// Lexicon is the read-only verb data source the rule engine consumes.
// A nil Lexicon is valid and means "generic rules only".
type Lexicon interface {
	// Infinitives lists every known verb infinitive.
	Infinitives() []string
	// PresentForm returns the recorded present-indicative form for
	// (infinitive, person), or ok=false when unknown.
	PresentForm(infinitive string, p Person) (string, bool)
}

// Change is a from→to replacement applied to a stem or an ending.
type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RuleCard describes one conjugation transformation. A card with an empty
// Verb is generic and applies to any verb whose infinitive ending matches
// Ending.From; a card bound to a Verb is irregular. The restriction never
// changes after creation.
type RuleCard struct {
	Person Person  `json:"person"`
	Stem   *Change `json:"stem,omitempty"`
	Ending *Change `json:"ending,omitempty"`
	Verb   string  `json:"verb,omitempty"`
}

// Irregular reports whether the card is bound to a single verb.
func (r RuleCard) Irregular() bool { return r.Verb != "" }

// Pattern renders the transformation as "stemFrom->stemTo + endingFrom->endingTo",
// omitting whichever half is absent.
func (r RuleCard) Pattern() string {
	var parts []string
	if r.Stem != nil {
		parts = append(parts, r.Stem.From+"->"+r.Stem.To)
	}
	if r.Ending != nil {
		parts = append(parts, r.Ending.From+"->"+r.Ending.To)
	}
	return strings.Join(parts, " + ")
}

// endingClasses are the three regular infinitive endings, in table order.
var endingClasses = []string{"ar", "er", "ir"}

// regularEndings maps an ending class to its six person suffixes,
// indexed by Person.
var regularEndings = map[string][]string{
	"ar": {"o", "as", "a", "amos", "áis", "an"},
	"er": {"o", "es", "e", "emos", "éis", "en"},
	"ir": {"o", "es", "e", "imos", "ís", "en"},
}

// DetectEnding returns the regular ending class of an infinitive
// ("ar"/"er"/"ir"), or "" when none matches.
func DetectEnding(infinitive string) string {
	for _, e := range endingClasses {
		if strings.HasSuffix(infinitive, e) {
			return e
		}
	}
	return ""
}

// PresentIndicativeRules derives every rule card available for play.
// It always emits the 18 generic regular-ending rules; when lex is non-nil
// it additionally emits one verb-bound irregular rule per (verb, person)
// pair recorded in the lexicon.
func PresentIndicativeRules(lex Lexicon) []RuleCard {
	var rules []RuleCard
	for _, class := range endingClasses {
		for i, suffix := range regularEndings[class] {
			rules = append(rules, RuleCard{
				Person: Person(i),
				Ending: &Change{From: class, To: suffix},
			})
		}
	}
	if lex == nil {
		return rules
	}
	for _, inf := range lex.Infinitives() {
		if inf == "" {
			continue
		}
		class := DetectEnding(inf)
		if class == "" {
			class = lastRunes(inf, 2)
		}
		stem := strings.TrimSuffix(inf, class)
		for _, p := range Persons() {
			target, ok := lex.PresentForm(inf, p)
			if !ok || target == "" {
				continue
			}
			suffix := matchLongestSuffix(target, regularEndings[class])
			if suffix == "" {
				suffix = lastRunes(target, 2)
			}
			card := RuleCard{
				Person: p,
				Ending: &Change{From: class, To: suffix},
				Verb:   inf,
			}
			if irregularStem := strings.TrimSuffix(target, suffix); irregularStem != stem {
				card.Stem = &Change{From: stem, To: irregularStem}
			}
			rules = append(rules, card)
		}
	}
	return rules
}

// matchLongestSuffix returns the longest candidate that is a suffix of form,
// or "" when none matches. Longest-first ordering keeps short suffixes from
// shadowing longer ones when both would match.
func matchLongestSuffix(form string, candidates []string) string {
	sorted := append([]string(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	for _, c := range sorted {
		if strings.HasSuffix(form, c) {
			return c
		}
	}
	return ""
}

// lastRunes returns the final n runes of s (the whole string when shorter).
func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

// isEndingClass reports whether e is one of the three regular ending classes.
func isEndingClass(e string) bool {
	_, ok := regularEndings[e]
	return ok
}

// Apply computes the conjugated form produced by playing rule on infinitive.
// ok=false means the rule is not applicable: it is bound to a different verb,
// the infinitive has no regular ending class, the rule's ending-from is not a
// valid class or disagrees with the infinitive's ending, or the rule's
// stem-from disagrees with the bare stem. The infinitive is returned
// unchanged in that case.
func Apply(infinitive string, rule RuleCard) (string, bool) {
	if rule.Verb != "" && rule.Verb != infinitive {
		return infinitive, false
	}

	ending := DetectEnding(infinitive)
	if ending == "" {
		return infinitive, false
	}
	stem := strings.TrimSuffix(infinitive, ending)

	if rule.Ending != nil {
		if !isEndingClass(rule.Ending.From) || rule.Ending.From != ending {
			return infinitive, false
		}
	}

	newStem := stem
	if rule.Stem != nil {
		if stem != rule.Stem.From {
			return infinitive, false
		}
		newStem = rule.Stem.To
	}

	newEnding := ending
	if rule.Ending != nil {
		newEnding = rule.Ending.To
	}
	return newStem + newEnding, true
}

// ExpectedForm computes the grammatically correct present-indicative form
// for (infinitive, person). Lexicon data wins when available; otherwise the
// regular-ending tables are used. "" means no expectation is computable.
func ExpectedForm(infinitive string, p Person, lex Lexicon) string {
	if lex != nil {
		if form, ok := lex.PresentForm(infinitive, p); ok && form != "" {
			return form
		}
	}
	ending := DetectEnding(infinitive)
	if ending == "" || !p.Valid() {
		return ""
	}
	return strings.TrimSuffix(infinitive, ending) + regularEndings[ending][p]
}
