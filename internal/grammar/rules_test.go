package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeLexicon is a minimal in-memory Lexicon for tests.
type fakeLexicon struct {
	forms map[string]map[Person]string // infinitive → person → form
}

func (f *fakeLexicon) Infinitives() []string {
	var out []string
	for inf := range f.forms {
		out = append(out, inf)
	}
	return out
}

func (f *fakeLexicon) PresentForm(infinitive string, p Person) (string, bool) {
	forms, ok := f.forms[infinitive]
	if !ok {
		return "", false
	}
	form, ok := forms[p]
	return form, ok
}

func allForms(forms [NumPersons]string) map[Person]string {
	out := make(map[Person]string, NumPersons)
	for i, f := range forms {
		out[Person(i)] = f
	}
	return out
}

func TestExpectedFormRegular(t *testing.T) {
	cases := map[string][NumPersons]string{
		"hablar": {"hablo", "hablas", "habla", "hablamos", "habláis", "hablan"},
		"comer":  {"como", "comes", "come", "comemos", "coméis", "comen"},
		"vivir":  {"vivo", "vives", "vive", "vivimos", "vivís", "viven"},
	}
	for inf, forms := range cases {
		for i, want := range forms {
			got := ExpectedForm(inf, Person(i), nil)
			require.Equal(t, want, got, "%s %s", inf, Person(i).Label())
		}
	}
}

func TestExpectedFormPrefersLexicon(t *testing.T) {
	lex := &fakeLexicon{forms: map[string]map[Person]string{
		"ser": allForms([NumPersons]string{"soy", "eres", "es", "somos", "sois", "son"}),
	}}
	require.Equal(t, "soy", ExpectedForm("ser", FirstSingular, lex))
	// Unknown verb falls back to the regular tables.
	require.Equal(t, "hablo", ExpectedForm("hablar", FirstSingular, lex))
}

func TestExpectedFormUncomputable(t *testing.T) {
	require.Empty(t, ExpectedForm("xyz", FirstSingular, nil))
	require.Empty(t, ExpectedForm("hablar", Person(-1), nil))
	require.Empty(t, ExpectedForm("hablar", Person(6), nil))
}

func TestApplyBareRuleKeepsInfinitive(t *testing.T) {
	// No stem or ending fields: the result is the infinitive itself.
	got, ok := Apply("hablar", RuleCard{Person: FirstSingular})
	require.True(t, ok)
	require.Equal(t, "hablar", got)
}

func TestApplyGenericRule(t *testing.T) {
	got, ok := Apply("hablar", RuleCard{
		Person: SecondSingular,
		Ending: &Change{From: "ar", To: "as"},
	})
	require.True(t, ok)
	require.Equal(t, "hablas", got)
}

func TestApplyNotApplicable(t *testing.T) {
	tests := []struct {
		name       string
		infinitive string
		rule       RuleCard
	}{
		{
			name:       "bound to different verb",
			infinitive: "comer",
			rule:       RuleCard{Verb: "hablar", Ending: &Change{From: "er", To: "es"}},
		},
		{
			name:       "no regular ending class",
			infinitive: "xyz",
			rule:       RuleCard{Ending: &Change{From: "ar", To: "o"}},
		},
		{
			name:       "invalid ending-from class",
			infinitive: "hablar",
			rule:       RuleCard{Ending: &Change{From: "or", To: "o"}},
		},
		{
			name:       "ending-from disagrees with verb",
			infinitive: "hablar",
			rule:       RuleCard{Ending: &Change{From: "er", To: "es"}},
		},
		{
			name:       "stem-from disagrees with bare stem",
			infinitive: "hablar",
			rule: RuleCard{
				Stem:   &Change{From: "ten", To: "tien"},
				Ending: &Change{From: "ar", To: "o"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Apply(tt.infinitive, tt.rule)
			require.False(t, ok)
			require.Equal(t, tt.infinitive, got, "inapplicable rules return the infinitive unchanged")
		})
	}
}

func TestGenericRuleUniverse(t *testing.T) {
	rules := PresentIndicativeRules(nil)
	require.Len(t, rules, 18)
	for _, r := range rules {
		require.False(t, r.Irregular())
		require.Nil(t, r.Stem)
		require.NotNil(t, r.Ending)
		require.True(t, r.Person.Valid())
	}
	// Spot-check one rule per class.
	got, ok := Apply("cantar", RuleCard{Person: ThirdPlural, Ending: &Change{From: "ar", To: "an"}})
	require.True(t, ok)
	require.Equal(t, "cantan", got)
}

func TestIrregularRuleSplit(t *testing.T) {
	lex := &fakeLexicon{forms: map[string]map[Person]string{
		"tener": allForms([NumPersons]string{"tengo", "tienes", "tiene", "tenemos", "tenéis", "tienen"}),
	}}
	rules := PresentIndicativeRules(lex)

	find := func(p Person) RuleCard {
		for _, r := range rules {
			if r.Verb == "tener" && r.Person == p {
				return r
			}
		}
		t.Fatalf("no tener rule for %s", p.Label())
		return RuleCard{}
	}

	// "tenemos" splits on the long suffix "emos": stem is unchanged, so no
	// stem pair is emitted.
	r := find(FirstPlural)
	require.Nil(t, r.Stem)
	require.Equal(t, &Change{From: "er", To: "emos"}, r.Ending)

	// "tienes" splits on "es", leaving the irregular stem "tien".
	r = find(SecondSingular)
	require.Equal(t, &Change{From: "ten", To: "tien"}, r.Stem)
	require.Equal(t, &Change{From: "er", To: "es"}, r.Ending)
}

func TestIrregularStemMayBeEmpty(t *testing.T) {
	// "es" is exactly a regular suffix, so the irregular stem is empty and
	// applying the rule must still rebuild the lexicon form.
	lex := &fakeLexicon{forms: map[string]map[Person]string{
		"ser": {ThirdSingular: "es"},
	}}
	rules := PresentIndicativeRules(lex)
	var bound []RuleCard
	for _, r := range rules {
		if r.Irregular() {
			bound = append(bound, r)
		}
	}
	require.Len(t, bound, 1)
	require.Equal(t, &Change{From: "s", To: ""}, bound[0].Stem)

	got, ok := Apply("ser", bound[0])
	require.True(t, ok)
	require.Equal(t, "es", got)
}

// Generator/applier consistency law: every irregular rule, applied to its
// bound verb, reproduces the lexicon's recorded form exactly.
func TestGeneratorApplierRoundTrip(t *testing.T) {
	lex := &fakeLexicon{forms: map[string]map[Person]string{
		"ser":   allForms([NumPersons]string{"soy", "eres", "es", "somos", "sois", "son"}),
		"estar": allForms([NumPersons]string{"estoy", "estás", "está", "estamos", "estáis", "están"}),
		"tener": allForms([NumPersons]string{"tengo", "tienes", "tiene", "tenemos", "tenéis", "tienen"}),
		"decir": allForms([NumPersons]string{"digo", "dices", "dice", "decimos", "decís", "dicen"}),
		"ir":    allForms([NumPersons]string{"voy", "vas", "va", "vamos", "vais", "van"}),
	}}
	rules := PresentIndicativeRules(lex)

	seen := 0
	for _, r := range rules {
		if !r.Irregular() {
			continue
		}
		seen++
		want, ok := lex.PresentForm(r.Verb, r.Person)
		require.True(t, ok)
		got, ok := Apply(r.Verb, r)
		require.True(t, ok, "%s %s", r.Verb, r.Person.Label())
		require.Equal(t, want, got, "%s %s", r.Verb, r.Person.Label())
	}
	require.Equal(t, 5*NumPersons, seen)
}

func TestPattern(t *testing.T) {
	require.Equal(t, "ar->o", RuleCard{Ending: &Change{From: "ar", To: "o"}}.Pattern())
	require.Equal(t, "ten->tien + er->es", RuleCard{
		Stem:   &Change{From: "ten", To: "tien"},
		Ending: &Change{From: "er", To: "es"},
	}.Pattern())
	require.Empty(t, RuleCard{Person: FirstSingular}.Pattern())
}

func TestDetectEnding(t *testing.T) {
	require.Equal(t, "ar", DetectEnding("hablar"))
	require.Equal(t, "er", DetectEnding("comer"))
	require.Equal(t, "ir", DetectEnding("vivir"))
	require.Equal(t, "ir", DetectEnding("ir"))
	require.Empty(t, DetectEnding("xyz"))
}
