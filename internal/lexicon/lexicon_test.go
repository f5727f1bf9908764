package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BNDS-Robin23/spanish-rogue/internal/grammar"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("LEXICON_FILE", "")

	lex, err := Load()
	require.NoError(t, err)
	require.Equal(t, 12, lex.Size())
	require.Contains(t, lex.Infinitives(), "ser")

	form, ok := lex.PresentForm("ser", grammar.FirstSingular)
	require.True(t, ok)
	require.Equal(t, "soy", form)

	form, ok = lex.PresentForm("tener", grammar.SecondPlural)
	require.True(t, ok)
	require.Equal(t, "tenéis", form)

	v, ok := lex.Verb("hablar")
	require.True(t, ok)
	require.Equal(t, "hablar", v.Infinitive)
	require.Len(t, v.PresentIndicative, grammar.NumPersons)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "verbs.json")
	data := `{"verbs": [
		{"infinitive": "cantar", "present_indicative": {"1sg": "canto"}},
		{"infinitive": ""},
		{"infinitive": "cantar", "present_indicative": {"1sg": "duplicate"}}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("LEXICON_FILE", path)

	lex, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1, lex.Size(), "empty and duplicate entries are skipped")

	form, ok := lex.PresentForm("cantar", grammar.FirstSingular)
	require.True(t, ok)
	require.Equal(t, "canto", form)

	_, ok = lex.PresentForm("cantar", grammar.SecondSingular)
	require.False(t, ok, "missing form is reported, not invented")
}

func TestLoadFailures(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"verbs": []}`), 0o644))
	_, err = LoadFile(empty)
	require.Error(t, err)
}

func TestUnknownVerb(t *testing.T) {
	lex := New([]Verb{{Infinitive: "vivir"}})
	_, ok := lex.PresentForm("nope", grammar.FirstSingular)
	require.False(t, ok)
	_, ok = lex.Verb("nope")
	require.False(t, ok)
}
