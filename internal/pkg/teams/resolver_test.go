package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExact(t *testing.T) {
	r := Default()

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Flamengo", "Flamengo", true},
		{"  VASCO ", "Vasco da Gama", true},
		{"mengão", "Flamengo", true},
		{"Timão", "Corinthians", true},
		{"verdao", "Palmeiras", true},
		{"galo", "Atlético-MG", true},
		{"são paulo", "São Paulo", true},
		{"", "", false},
		{"xyz", "", false},
	}

	for _, tt := range tests {
		got, ok := r.ResolveExact(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ResolveExact(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveExact_FirstEntryWins(t *testing.T) {
	// "tricolor" is a substring of aliases of Bahia, Fluminense, Grêmio and
	// São Paulo; the table order decides.
	got, ok := Default().ResolveExact("tricolor")
	require.True(t, ok)
	assert.Equal(t, "Bahia", got)
}

func TestResolveExact_DecomposedAccents(t *testing.T) {
	// "grêmio" typed with a combining circumflex (NFD)
	got, ok := Default().ResolveExact("gre\u0302mio")
	require.True(t, ok)
	assert.Equal(t, "Grêmio", got)
}

func TestResolveFuzzy(t *testing.T) {
	r := Default()

	got, ok := r.ResolveFuzzy("flamenho")
	require.True(t, ok)
	assert.Equal(t, "Flamengo", got)

	got, ok = r.ResolveFuzzy("corintias")
	require.True(t, ok)
	assert.Equal(t, "Corinthians", got)

	_, ok = r.ResolveFuzzy("xyz")
	assert.False(t, ok)

	_, ok = r.ResolveFuzzy("   ")
	assert.False(t, ok)
}

func TestResolveFuzzy_TieKeepsFirstSeen(t *testing.T) {
	r := NewResolver(Table{
		{"Alpha", []string{"abcd"}},
		{"Beta", []string{"abce"}},
	})
	got, ok := r.ResolveFuzzy("abcx")
	require.True(t, ok)
	assert.Equal(t, "Alpha", got)
}

func TestResolve(t *testing.T) {
	r := Default()

	name, exact, ok := r.Resolve("Palmeiras")
	require.True(t, ok)
	assert.True(t, exact)
	assert.Equal(t, "Palmeiras", name)

	// no alias is a substring of "vazco", so only the fuzzy pass finds it
	name, exact, ok = r.Resolve("vazco")
	require.True(t, ok)
	assert.False(t, exact)
	assert.Equal(t, "Vasco da Gama", name)

	_, _, ok = r.Resolve("qwerty")
	assert.False(t, ok)
}

func TestNewResolver_NormalizesAliases(t *testing.T) {
	r := NewResolver(Table{{"Remo", []string{"  LEÃO AZUL ", ""}}})
	got, ok := r.ResolveExact("leão azul")
	require.True(t, ok)
	assert.Equal(t, "Remo", got)
	assert.Equal(t, []string{"Remo"}, r.Names())
}

func TestDefaultTable_CoversSerieA(t *testing.T) {
	names := map[string]bool{}
	for _, n := range Default().Names() {
		names[n] = true
	}
	for _, club := range SerieA2026 {
		assert.True(t, names[club], "missing %s", club)
		got, ok := Default().ResolveExact(club)
		require.True(t, ok, club)
		assert.Equal(t, club, got)
	}
}

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]byte(`
teams:
  - name: Flamengo
    aliases: [flamengo, fla]
  - name: Vasco da Gama
    aliases: [vasco]
`))
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Flamengo", table[0].Name)
	assert.Equal(t, []string{"vasco"}, table[1].Aliases)

	_, err = ParseTable([]byte("teams: []"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("teams:\n  - name: Remo\n"))
	assert.Error(t, err)

	_, err = ParseTable([]byte("teams:\n  - name: Remo\n    aliases: [remo]\n  - name: Remo\n    aliases: [leao]\n"))
	assert.Error(t, err)
}
