package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	lex := Default()
	assert.Same(t, lex, Default())

	assert.Equal(t, []string{"um", "uh", "like", "basically", "actually", "literally", "honestly", "anyway", "so", "right"}, lex.Fillers())
	assert.True(t, lex.IsFiller("um"))
	assert.False(t, lex.IsFiller("great"))
	assert.True(t, lex.IsPositive("great"))
	assert.True(t, lex.IsNegative("bug"))
	assert.False(t, lex.IsNegative("great"))
	assert.True(t, lex.IsPhraseStopword("the"))
	assert.False(t, lex.IsPhraseStopword("cat"))
	assert.True(t, lex.IsStopword("basically"))
	assert.True(t, lex.IsCommon("because"))
	assert.False(t, lex.IsCommon("kubernetes"))
	assert.GreaterOrEqual(t, lex.CommonCount(), 500)
}

func TestFillersReturnsCopy(t *testing.T) {
	lex := Default()
	fillers := lex.Fillers()
	fillers[0] = "changed"
	assert.Equal(t, "um", lex.Fillers()[0])
}

func TestWithCommonWordsDoesNotMutateReceiver(t *testing.T) {
	base := Default()
	extended := base.WithCommonWords([]string{"Kubernetes", "  ", "terraform"})

	assert.True(t, extended.IsCommon("kubernetes"))
	assert.True(t, extended.IsCommon("terraform"))
	assert.True(t, extended.IsCommon("because"))
	assert.False(t, base.IsCommon("kubernetes"))
	assert.True(t, extended.IsFiller("um"))
}

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	assert.True(t, filter("hello"))
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op", ""} {
		assert.False(t, filter(word), "expected %q to be rejected", word)
	}
	assert.True(t, FilterForLang("de")("grüße"))
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "common.txt")
	require.NoError(t, os.WriteFile(path, []byte("# extra words\nKubernetes\n\n  helm \nnaïve\n"), 0o644))

	words, err := LoadWords(path, FilterForLang("en"))
	require.NoError(t, err)
	assert.Equal(t, []string{"kubernetes", "helm"}, words)
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n\n"), 0o644))

	_, err := LoadWords(path, nil)
	require.Error(t, err)
}

func TestLoadWordsMissingFile(t *testing.T) {
	_, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
}
