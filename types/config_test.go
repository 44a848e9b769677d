package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadConfigurations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text.yaml", "pipeline: stem_text\n")
	writeFile(t, dir, "tokens.yaml", `pipeline: stem_tokens
features: [skip_punctuation, trace]
params:
  protected_words: protected.txt
  min_length: 3
`)
	writeFile(t, dir, "broken.yaml", "pipeline: lemmatize\n")
	writeFile(t, dir, "notes.txt", "pipeline: stem_text\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700))

	cfgs, err := LoadConfigurations(dir)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)

	assert.Equal(t, "text", cfgs[0].Name)
	assert.Equal(t, StemTextPipeline, cfgs[0].Pipeline)
	assert.Empty(t, cfgs[0].ProtectedWordsPath())

	tokens := cfgs[1]
	assert.Equal(t, "tokens", tokens.Name)
	assert.True(t, tokens.CheckFeature(SkipPunctuation))
	assert.True(t, tokens.CheckFeature(Trace))
	assert.Equal(t, 3, tokens.Params.MinLength)
	assert.Equal(t, filepath.Join(dir, "protected.txt"), tokens.ProtectedWordsPath())
}

func TestLoadConfigurationPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "configs")
	require.NoError(t, os.Mkdir(dir, 0o700))
	writeFile(t, dir, "strict.yaml", "pipeline: stem_text\nparams:\n  protected_words: words.txt\n")

	cfgs, err := LoadConfigurations(dir)
	require.NoError(t, err)
	require.Len(t, cfgs, 1)
	assert.Equal(t, "strict", cfgs[0].Name)
	assert.Equal(t, filepath.Join(dir, "strict.yaml"), cfgs[0].FilePath)
	assert.Equal(t, filepath.Join(dir, "words.txt"), cfgs[0].ProtectedWordsPath())
}

func TestLoadConfigurationsMissingDir(t *testing.T) {
	_, err := LoadConfigurations(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Configuration{Pipeline: StemTextPipeline}.Validate())
	assert.Error(t, Configuration{Pipeline: "lemmatize"}.Validate())
	assert.Error(t, Configuration{Pipeline: StemTokensPipeline, Params: StemParams{MinLength: -1}}.Validate())
}
