package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/claimcheck/internal/model"
)

func TestReportName(t *testing.T) {
	tests := map[string]string{
		"docs/article one.txt": "article-one",
		"/tmp/a:b.md":          "a_b",
		"plain":                "plain",
		".txt":                 "report",
	}
	for in, want := range tests {
		assert.Equal(t, want, reportName(in), in)
	}
}

func TestReadInput(t *testing.T) {
	t.Cleanup(func() { inputText = "" })

	inputText = "  Paris is the capital of France.  "
	text, err := readInput(nil, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", text)

	inputText = ""
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("From file.\n"), 0o644))
	text, err = readInput([]string{path}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "From file.", text)

	text, err = readInput([]string{"-"}, strings.NewReader("From stdin."))
	require.NoError(t, err)
	assert.Equal(t, "From stdin.", text)

	_, err = readInput(nil, strings.NewReader("   "))
	assert.Error(t, err)
}

func TestSetDefaults_EnvOverride(t *testing.T) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, setDefaults(v, model.DefaultConfig()))

	t.Setenv("CLAIMCHECK_LLM_MODEL", "llama3.2")
	t.Setenv("CLAIMCHECK_PIPELINE_CLAIM_PAUSE", "250ms")

	cfg := model.DefaultConfig()
	require.NoError(t, v.Unmarshal(cfg))

	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, int64(250), cfg.Pipeline.ClaimPause.Milliseconds())
	assert.Equal(t, model.DefaultConfig().Authority.PrimarySuffixes, cfg.Authority.PrimarySuffixes)
}

func TestApplyProviderEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "openai"
	applyProviderEnv(cfg)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)

	cfg = model.DefaultConfig()
	applyProviderEnv(cfg)
	assert.Equal(t, "http://ollama:11434", cfg.LLM.BaseURL)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claimcheck", "config.yaml")

	require.NoError(t, writeDefaultConfig(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# claimcheck configuration file")
	assert.Contains(t, string(data), "claim_pause: 1s")

	assert.Error(t, writeDefaultConfig(path), "existing file must not be overwritten")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "ERROR", parseLevel("ERROR").String())
	assert.Equal(t, "WARN", parseLevel("").String())
}
