package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/llm"
	"github.com/jonathan/profile-card/internal/rendering"
	"github.com/jonathan/profile-card/internal/types"
)

const modelReply = `{"name":"Ada Lovelace","photo":null,"currentRole":"Engineer","currentCompany":"Engines",
"location":"London","overallRating":70,"summary":"Hi.","careerHistory":[],"education":[],
"skills":[{"label":"Go","score":80}],"linkedinConfidence":0.9}`

type fakeModel struct{ reply string }

func (f *fakeModel) Extract(context.Context, []byte) (string, error) { return f.reply, nil }
func (f *fakeModel) Model() string                                   { return "fake" }
func (f *fakeModel) Close() error                                    { return nil }

type fakeRenderer struct{ card *types.CardData }

func (f *fakeRenderer) Render(_ context.Context, card types.CardData) ([]byte, error) {
	f.card = &card
	return []byte("PNG"), nil
}

// useFakes swaps the service constructors for the duration of the test.
func useFakes(t *testing.T, reply string) *fakeRenderer {
	t.Helper()
	renderer := &fakeRenderer{}
	origModel, origRenderer := newModelClient, newRenderer
	newModelClient = func(context.Context, *config.Config) (llm.Extractor, error) {
		return &fakeModel{reply: reply}, nil
	}
	newRenderer = func(*config.Config, *logrus.Logger) rendering.Renderer { return renderer }
	t.Cleanup(func() { newModelClient, newRenderer = origModel, origRenderer })
	return renderer
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configPath = ""
	extractInputFile, extractOutputFile, extractCardFile, extractVerbose = "", "", "", false
	renderInputFile, renderOutputFile, renderVerbose = "", "", false
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractCommand_WritesProfile(t *testing.T) {
	useFakes(t, modelReply)
	in := writeFile(t, "profile.pdf", "%PDF-1.4")
	out := filepath.Join(t.TempDir(), "profile.json")

	_, stderr, err := executeCommand(t, "extract", "--in", in, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", gjson.GetBytes(data, "name").String())
	assert.Equal(t, int64(6), gjson.GetBytes(data, "skills.#").Int())
	assert.Contains(t, stderr, "warning: SPARSE_PROFILE")
}

func TestExtractCommand_StdoutAndVerbose(t *testing.T) {
	useFakes(t, modelReply)
	in := writeFile(t, "profile.pdf", "%PDF-1.4")

	stdout, stderr, err := executeCommand(t, "extract", "--in", in, "--verbose")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", gjson.Get(stdout, "name").String())
	assert.Contains(t, stderr, "EXTRACTED PROFILE")
	assert.Contains(t, stderr, "QUALITY WARNINGS")
	assert.Contains(t, stderr, "[extract]")
}

func TestExtractCommand_CardFeedsRender(t *testing.T) {
	renderer := useFakes(t, modelReply)
	in := writeFile(t, "profile.pdf", "%PDF-1.4")
	dir := t.TempDir()
	cardPath := filepath.Join(dir, "card.json")

	_, _, err := executeCommand(t, "extract", "--in", in, "--out", filepath.Join(dir, "p.json"), "--card", cardPath)
	require.NoError(t, err)

	data, err := os.ReadFile(cardPath)
	require.NoError(t, err)
	assert.Equal(t, float64(70), gjson.GetBytes(data, "overallRating").Float())
	assert.False(t, gjson.GetBytes(data, "summary").Exists())

	_, _, err = executeCommand(t, "render", "--in", cardPath, "--out", filepath.Join(dir, "card.png"))
	require.NoError(t, err)
	require.NotNil(t, renderer.card)
	assert.Equal(t, "Ada Lovelace", renderer.card.Name)
	assert.Len(t, renderer.card.Skills, 6)
}

func TestExtractCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		reply   string
		wantErr string
	}{
		{
			name:    "missing --in",
			args:    func(t *testing.T) []string { return []string{"extract"} },
			wantErr: "required flag",
		},
		{
			name: "not a pdf",
			args: func(t *testing.T) []string {
				return []string{"extract", "--in", writeFile(t, "notes.txt", "hello")}
			},
			wantErr: "INVALID_FILE_TYPE",
		},
		{
			name: "model reply unusable",
			args: func(t *testing.T) []string {
				return []string{"extract", "--in", writeFile(t, "p.pdf", "%PDF")}
			},
			reply:   "not json",
			wantErr: "extraction failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useFakes(t, tt.reply)
			_, _, err := executeCommand(t, tt.args(t)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	renderer := useFakes(t, "")
	in := writeFile(t, "card.json", `{"name":"Ada L","currentRole":"CEO","currentCompany":"X",
		"overallRating":99.7,"skills":[{"label":"","score":100}]}`)
	out := filepath.Join(t.TempDir(), "card.png")

	_, stderr, err := executeCommand(t, "render", "--in", in, "--out", out, "--verbose")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PNG", string(data))

	require.NotNil(t, renderer.card)
	assert.Equal(t, float64(98), renderer.card.OverallRating)
	assert.Equal(t, []types.CardSkill{{Label: "Skill", Score: 99}}, renderer.card.Skills)
	assert.Contains(t, stderr, "RENDERED CARD")
}

func TestRenderCommand_DefaultOutputName(t *testing.T) {
	useFakes(t, "")
	in := writeFile(t, "card.json", `{"name":"Ada L","overallRating":80,"skills":[]}`)
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := executeCommand(t, "render", "--in", in)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "Ada_L_linkedin_fc.png"))
	assert.NoError(t, err)
}

func TestRenderCommand_InvalidCard(t *testing.T) {
	useFakes(t, "")
	in := writeFile(t, "card.json", `{"overallRating":80,"skills":[]}`)

	_, _, err := executeCommand(t, "render", "--in", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid card data")
}

func TestLLMConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = config.ProviderGemini
	cfg.LLM.Model = "gemini-2.5-flash"

	got := llmConfig(cfg)
	require.NoError(t, got.Validate())
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, 4096, got.MaxTokens)
	assert.Contains(t, got.SystemPrompt, "65")
	assert.Contains(t, got.SystemPrompt, "98")
	assert.False(t, strings.Contains(got.SystemPrompt, "{{"), "placeholders are filled")
}

func TestNewModelClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg := config.Default()
	cfg.LLM.Model = config.DefaultAnthropicModel

	_, err := newModelClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}
