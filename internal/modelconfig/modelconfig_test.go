package modelconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gotag/gotag/internal/registry"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDescriptors_ParsesValidArray(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "models.json", `[
		{"name": "gpt", "type": "AZURE_OPEN_AI", "endpoint": "https://x/v1"},
		{"name": "voice", "type": "AZURE_OPEN_AI_REALTIME", "endpoint": "https://y/"}
	]`)

	descriptors, err := LoadDescriptors(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	require.Equal(t, "gpt", descriptors[0].Name)
	require.Equal(t, "AZURE_OPEN_AI", descriptors[0].Type)
	require.Equal(t, "https://x/v1", descriptors[0].Fields["endpoint"])
}

func TestLoadDescriptors_RejectsMissingNameOrType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "models.json", `[{"type": "AZURE_OPEN_AI"}]`)

	_, err := LoadDescriptors(path)
	require.Error(t, err)
}

func TestLoadDescriptors_RejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "models.json", `not json`)

	_, err := LoadDescriptors(path)
	require.Error(t, err)
}

func TestLoadDescriptors_MissingFileFails(t *testing.T) {
	_, err := LoadDescriptors(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadCredentials_MissingFileReturnsEmptyMap(t *testing.T) {
	creds, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.Empty(t, creds)
}

func TestLoadCredentials_ParsesNameToKeyMap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "creds.json", `{"gpt": "sk-123", "voice": "sk-456"}`)

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	require.Equal(t, "sk-123", creds["gpt"])
}

func TestRegisterAll_UnknownTypeFailsWithNamedContext(t *testing.T) {
	reg := registry.New(nil)
	descriptors := []Descriptor{{Name: "mystery", Type: "UNHEARD_OF", Fields: map[string]any{}}}

	err := RegisterAll(reg, descriptors, map[string]string{}, DefaultBuilders())
	require.Error(t, err)
	require.Contains(t, err.Error(), "mystery")
	require.Contains(t, err.Error(), "UNHEARD_OF")
}

func TestRegisterAll_BuildsAndRegistersKnownTypes(t *testing.T) {
	reg := registry.New(nil)
	descriptors := []Descriptor{
		{Name: "gpt", Type: "AZURE_OPEN_AI", Fields: map[string]any{"endpoint": "https://x/v1"}},
	}
	creds := map[string]string{"gpt": "sk-123"}

	err := RegisterAll(reg, descriptors, creds, DefaultBuilders())
	require.NoError(t, err)

	model, err := reg.Model("gpt")
	require.NoError(t, err)
	require.Equal(t, "HTTP_JSON", model.Metadata()["type"])
}

func TestRegisterAll_DuplicateNameFails(t *testing.T) {
	reg := registry.New(nil)
	descriptors := []Descriptor{
		{Name: "gpt", Type: "AZURE_OPEN_AI", Fields: map[string]any{"endpoint": "https://x/v1"}},
		{Name: "gpt", Type: "AZURE_OPEN_AI", Fields: map[string]any{"endpoint": "https://x/v2"}},
	}

	err := RegisterAll(reg, descriptors, map[string]string{"gpt": "sk"}, DefaultBuilders())
	require.Error(t, err)
}

func TestRegisterAll_MisconfiguredBuilderFailsWithModelContext(t *testing.T) {
	reg := registry.New(nil)
	descriptors := []Descriptor{
		{Name: "gpt", Type: "AZURE_OPEN_AI", Fields: map[string]any{}}, // no endpoint
	}

	err := RegisterAll(reg, descriptors, map[string]string{"gpt": "sk"}, DefaultBuilders())
	require.Error(t, err)
	require.Contains(t, err.Error(), "gpt")
}

func TestLoad_ReadsBothFilesAndRegisters(t *testing.T) {
	dir := t.TempDir()
	modelsPath := writeFile(t, dir, "models.json", `[{"name": "gpt", "type": "AZURE_OPEN_AI", "endpoint": "https://x/v1"}]`)
	credsPath := writeFile(t, dir, "creds.json", `{"gpt": "sk-123"}`)

	reg := registry.New(nil)
	require.NoError(t, Load(modelsPath, credsPath, reg, DefaultBuilders()))

	_, err := reg.Model("gpt")
	require.NoError(t, err)
}
