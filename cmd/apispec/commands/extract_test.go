package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apispec/internal/testutil"
	"github.com/erraggy/apispec/oaserrors"
)

func TestSetupLocalFlags(t *testing.T) {
	fs, flags := SetupLocalFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Source.File)
		assert.Empty(t, flags.Locator.Path)
		assert.Empty(t, flags.Locator.OperationID)
		assert.Equal(t, FormatJSON, flags.Extract.Output)
		assert.Equal(t, LevelError, flags.Extract.LogLevel)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-f", "api.yaml", "--path", "/auth", "--output", "yaml", "--keep-examples", "--keep-extensions"}
		require.NoError(t, fs.Parse(args))
		assert.Equal(t, "api.yaml", flags.Source.File)
		assert.Equal(t, "/auth", flags.Locator.Path)
		assert.Equal(t, FormatYAML, flags.Extract.Output)
		assert.True(t, flags.Extract.KeepExamples)
		assert.True(t, flags.Extract.KeepExtensions)
	})
}

func TestHandleLocal(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := testutil.WriteTempYAML(t, testutil.NewAuthDocument())

	require.NoError(t, HandleLocal([]string{"-f", path, "-p", "auth"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/auth")
	schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
	assert.Contains(t, schemas, "Credentials")
	assert.Contains(t, schemas, "Token")
	assert.NotContains(t, schemas, "Unused")
	assert.NotContains(t, stdout.String(), "x-rate-limit")
}

func TestHandleLocal_ToolYAML(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := testutil.WriteTempJSON(t, testutil.NewToolDocument())

	require.NoError(t, HandleLocal([]string{"-f", path, "--operation-id", "createNote", "--tool", "-o", "yaml"}))

	var tools []map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &tools))
	require.Len(t, tools, 1)
	assert.Equal(t, "createNote", tools[0]["name"])
	assert.Equal(t, "post", tools[0]["method"])
}

func TestHandleLocal_MethodFilter(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := testutil.WriteTempYAML(t, testutil.NewPetStoreOAS2Document())

	require.NoError(t, HandleLocal([]string{"-f", path, "-p", "/pets", "--method", "post"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	item := doc["paths"].(map[string]any)["/pets"].(map[string]any)
	assert.Contains(t, item, "post")
	assert.NotContains(t, item, "get")
}

func TestHandleLocal_DebugLogging(t *testing.T) {
	_, stderr := captureOutput(t)
	path := testutil.WriteTempYAML(t, testutil.NewAuthDocument())

	require.NoError(t, HandleLocal([]string{"-f", path, "-p", "/auth", "-l", "debug"}))
	assert.Contains(t, stderr.String(), "level=DEBUG")
}

func TestHandleLocal_Errors(t *testing.T) {
	path := testutil.WriteTempYAML(t, testutil.NewAuthDocument())

	tests := []struct {
		name    string
		args    []string
		wantErr string
		is      error
	}{
		{name: "no file", args: []string{"-p", "/auth"}, wantErr: "requires --file"},
		{name: "no locator", args: []string{"-f", path}, wantErr: "required"},
		{name: "bad output", args: []string{"-f", path, "-p", "/auth", "-o", "xml"}, wantErr: "invalid output format"},
		{name: "bad loglevel", args: []string{"-f", path, "-p", "/auth", "-l", "loud"}, wantErr: "invalid log level"},
		{name: "unknown path", args: []string{"-f", path, "-p", "/nope"}, is: oaserrors.ErrPathNotFound},
		{name: "bad method", args: []string{"-f", path, "-p", "/auth", "--method", "fetch"}, is: oaserrors.ErrConfig},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: "bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			err := HandleLocal(tt.args)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestHandleStdin(t *testing.T) {
	stdout, _ := captureOutput(t)
	data, err := json.Marshal(testutil.NewAuthDocument())
	require.NoError(t, err)
	pipeStdin(t, string(data))

	require.NoError(t, HandleStdin([]string{"--operation-id", "health"}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/health")
	assert.NotContains(t, doc["paths"], "/auth")
}

func TestHandleFetch(t *testing.T) {
	data, err := os.ReadFile(testutil.WriteTempYAML(t, testutil.NewCycleDocument()))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	t.Run("extracts", func(t *testing.T) {
		stdout, _ := captureOutput(t)
		require.NoError(t, HandleFetch([]string{"-u", srv.URL + "/openapi.yaml", "-o", "yaml", "/tree"}))

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
		schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
		assert.Contains(t, schemas, "Node")
		assert.Contains(t, schemas, "Edge")
	})

	t.Run("requires url", func(t *testing.T) {
		captureOutput(t)
		assert.ErrorContains(t, HandleFetch([]string{"-p", "/tree"}), "requires --url")
	})
}

func TestExtractCommands_Help(t *testing.T) {
	for name, handle := range map[string]func([]string) error{
		"fetch": HandleFetch,
		"local": HandleLocal,
		"stdin": HandleStdin,
		"query": HandleQuery,
		"paths": HandlePaths,
		"mcp":   HandleMCP,
	} {
		t.Run(name, func(t *testing.T) {
			captureOutput(t)
			assert.NoError(t, handle([]string{"--help"}))
		})
	}
}
