package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apispec/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{
			name:    "exactly one",
			sources: []Source{{"file", true}, {"url", false}, {"content", false}},
		},
		{
			name:    "none",
			sources: []Source{{"file", false}, {"url", false}, {"content", false}},
			wantErr: "configuration error for input: mcp: must specify an input source (use file, url or content)",
		},
		{
			name:    "two",
			sources: []Source{{"file", true}, {"url", true}, {"content", false}},
			wantErr: "configuration error for input (value: file, url): mcp: must specify exactly one input source",
		},
		{
			name:    "single candidate missing",
			sources: []Source{{"file", false}},
			wantErr: "configuration error for input: mcp: must specify an input source (use file)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("mcp", tt.sources)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		})
	}
}
