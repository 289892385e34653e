package fuzzy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_Select(t *testing.T) {
	var out bytes.Buffer
	finder := NewWithStreams("Select visibility", strings.NewReader("2\n"), &out)
	finder.AddOption("private", "Visible to organization members you grant access")
	finder.AddOption("internal", "Visible to all organization members")
	finder.AddOption("public", "Visible to everyone")

	value, err := finder.Select()
	require.NoError(t, err)
	assert.Equal(t, "internal", value)

	output := out.String()
	assert.Contains(t, output, "Select visibility")
	assert.Contains(t, output, "1. private")
	assert.Contains(t, output, "3. public")
	assert.Contains(t, output, "Select option (1-3)")
}

func TestFinder_SelectTrimsInput(t *testing.T) {
	var out bytes.Buffer
	finder := NewWithStreams("Pick one", strings.NewReader("  1  \n"), &out)
	finder.AddOption("normal", "")

	value, err := finder.Select()
	require.NoError(t, err)
	assert.Equal(t, "normal", value)
}

func TestFinder_SelectErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		options     []Option
		errContains string
	}{
		{
			name:        "no options",
			input:       "1\n",
			errContains: "no options available",
		},
		{
			name:        "not a number",
			input:       "abc\n",
			options:     []Option{{Value: "normal"}},
			errContains: "invalid selection",
		},
		{
			name:        "out of range",
			input:       "5\n",
			options:     []Option{{Value: "normal"}},
			errContains: "out of range",
		},
		{
			name:        "zero is out of range",
			input:       "0\n",
			options:     []Option{{Value: "normal"}},
			errContains: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			finder := NewWithStreams("Pick one", strings.NewReader(tt.input), &out)
			finder.SetOptions(tt.options)

			_, err := finder.Select()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestFinder_SetOptionsCopies(t *testing.T) {
	options := []Option{{Value: "a"}, {Value: "b"}}

	var out bytes.Buffer
	finder := NewWithStreams("Pick one", strings.NewReader("1\n"), &out)
	finder.SetOptions(options)

	options[0].Value = "mutated"

	value, err := finder.Select()
	require.NoError(t, err)
	assert.Equal(t, "a", value)
}

func TestFzfFinder_SetOptionsCopies(t *testing.T) {
	options := []Option{{Value: "a"}, {Value: "b"}}

	finder := NewFzf("Pick one")
	finder.SetOptions(options)

	options[0].Value = "mutated"
	assert.Equal(t, "a", finder.options[0].Value)
}

func TestFzfFinder_SetOptionsNilClears(t *testing.T) {
	finder := NewFzf("Pick one")
	finder.AddOption("a", "")
	finder.SetOptions(nil)

	_, err := finder.Select()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no options available")
}

func TestFzfFinder_SelectNoOptions(t *testing.T) {
	finder := NewFzf("Pick one")

	_, err := finder.Select()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no options available")
}
