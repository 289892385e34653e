// Package fuzzy provides the interactive option selectors used by the
// create command for visibility, category, permission and team choices.
// It offers an fzf-backed finder for terminals and a plain numbered-list
// finder that works on any stdin.
package fuzzy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Option represents a selectable option
type Option struct {
	Value       string
	Description string
}

// Finder presents options as a numbered list and reads the selection
type Finder struct {
	prompt  string
	options []Option
	in      io.Reader
	out     io.Writer
}

// New creates a new numbered-list finder with the given prompt
func New(prompt string) *Finder {
	return &Finder{
		prompt:  prompt,
		options: make([]Option, 0),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// NewWithStreams creates a finder reading from in and writing to out (for testing)
func NewWithStreams(prompt string, in io.Reader, out io.Writer) *Finder {
	f := New(prompt)
	f.in = in
	f.out = out
	return f
}

// AddOption adds an option to the finder
func (f *Finder) AddOption(value, description string) {
	f.options = append(f.options, Option{
		Value:       value,
		Description: description,
	})
}

// SetOptions replaces the full option list
func (f *Finder) SetOptions(options []Option) {
	f.options = make([]Option, len(options))
	copy(f.options, options)
}

// Select displays the options and allows the user to select one by number
func (f *Finder) Select() (string, error) {
	if len(f.options) == 0 {
		return "", fmt.Errorf("no options available")
	}

	fmt.Fprintln(f.out, f.prompt)
	fmt.Fprintln(f.out, strings.Repeat("-", len(f.prompt)))

	for i, option := range f.options {
		fmt.Fprintf(f.out, "%d. %s", i+1, option.Value)
		if option.Description != "" {
			fmt.Fprintf(f.out, " - %s", option.Description)
		}
		fmt.Fprintln(f.out)
	}

	fmt.Fprintf(f.out, "\nSelect option (1-%d): ", len(f.options))

	reader := bufio.NewReader(f.in)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	selection, err := strconv.Atoi(input)
	if err != nil {
		return "", fmt.Errorf("invalid selection: %s", input)
	}

	if selection < 1 || selection > len(f.options) {
		return "", fmt.Errorf("selection out of range: %d", selection)
	}

	return f.options[selection-1].Value, nil
}
