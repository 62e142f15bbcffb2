package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "walkthrough version")
}

func TestStepsCommand(t *testing.T) {
	out, err := execute(t, "steps", "--mode", "points", "--json")
	require.NoError(t, err)

	var steps []domain.Step
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	assert.Len(t, steps, 11)
	assert.Equal(t, "Not sure? Select all difficult annotations and click here (or press the U key)", steps[6].Message)
}
