package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckShippedTables(t *testing.T) {
	assert.NoError(t, check("../../internal/data/tables.yaml", []string{"3"}))
}

func TestCheckRejectsEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("armour: []\n"), 0o644))
	assert.Error(t, check(path, nil))
}

func TestCheckRejectsBadSamples(t *testing.T) {
	assert.Error(t, check("../../internal/data/tables.yaml", []string{"-1"}))
	assert.Error(t, check("../../internal/data/tables.yaml", []string{"lots"}))
}
