/*
 * logging_test.go, part of refchem.
 *
 * Copyright 2024 The refchem authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(Config{Level: "warn", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("skipping species", zap.String("set", "main"), zap.String("reason", "duplicate"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "skipping species", entry["msg"])
	assert.Equal(t, "main", entry["set"])
	assert.Contains(t, entry, "ts")
}

func TestNewConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	l, err := New(Config{Level: "debug", Format: "console", OutputPaths: []string{path}})
	require.NoError(t, err)
	l.Debug("loaded reference set", zap.Int("species", 3))
	require.NoError(t, l.Sync())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded reference set")
	assert.Contains(t, string(data), `"species": 3`)
}

func TestNewErrors(t *testing.T) {
	_, err := New(Config{Level: "loud", Format: "json"})
	assert.Error(t, err)
	_, err = New(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
