package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	defer s.Close()

	exerciseKV(t, s)
}

func TestSQLite_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, SetJSON(ctx, s, KeyStatusRules, []string{"r1"}))
	s.Close()

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	var rules []string
	found, err := GetJSON(ctx, reopened, KeyStatusRules, &rules)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"r1"}, rules)
}
