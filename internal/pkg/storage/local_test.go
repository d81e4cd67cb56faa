package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpen(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	key, err := s.Save(ctx, strings.NewReader("%PDF-1.3 test"), "reports/engineering/summary.pdf")
	require.NoError(t, err)
	assert.Equal(t, "reports/engineering/summary.pdf", key)
	assert.Equal(t, "http://localhost:8080/files/reports/engineering/summary.pdf", s.URL(key))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.3 test", string(body))

	_, err = s.Open(ctx, "reports/engineering/missing.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_TraversalStaysInside(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	key, err := s.Save(ctx, strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Save(ctx, strings.NewReader("x"), "")
	assert.Error(t, err)
}
