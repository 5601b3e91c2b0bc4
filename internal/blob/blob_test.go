package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	testCases := []struct {
		key   string
		valid bool
	}{
		{key: "missil_cms_products", valid: true},
		{key: "a.b-c_1", valid: true},
		{key: "", valid: false},
		{key: ".", valid: false},
		{key: "..", valid: false},
		{key: "../etc/passwd", valid: false},
		{key: "with space", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			// when
			err := ValidateKey(tc.key)
			// then
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// missing key
	data, ok, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	// save and load
	require.NoError(t, s.Save(ctx, "key", []byte(`[1]`)))
	data, ok, err = s.Load(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[1]`), data)

	// overwrite
	require.NoError(t, s.Save(ctx, "key", []byte(`[1,2]`)))
	data, _, err = s.Load(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), data)

	// invalid key
	assert.ErrorIs(t, s.Save(ctx, "../x", []byte("x")), ErrInvalidKey)
	_, _, err = s.Load(ctx, "../x")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	// given
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Save(context.Background(), "k", data))
	// when
	data[0] = 'x'
	loaded, _, err := s.Load(context.Background(), "k")
	require.NoError(t, err)
	loaded[1] = 'y'
	again, _, _ := s.Load(context.Background(), "k")
	// then
	assert.Equal(t, []byte("abc"), again)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "blobs"))
	require.NoError(t, err)
	storeContract(t, s)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	// given
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	// when
	require.NoError(t, s.Save(context.Background(), "k", []byte("v")))
	// then
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileStore_ReadError(t *testing.T) {
	// given
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "k.json"), 0o750))
	// when
	_, ok, err := s.Load(context.Background(), "k")
	// then
	assert.Error(t, err)
	assert.False(t, ok)
}
