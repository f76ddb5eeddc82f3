package common

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_TokenSuffix(t *testing.T) {
	s, err := MakeRandHexString(8)
	require.NoError(t, err)
	require.Len(t, s, 16)

	_, err = hex.DecodeString(s)
	require.NoError(t, err, "suffix must be valid hex")
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		s, err := MakeRandHexString(8)
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup, "duplicate suffix %q", s)
		seen[s] = struct{}{}
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("abcdefgh")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 8), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestStorageError_WrapsSentinelAndCause(t *testing.T) {
	cause := errors.New("disk gone")
	err := StorageError("set user-data", cause)

	require.ErrorIs(t, err, ErrStorageFailure)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "storage failure: set user-data: disk gone", err.Error())
}

func TestStorageError_NilIsNil(t *testing.T) {
	assert.NoError(t, StorageError("get", nil))
}
