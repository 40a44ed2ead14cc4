package hashutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trapdoorsec/rinzler/pkg/hashutil"
)

func TestHashBytes_Deterministic(t *testing.T) {
	first, err := hashutil.HashBytes([]byte("body"), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	second, err := hashutil.HashBytes([]byte("body"), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestHashBytes_AlgorithmsDiffer(t *testing.T) {
	blake, err := hashutil.HashBytes([]byte("body"), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	sha, err := hashutil.HashBytes([]byte("body"), hashutil.HashAlgoSHA256)
	require.NoError(t, err)

	assert.NotEqual(t, blake, sha)
}

func TestHashBytes_UnknownAlgo(t *testing.T) {
	_, err := hashutil.HashBytes([]byte("body"), hashutil.HashAlgo("md5"))
	assert.Error(t, err)
}

func TestContentHash_MatchesBlake3(t *testing.T) {
	viaAlgo, err := hashutil.HashBytes([]byte("page"), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Equal(t, viaAlgo, hashutil.ContentHash([]byte("page")))
}
