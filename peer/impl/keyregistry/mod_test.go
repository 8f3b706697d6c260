package keyregistry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"golang.org/x/xerrors"
)

func Test_KeyRegistry_AppendOnly(t *testing.T) {
	r := New()

	first, err := signature.NewSchnorr().NewSigner()
	require.NoError(t, err)
	second, err := signature.NewSchnorr().NewSigner()
	require.NoError(t, err)

	require.Nil(t, r.Get(0))

	require.NoError(t, r.Publish(0, first.PublicKey()))

	err = r.Publish(0, second.PublicKey())
	require.True(t, xerrors.Is(err, ErrAlreadyPublished))

	require.Equal(t, first.PublicKey(), r.Get(0))
	require.Equal(t, 1, r.Len())

	require.Error(t, r.Publish(1, nil))
}

func Test_KeyRegistry_Concurrent(t *testing.T) {
	r := New()
	n := 20

	wait := sync.WaitGroup{}
	wait.Add(n)

	for i := 1; i <= n; i++ {
		go func(index int) {
			defer wait.Done()

			signer, err := signature.NewSchnorr().NewSigner()
			require.NoError(t, err)
			require.NoError(t, r.Publish(index, signer.PublicKey()))
			require.NotNil(t, r.Get(index))
		}(i)
	}

	wait.Wait()
	require.Equal(t, n, r.Len())
}
