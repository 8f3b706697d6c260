package faultlog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/sigvss/types"
)

func Test_FaultLog_Record(t *testing.T) {
	l := New("test")

	f := l.Record(types.Fault{
		Round:   2,
		Role:    types.RoleReceiver,
		Party:   1,
		Accused: types.DealerIndex,
		Kind:    types.SignatureMismatch,
		Detail:  "bad dealer signature",
	})
	require.NotEmpty(t, f.ID)

	l.Record(types.Fault{ID: "fixed", Accused: 3, Kind: types.ValueInconsistency})
	l.Record(types.Fault{Accused: 3, Kind: types.SignatureMismatch})

	all := l.All()
	require.Len(t, all, 3)
	require.Equal(t, f, all[0])
	require.Equal(t, "fixed", all[1].ID)

	require.Equal(t, 2, l.Count(types.SignatureMismatch))
	require.Equal(t, 1, l.Count(types.ValueInconsistency))
	require.Equal(t, 0, l.Count(types.DegreeViolation))

	byAccused := l.ByAccused()
	require.Len(t, byAccused[3], 2)
	require.Len(t, byAccused[types.DealerIndex], 1)
}

func Test_FaultLog_Concurrent(t *testing.T) {
	l := New("test")
	n := 50

	wait := sync.WaitGroup{}
	wait.Add(n)

	for i := 0; i < n; i++ {
		go func(party int) {
			defer wait.Done()
			l.Record(types.Fault{Party: party, Kind: types.InsufficientQuorum, Accused: types.NoParty})
		}(i)
	}

	wait.Wait()
	require.Equal(t, n, l.Len())
	require.Equal(t, n, l.Count(types.InsufficientQuorum))
}
