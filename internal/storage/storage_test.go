package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOptionsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	loaded, err := s.LoadOptions()
	require.NoError(t, err)
	require.Empty(t, loaded)

	values := map[string]int{"Threads": 4, "Hash": 64, "RfpMargin": 38}
	require.NoError(t, s.SaveOptions(values))

	loaded, err = s.LoadOptions()
	require.NoError(t, err)
	require.Equal(t, values, loaded)
}

func TestBenchHistory(t *testing.T) {
	s := openTestStore(t)

	history, err := s.BenchHistory()
	require.NoError(t, err)
	require.Empty(t, history)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordBench(BenchRecord{
			Nodes:   uint64(1000 + i),
			Nps:     500000,
			Version: "1.0",
			RunAt:   time.Now(),
		}))
	}

	history, err = s.BenchHistory()
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, uint64(1000), history[0].Nodes)
	require.Equal(t, uint64(1002), history[2].Nodes)
}
