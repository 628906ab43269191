package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[ID]struct{}, 1000)
	for range 1000 {
		id := New()
		require.False(t, id.IsZero())
		require.NotContains(t, seen, id)
		seen[id] = struct{}{}
	}
}

func TestNew_Sortable(t *testing.T) {
	a := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Less(t, a.String(), b.String())
}

func TestParse(t *testing.T) {
	id := New()

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	for _, bad := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestTime(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Second)

	require.True(t, ID("garbage").Time().IsZero())
}
