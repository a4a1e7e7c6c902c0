//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"pawsuite/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, start, end string) reservation.StayPeriod {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	p, err := reservation.NewStayPeriod(s, e)
	require.NoError(t, err)
	return p
}

func TestNewStayPeriod(t *testing.T) {
	now := time.Now()

	t.Run("start before end", func(t *testing.T) {
		p, err := reservation.NewStayPeriod(now, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, p.Duration())
	})

	t.Run("start equal to end", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(now, now)
		require.Error(t, err)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := reservation.NewStayPeriod(now.Add(time.Hour), now)
		require.Error(t, err)
	})
}

func TestStayPeriodOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a        [2]string
		b        [2]string
		overlaps bool
	}{
		{
			name:     "checkout day equals checkin day does not overlap",
			a:        [2]string{"2026-03-01T09:00:00Z", "2026-03-05T09:00:00Z"},
			b:        [2]string{"2026-03-05T09:00:00Z", "2026-03-08T09:00:00Z"},
			overlaps: false,
		},
		{
			name:     "one day shared",
			a:        [2]string{"2026-03-01T09:00:00Z", "2026-03-05T09:00:00Z"},
			b:        [2]string{"2026-03-04T09:00:00Z", "2026-03-08T09:00:00Z"},
			overlaps: true,
		},
		{
			name:     "contained window",
			a:        [2]string{"2026-03-01T09:00:00Z", "2026-03-10T09:00:00Z"},
			b:        [2]string{"2026-03-03T09:00:00Z", "2026-03-04T09:00:00Z"},
			overlaps: true,
		},
		{
			name:     "identical windows",
			a:        [2]string{"2026-03-01T09:00:00Z", "2026-03-05T09:00:00Z"},
			b:        [2]string{"2026-03-01T09:00:00Z", "2026-03-05T09:00:00Z"},
			overlaps: true,
		},
		{
			name:     "disjoint windows",
			a:        [2]string{"2026-03-01T09:00:00Z", "2026-03-02T09:00:00Z"},
			b:        [2]string{"2026-03-06T09:00:00Z", "2026-03-08T09:00:00Z"},
			overlaps: false,
		},
		{
			name:     "reverse adjacency does not overlap",
			a:        [2]string{"2026-03-05T09:00:00Z", "2026-03-08T09:00:00Z"},
			b:        [2]string{"2026-03-01T09:00:00Z", "2026-03-05T09:00:00Z"},
			overlaps: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := mustPeriod(t, c.a[0], c.a[1])
			b := mustPeriod(t, c.b[0], c.b[1])

			assert.Equal(t, c.overlaps, a.Overlaps(b))
			assert.Equal(t, c.overlaps, b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestStayPeriodContains(t *testing.T) {
	p := mustPeriod(t, "2026-03-01T09:00:00Z", "2026-03-05T09:00:00Z")

	assert.True(t, p.Contains(p.Start()))
	assert.False(t, p.Contains(p.End()))
	assert.True(t, p.Contains(p.Start().Add(time.Hour)))
	assert.False(t, p.Contains(p.Start().Add(-time.Minute)))
}

func TestNote(t *testing.T) {
	assert.Equal(t, "needs meds at 8pm", reservation.NewNote("  needs meds at 8pm  ").String())
	assert.True(t, reservation.NewNote("   ").IsEmpty())
}
