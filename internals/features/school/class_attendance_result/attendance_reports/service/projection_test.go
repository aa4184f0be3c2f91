package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, Percentage(0, 0))
	assert.Equal(t, 75.0, Percentage(30, 40))
	assert.Equal(t, 0.0, Percentage(0, 5))
}

func TestProjectImpact_MonotonicInSkipCount(t *testing.T) {
	for total := 0; total <= 30; total++ {
		for attended := 0; attended <= total; attended++ {
			rec := SubjectAttendance{Attended: attended, Total: total}
			prev := ProjectImpact(rec, 0, 75).AfterPercentage
			for skip := 1; skip <= 20; skip++ {
				cur := ProjectImpact(rec, skip, 75).AfterPercentage
				require.LessOrEqualf(t, cur, prev, "attended=%d total=%d skip=%d", attended, total, skip)
				prev = cur
			}
		}
	}
}

func TestMaxBunkable_Boundary(t *testing.T) {
	mins := []float64{50, 60, 66.6, 75, 80, 85.5, 90, 99}
	for _, minPct := range mins {
		for total := 0; total <= 40; total++ {
			for attended := 0; attended <= total; attended++ {
				rec := SubjectAttendance{Attended: attended, Total: total}
				if rec.Percentage() < minPct {
					mb, unlimited := MaxBunkable(attended, total, minPct)
					assert.False(t, unlimited)
					assert.Equal(t, 0, mb)
					continue
				}
				mb, unlimited := MaxBunkable(attended, total, minPct)
				require.False(t, unlimited)
				assert.GreaterOrEqualf(t, ProjectImpact(rec, mb, minPct).AfterPercentage, minPct,
					"min=%v attended=%d total=%d mb=%d", minPct, attended, total, mb)
				assert.Lessf(t, ProjectImpact(rec, mb+1, minPct).AfterPercentage, minPct,
					"min=%v attended=%d total=%d mb=%d", minPct, attended, total, mb)
			}
		}
	}
}

func TestProjectImpact_ExactlyAtThreshold(t *testing.T) {
	rec := SubjectAttendance{Attended: 30, Total: 40}
	assert.Equal(t, 75.0, rec.Percentage())

	now := ProjectImpact(rec, 0, 75)
	assert.Equal(t, 0, now.MaxBunkable)
	assert.False(t, now.IsDanger)

	one := ProjectImpact(rec, 1, 75)
	assert.InDelta(t, 73.17, one.AfterPercentage, 0.01)
	assert.True(t, one.IsDanger)
	assert.False(t, one.IsSafe)
	assert.Equal(t, 41, one.AfterTotal)
	assert.Equal(t, 30, one.AfterAttended)
	assert.True(t, one.Recoverable)
	// (30+x)/(41+x) >= 0.75 → x >= 3
	assert.Equal(t, 3, one.ClassesToRecover)
}

func TestProjectImpact_SafeZone(t *testing.T) {
	rec := SubjectAttendance{Attended: 18, Total: 20}
	out := ProjectImpact(rec, 2, 75)

	assert.Equal(t, 22, out.AfterTotal)
	assert.InDelta(t, 81.8, out.AfterPercentage, 0.05)
	assert.InDelta(t, 8.2, out.PercentDrop, 0.05)
	assert.True(t, out.IsSafe)
	assert.False(t, out.IsDanger)
	assert.Equal(t, 0, out.ClassesToRecover)
	// floor(18/0.75 − 20) = 4
	assert.Equal(t, 4, out.MaxBunkable)
}

func TestProjectImpact_EmptyRecord(t *testing.T) {
	out := ProjectImpact(SubjectAttendance{}, 0, 75)
	assert.Equal(t, 100.0, out.AfterPercentage)
	assert.Equal(t, 0.0, out.PercentDrop)
	assert.True(t, out.IsSafe)

	skipped := ProjectImpact(SubjectAttendance{}, 1, 75)
	assert.Equal(t, 0.0, skipped.AfterPercentage)
	assert.True(t, skipped.IsDanger)
}

func TestProjectImpact_NegativeSkipClamped(t *testing.T) {
	rec := SubjectAttendance{Attended: 5, Total: 10}
	out := ProjectImpact(rec, -3, 75)
	assert.Equal(t, 0, out.SkipCount)
	assert.Equal(t, 10, out.AfterTotal)
}

func TestProjectImpact_MinHundred(t *testing.T) {
	full := ProjectImpact(SubjectAttendance{Attended: 10, Total: 10}, 0, 100)
	assert.False(t, full.IsDanger)
	assert.Equal(t, 0, full.MaxBunkable)

	missed := ProjectImpact(SubjectAttendance{Attended: 9, Total: 10}, 0, 100)
	assert.True(t, missed.IsDanger)
	assert.False(t, missed.Recoverable)
	assert.Equal(t, 0, missed.ClassesToRecover)
}

func TestProjectImpact_MinZero(t *testing.T) {
	out := ProjectImpact(SubjectAttendance{Attended: 0, Total: 10}, 50, 0)
	assert.False(t, out.IsDanger)
	assert.True(t, out.BunkUnlimited)
	assert.Equal(t, -1, out.MaxBunkable)
	assert.True(t, out.Recoverable)
}

func TestClassesToRecover_Table(t *testing.T) {
	tests := []struct {
		name      string
		attended  int
		total     int
		minPct    float64
		want      int
		recovered bool
	}{
		{"already above", 8, 10, 75, 0, true},
		{"one short", 2, 3, 75, 1, true},
		{"far below", 0, 4, 50, 4, true},
		{"hundred impossible", 4, 5, 100, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ClassesToRecover(tc.attended, tc.total, tc.minPct)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.recovered, ok)
			if ok {
				assert.GreaterOrEqual(t, Percentage(tc.attended+got, tc.total+got), tc.minPct)
				if got > 0 {
					assert.Less(t, Percentage(tc.attended+got-1, tc.total+got-1), tc.minPct)
				}
			}
		})
	}
}
