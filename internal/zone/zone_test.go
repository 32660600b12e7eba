package zone

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/monitoring"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
	"github.com/banshee-data/sensorzone/internal/testutil"
	"github.com/banshee-data/sensorzone/internal/timeutil"
)

func exampleSensors(t testing.TB) []sensor.Sensor {
	t.Helper()
	sensors, err := sensor.NewParser().ParseReader(strings.NewReader(testutil.ExampleInput))
	require.NoError(t, err)
	return sensors
}

func mk(sx, sy, rx, ry int64) sensor.Sensor {
	return sensor.New(geom.Pt(sx, sy), geom.Pt(rx, ry))
}

func TestCountExcludedOnRowExample(t *testing.T) {
	sensors := exampleSensors(t)
	got := CountExcludedOnRow(sensors, testutil.ExampleRow, sensor.References(sensors))
	assert.Equal(t, int64(testutil.ExampleRowCount), got)
}

func TestCountExcludedOnRowIsOrderIndependent(t *testing.T) {
	sensors := exampleSensors(t)
	reversed := make([]sensor.Sensor, len(sensors))
	for i, s := range sensors {
		reversed[len(sensors)-1-i] = s
	}
	refs := sensor.References(sensors)
	for row := int64(-5); row <= 30; row++ {
		assert.Equal(t,
			CountExcludedOnRow(sensors, row, refs),
			CountExcludedOnRow(reversed, row, refs),
			"row %d", row)
	}
}

func TestCountExcludedOnRow(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		sensors []sensor.Sensor
		row     int64
		known   []geom.Point
		want    int64
	}{
		{"no_sensors", nil, 10, nil, 0},
		{"row_out_of_reach", []sensor.Sensor{mk(0, 0, 0, 2)}, 3, nil, 0},
		{"edge_touch_single_cell", []sensor.Sensor{mk(0, 0, 0, 2)}, 2, nil, 1},
		// The beacon itself sits on the excluded cell.
		{"edge_touch_beacon", []sensor.Sensor{mk(0, 0, 0, 2)}, 2, []geom.Point{geom.Pt(0, 2)}, 0},
		{"duplicate_known", []sensor.Sensor{mk(0, 0, 2, 0)}, 0, []geom.Point{geom.Pt(2, 0), geom.Pt(2, 0)}, 4},
		{"known_off_row", []sensor.Sensor{mk(0, 0, 2, 0)}, 0, []geom.Point{geom.Pt(1, 1)}, 5},
		{"known_outside_zone", []sensor.Sensor{mk(0, 0, 2, 0)}, 0, []geom.Point{geom.Pt(9, 0)}, 5},
		{"adjacent_zones", []sensor.Sensor{mk(0, 0, 1, 0), mk(3, 0, 4, 0)}, 0, nil, 6},
		{"overlapping_zones", []sensor.Sensor{mk(0, 0, 2, 0), mk(3, 0, 5, 0)}, 0, nil, 8},
		{"separate_zones", []sensor.Sensor{mk(0, 0, 1, 0), mk(10, 0, 11, 0)}, 0, nil, 6},
		{"huge_coordinates", []sensor.Sensor{mk(-3_000_000_000, 0, 3_000_000_000, 0)}, 0, nil, 12_000_000_001},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CountExcludedOnRow(tc.sensors, tc.row, tc.known))
		})
	}
}

func TestRowSpansExample(t *testing.T) {
	ss := RowSpans(exampleSensors(t), testutil.ExampleGapY, SquareDomain(testutil.ExampleDomainMax))
	want := []span.Span{span.New(0, 13), span.New(15, 20)}
	if diff := cmp.Diff(want, ss.Spans); diff != "" {
		t.Errorf("RowSpans() mismatch (-want +got):\n%s", diff)
	}
}

func TestTuningFrequency(t *testing.T) {
	assert.Equal(t, int64(testutil.ExampleFrequency), TuningFrequency(geom.Pt(testutil.ExampleGapX, testutil.ExampleGapY)))
	assert.Equal(t, int64(16_000_004_000_000), TuningFrequency(geom.Pt(4_000_000, 4_000_000)))
}

func TestFindGapExample(t *testing.T) {
	got, err := FindGap(context.Background(), exampleSensors(t), testutil.ExampleDomainMax)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(testutil.ExampleGapX, testutil.ExampleGapY), got)
	assert.Equal(t, int64(testutil.ExampleFrequency), TuningFrequency(got))
}

// gapCases exercise both search implementations.
var gapCases = []struct {
	name      string
	sensors   []sensor.Sensor
	domainMax int64
	want      geom.Point
	wantErr   error
}{
	// Radius 7 from the origin leaves only the far corner of [0, 4]².
	{"right_edge_gap", []sensor.Sensor{mk(0, 0, 7, 0)}, 4, geom.Pt(4, 4), nil},
	{"left_edge_gap", []sensor.Sensor{mk(4, 4, 4, -3)}, 4, geom.Pt(0, 0), nil},
	// Four corner diamonds of radius 3 leave only the centre of [0, 4]².
	{"interior_gap", []sensor.Sensor{mk(0, 0, 3, 0), mk(4, 4, 1, 4), mk(4, 0, 4, 3), mk(0, 4, 0, 1)}, 4, geom.Pt(2, 2), nil},
	{"fully_covered", []sensor.Sensor{mk(10, 10, 10, 30)}, 20, geom.Point{}, ErrNoGap},
	{"negative_domain", []sensor.Sensor{mk(0, 0, 1, 0)}, -1, geom.Point{}, ErrNoGap},
	{"no_sensors", nil, 5, geom.Point{}, ErrInvariant},
	{"three_spans", []sensor.Sensor{mk(0, 0, 0, 0), mk(2, 0, 2, 0), mk(4, 0, 4, 0)}, 4, geom.Point{}, ErrInvariant},
	{"wide_gap", []sensor.Sensor{mk(0, 0, 0, 0)}, 2, geom.Point{}, ErrInvariant},
}

func TestFindGap(t *testing.T) {
	t.Parallel()

	for _, tc := range gapCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FindGap(context.Background(), tc.sensors, tc.domainMax)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSearcherFindGap(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{0, 1, 2, 3, 8, 64} {
		for _, tc := range gapCases {
			t.Run(fmt.Sprintf("%s/workers_%d", tc.name, workers), func(t *testing.T) {
				s := &Searcher{Workers: workers}
				got, err := s.FindGap(context.Background(), tc.sensors, tc.domainMax)
				if tc.wantErr != nil {
					require.ErrorIs(t, err, tc.wantErr)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		}
	}
}

func TestSearcherExample(t *testing.T) {
	sensors := exampleSensors(t)
	for _, workers := range []int{1, 2, 5, 21, 100} {
		s := &Searcher{Workers: workers}
		got, err := s.FindGap(context.Background(), sensors, testutil.ExampleDomainMax)
		require.NoError(t, err, "workers=%d", workers)
		assert.Equal(t, geom.Pt(testutil.ExampleGapX, testutil.ExampleGapY), got, "workers=%d", workers)
	}
}

func TestInvariantErrorDetails(t *testing.T) {
	_, err := FindGap(context.Background(), []sensor.Sensor{mk(0, 0, 0, 0), mk(2, 0, 2, 0), mk(4, 0, 4, 0)}, 4)

	var ie *InvariantError
	require.True(t, errors.As(err, &ie), "got %v", err)
	assert.Equal(t, int64(0), ie.Row)
	assert.Equal(t, []span.Span{span.Point(0), span.Point(2), span.Point(4)}, ie.Spans)
	assert.Contains(t, ie.Error(), "3 disjoint spans")
	assert.NotErrorIs(t, err, ErrNoGap)
}

func TestFindGapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sensors := exampleSensors(t)
	_, err := FindGap(ctx, sensors, testutil.ExampleDomainMax)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = (&Searcher{Workers: 4}).FindGap(ctx, sensors, testutil.ExampleDomainMax)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearcherProgress(t *testing.T) {
	var lines []string
	original := monitoring.Logf
	t.Cleanup(func() { monitoring.Logf = original })
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	s := &Searcher{
		Workers:       1,
		ProgressEvery: 5,
		Clock:         timeutil.NewMockClock(time.Unix(0, 0)),
	}
	got, err := s.FindGap(context.Background(), exampleSensors(t), testutil.ExampleDomainMax)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(testutil.ExampleGapX, testutil.ExampleGapY), got)

	// Rows 0-10 are covered; row 11 holds the gap.
	assert.Equal(t, []string{
		"gap search: scanned 5/21 rows",
		"gap search: scanned 10/21 rows",
	}, lines)
}

func TestSearcherWorkerCap(t *testing.T) {
	assert.Equal(t, 3, (&Searcher{Workers: 10}).workers(2))
	assert.Equal(t, 4, (&Searcher{Workers: 4}).workers(1<<62))
	assert.Equal(t, 2, (&Searcher{Workers: 2}).workers(9223372036854775807))
	assert.Positive(t, (&Searcher{}).workers(100))
}

func BenchmarkCollectRow(b *testing.B) {
	sensors := exampleSensors(b)
	c := span.NewCompactor(SquareDomain(testutil.ExampleDomainMax), len(sensors))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		collectRow(c, sensors, int64(i%21))
	}
}
