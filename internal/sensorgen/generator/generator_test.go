package generator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clock "k8s.io/utils/clock/testing"

	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

var baseTime = time.Date(2024, 3, 14, 9, 26, 53, 589793238, time.UTC)

func newTestGenerator(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)), clock.NewFakePassiveClock(baseTime))
}

func TestGenerate_Size(t *testing.T) {
	tests := map[string]struct {
		n        int
		expected int
	}{
		"zero":     {n: 0, expected: 0},
		"one":      {n: 1, expected: 1},
		"default":  {n: DefaultBatchSize, expected: 10},
		"large":    {n: 1000, expected: 1000},
		"negative": {n: -3, expected: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			records := newTestGenerator(1).Generate(tc.n)
			require.NotNil(t, records)
			assert.Len(t, records, tc.expected)
		})
	}
}

func TestGenerate_FieldsWithinDomain(t *testing.T) {
	records := newTestGenerator(42).Generate(10000)
	for i, record := range records {
		require.NoError(t, Validate(record), "record %d", i)
	}
}

func TestGenerate_TimestampsDescendByOneMinute(t *testing.T) {
	records := newTestGenerator(7).Generate(25)
	anchor := baseTime.Truncate(time.Millisecond)
	assert.Equal(t, anchor, records[0].Timestamp)
	for i := 1; i < len(records); i++ {
		assert.Equal(t, time.Minute, records[i-1].Timestamp.Sub(records[i].Timestamp), "index %d", i)
	}
}

func TestGenerate_TimestampsAnchoredToEachCall(t *testing.T) {
	fakeClock := clock.NewFakePassiveClock(baseTime)
	g := New(rand.New(rand.NewSource(3)), fakeClock)

	first := g.Generate(3)
	fakeClock.SetTime(baseTime.Add(time.Minute))
	second := g.Generate(3)

	assert.Equal(t, first[0].Timestamp.Add(time.Minute), second[0].Timestamp)
	assert.Equal(t, first[0].Timestamp, second[1].Timestamp)
}

func TestGenerate_DeviceIdsAndLocationsCoverDomain(t *testing.T) {
	records := newTestGenerator(11).Generate(5000)

	deviceIds := map[string]int{}
	locations := map[string]int{}
	for _, record := range records {
		deviceIds[record.DeviceId]++
		locations[record.Location]++
	}

	assert.Len(t, deviceIds, 4)
	for _, id := range []string{"SENSOR_1", "SENSOR_2", "SENSOR_3", "SENSOR_4"} {
		assert.Contains(t, deviceIds, id)
	}
	assert.NotContains(t, deviceIds, "SENSOR_0")
	assert.NotContains(t, deviceIds, "SENSOR_5")

	assert.Len(t, locations, len(Locations))
	for _, location := range Locations {
		assert.Contains(t, locations, location)
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	assert.Equal(t, newTestGenerator(99).Generate(20), newTestGenerator(99).Generate(20))
	assert.NotEqual(t, newTestGenerator(99).Generate(20), newTestGenerator(100).Generate(20))
}

func TestUniform_NeverReturnsUpperBound(t *testing.T) {
	g := New(rand.New(maxSource{}), clock.NewFakePassiveClock(baseTime))
	for _, r := range []Range{TemperatureRange, HumidityRange, PressureRange} {
		v := g.uniform(r)
		assert.True(t, r.Contains(v), "%g not in %s", v, r)
	}
}

func TestValidate(t *testing.T) {
	valid := model.SensorRecord{
		Timestamp:   baseTime,
		Temperature: 22.5,
		Humidity:    40,
		Pressure:    1010,
		DeviceId:    "SENSOR_2",
		Location:    "Room3",
	}
	tests := map[string]struct {
		mutate  func(r *model.SensorRecord)
		wantErr bool
	}{
		"valid":                 {mutate: func(r *model.SensorRecord) {}},
		"lower bounds included": {mutate: func(r *model.SensorRecord) { r.Temperature, r.Humidity, r.Pressure = 20, 30, 1000 }},
		"temperature at max":    {mutate: func(r *model.SensorRecord) { r.Temperature = 25 }, wantErr: true},
		"humidity too low":      {mutate: func(r *model.SensorRecord) { r.Humidity = 29.99 }, wantErr: true},
		"pressure too high":     {mutate: func(r *model.SensorRecord) { r.Pressure = 1020.5 }, wantErr: true},
		"sensor 5":              {mutate: func(r *model.SensorRecord) { r.DeviceId = "SENSOR_5" }, wantErr: true},
		"sensor 0":              {mutate: func(r *model.SensorRecord) { r.DeviceId = "SENSOR_0" }, wantErr: true},
		"unknown room":          {mutate: func(r *model.SensorRecord) { r.Location = "Room5" }, wantErr: true},
		"zero timestamp":        {mutate: func(r *model.SensorRecord) { r.Timestamp = time.Time{} }, wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			record := valid
			tc.mutate(&record)
			err := Validate(record)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// maxSource makes rand.Float64 return its largest possible value, 1-2^-53.
type maxSource struct{}

func (maxSource) Int63() int64 { return 1<<63 - 1024 }

func (maxSource) Seed(int64) {}
