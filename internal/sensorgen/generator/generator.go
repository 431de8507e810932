package generator

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"k8s.io/utils/clock"

	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

const (
	// DefaultBatchSize is the number of records produced per job when nothing else is configured.
	DefaultBatchSize = 10

	deviceIdPrefix = "SENSOR_"
	// Device numbers are drawn from [minDeviceNumber, maxDeviceNumber).
	minDeviceNumber = 1
	maxDeviceNumber = 5
)

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g)", r.Min, r.Max)
}

var (
	TemperatureRange = Range{Min: 20.0, Max: 25.0}
	HumidityRange    = Range{Min: 30.0, Max: 50.0}
	PressureRange    = Range{Min: 1000.0, Max: 1020.0}

	Locations = []string{"Room1", "Room2", "Room3", "Room4"}
)

// Generator fabricates batches of sensor records.
// It is not threadsafe: the supplied rand.Rand must only be used by one goroutine.
type Generator struct {
	random *rand.Rand
	clock  clock.PassiveClock
}

func New(random *rand.Rand, clock clock.PassiveClock) *Generator {
	return &Generator{
		random: random,
		clock:  clock,
	}
}

// Generate returns exactly n records. The i-th record is timestamped i minutes before the time of the call,
// so timestamps strictly decrease by one minute per index.
func (g *Generator) Generate(n int) []model.SensorRecord {
	if n < 0 {
		n = 0
	}
	// Stored documents only keep millisecond precision.
	now := g.clock.Now().UTC().Truncate(time.Millisecond)
	records := make([]model.SensorRecord, n)
	for i := range records {
		records[i] = model.SensorRecord{
			Timestamp:   now.Add(-time.Duration(i) * time.Minute),
			Temperature: g.uniform(TemperatureRange),
			Humidity:    g.uniform(HumidityRange),
			Pressure:    g.uniform(PressureRange),
			DeviceId:    g.deviceId(),
			Location:    Locations[g.random.Intn(len(Locations))],
		}
	}
	return records
}

func (g *Generator) uniform(r Range) float64 {
	v := r.Min + g.random.Float64()*(r.Max-r.Min)
	// Rounding can land exactly on the excluded upper bound.
	if v >= r.Max {
		v = math.Nextafter(r.Max, r.Min)
	}
	return v
}

func (g *Generator) deviceId() string {
	k := minDeviceNumber + g.random.Intn(maxDeviceNumber-minDeviceNumber)
	return fmt.Sprintf("%s%d", deviceIdPrefix, k)
}

// Validate returns an error describing the first field of the record that lies outside its domain.
func Validate(record model.SensorRecord) error {
	if record.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is not set")
	}
	if !TemperatureRange.Contains(record.Temperature) {
		return fmt.Errorf("temperature %g outside %s", record.Temperature, TemperatureRange)
	}
	if !HumidityRange.Contains(record.Humidity) {
		return fmt.Errorf("humidity %g outside %s", record.Humidity, HumidityRange)
	}
	if !PressureRange.Contains(record.Pressure) {
		return fmt.Errorf("pressure %g outside %s", record.Pressure, PressureRange)
	}
	if !validDeviceId(record.DeviceId) {
		return fmt.Errorf("device id %q is not one of %s%d..%s%d",
			record.DeviceId, deviceIdPrefix, minDeviceNumber, deviceIdPrefix, maxDeviceNumber-1)
	}
	if !slices.Contains(Locations, record.Location) {
		return fmt.Errorf("location %q is not one of %v", record.Location, Locations)
	}
	return nil
}

func validDeviceId(id string) bool {
	for k := minDeviceNumber; k < maxDeviceNumber; k++ {
		if id == fmt.Sprintf("%s%d", deviceIdPrefix, k) {
			return true
		}
	}
	return false
}
