package model

import "time"

// SensorRecord is a single synthetic reading. It is stored as one document per record.
type SensorRecord struct {
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Temperature float64   `bson:"temperature" json:"temperature"`
	Humidity    float64   `bson:"humidity" json:"humidity"`
	Pressure    float64   `bson:"pressure" json:"pressure"`
	DeviceId    string    `bson:"device_id" json:"device_id"`
	Location    string    `bson:"location" json:"location"`
}
