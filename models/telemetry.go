package models

import "time"

// Reading is the current value of the three simulated sensors.
type Reading struct {
	Temperature float64 `json:"temp"`
	Moisture    float64 `json:"moisture"`
	Humidity    float64 `json:"humidity"`
}

// Series is the chart history, oldest sample first.
type Series struct {
	Labels      []string  `json:"labels"`
	Temperature []float64 `json:"temp"`
	Moisture    []float64 `json:"moisture"`
	Humidity    []float64 `json:"humidity"`
}

// TelemetrySnapshot is a consistent copy of the simulator state.
type TelemetrySnapshot struct {
	Reading   Reading   `json:"reading"`
	Series    Series    `json:"series"`
	Tick      uint64    `json:"tick"`
	UpdatedAt time.Time `json:"updated_at"`
}
