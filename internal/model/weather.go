package model

// Weather is the current conditions snapshot from the weather agent.
type Weather struct {
	// TempC is the temperature in degrees Celsius.
	TempC float64 `json:"temp"`

	// Condition is the short condition label (Clear, Rain, ...).
	Condition string `json:"condition"`

	// Humidity is the relative humidity percentage.
	Humidity int `json:"humidity"`

	// WindKph is the wind speed in km/h.
	WindKph float64 `json:"wind_kph"`

	// Location is the city the reading applies to.
	Location string `json:"location"`
}

// SystemContext is the backend's view of the user's current situation.
// It feeds the chat assistant's context snapshot.
type SystemContext struct {
	// CurrentTime is the backend clock as an ISO-8601 timestamp.
	CurrentTime string `json:"current_time"`

	// EnergyLevel is the estimated user energy percentage.
	EnergyLevel int `json:"energy_level"`

	// TaskBacklog is the number of pending tasks.
	TaskBacklog int `json:"task_backlog"`

	// Weather is the short current-condition label.
	Weather string `json:"weather"`
}
