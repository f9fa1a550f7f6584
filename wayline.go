// Package wayline holds the types for the flight-path core: waypoints,
// flights, lenses, and the error taxonomy. No HTTP or rendering imports.
package wayline

const(
	// Unit conversions. Altitudes are stored in feet (that's what both
	// Litchi CSVs and the UI use); WPML wants meters.
	MetersPerFoot = 0.3048
	MphPerMs      = 2.236936

	// Gimbal pitch when a source file doesn't specify one: straight down.
	DefaultGimbalPitchDeg = -90.0
)
