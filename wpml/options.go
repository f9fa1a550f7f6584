package wpml

// The recognized option values. Anything else gets the default behavior
// of its field rather than an error; exports should not fail over a
// typo'd dropdown value.
const(
	SignalLostContinue = "continue"
	SignalLostExecute  = "executeLostAction"

	HeadingPoiOrInterpolate = "poi_or_interpolate"
	HeadingFollowWayline    = "follow_wayline"
	HeadingManual           = "manual"
)

// Options configures one export. Immutable per call; the zero value is
// not useful, start from DefaultOptions.
type Options struct {
	SignalLostAction   string  // SignalLostContinue or SignalLostExecute
	MissionSpeedMs     float64 // global transition + auto flight speed
	DroneType          string  // see DroneTypes
	HeadingMode        string  // HeadingPoiOrInterpolate, HeadingFollowWayline, HeadingManual
	AllowStraightLines bool
}

func DefaultOptions() Options {
	return Options{
		SignalLostAction: SignalLostContinue,
		MissionSpeedMs:   5,
		DroneType:        DroneTypes[0].Key,
		HeadingMode:      HeadingPoiOrInterpolate,
	}
}

// exitOnRCLost is the one option value that gets renamed on the wire.
func (opt Options)exitOnRCLost() string {
	if opt.SignalLostAction == SignalLostContinue { return "goToContinue" }
	return "executeLostAction"
}
