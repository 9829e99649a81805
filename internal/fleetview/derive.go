package fleetview

const (
	// engine state reported by the telemetry provider
	EngineRunning = "Running"
)

// ClassifyStatus derives the vehicle status from speed and engine state:
// moving while the vehicle has speed, idle while the engine runs,
// offline otherwise. Total over all inputs, there is no error case.
func ClassifyStatus(speedMPH float64, engineState string) string {
	if speedMPH > 0 {
		return StatusMoving
	}
	if engineState == EngineRunning {
		return StatusIdle
	}
	return StatusOffline
}
