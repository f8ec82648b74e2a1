package config

const (
	// FloorUnits is the sub-floor scale: exact integer units per floor.
	FloorUnits = 10

	DefaultEnergyRate = 1.0
	DefaultListenAddr = "127.0.0.1:8000"
	DefaultLogLevel   = "info"
	ShutdownGraceSecs = 5
)
