package main

// Default command-line flag values
const (
	defaultLogLevel = "warn"
	defaultSpeed    = 1.0 // real time
)

const minRequiredArgs = 1
