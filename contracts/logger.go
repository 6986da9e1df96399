package contracts

// Logger is what every package logs through. The first value is
// usually a message, the rest is context printed next to it.
type Logger interface {
	Debug(v ...interface{})
	Info(v ...interface{})
	Warning(v ...interface{})
	Error(v ...interface{})
}

const (
	LogErrorLevel uint8 = iota
	LogWarningLevel
	LogInfoLevel
	LogDebugLevel
)
