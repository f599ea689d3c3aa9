package core

// Logger interface for callers that inject their own logging
type Logger interface {
	Printf(format string, args ...interface{})
}
