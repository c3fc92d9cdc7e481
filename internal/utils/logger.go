package utils

import (
	"go.uber.org/zap"
)

// InitLogger builds the process logger and installs it as zap's global.
// Release mode gets JSON output, anything else the development console.
func InitLogger(mode string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if mode == "release" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

// LogEvent emits a standardized module/action line with request correlation.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	zap.L().Info(message,
		zap.String("module", module),
		zap.String("action", action),
		zap.String("request_id", requestID),
	)
}
