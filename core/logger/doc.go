// Package logger builds the zap logger shared by the server and the CLI.
//
// Level selects the minimum severity (debug, info, warn, error). Format selects
// the encoder: console for local runs, json for anything shipped to a collector.
//
// WithRayID attaches the request's ray id so every line written while serving a
// request can be correlated with the X-Ray-ID response header.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("model load failed", zap.Error(err))
package logger
