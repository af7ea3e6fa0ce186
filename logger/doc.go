// Package logger provides structured logging for seqkit using zerolog.
//
// The engine itself is silent; it logs only when a pipeline is traced,
// either explicitly through pipeline.Trace or globally through
// pipeline.Configure. Trace output is emitted at debug level and carries a
// stage name, a cursor id and element counts.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.WithStage("orderBy").Debug("sort buffer built", logger.Fields("elements", 42))
package logger
