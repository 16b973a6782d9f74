// Package logger wraps zap with a process-wide singleton, typed field
// helpers and context propagation.
//
// Usage:
//
//	logger.Init(logger.Config{Env: "prod", Level: "info"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Op("RolesService.Switch"))
//	log.Info("active role changed", logger.Role("wali"))
//
// Middlewares inject a request-scoped logger (request_id, method, path,
// user_id) into the context; From(ctx) falls back to the singleton when no
// middleware ran.
package logger
