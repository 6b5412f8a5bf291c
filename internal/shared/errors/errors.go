package errors

import "errors"

var (
	ErrMissingBotToken  = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrUnauthorized     = errors.New("unauthorized user")
	ErrFilterNotFound   = errors.New("filter not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrInvalidRecord    = errors.New("invalid filter record")
	ErrInvalidCriterion = errors.New("invalid filter criterion value")
)
