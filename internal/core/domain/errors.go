package domain

import "errors"

// Ingestion and retention errors.
var (
	ErrUnknownTap           = errors.New("unknown tap")
	ErrPersistence          = errors.New("persistence failure")
	ErrSerialization        = errors.New("serialization failure")
	ErrUnknownTapAlert      = errors.New("unknown tap alert type")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrInvalidAlert         = errors.New("invalid alert")
)
