package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrEmptyBatch   = errors.New("empty rating batch")
	ErrStoreClosed  = errors.New("store closed")
	ErrOpenDatabase = errors.New("open database failed")
)
