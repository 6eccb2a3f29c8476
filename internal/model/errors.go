// Package model provides core data types for the watch store.
package model

import "errors"

// Error types for store operations
var (
	ErrUnknownTable     = errors.New("unknown table")
	ErrNotConnected     = errors.New("store not connected")
	ErrCorruptBlob      = errors.New("corrupt store blob")
	ErrBackupNotFound   = errors.New("backup not found")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrUnknownOperator  = errors.New("unknown operator")
	ErrInvalidID        = errors.New("invalid record ID")
	ErrSeedParse        = errors.New("seed document is not valid JSON")
)
