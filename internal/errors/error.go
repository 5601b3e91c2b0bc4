// Package errors provides sentinel errors shared by the catalog, the CMS store and the transport.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")

// ErrValidation is matched by every validation failure of an admin draft.
var ErrValidation = errors.New("validation failed")

// ErrPersistence wraps blob load/save failures. It is logged, never returned to API clients.
var ErrPersistence = errors.New("persistence failed")

var ErrIndexOutOfRange = errors.New("image index out of range")
var ErrUnknownPriceBucket = errors.New("unknown price bucket")
var ErrUnknownSortOrder = errors.New("unknown sort order")
