// Package common defines shared sentinel errors and small helpers used
// across the directory core and its callers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors. These are deterministic rejections of caller
	// input and are never worth retrying.
	ErrorEmailRequired = errors.New("email address is required")

	// Generic internal failure surfaced when details must not leak.
	ErrorInternal = errors.New("internal error")
)
