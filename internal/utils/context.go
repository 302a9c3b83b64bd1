// Package utils provides general-purpose helper utilities
// used across different parts of the device agent.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and trace identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// OperatorCtxKey is the key used to store the authenticated admin operator
// (the "sub" claim of the admin token) in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.OperatorCtxKey, "maintenance")
var OperatorCtxKey = contextKey("operator")

// GetOperatorFromContext retrieves the admin operator name from the context.
//
// Returns the operator and an ok flag:
//   - ok == true: value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
func GetOperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorCtxKey).(string)
	return operator, ok && operator != ""
}
