// Package utils provides common utility functions for the subtrack application.
// It includes helper functions for type conversion of heterogeneous provider
// API values and other shared logic that doesn't fit into domain-specific
// packages.
package utils
