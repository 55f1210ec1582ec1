// Package utils provides small helpers shared across the application.
package utils

import (
	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands a leading tilde in the given path. If expansion
// fails the path is returned unchanged.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
