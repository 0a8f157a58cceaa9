/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"fmt"
	"os"
	"strings"
)

// FileSystemResolver defines the interface for resolving and reading
// templates from `file://` URIs or plain paths
type FileSystemResolver interface {
	Resolve(templateURI string) (string, error)
}

// DefaultFileSystemResolver implements FileSystemResolver for the local
// filesystem
type DefaultFileSystemResolver struct {
	// BaseResolver maps a relative path from the configuration onto the
	// filesystem, typically relative to the config file directory
	BaseResolver func(path string) string
}

// Resolve reads template content from a file:// URI or plain path
func (fsr *DefaultFileSystemResolver) Resolve(templateURI string) (string, error) {
	filePath := strings.TrimPrefix(templateURI, "file://")
	if fsr.BaseResolver != nil {
		filePath = fsr.BaseResolver(filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", filePath, err)
	}
	return string(content), nil
}
