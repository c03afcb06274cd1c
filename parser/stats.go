package parser

import (
	"github.com/erraggy/apispec/internal/httputil"
	"github.com/erraggy/apispec/internal/pathutil"
)

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount       int // Number of paths defined
	OperationCount  int // Total number of operations across all paths
	DefinitionCount int // Named definitions across every component category
}

// GetDocumentStats returns statistics for a decoded document tree.
// Entries of the wrong JSON type are skipped rather than reported.
func GetDocumentStats(doc map[string]any) DocumentStats {
	stats := DocumentStats{}

	if paths, ok := doc["paths"].(map[string]any); ok {
		for _, item := range paths {
			pathItem, ok := item.(map[string]any)
			if !ok {
				continue
			}
			stats.PathCount++
			for key := range pathItem {
				if httputil.IsMethod(key) {
					stats.OperationCount++
				}
			}
		}
	}

	if components, ok := doc["components"].(map[string]any); ok {
		for _, cat := range pathutil.ComponentCategories3 {
			if defs, ok := components[cat].(map[string]any); ok {
				stats.DefinitionCount += len(defs)
			}
		}
	}
	if _, isOAS3 := doc["openapi"]; !isOAS3 {
		for _, cat := range pathutil.ComponentCategories2 {
			if defs, ok := doc[cat].(map[string]any); ok {
				stats.DefinitionCount += len(defs)
			}
		}
	}

	return stats
}
