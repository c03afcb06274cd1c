package pathutil

import (
	"regexp"
	"strings"
)

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// TemplateWords splits a path template into its literal words, with
// template braces removed: "/users/{id}/pets" -> ["users", "id", "pets"].
func TemplateWords(template string) []string {
	var words []string
	for _, seg := range strings.Split(template, "/") {
		seg = PathParamRegex.ReplaceAllString(seg, "$1")
		if seg != "" {
			words = append(words, seg)
		}
	}
	return words
}
