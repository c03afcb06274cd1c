// Package naming derives identifiers for extracted fragments.
//
// It covers case conversion ([ToPascalCase], [ToCamelCase]), tool names
// derived from operationIds or verb+path pairs ([SanitizeToolName],
// [OperationName]) and the numeric suffixes used when two component
// definitions would share a local name ([Disambiguate]).
package naming
