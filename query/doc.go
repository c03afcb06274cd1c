// Package query evaluates structured query expressions against decoded
// OpenAPI document trees.
//
// Every dialect implements the single-method Evaluator interface, so the
// extraction engine only ever sees an ordered sequence of matched nodes.
// Three dialects are registered:
//
//   - jmespath (default): JMESPath, e.g. paths."/users".get
//   - jsonpath: an RFC 9535 JSONPath subset, e.g. $.paths['/users'].get
//   - expr: expr-lang expressions, e.g. paths["/users"].get
//
// A top-level list result is a sequence of matches; a null result is an
// empty sequence; anything else is a single match.
//
// Syntax and evaluation failures are returned as *oaserrors.LocatorError
// values matching oaserrors.ErrInvalidLocator.
package query
