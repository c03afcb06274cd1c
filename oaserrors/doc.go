// Package oaserrors provides structured error types for apispec.
//
// Import path: github.com/erraggy/apispec/oaserrors
//
// Every failure of the extraction engine is returned as a distinct,
// inspectable value. Callers use [errors.Is] to branch on the error kind and
// [errors.As] to read the details.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures of the source document
//   - [DocumentError]: structurally unusable documents (root not an object, ...)
//   - [LocatorError]: empty or malformed locators, and locators that match nothing
//   - [ReferenceError]: $ref values inside the closure that cannot be resolved
//   - [OperationError]: operations that cannot be reshaped into a tool definition
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrMalformedDocument]: Matches any [DocumentError]
//   - [ErrInvalidLocator]: Matches [LocatorError] with NotFound=false
//   - [ErrPathNotFound]: Matches [LocatorError] with NotFound=true
//   - [ErrReference], [ErrDanglingReference]: Match any [ReferenceError]
//   - [ErrUnsupportedOperation]: Matches any [OperationError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	frag, err := extract.Extract(doc, extract.PathLocator("/auth"), extract.DefaultOptions())
//	switch {
//	case errors.Is(err, oaserrors.ErrPathNotFound):
//	    // no such path
//	case errors.Is(err, oaserrors.ErrDanglingReference):
//	    var refErr *oaserrors.ReferenceError
//	    errors.As(err, &refErr)
//	    fmt.Printf("broken $ref %s at %s\n", refErr.Ref, refErr.Location)
//	}
//
// The engine never retries and never exits the process; presenting the error
// and choosing an exit status is left to the caller.
package oaserrors
