// Package pathutil provides JSON pointer and location helpers for walking
// OpenAPI documents.
//
// # PathBuilder
//
// [PathBuilder] tracks the current location during a recursive walk using
// push/pop semantics. Use [Get] to obtain a pooled builder and [Put] to
// return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("paths")
//	path.Push("/auth")
//	path.PushIndex(0)
//	path.String()  // "paths./auth[0]"
//	path.Pointer() // "#/paths/~1auth/0"
//
// # References
//
// Local references are RFC 6901 JSON pointers behind a "#". [SplitPointer]
// and [JoinPointer] convert between ref strings and unescaped tokens, and
// [CanonicalRef] normalizes escaping so that a ref can serve as a map key.
// [ParseComponentRef] recognizes named component refs of both OAS 2.0 and
// OAS 3.x:
//
//	pathutil.ParseComponentRef("#/components/schemas/Pet") // "schemas", "Pet", false, true
//	pathutil.ParseComponentRef("#/definitions/Pet")        // "definitions", "Pet", true, true
//
// [ComponentRef] builds the ref of a named definition for either version.
package pathutil
