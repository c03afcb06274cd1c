package extract

import (
	"strings"

	"github.com/erraggy/apispec/oaserrors"
)

// LocatorKind selects how a locator value is interpreted.
type LocatorKind int

const (
	// LocatorPath is an exact path template such as "/users/{id}".
	LocatorPath LocatorKind = iota
	// LocatorQuery is a query expression evaluated against the whole document.
	LocatorQuery
	// LocatorOperationID names a single operation by its operationId.
	LocatorOperationID
)

// String returns the mode name used in error messages.
func (k LocatorKind) String() string {
	switch k {
	case LocatorPath:
		return "path"
	case LocatorQuery:
		return "query"
	case LocatorOperationID:
		return "operationId"
	default:
		return "unknown"
	}
}

// Locator identifies the part of a document to extract.
type Locator struct {
	Kind  LocatorKind
	Value string
	// Dialect names the query dialect for LocatorQuery ("" selects the default).
	Dialect string
}

// PathLocator returns an exact-path locator. The value is normalized by Extract.
func PathLocator(path string) Locator {
	return Locator{Kind: LocatorPath, Value: path}
}

// QueryLocator returns a query-expression locator in the given dialect.
func QueryLocator(expr, dialect string) Locator {
	return Locator{Kind: LocatorQuery, Value: expr, Dialect: dialect}
}

// OperationIDLocator returns a locator selecting the operation with the given operationId.
func OperationIDLocator(id string) Locator {
	return Locator{Kind: LocatorOperationID, Value: id}
}

// NormalizeLocator validates raw and normalizes it for kind.
//
// Path locators get exactly one leading "/" ("auth" and "/auth" are the same
// locator). Query expressions and operationIds pass through unchanged.
// An empty or blank value is an *oaserrors.LocatorError matching
// oaserrors.ErrInvalidLocator.
func NormalizeLocator(raw string, kind LocatorKind) (Locator, error) {
	if strings.TrimSpace(raw) == "" {
		return Locator{}, &oaserrors.LocatorError{
			Locator: raw,
			Mode:    kind.String(),
			Message: "locator is empty",
		}
	}

	switch kind {
	case LocatorPath:
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		return Locator{Kind: kind, Value: raw}, nil
	case LocatorQuery, LocatorOperationID:
		return Locator{Kind: kind, Value: raw}, nil
	default:
		return Locator{}, &oaserrors.LocatorError{
			Locator: raw,
			Mode:    kind.String(),
			Message: "unknown locator kind",
		}
	}
}

func (l Locator) normalize() (Locator, error) {
	n, err := NormalizeLocator(l.Value, l.Kind)
	if err != nil {
		return Locator{}, err
	}
	n.Dialect = l.Dialect
	return n, nil
}
