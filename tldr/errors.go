package tldr

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the class of failure behind an Error.
type ErrorKind int

const (
	// KindHTTP is a non-2xx response from the newsletter site.
	KindHTTP ErrorKind = iota + 1
	// KindTransport is a request that could not be completed at all.
	KindTransport
	// KindElementNotFound is a required element missing from the document.
	KindElementNotFound
	// KindMissingAttribute is a required attribute missing from a found element.
	KindMissingAttribute
	// KindSelectorSyntax is a selector that failed to compile.
	KindSelectorSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindTransport:
		return "transport"
	case KindElementNotFound:
		return "element not found"
	case KindMissingAttribute:
		return "missing attribute"
	case KindSelectorSyntax:
		return "selector syntax"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by every fetch and extraction operation in this package.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // KindHTTP
	URL        string // KindHTTP, KindTransport
	Selector   string // KindElementNotFound, KindMissingAttribute, KindSelectorSyntax
	Attribute  string // KindMissingAttribute
	Err        error  // KindTransport, KindSelectorSyntax
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
	case KindTransport:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	case KindElementNotFound:
		return fmt.Sprintf("element not found for selector: %s", e.Selector)
	case KindMissingAttribute:
		return fmt.Sprintf("attribute %q not found on element: %s", e.Attribute, e.Selector)
	case KindSelectorSyntax:
		return fmt.Sprintf("invalid selector %q: %v", e.Selector, e.Err)
	default:
		return fmt.Sprintf("tldr: %s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err, or any error it wraps, is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func elementNotFound(selector string) *Error {
	return &Error{Kind: KindElementNotFound, Selector: selector}
}

func missingAttribute(selector, attribute string) *Error {
	return &Error{Kind: KindMissingAttribute, Selector: selector, Attribute: attribute}
}
