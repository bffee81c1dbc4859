package generator

import "github.com/cockroachdb/errors"

// Any of these aborts the run; Run never returns partial output.
var (
	// ErrUnrecognizedConvention is returned when a static method name matches
	// no instance-name rule.
	ErrUnrecognizedConvention = errors.New("unrecognized static method naming convention")
	// ErrMissingOrAmbiguousAnnotationValue is returned when a single-valued
	// annotation lookup finds zero or several values.
	ErrMissingOrAmbiguousAnnotationValue = errors.New("missing or ambiguous annotation value")
	// ErrUnresolvedExcludedReference is returned when a class named by an
	// annotation cannot be resolved.
	ErrUnresolvedExcludedReference = errors.New("unresolved excluded reference")
)
