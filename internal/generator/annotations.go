package generator

import (
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/calumari/declgen/internal/typeq"
)

const (
	annGlideType  = "com.bumptech.glide.annotation.GlideType"
	annExcludes   = "com.bumptech.glide.annotation.Excludes"
	annDeprecated = "java.lang.Deprecated"

	annSafeVarargs      = "java.lang.SafeVarargs"
	annSuppressWarnings = "java.lang.SuppressWarnings"
	annSuppressLint     = "android.annotation.SuppressLint"
	annJvmStatic        = "kotlin.jvm.JvmStatic"

	androidxNonNull           = "androidx.annotation.NonNull"
	supportNonNull            = "android.support.annotation.NonNull"
	androidxCheckResult       = "androidx.annotation.CheckResult"
	supportCheckResult        = "android.support.annotation.CheckResult"
	androidxVisibleForTesting = "androidx.annotation.VisibleForTesting"
	supportVisibleForTesting  = "android.support.annotation.VisibleForTesting"
)

// support picks the androidx flavour of an annotation when the library knows
// it, the legacy support-library one otherwise.
type support struct {
	nonNull           string
	checkResult       string
	visibleForTesting string
}

func resolveSupport(q typeq.Query) support {
	pick := func(androidx, legacy string) string {
		if _, ok := q.Lookup(androidx); ok {
			return androidx
		}
		return legacy
	}
	return support{
		nonNull:           pick(androidxNonNull, supportNonNull),
		checkResult:       pick(androidxCheckResult, supportCheckResult),
		visibleForTesting: pick(androidxVisibleForTesting, supportVisibleForTesting),
	}
}

func marker(typ string) Annotation { return Annotation{Type: typ} }

func suppressWarnings(values ...string) Annotation {
	a := Annotation{Type: annSuppressWarnings}
	for _, v := range values {
		a.Members = append(a.Members, strconv.Quote(v))
	}
	return a
}

func varargsAnnotations() []Annotation {
	return []Annotation{marker(annSafeVarargs), suppressWarnings("varargs")}
}

// copyAnnotations converts annotation uses found on library members.
func copyAnnotations(in []typeq.Annotation) []Annotation {
	var out []Annotation
	for _, a := range in {
		ca := Annotation{Type: a.Type}
		for _, v := range a.Values {
			for _, c := range v.Classes {
				member := c + "::class"
				if v.Name != "" && v.Name != "value" {
					member = v.Name + " = " + member
				}
				ca.Members = append(ca.Members, member)
			}
		}
		out = append(out, ca)
	}
	return out
}

// SingleAnnotationValue returns the classes of the single element value of
// the annotation annType found in anns. subject names the annotated
// declaration in errors. The annotation must be present.
func SingleAnnotationValue(q typeq.Query, subject string, anns []typeq.Annotation, annType string) ([]typeq.TypeName, error) {
	classes, found, err := annotationClasses(q, subject, anns, annType)
	if err != nil {
		return nil, err
	}
	if !found || len(classes) == 0 {
		return nil, errors.WithHint(
			errors.Wrapf(ErrMissingOrAmbiguousAnnotationValue, "%s: no @%s value", subject, typeq.ClassName(annType).Simple()),
			"annotate the declaration with exactly one class value",
		)
	}
	return classes, nil
}

// AnnotationClassValues is SingleAnnotationValue for optional annotations:
// an absent annotation yields no classes. The result is sorted by name.
func AnnotationClassValues(q typeq.Query, subject string, anns []typeq.Annotation, annType string) ([]typeq.TypeName, error) {
	classes, _, err := annotationClasses(q, subject, anns, annType)
	if err != nil {
		return nil, err
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Qualified < classes[j].Qualified })
	return classes, nil
}

func annotationClasses(q typeq.Query, subject string, anns []typeq.Annotation, annType string) ([]typeq.TypeName, bool, error) {
	var value *typeq.AnnotationValue
	found := false
	for _, a := range anns {
		if a.Type != annType {
			continue
		}
		if found {
			return nil, true, errors.Wrapf(ErrMissingOrAmbiguousAnnotationValue,
				"%s: @%s appears more than once", subject, typeq.ClassName(annType).Simple())
		}
		found = true
		if len(a.Values) != 1 {
			return nil, true, errors.Wrapf(ErrMissingOrAmbiguousAnnotationValue,
				"%s: expected a single @%s value, found %d", subject, typeq.ClassName(annType).Simple(), len(a.Values))
		}
		v := a.Values[0]
		value = &v
	}
	if value == nil {
		return nil, found, nil
	}
	out := make([]typeq.TypeName, 0, len(value.Classes))
	for _, c := range value.Classes {
		t, ok := q.Lookup(c)
		if !ok {
			return nil, true, errors.WithHint(
				errors.Wrapf(ErrUnresolvedExcludedReference, "%s: @%s names %s", subject, typeq.ClassName(annType).Simple(), c),
				"make sure every referenced class is part of the library type table",
			)
		}
		out = append(out, t)
	}
	return out, true, nil
}
