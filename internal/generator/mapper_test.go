package generator

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/calumari/declgen/internal/typeq"
)

func TestInstanceNameForStatic(t *testing.T) {
	testCases := []struct {
		static string
		want   string
	}{
		{"centerCropTransform", "centerCrop"},
		{"bitmapTransform", "transform"},
		{"decodeTypeOf", "decode"},
		{"diskCacheStrategyOf", "diskCacheStrategy"},
		{"noTransformation", "dontTransform"},
		{"noAnimation", "dontAnimate"},
		{"option", "set"},
	}
	for _, tc := range testCases {
		t.Run(tc.static, func(t *testing.T) {
			got, err := InstanceNameForStatic(tc.static)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	t.Run("unrecognized", func(t *testing.T) {
		for _, name := range []string{"frobulate", "Transform", "Of", ""} {
			_, err := InstanceNameForStatic(name)
			require.Error(t, err, name)
			require.True(t, errors.Is(err, ErrUnrecognizedConvention), name)
		}
	})
}

func TestInferParameterName(t *testing.T) {
	testCases := []struct {
		desc   string
		param  typeq.Param
		vararg bool
		want   string
	}{
		{"explicit name wins", typeq.Param{Name: "width", Type: typeq.MustParse("int")}, false, "width"},
		{"class alias", typeq.Param{Type: typeq.MustParse("java.lang.Class<T>")}, false, "clazz"},
		{"object alias", typeq.Param{Type: typeq.MustParse("java.lang.Object")}, false, "o"},
		{"acronym", typeq.Param{Type: typeq.MustParse("java.net.URL")}, false, "url"},
		{"last pascal segment", typeq.Param{Type: typeq.MustParse("com.bumptech.glide.load.engine.DiskCacheStrategy")}, false, "strategy"},
		{"single word", typeq.Param{Type: typeq.MustParse("android.content.Context")}, false, "context"},
		{"primitive", typeq.Param{Type: typeq.MustParse("float")}, false, "float"},
		{"array", typeq.Param{Type: typeq.MustParse("com.example.Transformation[]")}, false, "transformations"},
		{"vararg", typeq.Param{Type: typeq.MustParse("com.example.Transformation<T>")}, true, "transformations"},
		{"type variable", typeq.Param{Type: typeq.MustParse("T")}, false, "t"},
		{"wildcard", typeq.Param{Type: typeq.MustParse("?")}, false, "arg"},
		{"non-ascii word", typeq.Param{Type: typeq.ClassName("com.example.Café")}, false, "café"},
		{"non-ascii segment", typeq.Param{Type: typeq.ClassName("com.example.PetitÉcran")}, false, "écran"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.want, InferParameterName(tc.param, tc.vararg))
		})
	}
}

func TestDedupParameters(t *testing.T) {
	foo := typeq.MustParse("com.example.Foo")
	mp := NewMapper(typeq.NewTable(), "")

	t.Run("any duplicate indexes every parameter", func(t *testing.T) {
		ps := mp.Parameters(typeq.Method{Params: []typeq.Param{{Type: foo}, {Type: foo}}})
		require.Equal(t, []string{"foo0", "foo1"}, names(ps))
	})

	t.Run("three with one clash", func(t *testing.T) {
		ps := mp.Parameters(typeq.Method{Params: []typeq.Param{{Type: foo}, {Type: typeq.MustParse("int")}, {Type: foo}}})
		require.Equal(t, []string{"foo0", "int1", "foo2"}, names(ps))
	})

	t.Run("distinct names are kept", func(t *testing.T) {
		ps := DedupParameters([]Parameter{{Name: "a"}, {Name: "b"}})
		require.Equal(t, []string{"a", "b"}, names(ps))
	})
}

func TestParametersNullability(t *testing.T) {
	mp := NewMapper(typeq.NewTable(), "")
	ps := mp.Parameters(typeq.Method{Params: []typeq.Param{
		{Type: typeq.MustParse("com.example.Foo")},
		{Type: typeq.MustParse("com.example.Bar"), NonNull: true},
		{Type: typeq.MustParse("com.example.Baz"), Annotations: []typeq.Annotation{{Type: "androidx.annotation.NonNull"}}},
		{Type: typeq.MustParse("int")},
	}})
	require.True(t, ps[0].Nullable)
	require.False(t, ps[1].Nullable)
	require.False(t, ps[2].Nullable)
	require.Len(t, ps[2].Annotations, 1)
	require.False(t, ps[3].Nullable)
}

func TestFindMethods(t *testing.T) {
	tbl := loadGlide(t)
	bro := typeq.ClassName(qnBaseRequestOptions)
	got := FindInstanceMethodsReturning(tbl, bro, bro)
	require.Equal(t, []string{"centerCrop", "diskCacheStrategy", "transform", "override"}, methodNames(got))

	ro := typeq.ClassName(qnRequestOptions)
	require.Len(t, FindStaticMethodsReturning(tbl, ro, ro), 6)
	require.Empty(t, FindStaticMethodsReturning(tbl, ro, typeq.ClassName(qnGlide)))
	require.Len(t, FindStaticMethods(tbl, typeq.ClassName(qnGlide)), 4)
}

func TestGenerateOverride(t *testing.T) {
	tbl := loadGlide(t)
	mp := NewMapper(tbl, "")
	bro := typeq.ClassName(qnBaseRequestOptions)
	opts := typeq.ClassName("com.example.GlideOptions")
	ms := FindInstanceMethodsReturning(tbl, bro, bro)

	d := mp.GenerateOverride(ms[0], opts)
	require.Equal(t, KindOverride, d.Kind)
	require.Equal(t, "centerCrop", d.Name)
	require.Equal(t, DelegateToSuper, d.Body.Strategy)
	require.Equal(t, "centerCrop", d.Body.Target)
	require.True(t, d.Returns.Equal(opts))
	require.True(t, d.Body.Cast.Equal(opts))
	require.Equal(t, []Annotation{{Type: "androidx.annotation.CheckResult"}}, d.Annotations)

	d = mp.GenerateOverride(ms[3], opts)
	require.Equal(t, []string{"int0", "int1"}, names(d.Params))
	require.Equal(t, []Arg{{Expr: "int0"}, {Expr: "int1"}}, d.Body.Args)

	d = mp.GenerateOverride(ms[2], opts)
	require.True(t, d.Varargs)
	require.True(t, d.Params[0].Vararg)
	require.Equal(t, "transformations", d.Params[0].Name)
}

func TestGenerateStaticFactoryEquivalent(t *testing.T) {
	tbl := loadGlide(t)
	ro := typeq.ClassName(qnRequestOptions)
	opts := typeq.ClassName("com.example.GlideOptions")
	statics := map[string]typeq.Method{}
	for _, m := range FindStaticMethods(tbl, ro) {
		statics[m.Name] = m
	}

	t.Run("no arguments are memoized", func(t *testing.T) {
		mp := NewMapper(tbl, "")
		d, slot, err := mp.GenerateStaticFactoryEquivalent(statics["centerCropTransform"], opts)
		require.NoError(t, err)
		require.Equal(t, KindStaticFactory, d.Kind)
		require.Equal(t, MemoizedStaticFactory, d.Body.Strategy)
		require.Equal(t, "centerCrop", d.Body.Target)
		require.Equal(t, "centerCropTransform0", d.Body.Slot)
		require.Equal(t, &Field{Name: "centerCropTransform0", Type: opts, Static: true, Private: true, Mutable: true, Nullable: true}, slot)
		require.True(t, d.Returns.Nullable)
	})

	t.Run("context argument is memoized on the application context", func(t *testing.T) {
		mp := NewMapper(tbl, "")
		d, slot, err := mp.GenerateStaticFactoryEquivalent(statics["frameOf"], opts)
		require.NoError(t, err)
		require.NotNil(t, slot)
		require.Equal(t, MemoizedStaticFactory, d.Body.Strategy)
		require.Equal(t, "frame", d.Body.Target)
		require.Equal(t, []Arg{{Expr: "context", Member: "applicationContext"}}, d.Body.Args)
	})

	t.Run("other arguments call directly", func(t *testing.T) {
		mp := NewMapper(tbl, "")
		d, slot, err := mp.GenerateStaticFactoryEquivalent(statics["diskCacheStrategyOf"], opts)
		require.NoError(t, err)
		require.Nil(t, slot)
		require.Equal(t, DirectFactory, d.Body.Strategy)
		require.Equal(t, "diskCacheStrategy", d.Body.Target)
		require.Equal(t, []Arg{{Expr: "strategy"}}, d.Body.Args)
		require.False(t, d.Params[0].Nullable)
	})

	t.Run("custom context type", func(t *testing.T) {
		mp := NewMapper(tbl, "com.example.Ctx")
		d, _, err := mp.GenerateStaticFactoryEquivalent(statics["frameOf"], opts)
		require.NoError(t, err)
		require.Equal(t, DirectFactory, d.Body.Strategy)
		require.Equal(t, []Arg{{Expr: "context"}}, d.Body.Args)
	})

	t.Run("slots are stable per method and numbered per mapper", func(t *testing.T) {
		mp := NewMapper(tbl, "")
		a, _, err := mp.GenerateStaticFactoryEquivalent(statics["noAnimation"], opts)
		require.NoError(t, err)
		b, _, err := mp.GenerateStaticFactoryEquivalent(statics["centerCropTransform"], opts)
		require.NoError(t, err)
		again, _, err := mp.GenerateStaticFactoryEquivalent(statics["noAnimation"], opts)
		require.NoError(t, err)
		require.Equal(t, "noAnimation0", a.Body.Slot)
		require.Equal(t, "centerCropTransform1", b.Body.Slot)
		require.Equal(t, a.Body.Slot, again.Body.Slot)
	})

	t.Run("overloads get their own slots", func(t *testing.T) {
		mp := NewMapper(tbl, "")
		plain := statics["centerCropTransform"]
		withContext := plain
		withContext.Params = []typeq.Param{{Name: "context", Type: typeq.ClassName(DefaultContextType)}}
		a, _, err := mp.GenerateStaticFactoryEquivalent(plain, opts)
		require.NoError(t, err)
		b, _, err := mp.GenerateStaticFactoryEquivalent(withContext, opts)
		require.NoError(t, err)
		require.Equal(t, "centerCropTransform0", a.Body.Slot)
		require.Equal(t, "centerCropTransform1", b.Body.Slot)
	})

	t.Run("unrecognized name", func(t *testing.T) {
		mp := NewMapper(tbl, "")
		_, _, err := mp.GenerateStaticFactoryEquivalent(typeq.Method{Owner: ro, Name: "frobulate", Static: true}, opts)
		require.True(t, errors.Is(err, ErrUnrecognizedConvention))
	})
}

func TestAnnotationValues(t *testing.T) {
	tbl := loadGlide(t)
	excludes := func(values ...typeq.AnnotationValue) []typeq.Annotation {
		return []typeq.Annotation{{Type: annExcludes, Values: values}}
	}

	t.Run("optional and absent", func(t *testing.T) {
		got, err := AnnotationClassValues(tbl, "App", nil, annExcludes)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("required and absent", func(t *testing.T) {
		_, err := SingleAnnotationValue(tbl, "App", nil, annExcludes)
		require.True(t, errors.Is(err, ErrMissingOrAmbiguousAnnotationValue))
	})

	t.Run("several values", func(t *testing.T) {
		anns := excludes(
			typeq.AnnotationValue{Name: "value", Classes: []string{"com.example.lib.OkHttpModule"}},
			typeq.AnnotationValue{Name: "other", Classes: []string{"com.example.lib.VolleyModule"}},
		)
		_, err := AnnotationClassValues(tbl, "App", anns, annExcludes)
		require.True(t, errors.Is(err, ErrMissingOrAmbiguousAnnotationValue))
	})

	t.Run("repeated annotation", func(t *testing.T) {
		anns := append(
			excludes(typeq.AnnotationValue{Name: "value", Classes: []string{"com.example.lib.OkHttpModule"}}),
			excludes(typeq.AnnotationValue{Name: "value", Classes: []string{"com.example.lib.VolleyModule"}})...,
		)
		_, err := AnnotationClassValues(tbl, "App", anns, annExcludes)
		require.True(t, errors.Is(err, ErrMissingOrAmbiguousAnnotationValue))
		require.Contains(t, err.Error(), "more than once")

		_, err = SingleAnnotationValue(tbl, "App", anns, annExcludes)
		require.True(t, errors.Is(err, ErrMissingOrAmbiguousAnnotationValue))
	})

	t.Run("unresolved class", func(t *testing.T) {
		anns := excludes(typeq.AnnotationValue{Name: "value", Classes: []string{"com.example.lib.Gone"}})
		_, err := AnnotationClassValues(tbl, "com.example.app.MyAppModule", anns, annExcludes)
		require.True(t, errors.Is(err, ErrUnresolvedExcludedReference))
		require.Contains(t, err.Error(), "com.example.app.MyAppModule")
		require.Contains(t, err.Error(), "com.example.lib.Gone")
	})

	t.Run("sorted classes", func(t *testing.T) {
		anns := excludes(typeq.AnnotationValue{Name: "value", Classes: []string{"com.example.lib.VolleyModule", "com.example.lib.OkHttpModule"}})
		got, err := AnnotationClassValues(tbl, "App", anns, annExcludes)
		require.NoError(t, err)
		require.Equal(t, "com.example.lib.OkHttpModule", got[0].Qualified)
		require.Equal(t, "com.example.lib.VolleyModule", got[1].Qualified)
	})
}

func loadGlide(t *testing.T) *typeq.Table {
	t.Helper()
	tbl, err := typeq.LoadTableFile("testdata/glide.yaml")
	require.NoError(t, err)
	return tbl
}

func names(ps []Parameter) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func methodNames(ms []typeq.Method) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}
