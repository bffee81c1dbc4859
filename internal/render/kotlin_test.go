package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calumari/declgen/internal/generator"
	"github.com/calumari/declgen/internal/typeq"
)

func TestTemplatesCoverStrategies(t *testing.T) {
	require.NoError(t, ensureTemplates())
	for _, s := range generator.Strategies {
		require.NotNil(t, kotlinTmpl.Lookup(bodyPrefix+string(s)), s)
	}
}

func renderGenerated(t *testing.T) map[string]string {
	t.Helper()
	tbl, err := typeq.LoadTableFile("../generator/testdata/glide.yaml")
	require.NoError(t, err)
	res, err := generator.Run(tbl, generator.Config{
		Package:        "com.example.app",
		AppModule:      "com.example.app.MyAppModule",
		LibraryModules: []string{"com.example.lib.VolleyModule", "com.example.lib.OkHttpModule"},
		Extensions:     []string{"com.example.ext.MyExtensions"},
	})
	require.NoError(t, err)

	k := NewKotlin()
	out := map[string]string{}
	for _, spec := range res.Types {
		src, err := k.Render(spec)
		require.NoError(t, err, spec.Name)
		out[spec.Name] = string(src)
	}
	return out
}

func TestRenderGenerated(t *testing.T) {
	files := renderGenerated(t)

	testCases := []struct {
		name    string
		want    []string
		notWant []string
	}{
		{
			name: "GlideOptions",
			want: []string{
				"package com.example.app\n",
				"import com.bumptech.glide.request.RequestOptions\n",
				"import androidx.annotation.CheckResult\n",
				"@SuppressWarnings(\"deprecation\")\nclass GlideOptions : RequestOptions(), Cloneable {",
				"    companion object {",
				"        private var centerCropTransform0: GlideOptions? = null",
				"            if (centerCropTransform0 == null) {\n" +
					"                centerCropTransform0 = GlideOptions().centerCrop().autoClone()\n" +
					"            }\n" +
					"            return centerCropTransform0",
				"frameOf2 = GlideOptions().frame(context.applicationContext).autoClone()",
				"        @JvmStatic\n        @CheckResult\n        @NonNull\n        fun bitmapTransform(transformation: Transformation<Bitmap>?): GlideOptions? {",
				"            return GlideOptions().transform(transformation)",
				"         * @see RequestOptions#centerCropTransform()",
				"    override fun centerCrop(): GlideOptions {\n        return super.centerCrop() as GlideOptions\n    }",
				"    @SafeVarargs\n    @SuppressWarnings(\"varargs\")\n    override fun transform(vararg transformations: Transformation<Bitmap>?): GlideOptions {",
				"return super.transform(*transformations) as GlideOptions",
				"override fun override(int0: Int, int1: Int): GlideOptions",
			},
			notWant: []string{"import java.lang", "import kotlin.jvm", "sizeMultiplierOf"},
		},
		{
			name: "GlideRequest",
			want: []string{
				"class GlideRequest<TranscodeType> : RequestBuilder<TranscodeType>, Cloneable {",
				"    internal constructor(@NonNull transcodeClass: Class<TranscodeType>, @NonNull other: RequestBuilder<*>) : super(transcodeClass, other)\n",
				"    protected override fun getDownloadOnlyRequest(): GlideRequest<File> {\n" +
					"        return GlideRequest<File>(File::class.java, this).apply(DOWNLOAD_ONLY_OPTIONS)\n",
				"    override fun load(o: Any?): GlideRequest<TranscodeType> {",
				"    final override fun error(vararg builders: RequestBuilder<TranscodeType>?): GlideRequest<TranscodeType> {\n" +
					"        return super.error(*builders) as GlideRequest<TranscodeType>\n",
				"import java.io.File\n",
			},
		},
		{
			name: "GlideRequests",
			want: []string{
				"    override fun <ResourceType> `as`(@NonNull resourceClass: Class<ResourceType>): GlideRequest<ResourceType> {\n" +
					"        return GlideRequest<ResourceType>(glide, this, resourceClass, context)\n",
				"    constructor(@NonNull glide: Glide, @NonNull lifecycle: Lifecycle, @NonNull treeNode: RequestManagerTreeNode, @NonNull context: Context) : super(glide, lifecycle, treeNode, context)\n",
				"        return MyExtensions.asGif(`as`(GifDrawable::class.java)) as GlideRequest<GifDrawable>\n",
				"        val requestBuilder = `as`(GifDrawable::class.java)\n" +
					"        MyExtensions.asLegacyGif(requestBuilder)\n" +
					"        return requestBuilder\n",
				"    protected override fun setRequestOptions(@NonNull toSet: RequestOptions) {\n" +
					"        if (toSet is GlideOptions) {\n" +
					"            super.setRequestOptions(toSet)\n" +
					"        } else {\n" +
					"            super.setRequestOptions(GlideOptions().apply(toSet))\n" +
					"        }\n",
				"override fun asBitmap(): GlideRequest<Bitmap> {",
				"import com.example.ext.MyExtensions\n",
			},
		},
		{
			name: "GeneratedRequestManagerFactory",
			want: []string{
				"package com.bumptech.glide\n",
				"import com.bumptech.glide.manager.RequestManagerRetriever.RequestManagerFactory\n",
				"import com.example.app.GlideRequests\n",
				"internal class GeneratedRequestManagerFactory : RequestManagerFactory {",
				"        return GlideRequests(glide, lifecycle, treeNode, context)\n",
			},
			notWant: []string{"import com.bumptech.glide.Glide\n"},
		},
		{
			name: "GlideApp",
			want: []string{
				"class GlideApp {\n",
				"    private constructor()\n",
				"        fun with(context: Context): GlideRequests {\n            return Glide.with(context) as GlideRequests\n",
				"        fun get(context: Context?): Glide? {\n            return Glide.get(context)\n",
				"        @VisibleForTesting\n        @SuppressLint(\"VisibleForTests\")\n        fun tearDown() {\n            Glide.tearDown()\n",
				"import android.annotation.SuppressLint\n",
			},
		},
		{
			name: "GeneratedAppGlideModuleImpl",
			want: []string{
				"internal class GeneratedAppGlideModuleImpl : GeneratedAppGlideModule {\n    private val appGlideModule: MyAppModule\n",
				"    constructor(context: Context) : super() {\n        appGlideModule = MyAppModule()\n    }\n",
				"        VolleyModule().registerComponents(context, glide, registry)\n" +
					"        appGlideModule.registerComponents(context, glide, registry)\n",
				"    override fun isManifestParsingEnabled(): Boolean {\n        return appGlideModule.isManifestParsingEnabled()\n",
				"    override fun getExcludedModuleClasses(): Set<Class<*>> {\n" +
					"        return setOf(com.example.lib.OkHttpModule::class.java)\n",
				"        return GeneratedRequestManagerFactory()\n",
			},
			notWant: []string{"OkHttpModule().registerComponents", "import kotlin.collections"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src, ok := files[tc.name]
			require.True(t, ok)
			for _, w := range tc.want {
				require.Contains(t, src, w)
			}
			for _, w := range tc.notWant {
				require.NotContains(t, src, w)
			}
			require.NotContains(t, src, "\n\n\n")
			require.NotContains(t, src, "{\n\n")
		})
	}
}

func TestImporter(t *testing.T) {
	im := newImporter(generator.TypeSpec{Name: "Widget", Package: "com.example"})

	require.Equal(t, "Foo", im.typ(typeq.ClassName("com.a.Foo")))
	require.Equal(t, "com.b.Foo", im.typ(typeq.ClassName("com.b.Foo")))
	require.Equal(t, "Foo", im.typ(typeq.ClassName("com.a.Foo")))
	require.Equal(t, "com.other.Widget", im.typ(typeq.ClassName("com.other.Widget")))
	require.Equal(t, "Helper", im.typ(typeq.ClassName("com.example.Helper")))
	require.Equal(t, "Class<*>?", im.typ(typeq.MustParse("java.lang.Class<?>?")))
	require.Equal(t, "Array<Int>", im.typ(typeq.MustParse("int[]")))
	require.Equal(t, "List<T>", im.typ(typeq.MustParse("kotlin.collections.List<T>")))
	require.Equal(t, []string{"com.a.Foo"}, im.list())
}

func TestRenderSmall(t *testing.T) {
	str := typeq.ClassName("java.lang.String")
	spec := generator.TypeSpec{
		Name:       "Holder",
		Package:    "com.example",
		Visibility: generator.Internal,
		Decls: []generator.Declaration{
			{
				Name:       "is",
				Kind:       generator.KindMethod,
				Params:     []generator.Parameter{{Name: "in", Type: str, Nullable: true}},
				Returns:    &str,
				Visibility: generator.Public,
				Body: generator.Body{
					Strategy: generator.DelegateToStaticMember,
					Owner:    typeq.ClassName("com.example.Util"),
					Target:   "object",
					Args:     []generator.Arg{{Expr: "in"}},
				},
			},
			{
				Name:       "none",
				Kind:       generator.KindMethod,
				Returns:    &str,
				Visibility: generator.Private,
				Body:       generator.Body{Strategy: generator.ReturnClassSet},
			},
		},
	}
	src, err := NewKotlin().Render(spec)
	require.NoError(t, err)
	require.Equal(t, "package com.example\n"+
		"\n"+
		"internal class Holder {\n"+
		"    fun `is`(`in`: String?): String {\n"+
		"        return Util.`object`(`in`)\n"+
		"    }\n"+
		"\n"+
		"    private fun none(): String {\n"+
		"        return emptySet()\n"+
		"    }\n"+
		"}\n", string(src))
}

func TestFileName(t *testing.T) {
	k := NewKotlin()
	require.Equal(t, "com/example/app/GlideApp.kt", k.FileName(generator.TypeSpec{Name: "GlideApp", Package: "com.example.app"}))
}
