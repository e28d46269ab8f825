package urls

import (
	"os"
	"path/filepath"
	"testing"

	"drfspec/internal/endpoints"
	"drfspec/internal/pyast"
)

func writeURLFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectAll_NoEntryFile(t *testing.T) {
	urlMap, err := CollectAll(pyast.New(), t.TempDir())
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if len(urlMap) != 0 {
		t.Errorf("Expected empty map, got %v", urlMap)
	}
}

func TestCollectAll_SimplePatterns(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("items/", ItemView.as_view()),
    path("ping", ping_view),
    path("admin/", admin.site.urls),
]
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}

	if urlMap["ItemView"] != "/items/" {
		t.Errorf("Expected /items/, got %q", urlMap["ItemView"])
	}
	// Missing slashes are added at finalization.
	if urlMap["ping_view"] != "/ping/" {
		t.Errorf("Expected /ping/, got %q", urlMap["ping_view"])
	}
	// admin.site.urls is neither an as_view() call nor a bare name.
	if len(urlMap) != 2 {
		t.Errorf("Unexpected extra mappings: %v", urlMap)
	}
}

func TestCollectAll_NestedInclude(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("api/", include("events.urls")),
]
`)
	writeURLFile(t, root, "events/urls.py", `
urlpatterns = [
    path("events/<uuid:event_id>/", EventView.as_view()),
]
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}

	if urlMap["EventView"] != "/api/events/<uuid:event_id>/" {
		t.Errorf("Expected /api/events/<uuid:event_id>/, got %q", urlMap["EventView"])
	}
}

func TestCollectAll_TwoLevelInclude(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("api/", include("api.urls")),
]
`)
	writeURLFile(t, root, "api/urls.py", `
urlpatterns = [
    path("v1/", include("api.v1.urls")),
]
`)
	writeURLFile(t, root, "api/v1/urls.py", `
urlpatterns = [
    path("users/", UserListView.as_view()),
]
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if urlMap["UserListView"] != "/api/v1/users/" {
		t.Errorf("Expected /api/v1/users/, got %q", urlMap["UserListView"])
	}
}

// Prefixes concatenate unmodified, so fragments without a trailing slash
// produce fused segments. That behavior is intentional.
func TestCollectAll_RawPrefixConcatenation(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("api", include("events.urls")),
]
`)
	writeURLFile(t, root, "events/urls.py", `
urlpatterns = [
    path("events/", EventView.as_view()),
]
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if urlMap["EventView"] != "/apievents/" {
		t.Errorf("Expected raw concatenation /apievents/, got %q", urlMap["EventView"])
	}
}

func TestCollectAll_BrokenIncludeSkipped(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("bad/", include("broken.urls")),
    path("missing/", include("nowhere.urls")),
    path("good/", GoodView.as_view()),
]
`)
	writeURLFile(t, root, "broken/urls.py", "urlpatterns = [path(\n")

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("Broken include must not abort resolution: %v", err)
	}
	if urlMap["GoodView"] != "/good/" {
		t.Errorf("Expected /good/, got %q", urlMap["GoodView"])
	}
	if len(urlMap) != 1 {
		t.Errorf("Unexpected mappings: %v", urlMap)
	}
}

func TestCollectAll_EntrySyntaxErrorPropagates(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", "urlpatterns = [path(\n")

	_, err := CollectAll(pyast.New(), root)
	if err == nil {
		t.Fatal("Expected syntax error in entry file to propagate")
	}
}

func TestCollectAll_IgnoredShapes(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
prefix = "dynamic"

urlpatterns = [
    path(prefix, SkippedView.as_view()),
    path("one-arg/"),
    route("items/", ItemView.as_view()),
    path("ok/", OkView.as_view()),
]
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if len(urlMap) != 1 || urlMap["OkView"] != "/ok/" {
		t.Errorf("Only OkView should resolve, got %v", urlMap)
	}
}

func TestCollectAll_NonListPatternsSkipped(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = router.urls
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if len(urlMap) != 0 {
		t.Errorf("Expected empty map, got %v", urlMap)
	}
}

func TestResolve_EnrichesCopies(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("items/", ItemView.as_view()),
]
`)

	original := []endpoints.Endpoint{
		{App: "shop", View: "ItemView", Kind: endpoints.KindClassView},
		{App: "shop", View: "OrphanView", Kind: endpoints.KindClassView},
	}

	resolved, err := Resolve(pyast.New(), root, original)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if resolved[0].URL != "/items/" {
		t.Errorf("Expected /items/, got %q", resolved[0].URL)
	}
	if resolved[1].URL != "" {
		t.Errorf("Unmatched endpoint must keep empty URL, got %q", resolved[1].URL)
	}
	// Input records stay untouched.
	if original[0].URL != "" {
		t.Error("Resolve mutated its input")
	}
}

func TestCollectAll_LastWriterWins(t *testing.T) {
	root := t.TempDir()
	writeURLFile(t, root, "config/urls.py", `
urlpatterns = [
    path("first/", DupView.as_view()),
    path("second/", DupView.as_view()),
]
`)

	urlMap, err := CollectAll(pyast.New(), root)
	if err != nil {
		t.Fatalf("CollectAll failed: %v", err)
	}
	if urlMap["DupView"] != "/second/" {
		t.Errorf("Expected last writer to win, got %q", urlMap["DupView"])
	}
}
