package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"drfspec/internal/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "manage.py"))
	writeFile(t, filepath.Join(root, "config", "settings.py"))
	return root
}

func TestScan_ProjectNotFound(t *testing.T) {
	result, err := Scan(t.TempDir(), "", config.Default())
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("Expected ErrProjectNotFound, got %v", err)
	}
	if result != nil {
		t.Error("Expected nil result on failure")
	}
}

func TestScan_SettingsDetection(t *testing.T) {
	root := newProject(t)
	// Vendored settings must be skipped even though "_vendor" sorts before "config".
	writeFile(t, filepath.Join(root, "_vendor", "site-packages", "django", "conf", "settings.py"))

	result, err := Scan(root, "", config.Default())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.SettingsModule != "config.settings" {
		t.Errorf("Expected config.settings, got %s", result.SettingsModule)
	}
}

func TestScan_SettingsNotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "manage.py"))

	_, err := Scan(root, "", config.Default())
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("Expected ErrSettingsNotFound, got %v", err)
	}
}

func TestScan_SettingsOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "manage.py"))

	result, err := Scan(root, "myproj.settings.dev", config.Default())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if result.SettingsModule != "myproj.settings.dev" {
		t.Errorf("Override not applied: %s", result.SettingsModule)
	}
}

func TestScan_AppMarkers(t *testing.T) {
	root := newProject(t)

	writeFile(t, filepath.Join(root, "flat", "models.py"))
	writeFile(t, filepath.Join(root, "descriptor", "apps.py"))
	writeFile(t, filepath.Join(root, "layered", "presentation", "views.py"))
	writeFile(t, filepath.Join(root, "clean", "application", "services.py"))
	writeFile(t, filepath.Join(root, "not_an_app", "helpers.py"))
	writeFile(t, filepath.Join(root, ".hidden", "models.py"))
	writeFile(t, filepath.Join(root, "__pycache__", "models.py"))
	writeFile(t, filepath.Join(root, "venv", "models.py"))

	result, err := Scan(root, "", config.Default())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	names := make(map[string]bool)
	for _, app := range result.Apps {
		if names[app.Name] {
			t.Errorf("App %s listed twice", app.Name)
		}
		names[app.Name] = true
	}

	for _, want := range []string{"flat", "descriptor", "layered", "clean"} {
		if !names[want] {
			t.Errorf("Expected app %s in %v", want, names)
		}
	}
	for _, reject := range []string{"not_an_app", ".hidden", "__pycache__", "venv", "config"} {
		if names[reject] {
			t.Errorf("Directory %s should not qualify as an app", reject)
		}
	}
}

func TestScan_LayerCollection(t *testing.T) {
	root := newProject(t)
	app := filepath.Join(root, "events")

	writeFile(t, filepath.Join(app, "models.py"))
	writeFile(t, filepath.Join(app, "views.py"))
	writeFile(t, filepath.Join(app, "presentation", "views", "event_views.py"))
	writeFile(t, filepath.Join(app, "presentation", "views", "admin_views.py"))
	writeFile(t, filepath.Join(app, "presentation", "views", "__init__.py"))
	writeFile(t, filepath.Join(app, "presentation", "serializers.py"))
	writeFile(t, filepath.Join(app, "application", "usecases", "create_event.py"))
	writeFile(t, filepath.Join(app, "domain", "entities", "event.py"))
	writeFile(t, filepath.Join(app, "adapters", "orm", "models", "event_model.py"))

	result, err := Scan(root, "", config.Default())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(result.Apps) != 1 {
		t.Fatalf("Expected 1 app, got %d", len(result.Apps))
	}
	events := result.Apps[0]

	if len(events.Views) != 3 {
		t.Fatalf("Expected 3 view files, got %v", events.Views)
	}
	// Sorted: admin_views before event_views, flat views.py last by path.
	if filepath.Base(events.Views[0]) != "admin_views.py" {
		t.Errorf("View list not sorted: %v", events.Views)
	}
	for _, v := range events.Views {
		if filepath.Base(v) == "__init__.py" {
			t.Errorf("__init__.py leaked into views: %v", events.Views)
		}
	}

	if len(events.Serializers) != 1 {
		t.Errorf("Unexpected serializers: %v", events.Serializers)
	}
	if len(events.Usecases) != 1 {
		t.Errorf("Unexpected usecases: %v", events.Usecases)
	}
	if len(events.Entities) != 1 {
		t.Errorf("Unexpected entities: %v", events.Entities)
	}

	// Both the layered orm location and the legacy flat models.py are kept.
	if len(events.OrmModels) != 2 {
		t.Errorf("Expected orm model union of 2 files, got %v", events.OrmModels)
	}
}

func TestScan_EmptyLayersAreEmptySlices(t *testing.T) {
	root := newProject(t)
	writeFile(t, filepath.Join(root, "bare", "apps.py"))

	result, err := Scan(root, "", config.Default())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	app := result.Apps[0]
	if app.Views == nil || app.Serializers == nil || app.Entities == nil {
		t.Error("Layer lists should be empty slices, not nil")
	}
	if len(app.Views) != 0 {
		t.Errorf("Expected no views, got %v", app.Views)
	}
}
