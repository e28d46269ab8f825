package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"drfspec/internal/config"
	"drfspec/internal/shared/util"
)

var (
	ErrProjectNotFound  = errors.New("not a Django project (manage.py not found)")
	ErrSettingsNotFound = errors.New("settings.py not found")
)

// layerOrder fixes the collection order so walk results land in the same
// layer lists on every run.
var layerOrder = []string{"views", "serializers", "services", "usecases", "entities", "orm_models"}

// Scan validates the project root, detects the settings module and collects
// per-app layer files. settings overrides detection when non-empty.
func Scan(projectRoot, settings string, cfg *config.Config) (*Result, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(root, "manage.py")); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, root)
	}

	settingsModule := settings
	if settingsModule == "" {
		settingsModule, err = detectSettingsModule(root, cfg.Exclude.VendorDirs)
		if err != nil {
			return nil, err
		}
	}

	apps, err := scanApps(root, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		ProjectRoot:    root,
		SettingsModule: settingsModule,
		Apps:           apps,
	}, nil
}

// detectSettingsModule walks the tree for a file named settings.py and
// returns its dotted module path relative to root. WalkDir visits entries in
// lexical order, so the first match is stable across runs.
func detectSettingsModule(root string, vendorDirs []string) (string, error) {
	var found string
	errFound := errors.New("found")

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, vendor := range vendorDirs {
				if d.Name() == vendor {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if d.Name() != "settings.py" {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = strings.TrimSuffix(rel, ".py")
		found = strings.Join(strings.Split(filepath.ToSlash(rel), "/"), ".")
		return errFound
	})

	if errors.Is(err, errFound) {
		return found, nil
	}
	if err != nil {
		return "", err
	}
	return "", ErrSettingsNotFound
}

func scanApps(root string, cfg *config.Config) ([]AppMeta, error) {
	matchers, err := compileLayerMatchers(cfg.Layers)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var apps []AppMeta
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if hasExcludedPrefix(entry.Name(), cfg.Exclude.DirPrefixes) {
			continue
		}

		appPath := filepath.Join(root, entry.Name())
		if !looksLikeApp(appPath) {
			continue
		}

		app, err := scanApp(entry.Name(), appPath, matchers)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, nil
}

func hasExcludedPrefix(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// looksLikeApp applies the app-marker heuristic: an app descriptor, a flat
// models module, or one of the layered-architecture subdirectories.
func looksLikeApp(path string) bool {
	for _, marker := range []string{"apps.py", "models.py", "presentation", "application"} {
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return true
		}
	}
	return false
}

func compileLayerMatchers(layers config.Layers) (map[string][]glob.Glob, error) {
	stems := map[string][]string{
		"views":       layers.Views,
		"serializers": layers.Serializers,
		"services":    layers.Services,
		"usecases":    layers.Usecases,
		"entities":    layers.Entities,
		"orm_models":  layers.OrmModels,
	}

	matchers := make(map[string][]glob.Glob, len(stems))
	for layer, layerStems := range stems {
		for _, stem := range layerStems {
			// Each stem matches both the flat module and every file
			// directly under the directory of the same name.
			for _, pattern := range []string{stem + ".py", stem + "/*.py"} {
				g, err := glob.Compile(pattern, '/')
				if err != nil {
					return nil, fmt.Errorf("layer pattern %q: %w", pattern, err)
				}
				matchers[layer] = append(matchers[layer], g)
			}
		}
	}
	return matchers, nil
}

func scanApp(name, appPath string, matchers map[string][]glob.Glob) (AppMeta, error) {
	collected := make(map[string][]string, len(layerOrder))

	err := filepath.WalkDir(appPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == "__init__.py" {
			return nil
		}

		rel, relErr := filepath.Rel(appPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		for _, layer := range layerOrder {
			for _, g := range matchers[layer] {
				if g.Match(rel) {
					collected[layer] = append(collected[layer], path)
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return AppMeta{}, err
	}

	return AppMeta{
		Name:        name,
		Path:        appPath,
		Views:       util.SortedUnique(collected["views"]),
		Serializers: util.SortedUnique(collected["serializers"]),
		Services:    util.SortedUnique(collected["services"]),
		Usecases:    util.SortedUnique(collected["usecases"]),
		Entities:    util.SortedUnique(collected["entities"]),
		OrmModels:   util.SortedUnique(collected["orm_models"]),
	}, nil
}
