package scanner

// AppMeta describes one discovered Django app and its per-layer source files.
// File lists are absolute paths, sorted and de-duplicated, with __init__.py
// excluded. Immutable after Scan returns.
type AppMeta struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Views       []string `json:"views"`
	Serializers []string `json:"serializers"`
	Services    []string `json:"services"`
	Usecases    []string `json:"usecases"`
	Entities    []string `json:"entities"`
	OrmModels   []string `json:"orm_models"`
}

type Result struct {
	ProjectRoot    string    `json:"project_root"`
	SettingsModule string    `json:"settings_module"`
	Apps           []AppMeta `json:"apps"`
}
