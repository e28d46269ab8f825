package spec

// SpecVersion identifies the document layout. Consumers pin against it.
const SpecVersion = "1.0"

// Document is the versioned JSON artifact consumed by the downstream test
// generator. Only endpoints with a resolved URL appear in Endpoints.
type Document struct {
	SpecVersion string      `json:"spec_version"`
	Project     Project     `json:"project"`
	Apps        []App       `json:"apps"`
	Endpoints   []Endpoint  `json:"endpoints"`
	Conventions Conventions `json:"conventions"`
}

type Project struct {
	Name           string `json:"name"`
	Framework      string `json:"framework"`
	SettingsModule string `json:"settings_module"`
	Root           string `json:"root"`
}

type App struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Layers Layers `json:"layers"`
}

// Layers lists the non-endpoint layer files per app. Views and serializers
// are deliberately absent: endpoints already carry that information.
type Layers struct {
	Entities  []string `json:"entities"`
	OrmModels []string `json:"orm_models"`
	Usecases  []string `json:"usecases"`
	Services  []string `json:"services"`
}

type Endpoint struct {
	App          string      `json:"app"`
	View         string      `json:"view"`
	Method       string      `json:"method"`
	URL          string      `json:"url"`
	PathParams   []PathParam `json:"path_params"`
	Serializer   *string     `json:"serializer"`
	RequiresAuth bool        `json:"requires_auth"`
	Metadata     Metadata    `json:"metadata"`
	TestCases    TestCases   `json:"test_cases"`
}

type PathParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Metadata struct {
	HasBody          bool `json:"has_body"`
	IsListEndpoint   bool `json:"is_list_endpoint"`
	IsDetailEndpoint bool `json:"is_detail_endpoint"`
}

type TestCases struct {
	Success SuccessCase   `json:"success"`
	Failure []FailureCase `json:"failure,omitempty"`
}

type SuccessCase struct {
	ExpectedStatus int      `json:"expected_status"`
	Asserts        []string `json:"asserts"`
}

// FailureCase always serializes its payload, so the fixed empty_payload
// template keeps its "{}" input in the written document.
type FailureCase struct {
	Case           string         `json:"case"`
	Payload        map[string]any `json:"payload"`
	ExpectedStatus int            `json:"expected_status"`
}

type Conventions struct {
	SuccessStatus        int    `json:"success_status"`
	InvalidPayloadStatus int    `json:"invalid_payload_status"`
	AuthHeaderExample    string `json:"auth_header_example"`
}
