package endpoints

// ViewKind tags how a handler is classified. Classification is lexical
// (base-class and decorator name matching), not symbol-accurate: views
// imported under aliases or re-exported elsewhere are invisible to it.
type ViewKind string

const (
	KindClassView    ViewKind = "APIView"
	KindViewSet      ViewKind = "ViewSet"
	KindFunctionView ViewKind = "FunctionView"
)

// Endpoint is one discovered request-handling unit. URL stays empty until
// the URL resolver produces an enriched copy; records are otherwise
// immutable once emitted.
type Endpoint struct {
	App        string   `json:"app"`
	View       string   `json:"view_name"`
	File       string   `json:"file"`
	Kind       ViewKind `json:"view_type"`
	Methods    []string `json:"http_methods"`
	Serializer string   `json:"serializer,omitempty"`
	URL        string   `json:"url,omitempty"`
}
