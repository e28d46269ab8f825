package pyast

// Module is the extracted summary of one parsed Python source file. Only
// module top-level statements are represented; nested definitions are not
// inspected.
type Module struct {
	Path      string
	Classes   []Class
	Functions []Function
	Assigns   []Assign
}

type Class struct {
	Name    string
	Line    int      // 1-based line of the definition
	Bases   []string // Simple base names or attribute-access tails
	Methods []string // Names of functions defined directly in the class body
	Assigns []Assign // Plain assignments in the class body
}

type Function struct {
	Name       string
	Line       int      // 1-based line of the definition
	Decorators []string // Bare decorator names, or callee names for call decorators
}

type Assign struct {
	Target string // Single identifier target
	Value  *Expr
}

type ExprKind int

const (
	KindName ExprKind = iota
	KindAttribute
	KindCall
	KindString
	KindList
	KindOther
)

// Expr is a shallow expression tree covering only the shapes the pipeline
// inspects: names, attribute access, calls, string constants and list
// literals. Everything else collapses to KindOther.
type Expr struct {
	Kind  ExprKind
	Name  string  // Identifier, attribute tail, or string value
	Recv  *Expr   // Attribute receiver
	Fn    *Expr   // Call target
	Args  []*Expr // Positional call arguments (keyword arguments are dropped)
	Elems []*Expr // List elements
}
