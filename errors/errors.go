package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema   Phase = "schema"   // schema loading and resolution
	PhaseGenerate Phase = "generate" // source emission
	PhaseEncode   Phase = "encode"   // Go to module memory
	PhaseDecode   Phase = "decode"   // module memory to Go
	PhaseInvoke   Phase = "invoke"   // export dispatch
	PhaseLoad     Phase = "load"     // module compilation and instantiation
	PhaseHost     Phase = "host"     // host import registration
)

// Kind categorizes the error
type Kind string

const (
	KindSchema             Kind = "schema"
	KindEncoding           Kind = "encoding"
	KindUnknownExport      Kind = "unknown_export"
	KindOutputSizeMismatch Kind = "output_size_mismatch"
	KindAllocation         Kind = "allocation"
	KindInvocation         Kind = "invocation_failed"
	KindClosed             Kind = "binder_closed"
	KindInvalidData        Kind = "invalid_data"
	KindInvalidInput       Kind = "invalid_input"
	KindNotFound           Kind = "not_found"
	KindInstantiation      Kind = "instantiation"
)

// Sentinels for errors.Is. They carry no phase, so they match any
// error of the same kind.
var (
	ErrSchema             = &Error{Kind: KindSchema}
	ErrEncoding           = &Error{Kind: KindEncoding}
	ErrUnknownExport      = &Error{Kind: KindUnknownExport}
	ErrOutputSizeMismatch = &Error{Kind: KindOutputSizeMismatch}
	ErrAllocation         = &Error{Kind: KindAllocation}
	ErrInvocation         = &Error{Kind: KindInvocation}
	ErrClosed             = &Error{Kind: KindClosed}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Export string
	GoType string
	ABI    string
	Detail string
	Path   []string
	Code   uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Export != "" {
		b.WriteString(" in ")
		b.WriteString(e.Export)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ABI != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ABI != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", kind ")
			b.WriteString(e.ABI)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("kind ")
			b.WriteString(e.ABI)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ABI != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Export sets the export name
func (b *Builder) Export(name string) *Builder {
	b.err.Export = name
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ABI sets the kind tag of the value crossing the module boundary
func (b *Builder) ABI(t string) *Builder {
	b.err.ABI = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Code sets the module error code
func (b *Builder) Code(code uint32) *Builder {
	b.err.Code = code
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Schema creates a schema error for a declaration
func Schema(decl string, detail string, args ...any) *Error {
	e := New(PhaseSchema, KindSchema).Detail(detail, args...).Build()
	if decl != "" {
		e.Path = []string{decl}
	}
	return e
}

// Encoding creates an encoding error for a value outside its kind's domain
func Encoding(path []string, kind string, value any, detail string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncoding,
		Path:   path,
		ABI:    kind,
		Value:  value,
		Detail: detail,
	}
}

// TypeMismatch creates an encoding error for a Go value of the wrong type
func TypeMismatch(path []string, goType, kind string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncoding,
		Path:   path,
		GoType: goType,
		ABI:    kind,
		Detail: "type mismatch",
	}
}

// Overflow creates an encoding error for an integer that does not fit its width
func Overflow(path []string, value any, kind string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncoding,
		Path:   path,
		ABI:    kind,
		Detail: fmt.Sprintf("value %v overflows %s", value, kind),
		Value:  value,
	}
}

// ShortRead creates a size mismatch error for output bytes that end early
func ShortRead(kind string, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutputSizeMismatch,
		ABI:    kind,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	kind := KindInvalidData
	if phase == PhaseEncode {
		kind = KindEncoding
	}
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// UnknownExport creates an error for an export the module does not provide
func UnknownExport(name string, detail string) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindUnknownExport,
		Export: name,
		Detail: detail,
	}
}

// OutputSizeMismatch creates an error for output bytes inconsistent with the declared kind
func OutputSizeMismatch(export string, index int, kind string, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutputSizeMismatch,
		Export: export,
		Path:   []string{fmt.Sprintf("out[%d]", index)},
		ABI:    kind,
		Detail: detail,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(export string, size uint32, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindAllocation,
		Export: export,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Cause:  cause,
	}
}

// InvocationFailed creates an error for an export that trapped or reported failure
func InvocationFailed(export string, code uint32, cause error) *Error {
	detail := "export trapped"
	if cause == nil {
		detail = "export reported failure"
	}
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindInvocation,
		Export: export,
		Code:   code,
		Detail: detail,
		Cause:  cause,
	}
}

// Closed creates an error for use of a binder after teardown
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a host import registration error
func Registration(namespace, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindInstantiation,
		Detail: fmt.Sprintf("register %s.%s", namespace, name),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// PrependPath returns err with seg placed in front of its argument path.
// Errors that are not *Error are returned unchanged. The original is not modified.
func PrependPath(err error, seg string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = append([]string{seg}, e.Path...)
	return &cp
}

// WithExport returns err with its export set to name, unless it already
// names one. Errors that are not *Error are returned unchanged.
func WithExport(err error, name string) error {
	e, ok := err.(*Error)
	if !ok || e.Export != "" {
		return err
	}
	cp := *e
	cp.Export = name
	return &cp
}
