// Package bindgen generates typed Go bindings from a function declaration
// schema.
//
// # Schema
//
// The schema is an ordered JSON or YAML list. Both key spellings are
// accepted, so barretenberg's c_binds.json is read as is:
//
//	[
//	  {
//	    "functionName": "pedersen_compress_fields",
//	    "inArgs":  [{"name": "left", "type": "fr::in_buf"}, {"name": "right", "type": "fr::in_buf"}],
//	    "outArgs": [{"name": "result", "type": "fr::out_buf"}]
//	  }
//	]
//
// Kinds are the tags understood by types.ParseKind.
//
// # Pipeline
//
//	ParseSchema / LoadSchema   decode declarations
//	Resolve                    normalize names, resolve kinds, detect collisions
//	Generate                   render one gofmt-ed file
//
// Resolve reports every problem of a schema at once. Generate produces no
// output for a schema with problems.
//
// # Generated Code
//
// For each declaration the file holds a binder.Signature and, when the
// declaration has outputs, a converter from decoded outputs to the Go result.
// The sync API and the async AsyncAPI are rendered from the same template
// block and share both:
//
//	func (api *API) PedersenCompressFields(ctx context.Context, left types.Fr, right types.Fr) (types.Fr, error)
//	func (api *AsyncAPI) PedersenCompressFields(ctx context.Context, left types.Fr, right types.Fr) *binder.Pending[types.Fr]
//
// No outputs give error (sync) or *binder.Pending[struct{}]. Several outputs
// give a generated <Method>Result struct with fields in declaration order.
package bindgen
