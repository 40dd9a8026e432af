package openapi

import (
	"github.com/speakeasy-api/clientgen/naming"
	"github.com/speakeasy-api/clientgen/pointer"
	"github.com/speakeasy-api/clientgen/sequencedmap"
)

// fallbackMethodName is used when an operation has no operationId. Multiple such
// operations in one document all receive this name; the collision is a documented
// limitation and deliberately not deduplicated.
const fallbackMethodName = "operation"

// returnTypeDescription is the fixed human-readable description attached to every
// derived return value.
const returnTypeDescription = "The response from the API"

// OperationView is the flattened, enriched form of one operation, as consumed by
// code emission. Emitters render these as-is and never re-derive type-hints.
type OperationView struct {
	// Path is the path the operation is bound to, as written in the document.
	Path string
	// Method is the lowercase HTTP verb.
	Method string
	// OperationID is the raw operation identifier, or empty string.
	OperationID string
	// Summary of the operation, or empty string.
	Summary string
	// Description of the operation, or empty string.
	Description string
	// Deprecated mirrors the operation's deprecated flag.
	Deprecated bool
	// Parameters in document order.
	Parameters []*ParameterView
	// RequestBody is nil when the operation takes no body.
	RequestBody *RequestBodyView
	// Responses maps status-code strings to responses, in document order.
	Responses *sequencedmap.Map[string, *Response]
	// PathTemplate is the path with placeholder syntax left unchanged; emitters
	// substitute {name} placeholders at render time.
	PathTemplate string
	// MethodName is the normalized generated method name.
	MethodName string
	// ReturnType is the derived type-hint for the success response.
	ReturnType string
	// ReturnTypeDescription is a fixed description of the return value.
	ReturnTypeDescription string
}

// ParameterView is the enriched form of one operation parameter.
type ParameterView struct {
	// Name is the normalized parameter name.
	Name string
	// Location of the parameter in the request.
	Location ParameterLocation
	// Required mirrors the parameter's required flag.
	Required bool
	// TypeHint for the parameter value, wrapped optional when not required.
	TypeHint string
	// Description of the parameter, or empty string.
	Description string
}

// RequestBodyView is the enriched form of an operation request body.
type RequestBodyView struct {
	// Description of the request body, or empty string.
	Description string
	// TypeHint for the body value.
	TypeHint string
}

// Operations derives the flattened operation list: every operation present on every
// path, in document order, with verbs visited in a fixed order per path.
func (d *Document) Operations() []*OperationView {
	views := []*OperationView{}

	for path, item := range d.Paths.All() {
		for _, method := range httpMethods {
			op := item.operation(method)
			if op == nil {
				continue
			}

			views = append(views, d.operationView(path, method, item, op))
		}
	}

	return views
}

func (d *Document) operationView(path, method string, item *PathItem, op *Operation) *OperationView {
	view := &OperationView{
		Path:                  path,
		Method:                method,
		OperationID:           op.GetOperationID(),
		Summary:               pointer.ValueOrZero(op.Summary),
		Description:           pointer.ValueOrZero(op.Description),
		Deprecated:            op.Deprecated,
		Responses:             op.Responses,
		PathTemplate:          pathTemplate(path),
		MethodName:            methodName(op),
		ReturnType:            d.returnTypeHint(op),
		ReturnTypeDescription: returnTypeDescription,
	}

	// Path-level parameters apply to every operation on the path and precede the
	// operation's own.
	for _, param := range item.Parameters {
		view.Parameters = append(view.Parameters, d.parameterView(param))
	}
	for _, param := range op.Parameters {
		view.Parameters = append(view.Parameters, d.parameterView(param))
	}

	if op.RequestBody != nil {
		view.RequestBody = &RequestBodyView{
			Description: pointer.ValueOrZero(op.RequestBody.Description),
			TypeHint:    d.requestBodyTypeHint(op.RequestBody),
		}
	}

	return view
}

func (d *Document) parameterView(param *Parameter) *ParameterView {
	hint := HintAny
	if param.Schema != nil {
		hint = d.TypeHint(param.Schema)
	}
	if !param.Required {
		hint = OptionalOf(hint)
	}

	return &ParameterView{
		Name:        naming.ToSnakeCase(param.Name),
		Location:    param.In,
		Required:    param.Required,
		TypeHint:    hint,
		Description: pointer.ValueOrZero(param.Description),
	}
}

// methodName computes the generated method name for an operation, falling back to
// the fixed name when no identifier is present.
func methodName(op *Operation) string {
	id := op.GetOperationID()
	if id == "" {
		return fallbackMethodName
	}

	return naming.ToSnakeCase(id)
}

// pathTemplate returns the path template for an operation. Placeholder syntax is
// deliberately left unchanged: templates keep the document's {name} form and the
// emitter substitutes values at render time.
func pathTemplate(path string) string {
	return path
}

// requestBodyTypeHint derives the type-hint for a request body from its first media
// type, defaulting to the generic object hint when no structural schema can be
// determined.
func (d *Document) requestBodyTypeHint(body *RequestBody) string {
	for _, media := range body.Content.All() {
		if media.Schema == nil {
			break
		}
		return d.TypeHint(media.Schema)
	}

	return HintGenericObject
}

// returnTypeHint derives the type-hint for an operation's success response: the
// first media type of the "200" response, then "201", defaulting to the generic
// any hint when absent or unresolvable.
func (d *Document) returnTypeHint(op *Operation) string {
	response, ok := op.Responses.Get("200")
	if !ok {
		response, ok = op.Responses.Get("201")
	}
	if !ok || response.Content == nil {
		return HintAny
	}

	for _, media := range response.Content.All() {
		if media.Schema == nil {
			break
		}
		return d.TypeHint(media.Schema)
	}

	return HintAny
}
