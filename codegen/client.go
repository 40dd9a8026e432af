package codegen

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/speakeasy-api/clientgen/naming"
	"github.com/speakeasy-api/clientgen/openapi"
)

var placeholderPattern = regexp.MustCompile(`\{[^{}]+\}`)

// emitClientFile renders the operation views as a Go client source file for the
// given transport flavor. The context flavor threads context.Context through every
// request; the plain flavor does not.
func emitClientFile(doc *openapi.Document, pkg string, flavor Flavor) []byte {
	var buf bytes.Buffer

	writeFileHeader(&buf, doc, pkg)
	writeImports(&buf, flavor)
	writeClientType(&buf, doc)
	writeDoHelper(&buf, flavor)

	for _, op := range doc.Operations() {
		writeMethod(&buf, op, flavor)
	}

	return buf.Bytes()
}

func writeImports(buf *bytes.Buffer, flavor Flavor) {
	buf.WriteString("import (\n")
	buf.WriteString("\t\"bytes\"\n")
	if flavor == FlavorContextHTTP {
		buf.WriteString("\t\"context\"\n")
	}
	buf.WriteString("\t\"encoding/json\"\n")
	buf.WriteString("\t\"fmt\"\n")
	buf.WriteString("\t\"io\"\n")
	buf.WriteString("\t\"net/http\"\n")
	buf.WriteString("\t\"net/url\"\n")
	buf.WriteString("\t\"strings\"\n")
	buf.WriteString(")\n\n")
}

func writeClientType(buf *bytes.Buffer, doc *openapi.Document) {
	title := "the API"
	if doc.Info != nil && doc.Info.Title != "" {
		title = doc.Info.Title
	}

	fmt.Fprintf(buf, "// Client calls %s.\n", title)
	buf.WriteString("type Client struct {\n")
	buf.WriteString("\tBaseURL    string\n")
	buf.WriteString("\tHTTPClient *http.Client\n")
	buf.WriteString("\tAuthToken  string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// NewClient returns a Client for the API served at baseURL.\n")
	buf.WriteString("func NewClient(baseURL string) *Client {\n")
	buf.WriteString("\treturn &Client{\n")
	buf.WriteString("\t\tBaseURL:    strings.TrimRight(baseURL, \"/\"),\n")
	buf.WriteString("\t\tHTTPClient: http.DefaultClient,\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}

func writeDoHelper(buf *bytes.Buffer, flavor Flavor) {
	if flavor == FlavorContextHTTP {
		buf.WriteString("func (c *Client) do(ctx context.Context, method, path string, query url.Values, header http.Header, body, out any) error {\n")
	} else {
		buf.WriteString("func (c *Client) do(method, path string, query url.Values, header http.Header, body, out any) error {\n")
	}
	buf.WriteString("\tvar reqBody io.Reader\n")
	buf.WriteString("\tif body != nil {\n")
	buf.WriteString("\t\tdata, err := json.Marshal(body)\n")
	buf.WriteString("\t\tif err != nil {\n")
	buf.WriteString("\t\t\treturn err\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t\treqBody = bytes.NewReader(data)\n")
	buf.WriteString("\t}\n\n")
	buf.WriteString("\ttarget := c.BaseURL + path\n")
	buf.WriteString("\tif len(query) > 0 {\n")
	buf.WriteString("\t\ttarget += \"?\" + query.Encode()\n")
	buf.WriteString("\t}\n\n")
	if flavor == FlavorContextHTTP {
		buf.WriteString("\treq, err := http.NewRequestWithContext(ctx, method, target, reqBody)\n")
	} else {
		buf.WriteString("\treq, err := http.NewRequest(method, target, reqBody)\n")
	}
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tfor key, values := range header {\n")
	buf.WriteString("\t\tfor _, value := range values {\n")
	buf.WriteString("\t\t\treq.Header.Add(key, value)\n")
	buf.WriteString("\t\t}\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tif body != nil {\n")
	buf.WriteString("\t\treq.Header.Set(\"Content-Type\", \"application/json\")\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tif c.AuthToken != \"\" {\n")
	buf.WriteString("\t\treq.Header.Set(\"Authorization\", \"Bearer \"+c.AuthToken)\n")
	buf.WriteString("\t}\n\n")
	buf.WriteString("\tresp, err := c.HTTPClient.Do(req)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tdefer resp.Body.Close()\n\n")
	buf.WriteString("\tdata, err := io.ReadAll(resp.Body)\n")
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString("\t\treturn err\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tif resp.StatusCode < 200 || resp.StatusCode >= 300 {\n")
	buf.WriteString("\t\treturn fmt.Errorf(\"unexpected status %d: %s\", resp.StatusCode, data)\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tif out == nil || len(data) == 0 {\n")
	buf.WriteString("\t\treturn nil\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn json.Unmarshal(data, out)\n")
	buf.WriteString("}\n\n")
}

func writeMethod(buf *bytes.Buffer, op *openapi.OperationView, flavor Flavor) {
	name := exportedName(op.MethodName)
	returnType := goType(op.ReturnType)

	// Doc comment: summary when present, otherwise the verb and path.
	if op.Summary != "" {
		fmt.Fprintf(buf, "// %s %s.\n", name, strings.TrimSuffix(op.Summary, "."))
	} else {
		fmt.Fprintf(buf, "// %s calls %s %s.\n", name, strings.ToUpper(op.Method), op.Path)
	}
	if op.Deprecated {
		buf.WriteString("//\n// Deprecated: this operation is marked deprecated in the API description.\n")
	}
	fmt.Fprintf(buf, "// Returns: %s.\n", strings.TrimSuffix(op.ReturnTypeDescription, "."))

	// Signature.
	args := []string{}
	if flavor == FlavorContextHTTP {
		args = append(args, "ctx context.Context")
	}
	for _, param := range op.Parameters {
		args = append(args, argName(param.Name)+" "+goType(param.TypeHint))
	}
	if op.RequestBody != nil {
		args = append(args, "body "+goType(op.RequestBody.TypeHint))
	}
	fmt.Fprintf(buf, "func (c *Client) %s(%s) (%s, error) {\n", name, strings.Join(args, ", "), returnType)

	fmt.Fprintf(buf, "\tvar out %s\n\n", returnType)

	writePathExpr(buf, op)
	writeQueryAndHeader(buf, op)

	// Dispatch.
	bodyExpr := "nil"
	if op.RequestBody != nil {
		bodyExpr = "body"
	}
	if flavor == FlavorContextHTTP {
		fmt.Fprintf(buf, "\terr := c.do(ctx, %q, path, query, header, %s, &out)\n", strings.ToUpper(op.Method), bodyExpr)
	} else {
		fmt.Fprintf(buf, "\terr := c.do(%q, path, query, header, %s, &out)\n", strings.ToUpper(op.Method), bodyExpr)
	}
	buf.WriteString("\treturn out, err\n")
	buf.WriteString("}\n\n")
}

// writePathExpr renders the path assignment. Each placeholder in the path template
// is paired with the path-location parameter whose normalized name matches the
// placeholder's; declaration order of the parameters does not matter. Position is
// used only when no name matches.
func writePathExpr(buf *bytes.Buffer, op *openapi.OperationView) {
	pathParams := []*openapi.ParameterView{}
	for _, param := range op.Parameters {
		if param.Location == openapi.ParameterLocationPath {
			pathParams = append(pathParams, param)
		}
	}

	used := make([]bool, len(pathParams))
	sprintfArgs := []string{}
	escaped := strings.ReplaceAll(op.PathTemplate, "%", "%%")
	format := placeholderPattern.ReplaceAllStringFunc(escaped, func(match string) string {
		param := matchPathParam(match[1:len(match)-1], pathParams, used)
		if param == nil {
			// More placeholders than path parameters; leave the extras verbatim.
			return match
		}

		sprintfArgs = append(sprintfArgs, "url.PathEscape(fmt.Sprint("+argName(param.Name)+"))")
		return "%v"
	})

	if len(sprintfArgs) == 0 {
		fmt.Fprintf(buf, "\tpath := %q\n", op.PathTemplate)
		return
	}

	fmt.Fprintf(buf, "\tpath := fmt.Sprintf(%q, %s)\n", format, strings.Join(sprintfArgs, ", "))
}

// matchPathParam pairs one placeholder name with an unused path parameter: by
// normalized name first, falling back to the first unused parameter when nothing
// matches by name.
func matchPathParam(name string, params []*openapi.ParameterView, used []bool) *openapi.ParameterView {
	normalized := naming.ToSnakeCase(name)
	for i, param := range params {
		if !used[i] && param.Name == normalized {
			used[i] = true
			return param
		}
	}

	for i, param := range params {
		if !used[i] {
			used[i] = true
			return param
		}
	}

	return nil
}

// writeQueryAndHeader renders the query and header assembly for the non-path
// parameters. Optional parameters generate nil checks around their assignment.
func writeQueryAndHeader(buf *bytes.Buffer, op *openapi.OperationView) {
	buf.WriteString("\tquery := url.Values{}\n")
	buf.WriteString("\theader := http.Header{}\n")

	for _, param := range op.Parameters {
		var setter string
		switch param.Location {
		case openapi.ParameterLocationQuery:
			setter = fmt.Sprintf("query.Set(%q, fmt.Sprint(%s))", param.Name, valueExpr(param))
		case openapi.ParameterLocationHeader:
			setter = fmt.Sprintf("header.Set(%q, fmt.Sprint(%s))", param.Name, valueExpr(param))
		case openapi.ParameterLocationCookie:
			setter = fmt.Sprintf("header.Add(\"Cookie\", %q+fmt.Sprint(%s))", param.Name+"=", valueExpr(param))
		default:
			continue
		}

		if isPointerParam(param) {
			fmt.Fprintf(buf, "\tif %s != nil {\n\t\t%s\n\t}\n", argName(param.Name), setter)
		} else {
			fmt.Fprintf(buf, "\t%s\n", setter)
		}
	}

	buf.WriteString("\n")
}

func valueExpr(param *openapi.ParameterView) string {
	if isPointerParam(param) {
		return "*" + argName(param.Name)
	}
	return argName(param.Name)
}

func isPointerParam(param *openapi.ParameterView) bool {
	return strings.HasPrefix(goType(param.TypeHint), "*")
}
