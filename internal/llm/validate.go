package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas holds one compiled validator per schema name. Schemas are
// package-level values, so the set stays small.
var compiledSchemas = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

// checkResponse turns a raw model answer into the JSON document the caller
// asked for. Models sometimes wrap JSON in a markdown fence even in
// structured mode; the fence is dropped. Every failure is an
// *ErrInvalidResponse carrying the untouched answer.
func checkResponse(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}
	fail := func(stage ResponseStage, err error) error {
		return &ErrInvalidResponse{Stage: stage, Content: raw, Err: err}
	}

	body := stripFence(raw)
	if len(body) == 0 {
		return nil, fail(StageEmpty, errors.New("empty answer"))
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fail(StageDecode, err)
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fail(StageSchema, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, fail(StageSchema, fmt.Errorf("%s: %w", schema.Name, err))
	}
	return json.RawMessage(body), nil
}

var fence = []byte("```")

// stripFence removes surrounding whitespace and a ```json ... ``` wrapper.
func stripFence(raw []byte) []byte {
	b := bytes.TrimSpace(raw)
	if len(b) < 2*len(fence) || !bytes.HasPrefix(b, fence) || !bytes.HasSuffix(b, fence) {
		return b
	}
	b = b[len(fence) : len(b)-len(fence)]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		b = b[nl+1:] // info string such as "json"
	} else {
		b = bytes.TrimPrefix(b, []byte("json"))
	}
	return bytes.TrimSpace(b)
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	compiledSchemas.Lock()
	defer compiledSchemas.Unlock()
	if s, ok := compiledSchemas.byName[schema.Name]; ok {
		return s, nil
	}

	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}
	url := "mem://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %q: %w", schema.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	compiledSchemas.byName[schema.Name] = s
	return s, nil
}
