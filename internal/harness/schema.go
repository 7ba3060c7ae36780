package harness

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError is returned when a scenario file does not satisfy the
// scenario schema.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return "scenario schema: " + e.Message
}

var (
	schemaMu   sync.Mutex // cue values from one context are not used concurrently
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

// scenarioSchema compiles the embedded schema once.
func scenarioSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile scenario schema: %w", err)
			return
		}
		schemaDef = v.LookupPath(cue.ParsePath("#Scenario"))
		if !schemaDef.Exists() {
			schemaErr = fmt.Errorf("scenario schema has no #Scenario definition")
		}
	})
	return schemaCtx, schemaDef, schemaErr
}

// checkSchema validates raw scenario YAML against #Scenario. The YAML is
// re-encoded as JSON, which CUE reads natively.
func checkSchema(data []byte) error {
	ctx, def, err := scenarioSchema()
	if err != nil {
		return err
	}
	schemaMu.Lock()
	defer schemaMu.Unlock()

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return &SchemaError{Message: "empty scenario"}
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to re-encode scenario: %w", err)
	}

	v := ctx.CompileBytes(asJSON, cue.Filename("scenario.json"))
	if err := v.Err(); err != nil {
		return &SchemaError{Message: err.Error()}
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Message: err.Error()}
	}
	return nil
}
