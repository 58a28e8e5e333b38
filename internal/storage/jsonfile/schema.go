package jsonfile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var documentSchema string

const documentSchemaURL = "tasks.schema.json"

func compileDocumentSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("could not add schema resource: %w", err)
	}

	schema, err := compiler.Compile(documentSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("could not compile schema: %w", err)
	}

	return schema, nil
}

// validateDocument checks the raw document against the task document schema.
func validateDocument(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var errs []error
	collectSchemaErrors(ve, &errs)
	return errors.Join(errs...)
}

func collectSchemaErrors(err *jsonschema.ValidationError, result *[]error) {
	if len(err.Causes) == 0 {
		path := strings.TrimPrefix(err.InstanceLocation, "/")
		if path == "" {
			path = "(root)"
		}
		*result = append(*result, fmt.Errorf("%s: %s", path, err.Message))
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}
