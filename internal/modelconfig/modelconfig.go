// Package modelconfig loads the on-disk model descriptor array and
// credentials file, validates their shape, and registers one registry.Model
// per descriptor into a process-wide registry.Registry. Each descriptor's
// "type" selects which Builder constructs its adapter; an unrecognized type
// fails registration with a named-context error rather than silently
// skipping the entry.
package modelconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/gotag/gotag/internal/gerr"
	"github.com/gotag/gotag/internal/httpmodel"
	"github.com/gotag/gotag/internal/realtime"
	"github.com/gotag/gotag/internal/registry"
)

// descriptorSchemaURL is a synthetic identifier used only to register and
// then look up the schema in-process; it is never fetched over the network.
const descriptorSchemaURL = "gotag://model-descriptor.schema.json"

const descriptorSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "type"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "type": {"type": "string", "minLength": 1}
    }
  }
}`

// Descriptor is one entry from the model descriptor file. Name and Type
// drive lookup and dispatch; Fields holds the full decoded object (including
// name and type) so a Builder can read its own type-specific keys off it.
type Descriptor struct {
	Name   string
	Type   string
	Fields map[string]any
}

func compiledSchema() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(descriptorSchemaJSON), &doc); err != nil {
		return nil, fmt.Errorf("model descriptor schema is invalid: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(descriptorSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("model descriptor schema is invalid: %w", err)
	}
	return compiler.Compile(descriptorSchemaURL)
}

// LoadDescriptors reads the JSON array of model descriptors at path and
// validates it against the descriptor schema before decoding.
func LoadDescriptors(path string) ([]Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, gerr.NewMisconfigured("model_config_file", err.Error(), err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, gerr.NewMisconfigured("model_config_file", "not valid JSON: "+err.Error(), err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, gerr.NewMisconfigured("model_config_file", "does not match the model descriptor schema: "+err.Error(), err)
	}

	var rawList []map[string]any
	if err := json.Unmarshal(raw, &rawList); err != nil {
		return nil, gerr.NewMisconfigured("model_config_file", "not a JSON array of objects: "+err.Error(), err)
	}

	descriptors := make([]Descriptor, 0, len(rawList))
	for _, fields := range rawList {
		descriptors = append(descriptors, Descriptor{
			Name:   fields["name"].(string),
			Type:   fields["type"].(string),
			Fields: fields,
		})
	}
	return descriptors, nil
}

// LoadCredentials reads the name -> key credentials mapping. A missing file
// is not an error: it just leaves every descriptor's key empty, which later
// fails as Misconfigured only if the chosen Builder actually requires one.
func LoadCredentials(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, gerr.NewMisconfigured("model_credentials_file", err.Error(), err)
	}
	var creds map[string]string
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, gerr.NewMisconfigured("model_credentials_file", "not a JSON object mapping name to key: "+err.Error(), err)
	}
	return creds, nil
}

// Builder constructs a registry.Model from one descriptor and its resolved
// credential key (empty string if the descriptor's name had none).
type Builder func(desc Descriptor, key string) (registry.Model, error)

// DefaultBuilders is the type -> Builder table for the model types this
// tree ships concrete adapters for.
func DefaultBuilders() map[string]Builder {
	return map[string]Builder{
		"AZURE_OPEN_AI_REALTIME": buildRealtime,
		"AZURE_OPEN_AI":          buildHTTP,
		"AZURE_AI":               buildHTTP,
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func floatField(fields map[string]any, key string) float64 {
	f, _ := fields[key].(float64)
	return f
}

func buildRealtime(desc Descriptor, key string) (registry.Model, error) {
	return realtime.New(realtime.Config{
		Endpoint:   stringField(desc.Fields, "endpoint"),
		API:        stringField(desc.Fields, "api_version"),
		Deployment: stringField(desc.Fields, "deployment"),
		Key:        key,
		TimeoutS:   floatField(desc.Fields, "timeout_s"),
		Extra:      desc.Fields,
	})
}

func buildHTTP(desc Descriptor, key string) (registry.Model, error) {
	return httpmodel.New(httpmodel.Config{
		Endpoint:     stringField(desc.Fields, "endpoint"),
		Key:          key,
		AuthHeader:   stringField(desc.Fields, "auth_header"),
		AuthScheme:   stringField(desc.Fields, "auth_scheme"),
		Method:       stringField(desc.Fields, "method"),
		ResponsePath: stringField(desc.Fields, "response_path"),
		TimeoutS:     floatField(desc.Fields, "timeout_s"),
	})
}

// RegisterAll builds one Model per descriptor, via builders keyed by Type,
// and registers each into reg under its Name. A Type absent from builders
// fails the whole call with a named-context Misconfigured error.
func RegisterAll(reg *registry.Registry, descriptors []Descriptor, creds map[string]string, builders map[string]Builder) error {
	for _, desc := range descriptors {
		build, ok := builders[desc.Type]
		if !ok {
			return gerr.NewMisconfigured(
				fmt.Sprintf("model.%s.type", desc.Name),
				fmt.Sprintf("unsupported model type %q", desc.Type), nil)
		}
		model, err := build(desc, creds[desc.Name])
		if err != nil {
			return fmt.Errorf("model %q: %w", desc.Name, err)
		}
		if err := reg.RegisterModel(desc.Name, model); err != nil {
			return err
		}
	}
	return nil
}

// Load reads and validates the descriptor and credentials files at the
// given paths, builds every model via builders, and registers them all
// into reg. Called once at process startup to populate the root registry.
func Load(configPath, credentialsPath string, reg *registry.Registry, builders map[string]Builder) error {
	descriptors, err := LoadDescriptors(configPath)
	if err != nil {
		return err
	}
	creds, err := LoadCredentials(credentialsPath)
	if err != nil {
		return err
	}
	return RegisterAll(reg, descriptors, creds, builders)
}
