// Package batchfile reads batch translation jobs from JSON files.
package batchfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/mtran/internal/language"
	"horse.fit/mtran/internal/mtran"
)

//go:embed batch_job.schema.json
var batchJobSchemaJSON string

// Job is one batch translation job. A missing "from" means "auto".
type Job struct {
	From   string   `json:"from,omitempty"`
	To     string   `json:"to"`
	Detect string   `json:"detect,omitempty"`
	Texts  []string `json:"texts"`
}

// Request converts the job into a client request.
func (j *Job) Request() mtran.BatchTranslateRequest {
	from := strings.TrimSpace(j.From)
	if from == "" {
		from = language.Auto
	}
	return mtran.BatchTranslateRequest{
		Texts:  j.Texts,
		From:   from,
		To:     strings.TrimSpace(j.To),
		Detect: strings.TrimSpace(j.Detect),
	}
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// Load reads and validates the job file at path.
func Load(path string) (*Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	job, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Parse validates raw against the batch job schema and decodes it.
func Parse(raw []byte) (*Job, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode batch JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var job Job
	if err := json.Unmarshal(bytes.TrimSpace(raw), &job); err != nil {
		return nil, fmt.Errorf("unmarshal batch job: %w", err)
	}
	if strings.TrimSpace(job.To) == "" {
		return nil, fmt.Errorf("to must not be blank")
	}
	return &job, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("batch_job.schema.json", strings.NewReader(batchJobSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("batch_job.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}
	return value, nil
}
