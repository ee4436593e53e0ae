package mtran

import (
	"encoding/json"
	"fmt"
)

func mapTranslate(resp *Response) (string, error) {
	if !resp.OK() {
		return "", serverError(opTranslate, resp)
	}
	var result string
	if err := decodeField(resp.Body, "result", &result); err != nil {
		return "", malformedError(opTranslate, resp, err)
	}
	return result, nil
}

func mapBatch(resp *Response) ([]string, error) {
	if !resp.OK() {
		return nil, serverError(opBatch, resp)
	}
	var results []string
	if err := decodeField(resp.Body, "results", &results); err != nil {
		return nil, malformedError(opBatch, resp, err)
	}
	return results, nil
}

func mapHealth(resp *Response) (bool, error) {
	if !resp.OK() {
		return false, nil
	}
	var status string
	if err := decodeField(resp.Body, "status", &status); err != nil {
		return false, malformedError(opHealth, resp, err)
	}
	return status == "ok", nil
}

func mapModels(resp *Response) ([]Model, error) {
	if !resp.OK() {
		return nil, serverError(opModels, resp)
	}
	var models []Model
	if err := decodeField(resp.Body, "models", &models); err != nil {
		return nil, malformedError(opModels, resp, err)
	}
	return models, nil
}

func mapVersion(resp *Response) (string, error) {
	if !resp.OK() {
		return "", serverError(opVersion, resp)
	}
	var version string
	if err := decodeField(resp.Body, "version", &version); err != nil {
		return "", malformedError(opVersion, resp, err)
	}
	return version, nil
}

// decodeField decodes one top-level field of a JSON object into dst.
// A missing or null field is an error; an empty string is not.
func decodeField(body []byte, field string, dst any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	raw, ok := fields[field]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("response missing %q", field)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %q: %w", field, err)
	}
	return nil
}
