// Package mtran is a client adapter for a self-hosted MTranServer
// machine-translation service.
//
// Every call takes the host-supplied Config, so one Client can serve many
// servers. A Client holds no per-call state and is safe for concurrent use.
package mtran

import (
	"encoding/json"
	"strings"
)

const (
	// DefaultBaseURL is used when the configured API URL is blank.
	DefaultBaseURL = "http://localhost:8989"

	pathTranslate = "/translate"
	pathBatch     = "/translate/batch"
	pathModels    = "/models"
	pathVersion   = "/version"
	pathHealth    = "/health"
)

// Config is the per-call server configuration supplied by the host.
type Config struct {
	APIURL string
	// Token is sent verbatim as the Authorization header when non-empty.
	Token string
}

// TranslateRequest describes one text translation.
type TranslateRequest struct {
	Text string
	From string // language code or "auto"
	To   string
	// Detect is the host's detected source language, used when From is "auto".
	Detect string
}

// BatchTranslateRequest describes an ordered batch translation.
type BatchTranslateRequest struct {
	Texts  []string
	From   string
	To     string
	Detect string
}

// Model is one translation model advertised by the server. The server may
// list models either as plain names or as objects.
type Model struct {
	Name string `json:"name"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*m = Model{Name: strings.TrimSpace(name)}
		return nil
	}

	type plainModel Model
	var parsed plainModel
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*m = Model(parsed)
	return nil
}

type translateBody struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
	Text string `json:"text"`
}

type batchBody struct {
	From  string   `json:"from" validate:"required"`
	To    string   `json:"to" validate:"required"`
	Texts []string `json:"texts" validate:"required,min=1"`
}
