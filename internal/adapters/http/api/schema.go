package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// maxBatchSize bounds the candidates accepted by POST /match/batch.
const maxBatchSize = 1000

const candidateSchema = `{
  "type": "object",
  "properties": {
    "candidate_id": {"type": "string"},
    "years_of_experience": {"type": "number"},
    "location": {"type": "string"},
    "skills": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["years_of_experience"],
  "additionalProperties": false
}`

const jobSchema = `{
  "type": "object",
  "properties": {
    "job_id": {"type": "string"},
    "location": {"type": "string"},
    "job_type": {"type": "string"},
    "skills": {"type": "array", "items": {"type": "string"}},
    "years_of_experience": {"type": "number"}
  },
  "required": ["years_of_experience"],
  "additionalProperties": false
}`

//nolint:gochecknoglobals // compiled once at init
var (
	placeSchema = mustSchema(jobSchema)
	matchSchema = mustSchema(candidateSchema)
	batchSchema = mustSchema(fmt.Sprintf(`{
  "type": "object",
  "properties": {
    "candidates": {"type": "array", "minItems": 1, "maxItems": %d, "items": %s}
  },
  "required": ["candidates"],
  "additionalProperties": false
}`, maxBatchSize, candidateSchema))
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("api: invalid request schema: %v", err))
	}
	return s
}

// decode validates the request body against schema and unmarshals it into v.
// Every failure wraps ErrBadRequest.
func decode(op string, r *http.Request, schema *gojsonschema.Schema, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if len(body) > maxBodyBytes {
		return WrapKind(op, ErrBadRequest, fmt.Errorf("body exceeds %d bytes", maxBodyBytes))
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return WrapKind(op, ErrBadRequest, fmt.Errorf("invalid json: %w", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("validation failed: %s", strings.Join(errs, "; ")))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
