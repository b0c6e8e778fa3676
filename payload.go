package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

type PayloadType string

const (
	PayloadNewComponent      PayloadType = "new-component"
	PayloadExistingComponent PayloadType = "existing-component"
)

// DragPayload is what travels from a drag source to a page canvas. It is also the
// clipboard format.
type DragPayload struct {
	Type          PayloadType   `json:"type"`
	ComponentType ComponentKind `json:"componentType,omitempty"`
	Content       string        `json:"content,omitempty"`
	ComponentID   string        `json:"componentId,omitempty"`
	FromPageID    string        `json:"fromPageId,omitempty"`
}

const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "oneOf": [
    {
      "type": "object",
      "properties": {
        "type": {"const": "new-component"},
        "componentType": {"enum": ["button", "text", "image", "input"]},
        "content": {"type": "string"}
      },
      "required": ["type", "componentType"]
    },
    {
      "type": "object",
      "properties": {
        "type": {"const": "existing-component"},
        "componentId": {"type": "string", "minLength": 1},
        "fromPageId": {"type": "string", "minLength": 1}
      },
      "required": ["type", "componentId", "fromPageId"]
    }
  ]
}`

var (
	payloadSchemaOnce sync.Once
	compiledSchema    *gojsonschema.Schema
	compileSchemaErr  error
)

var errInvalidPayload = errors.New("invalid drag payload")

func newComponentPayload(item LibraryItem) DragPayload {
	return DragPayload{Type: PayloadNewComponent, ComponentType: item.Kind, Content: item.DefaultContent}
}

func existingComponentPayload(componentID, fromPageID string) DragPayload {
	return DragPayload{Type: PayloadExistingComponent, ComponentID: componentID, FromPageID: fromPageID}
}

func (p DragPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

func DecodePayload(data []byte) (DragPayload, error) {
	var payload DragPayload
	schema, err := loadPayloadSchema()
	if err != nil {
		return payload, err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return payload, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return payload, fmt.Errorf("%w: %s", errInvalidPayload, strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	payload.Content = sanitizeText(payload.Content)
	return payload, nil
}

func loadPayloadSchema() (*gojsonschema.Schema, error) {
	payloadSchemaOnce.Do(func() {
		compiledSchema, compileSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(payloadSchema))
		if compileSchemaErr != nil {
			compileSchemaErr = fmt.Errorf("compile payload schema: %w", compileSchemaErr)
		}
	})
	return compiledSchema, compileSchemaErr
}
