package schemas

import (
	"errors"
	"testing"

	rootschemas "github.com/jonathan/hiring-agent/schemas"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"role": {"type": "string"},
		"processed_ids": {"type": "array", "items": {"type": "string"}}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	doc := `{"role": "Backend Engineer", "processed_ids": ["a", "b"]}`
	if err := ValidateJSONString(testSchema, doc); err != nil {
		t.Errorf("expected valid document, got %v", err)
	}
}

func TestValidateJSONString_InvalidType(t *testing.T) {
	doc := `{"role": 42}`
	err := ValidateJSONString(testSchema, doc)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) == 0 {
		t.Error("expected at least one field error")
	}
	if ve.Errors[0].Field != "role" {
		t.Errorf("expected field %q, got %q", "role", ve.Errors[0].Field)
	}
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(testSchema, "{not json")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var sle *SchemaLoadError
	if !errors.As(err, &sle) {
		t.Fatalf("expected *SchemaLoadError, got %T", err)
	}
}

func TestValidateJSONString_CampaignStateSchema(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name:    "empty document",
			doc:     `{}`,
			wantErr: false,
		},
		{
			name: "complete state",
			doc: `{
				"role": "Backend Engineer",
				"form_id": "f1",
				"sheet_id": "s1",
				"processed_ids": ["r1"],
				"candidates": [{"id": "r1", "email": "a@b.com", "score": 2}]
			}`,
			wantErr: false,
		},
		{
			name:    "processed_ids wrong element type",
			doc:     `{"processed_ids": [1, 2]}`,
			wantErr: true,
		},
		{
			name:    "candidate missing id",
			doc:     `{"candidates": [{"email": "a@b.com"}]}`,
			wantErr: true,
		},
		{
			name:    "negative score",
			doc:     `{"candidates": [{"id": "r1", "score": -1}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(rootschemas.CampaignState, tt.doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJSONString() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
