// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package validation

import (
	"strings"
	"testing"
)

type testRequest struct {
	UserID     string   `json:"user_id" validate:"required,identifier"`
	Count      int      `json:"count" validate:"omitempty,min=1,max=50"`
	Regions    []string `json:"regions" validate:"omitempty,max=4,unique,dive,region_name"`
	Method     string   `json:"aggregation_method" validate:"omitempty,oneof=merge highest_score"`
	Window     int      `query:"time_window_hours" validate:"omitempty,min=1,max=168"`
	Categories []string `json:"categories,omitempty" validate:"omitempty,max=2"`
	Internal   string   `json:"-"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input testRequest
	}{
		{"minimal", testRequest{UserID: "user_1"}},
		{"all fields", testRequest{
			UserID:     "user-42",
			Count:      50,
			Regions:    []string{"us-east-1", "eu-west-1"},
			Method:     "highest_score",
			Window:     168,
			Categories: []string{"Books", "Toys"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     testRequest
		wantField string
		wantTag   string
	}{
		{"missing user", testRequest{}, "user_id", "required"},
		{"user with slash", testRequest{UserID: "a/b"}, "user_id", "identifier"},
		{"user with space", testRequest{UserID: "a b"}, "user_id", "identifier"},
		{"user too long", testRequest{UserID: strings.Repeat("u", maxIdentifierLength+1)}, "user_id", "identifier"},
		{"count too high", testRequest{UserID: "u", Count: 51}, "count", "max"},
		{"count negative", testRequest{UserID: "u", Count: -1}, "count", "min"},
		{"bad region", testRequest{UserID: "u", Regions: []string{"Mars"}}, "regions[0]", "region_name"},
		{"duplicate regions", testRequest{UserID: "u", Regions: []string{"us-east-1", "us-east-1"}}, "regions", "unique"},
		{"unknown method", testRequest{UserID: "u", Method: "average"}, "aggregation_method", "oneof"},
		{"window too large", testRequest{UserID: "u", Window: 169}, "time_window_hours", "max"},
		{"too many categories", testRequest{UserID: "u", Categories: []string{"a", "b", "c"}}, "categories", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("errors = %v, want field %s with tag %s", err.Errors(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestTranslateMessages(t *testing.T) {
	tests := []struct {
		name  string
		input testRequest
		want  string
	}{
		{"required", testRequest{}, "user_id is required"},
		{"numeric max", testRequest{UserID: "u", Count: 99}, "count must be at most 50"},
		{"slice max", testRequest{UserID: "u", Categories: []string{"a", "b", "c"}}, "categories must be at most 2 items"},
		{"oneof", testRequest{UserID: "u", Method: "x"}, "aggregation_method must be one of: merge highest_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := ValidateStruct(&testRequest{UserID: "u", Count: 99})
		if err == nil {
			t.Fatal("ValidateStruct() = nil, want error")
		}
		apiErr := err.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %s, want %s", apiErr.Code, ErrorCode)
		}
		if apiErr.Details["field"] != "count" {
			t.Errorf("Details[field] = %v, want count", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := ValidateStruct(&testRequest{Count: 99, Window: 500})
		if err == nil {
			t.Fatal("ValidateStruct() = nil, want error")
		}
		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok {
			t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
		}
		if len(fields) != 3 {
			t.Errorf("len(fields) = %d, want 3", len(fields))
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message = %q, want joined messages", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q, want Validation failed", apiErr.Message)
		}
	})
}

func TestValidationError_Accessors(t *testing.T) {
	err := ValidateStruct(&testRequest{UserID: "u", Window: 200})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	e := err.Errors()[0]
	if e.Param() != "168" {
		t.Errorf("Param() = %q, want 168", e.Param())
	}
	if e.Value() != 200 {
		t.Errorf("Value() = %v, want 200", e.Value())
	}
}
