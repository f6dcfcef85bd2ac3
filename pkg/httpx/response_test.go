package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/lostfound/pkg/httpx"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]string{"ticket_number": "LST-123456-001"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %q", ct)
	}
	if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
		t.Errorf("expected nosniff, got %q", xct)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["ticket_number"] != "LST-123456-001" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestErrorBody(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter)
		wantStatus int
		wantError  string
		wantFields map[string]string
	}{
		{
			name:       "plain error",
			write:      func(w http.ResponseWriter) { httpx.JSONError(w, http.StatusNotFound, "Item not found") },
			wantStatus: http.StatusNotFound,
			wantError:  "Item not found",
		},
		{
			name: "validation fields",
			write: func(w http.ResponseWriter) {
				httpx.JSON(w, http.StatusBadRequest, httpx.ErrorBody{
					Error:  "Validation failed",
					Fields: map[string]string{"title": "This field is required"},
				})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
			wantFields: map[string]string{"title": "This field is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			raw := w.Body.Bytes()
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("error: got %q, want %q", body.Error, tt.wantError)
			}
			if len(body.Fields) != len(tt.wantFields) {
				t.Fatalf("fields: got %v, want %v", body.Fields, tt.wantFields)
			}
			for k, v := range tt.wantFields {
				if body.Fields[k] != v {
					t.Errorf("field %s: got %q, want %q", k, body.Fields[k], v)
				}
			}
			if tt.wantFields == nil && json.Valid(raw) {
				var m map[string]any
				_ = json.Unmarshal(raw, &m)
				if _, ok := m["fields"]; ok {
					t.Error("fields should be omitted when empty")
				}
			}
		})
	}
}
