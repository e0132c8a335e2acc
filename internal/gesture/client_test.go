package gesture

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Image string `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Image != "data:image/jpeg;base64,abc" {
			t.Errorf("image payload = %q", req.Image)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction": 7, "confidence": 0.93}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	body, err := client.Predict(context.Background(), "data:image/jpeg;base64,abc")
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	var payload struct {
		Prediction int     `json:"prediction"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode relayed body: %v", err)
	}
	if payload.Prediction != 7 {
		t.Errorf("prediction = %d, want 7", payload.Prediction)
	}
}

func TestClientPredictRelaysSentinel(t *testing.T) {
	// The inference service reports "no hand" as a 200 with an error field;
	// that must pass through untouched rather than become a failure
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "no_hand_detected"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	body, err := client.Predict(context.Background(), "data:image/jpeg;base64,abc")
	if err != nil {
		t.Fatalf("Predict() error = %v, want sentinel passthrough", err)
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode relayed body: %v", err)
	}
	if payload.Error != "no_hand_detected" {
		t.Errorf("error field = %q, want no_hand_detected", payload.Error)
	}
}

func TestClientPredictFailures(t *testing.T) {
	errorServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer errorServer.Close()

	downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	downServer.Close()

	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "non-2xx response", endpoint: errorServer.URL},
		{name: "unreachable service", endpoint: downServer.URL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.endpoint, time.Second)
			_, err := client.Predict(context.Background(), "data:image/jpeg;base64,abc")
			if !errors.Is(err, ErrPredictionFailed) {
				t.Errorf("Predict() error = %v, want ErrPredictionFailed", err)
			}
		})
	}
}
