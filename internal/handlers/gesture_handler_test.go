package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"signplay/internal/gesture"
)

type fakePredictor struct {
	body json.RawMessage
	err  error
}

func (f *fakePredictor) Predict(ctx context.Context, imageDataURL string) (json.RawMessage, error) {
	return f.body, f.err
}

func TestGesturePredict(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		predictor      *fakePredictor
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "successful prediction relayed verbatim",
			requestBody:    `{"image": "data:image/jpeg;base64,abc"}`,
			predictor:      &fakePredictor{body: json.RawMessage(`{"prediction": 5, "confidence": 0.9}`)},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"prediction": 5, "confidence": 0.9}`,
		},
		{
			name:           "no-hand sentinel relayed verbatim",
			requestBody:    `{"image": "data:image/jpeg;base64,abc"}`,
			predictor:      &fakePredictor{body: json.RawMessage(`{"error": "no_hand_detected"}`)},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"error": "no_hand_detected"}`,
		},
		{
			name:           "missing image",
			requestBody:    `{}`,
			predictor:      &fakePredictor{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"No image provided"}`,
		},
		{
			name:           "inference failure collapses to generic error",
			requestBody:    `{"image": "data:image/jpeg;base64,abc"}`,
			predictor:      &fakePredictor{err: gesture.ErrPredictionFailed},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"gesture_prediction_failed"}`,
		},
		{
			name:           "malformed body",
			requestBody:    `{not json`,
			predictor:      &fakePredictor{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewGestureHandler(tt.predictor)

			req := httptest.NewRequest(http.MethodPost, "/api/gesture/predict", strings.NewReader(tt.requestBody))
			recorder := httptest.NewRecorder()

			handler.Predict(recorder, req)

			if recorder.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.expectedStatus)
			}
			if tt.expectedBody != "" {
				body := strings.TrimSpace(recorder.Body.String())
				if body != tt.expectedBody {
					t.Errorf("body = %q, want %q", body, tt.expectedBody)
				}
			}
		})
	}
}
