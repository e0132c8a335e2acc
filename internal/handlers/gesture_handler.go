package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"signplay/internal/gesture"
)

// GestureHandler proxies captured frames to the inference service
type GestureHandler struct {
	predictor gesture.Predictor
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(predictor gesture.Predictor) *GestureHandler {
	return &GestureHandler{predictor: predictor}
}

// Predict handles POST /api/gesture/predict. A successful inference
// response is relayed verbatim, including the service's own
// no-hand-detected payload; only transport-level failures collapse into
// the generic error.
func (h *GestureHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.Image == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "No image provided"})
		return
	}

	body, err := h.predictor.Predict(r.Context(), req.Image)
	if err != nil {
		log.Printf("gesture prediction failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "gesture_prediction_failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("failed to relay prediction: %v", err)
	}
}
