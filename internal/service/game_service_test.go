package service

import (
	"testing"

	"signplay/internal/models"
)

func TestSummarizeResponses(t *testing.T) {
	tests := []struct {
		name      string
		responses []models.QuestionResponse
		expected  models.SessionStats
	}{
		{
			name:      "no questions answered",
			responses: nil,
			expected: models.SessionStats{
				TotalQuestions:  0,
				CorrectCount:    0,
				IncorrectCount:  0,
				AverageAccuracy: 0,
				TotalScore:      0,
			},
		},
		{
			name:      "ten questions seven correct",
			responses: withCorrectness(10, 7),
			expected: models.SessionStats{
				TotalQuestions:  10,
				CorrectCount:    7,
				IncorrectCount:  3,
				AverageAccuracy: 70,
				TotalScore:      70,
			},
		},
		{
			name:      "all correct",
			responses: withCorrectness(5, 5),
			expected: models.SessionStats{
				TotalQuestions:  5,
				CorrectCount:    5,
				IncorrectCount:  0,
				AverageAccuracy: 100,
				TotalScore:      50,
			},
		},
		{
			name:      "rounding up at two thirds",
			responses: withCorrectness(3, 2),
			expected: models.SessionStats{
				TotalQuestions:  3,
				CorrectCount:    2,
				IncorrectCount:  1,
				AverageAccuracy: 67,
				TotalScore:      20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := summarizeResponses(tt.responses)
			if result != tt.expected {
				t.Errorf("summarizeResponses() = %+v, want %+v", result, tt.expected)
			}
			if result.CorrectCount+result.IncorrectCount != result.TotalQuestions {
				t.Errorf("correct %d + incorrect %d != total %d",
					result.CorrectCount, result.IncorrectCount, result.TotalQuestions)
			}
		})
	}
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		expected int
	}{
		{name: "zero total", correct: 0, total: 0, expected: 0},
		{name: "seven of ten", correct: 7, total: 10, expected: 70},
		{name: "one of three rounds down", correct: 1, total: 3, expected: 33},
		{name: "two of three rounds up", correct: 2, total: 3, expected: 67},
		{name: "perfect", correct: 8, total: 8, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := roundPercent(tt.correct, tt.total)
			if result != tt.expected {
				t.Errorf("roundPercent(%d, %d) = %d, want %d", tt.correct, tt.total, result, tt.expected)
			}
		})
	}
}

func TestDexterityFromAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		accuracy int
		expected float64
	}{
		{name: "zero accuracy keeps the floor", accuracy: 0, expected: 70},
		{name: "seventy percent", accuracy: 70, expected: 91},
		{name: "hundred percent capped", accuracy: 100, expected: 100},
		{name: "fifty percent", accuracy: 50, expected: 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dexterityFromAccuracy(tt.accuracy)
			if result != tt.expected {
				t.Errorf("dexterityFromAccuracy(%d) = %v, want %v", tt.accuracy, result, tt.expected)
			}
			if result < 70 {
				t.Errorf("dexterityFromAccuracy(%d) = %v, below the 70 floor", tt.accuracy, result)
			}
		})
	}
}

// withCorrectness builds a slice of responses with the given number correct
func withCorrectness(total, correct int) []models.QuestionResponse {
	responses := make([]models.QuestionResponse, total)
	for i := range responses {
		responses[i].QuestionIndex = i
		responses[i].IsCorrect = i < correct
	}
	return responses
}
