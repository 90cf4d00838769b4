package domain

import (
	"testing"
	"time"
)

func intPtr(i int) *int { return &i }

func TestChunkRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request ChunkRequest
		wantErr bool
	}{
		{
			name:    "uncapped request",
			request: ChunkRequest{DocumentID: "doc1"},
			wantErr: false,
		},
		{
			name: "capped with both bounds",
			request: ChunkRequest{
				DocumentID:  "doc1",
				IsCapped:    true,
				MinChunkInd: intPtr(2),
				MaxChunkInd: intPtr(5),
			},
			wantErr: false,
		},
		{
			name: "capped with max only",
			request: ChunkRequest{
				DocumentID:  "doc1",
				IsCapped:    true,
				MaxChunkInd: intPtr(5),
			},
			wantErr: false,
		},
		{
			name: "capped without max",
			request: ChunkRequest{
				DocumentID:  "doc1",
				IsCapped:    true,
				MinChunkInd: intPtr(0),
			},
			wantErr: true,
		},
		{
			name:    "missing document id",
			request: ChunkRequest{IsCapped: false},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeRange_IsZero(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		tr       *TimeRange
		expected bool
	}{
		{
			name:     "nil range",
			tr:       nil,
			expected: true,
		},
		{
			name:     "both bounds nil",
			tr:       &TimeRange{},
			expected: true,
		},
		{
			name:     "start only",
			tr:       &TimeRange{Start: &now},
			expected: false,
		},
		{
			name:     "end only",
			tr:       &TimeRange{End: &now},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.IsZero(); got != tt.expected {
				t.Errorf("IsZero() = %v, want %v", got, tt.expected)
			}
		})
	}
}
