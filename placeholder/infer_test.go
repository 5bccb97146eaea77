package placeholder

import "testing"

func TestInferName(t *testing.T) {
	tests := []struct {
		name    string
		match   string
		context string
		want    string
	}{
		{
			name:    "preceding is-phrase",
			match:   "____",
			context: "The Effective Date is ____ for all purposes",
			want:    "Effective Date",
		},
		{
			name:    "trailing parenthetical",
			match:   "_____",
			context: "agreed to _____ (Governing Law) herein",
			want:    "Governing Law",
		},
		{
			name:    "dollar shape",
			match:   "$____",
			context: "a payment of $____ today",
			want:    "Purchase Amount",
		},
		{
			name:    "company hint",
			match:   "____",
			context: "the undersigned company ____",
			want:    "Company Information",
		},
		{
			name:    "long blank shape",
			match:   "________________",
			context: "some ________________ text",
			want:    "Required Information",
		},
		{
			name:    "fallback",
			match:   "xx",
			context: "a xx b",
			want:    "Value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferName(tt.match, tt.context); got != tt.want {
				t.Errorf("inferName(%q) = %q, want %q", tt.match, got, tt.want)
			}
		})
	}
}
