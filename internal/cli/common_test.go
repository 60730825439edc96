package cli

import "testing"

func TestRunErr(t *testing.T) {
	tests := []struct {
		name    string
		apply   bool
		failed  int
		total   int
		wantErr bool
	}{
		{"dry-run with failures exits zero", false, 3, 5, false},
		{"dry-run clean", false, 0, 5, false},
		{"apply clean", true, 0, 5, false},
		{"apply with failures exits nonzero", true, 2, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runErr(tt.apply, tt.failed, tt.total)
			if (err != nil) != tt.wantErr {
				t.Errorf("runErr(%v, %d, %d) = %v, wantErr %v",
					tt.apply, tt.failed, tt.total, err, tt.wantErr)
			}
		})
	}
}
