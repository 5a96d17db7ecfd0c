package models

import "testing"

func TestParseMissionFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    MissionFrequency
		wantErr bool
	}{
		{"daily", FrequencyDaily, false},
		{"monthly", FrequencyMonthly, false},
		{"general", FrequencyGeneral, false},
		{"weekly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMissionFrequency(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMissionFrequency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMissionFrequency(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetricsSnapshotValue(t *testing.T) {
	snapshot := MetricsSnapshot{TestsCompleted: 4, MaxPagesRead: 120}

	if v, ok := snapshot.Value(ObjectiveTestsCompleted); !ok || v != 4 {
		t.Errorf("Value(tests_completed) = (%d, %v), want (4, true)", v, ok)
	}
	if v, ok := snapshot.Value(ObjectivePagesRead); !ok || v != 120 {
		t.Errorf("Value(pages_read) = (%d, %v), want (120, true)", v, ok)
	}
	if v, ok := snapshot.Value("minutes_listened"); ok || v != 0 {
		t.Errorf("Value(unknown) = (%d, %v), want (0, false)", v, ok)
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: "user"}).IsAdmin() {
		t.Error("user role should not be admin")
	}
	if !(&User{Role: "admin"}).IsAdmin() {
		t.Error("admin role should be admin")
	}
}
