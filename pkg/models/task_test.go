package models

import (
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"pending is valid", StatusPending, true},
		{"claimed is valid", StatusClaimed, true},
		{"in_progress is valid", StatusInProgress, true},
		{"review is valid", StatusReview, true},
		{"merged is valid", StatusMerged, true},
		{"empty string is invalid", Status(""), false},
		{"unknown status is invalid", Status("done"), false},
		{"typo status is invalid", Status("inprogress"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatus_Active(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusClaimed, true},
		{StatusInProgress, true},
		{StatusReview, true},
		{StatusMerged, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Active(); got != tt.want {
				t.Errorf("Status(%q).Active() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	if _, ok := ParseStatus("cancelled"); ok {
		t.Error("ParseStatus(\"cancelled\") should not succeed")
	}
}

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask("auth", "Implement authentication")

	if task.ID != "auth" {
		t.Errorf("Task.ID = %q, want %q", task.ID, "auth")
	}
	if task.Description != "Implement authentication" {
		t.Errorf("Task.Description = %q, want %q", task.Description, "Implement authentication")
	}
	if task.Status != StatusPending {
		t.Errorf("Task.Status = %q, want %q", task.Status, StatusPending)
	}
	if task.ClaimedBy != "" {
		t.Errorf("Task.ClaimedBy = %q, want empty", task.ClaimedBy)
	}
	if task.Branch != "" {
		t.Errorf("Task.Branch = %q, want empty", task.Branch)
	}
	if len(task.Files) != 0 {
		t.Errorf("Task.Files = %v, want empty", task.Files)
	}
	if len(task.DependsOn) != 0 {
		t.Errorf("Task.DependsOn = %v, want empty", task.DependsOn)
	}
}

func TestTask_UnmarshalYAML(t *testing.T) {
	t.Run("omitted status defaults to pending", func(t *testing.T) {
		var task Task
		input := "id: t1\ndescription: D\n"
		if err := yaml.Unmarshal([]byte(input), &task); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if task.Status != StatusPending {
			t.Errorf("Status = %q, want %q", task.Status, StatusPending)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		var task Task
		input := "id: t1\ndescription: D\nstatus: done\n"
		err := yaml.Unmarshal([]byte(input), &task)
		if err == nil {
			t.Fatal("expected error for unknown status")
		}
		if !strings.Contains(err.Error(), "unknown task status") {
			t.Errorf("error = %v, want mention of unknown task status", err)
		}
	})

	t.Run("full task round-trips", func(t *testing.T) {
		task := Task{
			ID:          "auth",
			Description: "Implement authentication",
			Status:      StatusClaimed,
			ClaimedBy:   "alice",
			Branch:      "agent/alice/auth",
			Files:       []string{"src/auth/"},
			DependsOn:   []string{"schema"},
		}
		data, err := yaml.Marshal(&task)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var got Task
		if err := yaml.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if got.ID != task.ID || got.Status != task.Status || got.ClaimedBy != task.ClaimedBy ||
			got.Branch != task.Branch || len(got.Files) != 1 || len(got.DependsOn) != 1 {
			t.Errorf("round-trip mismatch: got %+v, want %+v", got, task)
		}
	})
}
