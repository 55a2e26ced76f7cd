package registry

import (
	"testing"

	"github.com/gafferdev/gaffer/pkg/models"
)

func TestGetTask(t *testing.T) {
	reg := New("goal")
	task := models.NewTask("t1", "first")
	if err := reg.AddTask(task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if got := reg.GetTask("t1"); got != task {
		t.Errorf("GetTask(\"t1\") = %v, want the added task", got)
	}
	if got := reg.GetTask("missing"); got != nil {
		t.Errorf("GetTask(\"missing\") = %v, want nil", got)
	}
}

func TestAddTask_DuplicateID(t *testing.T) {
	reg := New("goal")
	if err := reg.AddTask(models.NewTask("t1", "first")); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := reg.AddTask(models.NewTask("t1", "again")); err == nil {
		t.Error("adding a duplicate task id should fail")
	}
}

func TestTasksByAgent(t *testing.T) {
	reg := New("goal")
	a := models.NewTask("a", "one")
	a.ClaimedBy = "alice"
	b := models.NewTask("b", "two")
	b.ClaimedBy = "bob"
	c := models.NewTask("c", "three")
	c.ClaimedBy = "alice"
	for _, task := range []*models.Task{a, b, c} {
		if err := reg.AddTask(task); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}

	got := reg.TasksByAgent("alice")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("TasksByAgent(\"alice\") = %v, want [a c] in registry order", got)
	}
}

func TestTasksInReview(t *testing.T) {
	reg := New("goal")
	a := models.NewTask("a", "one")
	b := models.NewTask("b", "two")
	b.Status = models.StatusReview
	for _, task := range []*models.Task{a, b} {
		if err := reg.AddTask(task); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}

	got := reg.TasksInReview()
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("TasksInReview() = %v, want [b]", got)
	}
}

func TestTaskByBranch(t *testing.T) {
	reg := New("goal")
	a := models.NewTask("a", "one")
	a.Branch = "agent/alice/a"
	if err := reg.AddTask(a); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if got := reg.TaskByBranch("agent/alice/a"); got != a {
		t.Errorf("TaskByBranch = %v, want task a", got)
	}
	if got := reg.TaskByBranch("agent/bob/b"); got != nil {
		t.Errorf("TaskByBranch for unknown branch = %v, want nil", got)
	}
}

func TestCheckDependencies(t *testing.T) {
	reg := New("goal")
	merged := models.NewTask("a", "merged dep")
	merged.Status = models.StatusMerged
	claimed := models.NewTask("b", "claimed dep")
	claimed.Status = models.StatusClaimed
	for _, task := range []*models.Task{merged, claimed} {
		if err := reg.AddTask(task); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}

	tests := []struct {
		name      string
		dependsOn []string
		want      []string
	}{
		{"empty depends_on", nil, nil},
		{"all merged", []string{"a"}, nil},
		{"one unmet with status", []string{"a", "b"}, []string{"b (status: claimed)"}},
		{"missing dependency", []string{"ghost"}, []string{"ghost (not found)"}},
		{"order follows depends_on", []string{"b", "ghost"}, []string{"b (status: claimed)", "ghost (not found)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.NewTask("subject", "task under test")
			task.DependsOn = tt.dependsOn
			got := reg.CheckDependencies(task)
			if len(got) != len(tt.want) {
				t.Fatalf("CheckDependencies = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("unmet[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCheckFileConflicts(t *testing.T) {
	tests := []struct {
		name        string
		taskFiles   []string
		otherFiles  []string
		otherStatus models.Status
		wantPaths   []string
	}{
		{
			name:        "directory prefix conflicts with contained file",
			taskFiles:   []string{"src/x"},
			otherFiles:  []string{"src/x/y.go"},
			otherStatus: models.StatusClaimed,
			wantPaths:   []string{"src/x"},
		},
		{
			name:        "string prefix match flags sibling directories",
			taskFiles:   []string{"src/auth"},
			otherFiles:  []string{"src/auth2"},
			otherStatus: models.StatusInProgress,
			wantPaths:   []string{"src/auth"},
		},
		{
			name:        "trailing slashes are normalized",
			taskFiles:   []string{"src/auth/"},
			otherFiles:  []string{"src/auth"},
			otherStatus: models.StatusReview,
			wantPaths:   []string{"src/auth/"},
		},
		{
			name:        "pending tasks never conflict",
			taskFiles:   []string{"src/x"},
			otherFiles:  []string{"src/x"},
			otherStatus: models.StatusPending,
			wantPaths:   nil,
		},
		{
			name:        "merged tasks never conflict",
			taskFiles:   []string{"src/x"},
			otherFiles:  []string{"src/x"},
			otherStatus: models.StatusMerged,
			wantPaths:   nil,
		},
		{
			name:        "unrelated paths do not conflict",
			taskFiles:   []string{"src/api"},
			otherFiles:  []string{"docs/readme.md"},
			otherStatus: models.StatusClaimed,
			wantPaths:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New("goal")
			other := models.NewTask("other", "other task")
			other.Status = tt.otherStatus
			other.Files = tt.otherFiles
			if err := reg.AddTask(other); err != nil {
				t.Fatalf("AddTask: %v", err)
			}

			task := models.NewTask("subject", "task under test")
			task.Files = tt.taskFiles
			if err := reg.AddTask(task); err != nil {
				t.Fatalf("AddTask: %v", err)
			}

			got := reg.CheckFileConflicts(task)
			if len(got) != len(tt.wantPaths) {
				t.Fatalf("CheckFileConflicts = %v, want %d conflicts", got, len(tt.wantPaths))
			}
			for i, c := range got {
				if c.Path != tt.wantPaths[i] {
					t.Errorf("conflict[%d].Path = %q, want %q", i, c.Path, tt.wantPaths[i])
				}
				if c.Other.ID != "other" {
					t.Errorf("conflict[%d].Other.ID = %q, want %q", i, c.Other.ID, "other")
				}
			}
		})
	}
}

func TestCheckFileConflicts_NeverSelf(t *testing.T) {
	reg := New("goal")
	task := models.NewTask("t1", "task")
	task.Status = models.StatusClaimed
	task.Files = []string{"src/x"}
	if err := reg.AddTask(task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if got := reg.CheckFileConflicts(task); len(got) != 0 {
		t.Errorf("task conflicting with itself: %v", got)
	}
}

func TestCheckFileConflicts_PairsNotDeduplicated(t *testing.T) {
	reg := New("goal")
	other := models.NewTask("other", "other task")
	other.Status = models.StatusClaimed
	other.Files = []string{"src/x/a.go", "src/x/b.go"}
	if err := reg.AddTask(other); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	task := models.NewTask("subject", "task under test")
	task.Files = []string{"src/x"}
	if err := reg.AddTask(task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	// One pair per overlapping file combination.
	got := reg.CheckFileConflicts(task)
	if len(got) != 2 {
		t.Fatalf("CheckFileConflicts = %v, want 2 pairs", got)
	}
}

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"src/x", "src/x", true},
		{"src/x", "src/x/y.go", true},
		{"src/x/y.go", "src/x", true},
		{"src/auth", "src/auth2", true},
		{"src/auth/", "src/auth", true},
		{"src/a", "src/b", false},
		{"docs", "src", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := pathsOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("pathsOverlap(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
