package board

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gafferdev/gaffer/internal/registry"
	"github.com/gafferdev/gaffer/pkg/models"
)

func writeRegistry(t *testing.T, dir string, tasks ...*models.Task) {
	t.Helper()
	reg := registry.New("test goal")
	for _, task := range tasks {
		if err := reg.AddTask(task); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}
	if err := reg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func newTestModel(t *testing.T, dir string) *Model {
	t.Helper()
	m, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNew_RequiresRegistry(t *testing.T) {
	if _, err := New(t.TempDir()); err == nil {
		t.Error("New without a registry should fail")
	}
}

func TestVisibleTasks_Filter(t *testing.T) {
	dir := t.TempDir()
	auth := models.NewTask("auth", "Implement login")
	auth.ClaimedBy = "alice"
	api := models.NewTask("api", "Build endpoints")
	writeRegistry(t, dir, auth, api)

	m := newTestModel(t, dir)

	if got := m.visibleTasks(); len(got) != 2 {
		t.Fatalf("unfiltered = %d tasks, want 2", len(got))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"auth", []string{"auth"}},
		{"LOGIN", []string{"auth"}},
		{"alice", []string{"auth"}},
		{"endpoints", []string{"api"}},
		{"nothing-matches", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			m.filter.SetValue(tt.query)
			got := m.visibleTasks()
			if len(got) != len(tt.want) {
				t.Fatalf("visibleTasks(%q) = %d tasks, want %d", tt.query, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("task[%d] = %q, want %q", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestUpdate_RegistryChangedReloads(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, models.NewTask("t1", "first"))

	m := newTestModel(t, dir)
	if len(m.reg.Tasks) != 1 {
		t.Fatalf("initial tasks = %d, want 1", len(m.reg.Tasks))
	}

	writeRegistry(t, dir, models.NewTask("t1", "first"), models.NewTask("t2", "second"))

	updated, _ := m.Update(registryChangedMsg{})
	m = updated.(*Model)
	if len(m.reg.Tasks) != 2 {
		t.Errorf("tasks after reload = %d, want 2", len(m.reg.Tasks))
	}
}

func TestUpdate_KeepsLastGoodRegistryOnParseError(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, models.NewTask("t1", "first"))

	m := newTestModel(t, dir)

	bad := "goal: G\ntasks:\n  - id: t1\n    description: D\n    status: bogus\n"
	if err := os.WriteFile(filepath.Join(dir, registry.FileName), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	updated, _ := m.Update(registryChangedMsg{})
	m = updated.(*Model)
	if m.loadErr == nil {
		t.Error("loadErr should be set after a parse failure")
	}
	if len(m.reg.Tasks) != 1 {
		t.Errorf("registry should keep last good state, got %d tasks", len(m.reg.Tasks))
	}
}

func TestView_GroupsByStatus(t *testing.T) {
	dir := t.TempDir()
	pending := models.NewTask("p", "pending task")
	review := models.NewTask("r", "review task")
	review.Status = models.StatusReview
	review.ClaimedBy = "alice"
	review.Branch = "agent/alice/r"
	writeRegistry(t, dir, pending, review)

	m := newTestModel(t, dir)
	out := m.View()

	for _, want := range []string{"pending (1)", "review (1)", "p: pending task", "r: review task", "by alice"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}
