package commands

import "testing"

func TestRegistry_FindByNameAndAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"rm", "delete", "RM"} {
		cmd, ok := r.Find(name)
		if !ok {
			t.Errorf("expected to find %q", name)
			continue
		}
		if cmd.Name() != "rm" {
			t.Errorf("expected rm for %q, got %s", name, cmd.Name())
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	r.Register(&ListCmd{})

	err := r.Register(&ListCmd{})
	if err == nil || err.Error() != "command already registered: list" {
		t.Errorf("expected duplicate name error, got %v", err)
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := NewRegistry()
	r.Register(&ToggleCmd{})

	err := r.Register(&aliasClash{})
	if err == nil || err.Error() != "command alias already registered: done" {
		t.Errorf("expected duplicate alias error, got %v", err)
	}
	if _, ok := r.Find("finish"); ok {
		t.Error("failed registration must not leave partial entries")
	}
}

func TestRegistry_All(t *testing.T) {
	all := DefaultRegistry.All()

	var names []string
	for _, cmd := range all {
		names = append(names, cmd.Name())
	}
	want := []string{"add", "edit", "export", "help", "list", "rm", "toggle", "version"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}

type aliasClash struct{ VersionCmd }

func (c *aliasClash) Name() string      { return "finish" }
func (c *aliasClash) Aliases() []string { return []string{"done"} }
