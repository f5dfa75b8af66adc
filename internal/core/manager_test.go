package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestManagerCreateAndWith(t *testing.T) {
	m := NewManager(time.Minute, 0)

	id, err := m.Create("contacts", "people.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Alice", "30"}},
		SessionConfig{Fields: nameAgeFields(), AutoMapHeaders: true},
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned empty ID")
	}

	// Auto-mapping ran during Create
	err = m.With(id, func(s *Session) error {
		cols := s.Columns()
		if len(cols) != 2 {
			t.Fatalf("expected 2 columns, got %d", len(cols))
		}
		if cols[0].Type != ColumnMatched || cols[0].Value != "name" {
			t.Errorf("expected column 0 matched to name, got %v %q", cols[0].Type, cols[0].Value)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
}

func TestManagerWith_NotFound(t *testing.T) {
	m := NewManager(time.Minute, 0)

	err := m.With("nonexistent", func(s *Session) error { return nil })
	if err == nil {
		t.Fatal("With() expected error for unknown session")
	}
	if !strings.Contains(err.Error(), "session not found") {
		t.Errorf("error = %v, want session not found", err)
	}
}

func TestManagerMeta(t *testing.T) {
	m := NewManager(time.Minute, 0)

	id, err := m.Create("contacts", "people.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Alice", "30"}},
		SessionConfig{Fields: nameAgeFields()},
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	meta, err := m.Meta(id)
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta.ID != id {
		t.Errorf("Meta().ID = %q, want %q", meta.ID, id)
	}
	if meta.TemplateKey != "contacts" {
		t.Errorf("Meta().TemplateKey = %q, want %q", meta.TemplateKey, "contacts")
	}
	if meta.FileName != "people.csv" {
		t.Errorf("Meta().FileName = %q, want %q", meta.FileName, "people.csv")
	}
	if meta.CreatedAt.IsZero() {
		t.Error("Meta().CreatedAt should be set")
	}
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(time.Minute, 0)

	id, err := m.Create("contacts", "people.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Alice", "30"}},
		SessionConfig{Fields: nameAgeFields()},
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := m.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d after delete, want 0", m.Active())
	}

	if err := m.Delete(id); err == nil {
		t.Error("Delete() expected error for already-deleted session")
	}
	if err := m.With(id, func(s *Session) error { return nil }); err == nil {
		t.Error("With() expected error after delete")
	}
}

func TestManagerCreate_Cap(t *testing.T) {
	m := NewManager(time.Minute, 1)

	_, err := m.Create("contacts", "a.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Alice", "30"}},
		SessionConfig{Fields: nameAgeFields()},
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = m.Create("contacts", "b.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Bob", "40"}},
		SessionConfig{Fields: nameAgeFields()},
	)
	if !errors.Is(err, ErrTooManySessions) {
		t.Errorf("Create() error = %v, want ErrTooManySessions", err)
	}
}

func TestManagerSweep_EvictsIdleAndNotifies(t *testing.T) {
	m := NewManager(time.Nanosecond, 0)

	var evicted []string
	m.SetOnEvict(func(id string) { evicted = append(evicted, id) })

	id, err := m.Create("contacts", "people.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Alice", "30"}},
		SessionConfig{Fields: nameAgeFields()},
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(time.Millisecond)
	m.Sweep()

	if m.Active() != 0 {
		t.Errorf("Active() = %d after sweep, want 0", m.Active())
	}
	if len(evicted) != 1 || evicted[0] != id {
		t.Errorf("evicted = %v, want [%s]", evicted, id)
	}
	if err := m.With(id, func(s *Session) error { return nil }); err == nil {
		t.Error("With() expected error after sweep")
	}
}

func TestManagerSweep_KeepsFreshSessions(t *testing.T) {
	m := NewManager(time.Hour, 0)
	m.SetOnEvict(func(id string) { t.Errorf("unexpected eviction of %s", id) })

	_, err := m.Create("contacts", "people.csv",
		RawRow{"Name", "Age"},
		[]RawRow{{"Alice", "30"}},
		SessionConfig{Fields: nameAgeFields()},
	)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	m.Sweep()

	if m.Active() != 1 {
		t.Errorf("Active() = %d after sweep, want 1", m.Active())
	}
}

func TestManagerCreate_InvalidConfig(t *testing.T) {
	m := NewManager(time.Minute, 0)

	_, err := m.Create("contacts", "a.csv",
		RawRow{"Name"},
		[]RawRow{{"Alice"}},
		SessionConfig{},
	)
	if err == nil {
		t.Fatal("Create() expected error for empty schema")
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d after failed create, want 0", m.Active())
	}
}
