package core

import "testing"

func TestSectionsDefaults(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	sections := Sections()
	if len(sections) != 12 {
		t.Fatalf("len(Sections()) = %d, want 12", len(sections))
	}
	if sections[0].Key != "dashboard" || sections[0].Path != "/" {
		t.Errorf("first section = %+v, want dashboard at /", sections[0])
	}
	if sections[len(sections)-1].Key != "audit-log" {
		t.Errorf("last section = %q, want audit-log", sections[len(sections)-1].Key)
	}

	ipos, ok := Get("ipos")
	if !ok {
		t.Fatal("Get(ipos) not found")
	}
	if ipos.Path != "/ipos" {
		t.Errorf("Path = %q, want /ipos", ipos.Path)
	}

	// Calling again does not register twice.
	if got := len(Sections()); got != 12 {
		t.Errorf("second Sections() = %d, want 12", got)
	}
}

func TestRegisterCustomSection(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(Section{Key: "live-ipos", Label: "Live IPOs", Order: 25})
	sections := Sections()

	idx := -1
	for i, s := range sections {
		if s.Key == "live-ipos" {
			idx = i
		}
	}
	if idx != 2 {
		t.Errorf("live-ipos position = %d, want 2 (after products)", idx)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(Section{Key: "x"})
	defer func() {
		if recover() == nil {
			t.Error("Register() duplicate should panic")
		}
	}()
	Register(Section{Key: "x"})
}
