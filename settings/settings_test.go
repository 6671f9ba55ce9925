package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestData(t *testing.T) *gdata.Manager {

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	data, err := gdata.Open(gdata.Config{AppName: "flightpath_test"})
	if err != nil {
		t.Fatalf("opening gdata: %v", err)
	}

	return data

}

func TestDefaults(t *testing.T) {

	m := NewManager(nil, 3)
	s := m.Settings()

	if s.SoundChosen() || s.SoundOn() {
		t.Error("sound should start unanswered and off")
	}

	if s.Theme != 0 || s.Language != French {
		t.Errorf("defaults = %+v", s)
	}

	if err := m.Save(); err != nil {
		t.Errorf("saving without storage should be a no-op, got %v", err)
	}

}

func TestSaveAndLoad(t *testing.T) {

	data := openTestData(t)

	m := NewManager(data, 3)
	m.SetSoundEnabled(true)
	m.NextTheme()
	m.NextTheme()
	m.SetLanguage(English)

	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	loaded := NewManager(data, 3).Settings()

	if !loaded.SoundOn() {
		t.Error("sound choice wasn't saved")
	}

	if loaded.Theme != 2 {
		t.Errorf("theme = %d, want 2", loaded.Theme)
	}

	if loaded.Language != English {
		t.Errorf("language = %q, want %q", loaded.Language, English)
	}

}

func TestThemeWrapsAndIsClampedOnLoad(t *testing.T) {

	data := openTestData(t)

	m := NewManager(data, 3)
	for i := 0; i < 3; i++ {
		m.NextTheme()
	}

	if m.Theme() != 0 {
		t.Errorf("theme after a full cycle = %d, want 0", m.Theme())
	}

	m.NextTheme()
	m.NextTheme()
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	// Fewer themes than were available when the settings were saved.
	if got := NewManager(data, 2).Theme(); got != 0 {
		t.Errorf("out of range theme loaded as %d, want 0", got)
	}

}

func TestToggleSound(t *testing.T) {

	m := NewManager(nil, 1)

	if !m.ToggleSound() {
		t.Error("toggling an unanswered prompt should turn sound on")
	}

	if m.ToggleSound() {
		t.Error("toggling again should turn sound off")
	}

	// The copy returned by Settings doesn't alias the manager's state.
	s := m.Settings()
	*s.SoundEnabled = true
	if current := m.Settings(); current.SoundOn() {
		t.Error("changing a copy changed the manager")
	}

}

func TestCorruptSettingsFallBackToDefaults(t *testing.T) {

	data := openTestData(t)

	if err := data.SaveObjectProp(settingsObject, settingsProperty, []byte("theme: [")); err != nil {
		t.Fatal(err)
	}

	m := NewManager(data, 3)
	if m.Theme() != 0 || m.Language() != French {
		t.Errorf("corrupt settings loaded as %+v", m.Settings())
	}

	if err := m.Load(); err == nil {
		t.Error("Load should report the decode error")
	}

}
