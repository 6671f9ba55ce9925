// settings keeps the viewer's persisted preferences: whether sound is on, which bird theme is picked, and the
// interface language. Settings are stored as YAML through gdata, which picks the right per-platform location.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// Language is an interface language.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// Settings holds the persisted preferences.
type Settings struct {
	// SoundEnabled is nil until the user has answered the sound prompt; the soundtrack stays off until then.
	SoundEnabled *bool    `yaml:"soundEnabled,omitempty"`
	Theme        int      `yaml:"theme"`
	Language     Language `yaml:"language"`
}

// Defaults returns the settings used before anything has been saved.
func Defaults() *Settings {
	return &Settings{Language: French}
}

// SoundChosen returns if the user has picked sound on or off.
func (s *Settings) SoundChosen() bool {
	return s.SoundEnabled != nil
}

// SoundOn returns if sound should play. An unanswered prompt counts as off.
func (s *Settings) SoundOn() bool {
	return s.SoundEnabled != nil && *s.SoundEnabled
}

// Manager loads and saves Settings. A Manager with no gdata.Manager keeps its settings in memory only.
type Manager struct {
	data     *gdata.Manager
	settings *Settings
	themes   int
}

// NewManager returns a Manager backed by data (which may be nil), with themes bird themes to choose from.
// Previously saved settings are loaded; if they can't be, the defaults are used and the error is logged.
func NewManager(data *gdata.Manager, themes int) *Manager {

	m := &Manager{
		data:     data,
		settings: Defaults(),
		themes:   max(themes, 1),
	}

	if err := m.Load(); err != nil {
		log.Printf("[Settings] Failed to load settings, using defaults: %v", err)
	}

	return m

}

// Load replaces the current settings with the saved ones, or with the defaults if nothing was saved.
func (m *Manager) Load() error {

	m.settings = Defaults()

	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}

	if loaded.Theme < 0 || loaded.Theme >= m.themes {
		loaded.Theme = 0
	}

	m.settings = loaded

	return nil

}

// Save writes the current settings out. Without a gdata.Manager it does nothing.
func (m *Manager) Save() error {

	if m.data == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil

}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	s := *m.settings
	if s.SoundEnabled != nil {
		on := *s.SoundEnabled
		s.SoundEnabled = &on
	}
	return s
}

// SetSoundEnabled records the user's sound choice.
func (m *Manager) SetSoundEnabled(enabled bool) {
	m.settings.SoundEnabled = &enabled
}

// ToggleSound flips sound on or off and returns the new state. An unanswered prompt toggles to on.
func (m *Manager) ToggleSound() bool {
	on := !m.settings.SoundOn()
	m.SetSoundEnabled(on)
	return on
}

// Theme returns the selected bird theme.
func (m *Manager) Theme() int {
	return m.settings.Theme
}

// NextTheme moves to the next bird theme, wrapping around, and returns it.
func (m *Manager) NextTheme() int {
	m.settings.Theme = (m.settings.Theme + 1) % m.themes
	return m.settings.Theme
}

// SetLanguage changes the interface language.
func (m *Manager) SetLanguage(lang Language) {
	m.settings.Language = lang
}

// Language returns the interface language.
func (m *Manager) Language() Language {
	return m.settings.Language
}
