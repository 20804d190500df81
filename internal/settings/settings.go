package settings

import (
	"errors"
	"sync"
)

// Language is one of the two locales the app ships translations for.
type Language string

const (
	LanguageDutch   Language = "nl"
	LanguageEnglish Language = "en"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Settings holds the small UI-affecting preferences. Values live for the
// process lifetime only and reset to defaults on restart.
type Settings struct {
	Language      Language `json:"language"`
	DarkMode      bool     `json:"dark_mode"`
	Notifications bool     `json:"notifications"`
	ProfileImage  string   `json:"profile_image,omitempty"`
}

// Update carries a partial settings change; nil fields are left untouched.
type Update struct {
	Language      *Language `json:"language,omitempty"`
	DarkMode      *bool     `json:"dark_mode,omitempty"`
	Notifications *bool     `json:"notifications,omitempty"`
	ProfileImage  *string   `json:"profile_image,omitempty"`
}

// Store is the process-wide settings holder. Safe for concurrent use; the
// store is the single writer of its state.
type Store struct {
	mu sync.RWMutex
	s  Settings
}

// NewStore returns a store with first-run defaults.
func NewStore() *Store {
	return &Store{s: Settings{
		Language:      LanguageDutch,
		DarkMode:      false,
		Notifications: true,
	}}
}

func (st *Store) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Apply merges the non-nil fields of u into the current settings and returns
// the result. An unsupported language rejects the whole update.
func (st *Store) Apply(u Update) (Settings, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if u.Language != nil {
		switch *u.Language {
		case LanguageDutch, LanguageEnglish:
		default:
			return Settings{}, ErrUnsupportedLanguage
		}
		st.s.Language = *u.Language
	}
	if u.DarkMode != nil {
		st.s.DarkMode = *u.DarkMode
	}
	if u.Notifications != nil {
		st.s.Notifications = *u.Notifications
	}
	if u.ProfileImage != nil {
		st.s.ProfileImage = *u.ProfileImage
	}
	return st.s, nil
}
