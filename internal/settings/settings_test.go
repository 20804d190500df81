package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore().Get()

	assert.Equal(t, LanguageDutch, s.Language)
	assert.False(t, s.DarkMode)
	assert.True(t, s.Notifications)
	assert.Empty(t, s.ProfileImage)
}

func TestApply_PartialUpdate(t *testing.T) {
	store := NewStore()
	dark := true

	updated, err := store.Apply(Update{DarkMode: &dark})

	require.NoError(t, err)
	assert.True(t, updated.DarkMode)
	assert.Equal(t, LanguageDutch, updated.Language, "untouched fields keep their value")
	assert.True(t, updated.Notifications)
}

func TestApply_SwitchLanguage(t *testing.T) {
	store := NewStore()
	english := LanguageEnglish

	updated, err := store.Apply(Update{Language: &english})

	require.NoError(t, err)
	assert.Equal(t, LanguageEnglish, updated.Language)
	assert.Equal(t, LanguageEnglish, store.Get().Language)
}

func TestApply_UnsupportedLanguage(t *testing.T) {
	store := NewStore()
	bogus := Language("fr")
	dark := true

	_, err := store.Apply(Update{Language: &bogus, DarkMode: &dark})

	require.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.False(t, store.Get().DarkMode, "a rejected update must not apply any of its fields")
}

func TestApply_ProfileImage(t *testing.T) {
	store := NewStore()
	img := "file:///tmp/avatar.jpg"

	updated, err := store.Apply(Update{ProfileImage: &img})

	require.NoError(t, err)
	assert.Equal(t, img, updated.ProfileImage)
}
