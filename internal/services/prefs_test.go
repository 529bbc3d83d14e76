package services

import (
	"testing"

	"github.com/pastevault/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNotificationPrefsIsTotalReplacement(t *testing.T) {
	current := map[string]interface{}{
		models.PrefEmailNotifications: false,
		models.PrefPushNotifications:  true,
		models.PrefWeeklySummary:      true,
	}

	// Patch only sets email; the omitted toggles decode to false and must
	// overwrite, not keep, the persisted values.
	next := MergeNotificationPrefs(current, NotificationPatch{EmailNotifications: true})

	assert.Equal(t, true, next[models.PrefEmailNotifications])
	assert.Equal(t, false, next[models.PrefPushNotifications])
	assert.Equal(t, false, next[models.PrefWeeklySummary])
}

func TestMergeNotificationPrefsPreservesOtherKeys(t *testing.T) {
	current := map[string]interface{}{
		models.PrefProfileVisibility: "private",
		"experimentalFlags":          map[string]interface{}{"beta": true},
	}

	next := MergeNotificationPrefs(current, NotificationPatch{})

	assert.Equal(t, "private", next[models.PrefProfileVisibility])
	assert.Equal(t, map[string]interface{}{"beta": true}, next["experimentalFlags"])
}

func TestMergePrivacySettingsIsPartial(t *testing.T) {
	current := map[string]interface{}{
		models.PrefProfileVisibility: "private",
		models.PrefShowPasteCount:    false,
	}

	show := true
	next := MergePrivacySettings(current, PrivacyPatch{ShowPublicPastes: &show})

	assert.Equal(t, "private", next[models.PrefProfileVisibility])
	assert.Equal(t, false, next[models.PrefShowPasteCount])
	assert.Equal(t, true, next[models.PrefShowPublicPastes])
}

func TestMergePrivacySettingsEmptyPatchIsIdentity(t *testing.T) {
	current := map[string]interface{}{
		models.PrefProfileVisibility: "private",
		models.PrefShowPasteCount:    false,
		"unrecognizedKey":            "kept",
	}

	next := MergePrivacySettings(current, PrivacyPatch{})

	assert.Equal(t, current, next)
}

func TestMergePrivacySettingsDoesNotMutateCurrent(t *testing.T) {
	current := map[string]interface{}{models.PrefShowPasteCount: true}

	hide := false
	MergePrivacySettings(current, PrivacyPatch{ShowPasteCount: &hide})

	assert.Equal(t, true, current[models.PrefShowPasteCount])
}

func TestResolvePrivacySettingsDefaults(t *testing.T) {
	settings := ResolvePrivacySettings(map[string]interface{}{}, true)

	assert.Equal(t, models.VisibilityPublic, settings.ProfileVisibility)
	assert.True(t, settings.ShowPasteCount)
	assert.True(t, settings.ShowPublicPastes)
	assert.True(t, settings.AllowMessages)
}

func TestResolveNotificationPrefsDefaults(t *testing.T) {
	prefs := ResolveNotificationPrefs(map[string]interface{}{})

	assert.False(t, prefs.EmailNotifications)
	assert.False(t, prefs.PushNotifications)
	assert.False(t, prefs.WeeklySummary)
}

func TestDecodePrefsRoundTrip(t *testing.T) {
	prefs, err := DecodePrefs(nil)
	require.NoError(t, err)
	assert.Empty(t, prefs)

	raw, err := EncodePrefs(map[string]interface{}{models.PrefProfileVisibility: "private"})
	require.NoError(t, err)

	decoded, err := DecodePrefs(raw)
	require.NoError(t, err)
	assert.Equal(t, "private", decoded[models.PrefProfileVisibility])
}
