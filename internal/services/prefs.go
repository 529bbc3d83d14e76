package services

import (
	"encoding/json"

	"github.com/pastevault/backend/internal/models"
	"gorm.io/datatypes"
)

// NotificationPatch is a total-replacement settings group: a key the client
// omits decodes to false, matching the all-or-nothing semantics of the
// notification toggles.
type NotificationPatch struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	WeeklySummary      bool `json:"weeklySummary"`
}

// PrivacyPatch is a partial-override settings group: only keys the client
// supplies are touched. AllowMessages lives outside the preferences document
// and is persisted as its own column.
type PrivacyPatch struct {
	ProfileVisibility *string `json:"profileVisibility"`
	ShowPasteCount    *bool   `json:"showPasteCount"`
	ShowPublicPastes  *bool   `json:"showPublicPastes"`
	AllowMessages     *bool   `json:"allowMessages"`
}

// NotificationPrefs is the read view of the notification group with defaults
// resolved.
type NotificationPrefs struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	WeeklySummary      bool `json:"weeklySummary"`
}

// PrivacySettings is the read view of the privacy group with defaults
// resolved.
type PrivacySettings struct {
	ProfileVisibility string `json:"profileVisibility"`
	ShowPasteCount    bool   `json:"showPasteCount"`
	ShowPublicPastes  bool   `json:"showPublicPastes"`
	AllowMessages     bool   `json:"allowMessages"`
}

// MergeNotificationPrefs replaces the three notification booleans wholesale
// and leaves every other key of current untouched.
func MergeNotificationPrefs(current map[string]interface{}, patch NotificationPatch) map[string]interface{} {
	next := copyPrefs(current)
	next[models.PrefEmailNotifications] = patch.EmailNotifications
	next[models.PrefPushNotifications] = patch.PushNotifications
	next[models.PrefWeeklySummary] = patch.WeeklySummary
	return next
}

// MergePrivacySettings overrides only the keys the patch supplies. Keys absent
// from both patch and current stay absent; defaults apply at read time via
// ResolvePrivacySettings, never here.
func MergePrivacySettings(current map[string]interface{}, patch PrivacyPatch) map[string]interface{} {
	next := copyPrefs(current)
	if patch.ProfileVisibility != nil {
		next[models.PrefProfileVisibility] = *patch.ProfileVisibility
	}
	if patch.ShowPasteCount != nil {
		next[models.PrefShowPasteCount] = *patch.ShowPasteCount
	}
	if patch.ShowPublicPastes != nil {
		next[models.PrefShowPublicPastes] = *patch.ShowPublicPastes
	}
	return next
}

// ResolveNotificationPrefs reads the notification group out of the persisted
// document; missing keys default to false.
func ResolveNotificationPrefs(prefs map[string]interface{}) NotificationPrefs {
	return NotificationPrefs{
		EmailNotifications: prefBool(prefs, models.PrefEmailNotifications, false),
		PushNotifications:  prefBool(prefs, models.PrefPushNotifications, false),
		WeeklySummary:      prefBool(prefs, models.PrefWeeklySummary, false),
	}
}

// ResolvePrivacySettings reads the privacy group out of the persisted document
// plus the allow_messages column, applying documented defaults for keys never
// set.
func ResolvePrivacySettings(prefs map[string]interface{}, allowMessages bool) PrivacySettings {
	visibility := models.VisibilityPublic
	if v, ok := prefs[models.PrefProfileVisibility].(string); ok && v != "" {
		visibility = v
	}
	return PrivacySettings{
		ProfileVisibility: visibility,
		ShowPasteCount:    prefBool(prefs, models.PrefShowPasteCount, true),
		ShowPublicPastes:  prefBool(prefs, models.PrefShowPublicPastes, true),
		AllowMessages:     allowMessages,
	}
}

// DecodePrefs unmarshals the jsonb column into a generic map. A null or empty
// column decodes to an empty map.
func DecodePrefs(raw datatypes.JSON) (map[string]interface{}, error) {
	prefs := map[string]interface{}{}
	if len(raw) == 0 {
		return prefs, nil
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// EncodePrefs marshals a merged document back into the jsonb column type.
func EncodePrefs(prefs map[string]interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func copyPrefs(current map[string]interface{}) map[string]interface{} {
	next := make(map[string]interface{}, len(current)+3)
	for k, v := range current {
		next[k] = v
	}
	return next
}

func prefBool(prefs map[string]interface{}, key string, fallback bool) bool {
	if v, ok := prefs[key].(bool); ok {
		return v
	}
	return fallback
}
