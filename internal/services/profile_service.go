package services

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pastevault/backend/internal/models"
)

// MaxBioLength caps the free-text bio field.
const MaxBioLength = 100

// AccountStore is the persistence collaborator. Implementations must provide
// row-level atomicity for each Save and hold a row lock for the duration of
// an UpdateLocked callback.
type AccountStore interface {
	Load(ctx context.Context, id uuid.UUID) (*models.UserAccount, error)
	Save(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	UpdateLocked(ctx context.Context, id uuid.UUID, fn func(*models.UserAccount) (map[string]interface{}, error)) error
}

// AssetStorage is the binary-asset collaborator. Write returns the relative
// path the asset is reachable under.
type AssetStorage interface {
	Write(ctx context.Context, namespace, name string, data []byte, contentType string) (string, error)
	PublicURL(path string) string
}

// UpdateProfileInput carries the profile fields of one update request. Nil
// Avatar means keep the existing picture; the text fields are replaced as a
// group, matching how the edit form submits them.
type UpdateProfileInput struct {
	Bio      *string
	Website  *string
	Location *string
	Avatar   *AvatarUpload
}

// ProfileView is the edit-form read model. Tagline is a read alias of the
// single stored bio field.
type ProfileView struct {
	Bio        string `json:"bio"`
	Tagline    string `json:"tagline"`
	Website    string `json:"website"`
	Location   string `json:"location"`
	AvatarPath string `json:"profilePicture"`
	AvatarURL  string `json:"profilePictureUrl,omitempty"`
}

// ProfileService orchestrates profile, credential, and preference mutations.
// Every entry point authorizes before any read or write and issues a single
// persistence write on success.
type ProfileService struct {
	accounts AccountStore
	assets   AssetStorage
	creds    *Credentials
	timeout  time.Duration
	now      func() time.Time
}

func NewProfileService(accounts AccountStore, assets AssetStorage, timeout time.Duration) *ProfileService {
	return &ProfileService{
		accounts: accounts,
		assets:   assets,
		creds:    NewCredentials(),
		timeout:  timeout,
		now:      time.Now,
	}
}

// UpdateProfile validates every field before the upload side effect runs, so
// a rejected bio never leaves an orphaned-but-committed avatar behind.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor Actor, targetID uuid.UUID, in UpdateProfileInput) (*ProfileView, error) {
	if !actor.mayMutate(targetID) {
		return nil, ErrForbidden
	}

	if in.Bio != nil && len(*in.Bio) > MaxBioLength {
		return nil, &ValidationError{Field: "bio", Reason: "bio must be under 100 characters"}
	}
	if in.Website != nil && *in.Website != "" {
		u, err := url.Parse(*in.Website)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, &ValidationError{Field: "website", Reason: "invalid website URL"}
		}
	}

	var avatarExt string
	if in.Avatar != nil {
		ext, err := ValidateAvatar(in.Avatar.Filename, in.Avatar.ContentType)
		if err != nil {
			return nil, err
		}
		if err := ValidateAvatarBytes(in.Avatar.Data); err != nil {
			return nil, err
		}
		avatarExt = ext
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	account, err := s.accounts.Load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"bio":        in.Bio,
		"website":    in.Website,
		"location":   in.Location,
		"updated_at": s.now(),
	}

	avatarPath := deref(account.AvatarPath)
	if in.Avatar != nil {
		name := AvatarObjectName(actor.ID, avatarExt)
		path, err := s.assets.Write(ctx, AvatarNamespace, name, in.Avatar.Data, in.Avatar.ContentType)
		if err != nil {
			return nil, err
		}
		fields["avatar_path"] = path
		avatarPath = path
	}

	if err := s.accounts.Save(ctx, targetID, fields); err != nil {
		return nil, err
	}

	view := &ProfileView{
		Bio:        deref(in.Bio),
		Tagline:    deref(in.Bio),
		Website:    deref(in.Website),
		Location:   deref(in.Location),
		AvatarPath: avatarPath,
	}
	if avatarPath != "" {
		view.AvatarURL = s.assets.PublicURL(avatarPath)
	}
	return view, nil
}

// ChangePassword rotates the credential with verify-then-commit semantics.
// The verification runs against whichever hash is current under the row lock,
// so a concurrent rotation cannot validate against a stale value.
func (s *ProfileService) ChangePassword(ctx context.Context, actor Actor, targetID uuid.UUID, current, next string) error {
	if !actor.mayMutate(targetID) {
		return ErrForbidden
	}
	if len(next) < MinPasswordLength {
		return &ValidationError{Field: "newPassword", Reason: "password must be at least 6 characters long"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.accounts.UpdateLocked(ctx, targetID, func(account *models.UserAccount) (map[string]interface{}, error) {
		if !s.creds.Verify(current, account.PasswordHash) {
			return nil, ErrUnauthorized
		}
		hash, err := s.creds.Hash(next)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"password_hash": hash,
			"updated_at":    s.now(),
		}, nil
	})
}

// UpdateNotificationPreferences applies the total-replacement merge for the
// notification group and returns the new resolved state.
func (s *ProfileService) UpdateNotificationPreferences(ctx context.Context, actor Actor, targetID uuid.UUID, patch NotificationPatch) (NotificationPrefs, error) {
	if !actor.mayMutate(targetID) {
		return NotificationPrefs{}, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var result NotificationPrefs
	err := s.accounts.UpdateLocked(ctx, targetID, func(account *models.UserAccount) (map[string]interface{}, error) {
		current, err := DecodePrefs(account.Preferences)
		if err != nil {
			return nil, err
		}
		merged := MergeNotificationPrefs(current, patch)
		raw, err := EncodePrefs(merged)
		if err != nil {
			return nil, err
		}
		result = ResolveNotificationPrefs(merged)
		return map[string]interface{}{
			"preferences": raw,
			"updated_at":  s.now(),
		}, nil
	})
	if err != nil {
		return NotificationPrefs{}, err
	}
	return result, nil
}

// UpdatePrivacySettings applies the partial-override merge for the privacy
// group under a row lock, so a concurrent patch on a different key is never
// lost. allowMessages is written to its own column.
func (s *ProfileService) UpdatePrivacySettings(ctx context.Context, actor Actor, targetID uuid.UUID, patch PrivacyPatch) (PrivacySettings, error) {
	if !actor.mayMutate(targetID) {
		return PrivacySettings{}, ErrForbidden
	}
	if patch.ProfileVisibility != nil &&
		*patch.ProfileVisibility != models.VisibilityPublic &&
		*patch.ProfileVisibility != models.VisibilityPrivate {
		return PrivacySettings{}, &ValidationError{Field: "profileVisibility", Reason: "must be public or private"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var result PrivacySettings
	err := s.accounts.UpdateLocked(ctx, targetID, func(account *models.UserAccount) (map[string]interface{}, error) {
		current, err := DecodePrefs(account.Preferences)
		if err != nil {
			return nil, err
		}
		merged := MergePrivacySettings(current, patch)
		raw, err := EncodePrefs(merged)
		if err != nil {
			return nil, err
		}

		allowMessages := account.AllowMessages
		if patch.AllowMessages != nil {
			allowMessages = *patch.AllowMessages
		}
		result = ResolvePrivacySettings(merged, allowMessages)
		return map[string]interface{}{
			"preferences":    raw,
			"allow_messages": allowMessages,
			"updated_at":     s.now(),
		}, nil
	})
	if err != nil {
		return PrivacySettings{}, err
	}
	return result, nil
}

// GetProfileForEdit returns the current profile fields for the edit form.
func (s *ProfileService) GetProfileForEdit(ctx context.Context, actor Actor, targetID uuid.UUID) (*ProfileView, error) {
	if !actor.mayMutate(targetID) {
		return nil, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	account, err := s.accounts.Load(ctx, targetID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		Bio:        deref(account.Bio),
		Tagline:    deref(account.Bio),
		Website:    deref(account.Website),
		Location:   deref(account.Location),
		AvatarPath: deref(account.AvatarPath),
	}
	if view.AvatarPath != "" {
		view.AvatarURL = s.assets.PublicURL(view.AvatarPath)
	}
	return view, nil
}

// GetNotificationPreferences resolves the notification group with defaults.
func (s *ProfileService) GetNotificationPreferences(ctx context.Context, actor Actor, targetID uuid.UUID) (NotificationPrefs, error) {
	if !actor.mayMutate(targetID) {
		return NotificationPrefs{}, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	account, err := s.accounts.Load(ctx, targetID)
	if err != nil {
		return NotificationPrefs{}, err
	}
	prefs, err := DecodePrefs(account.Preferences)
	if err != nil {
		return NotificationPrefs{}, err
	}
	return ResolveNotificationPrefs(prefs), nil
}

// GetPrivacySettings resolves the privacy group with defaults.
func (s *ProfileService) GetPrivacySettings(ctx context.Context, actor Actor, targetID uuid.UUID) (PrivacySettings, error) {
	if !actor.mayMutate(targetID) {
		return PrivacySettings{}, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	account, err := s.accounts.Load(ctx, targetID)
	if err != nil {
		return PrivacySettings{}, err
	}
	prefs, err := DecodePrefs(account.Preferences)
	if err != nil {
		return PrivacySettings{}, err
	}
	return ResolvePrivacySettings(prefs, account.AllowMessages), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
