package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
	MediaKindFile  = "file"
)

// Video processing states, populated by the transcoder webhook (with a
// throttled manual re-sync fallback for missed events).
const (
	MediaStatusWaiting   = "waiting"
	MediaStatusPreparing = "preparing"
	MediaStatusReady     = "ready"
	MediaStatusErrored   = "errored"
)

// MediaAsset is one entry of the tenant-scoped media library. Images and
// plain files are ready the moment the object upload finishes; videos stay
// waiting/preparing until the external transcoder reports a playback id.
type MediaAsset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`

	Kind       string `gorm:"column:kind;not null;index" json:"kind"` // image|video|file
	Name       string `gorm:"column:name;not null" json:"name"`
	MimeType   string `gorm:"column:mime_type" json:"mime_type,omitempty"`
	SizeBytes  int64  `gorm:"column:size_bytes" json:"size_bytes,omitempty"`
	StorageKey string `gorm:"column:storage_key;index" json:"storage_key,omitempty"`
	URL        string `gorm:"column:url" json:"url,omitempty"`

	// Video-only fields.
	Status       string     `gorm:"column:status;not null;default:'ready';index" json:"status"`
	RemoteID     string     `gorm:"column:remote_id;index" json:"remote_id,omitempty"` // transcoder asset id
	PlaybackID   string     `gorm:"column:playback_id" json:"playback_id,omitempty"`
	LastSyncedAt *time.Time `gorm:"column:last_synced_at" json:"last_synced_at,omitempty"`

	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MediaAsset) TableName() string { return "media_asset" }
