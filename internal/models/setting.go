package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SettingValue wraps the setting's JSON in an object. sqlite gives JSON
// columns numeric affinity, so a bare 7 would come back as an integer.
type SettingValue struct {
	Raw json.RawMessage `json:"v"`
}

// Setting stores one configuration value as JSON under a well-known key.
type Setting struct {
	ID        uint                             `gorm:"primaryKey" json:"id"`
	Key       string                           `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Value     datatypes.JSONType[SettingValue] `gorm:"not null" json:"value"`
	CreatedAt time.Time                        `json:"createdAt"`
	UpdatedAt time.Time                        `json:"updatedAt"`
}

func NewSetting(key string, raw json.RawMessage) Setting {
	return Setting{Key: key, Value: datatypes.NewJSONType(SettingValue{Raw: raw})}
}

// Raw is the stored JSON value without its envelope.
func (s *Setting) Raw() json.RawMessage { return s.Value.Data().Raw }
