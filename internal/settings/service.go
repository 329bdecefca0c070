package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/azuldeco/azul-admin/internal/cache"
	"github.com/azuldeco/azul-admin/internal/logging"
	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cachePrefix = "settings:"

// Service reads and writes settings, reading through an optional cache.
type Service struct {
	DB    *gorm.DB
	Cache cache.Cache
	TTL   time.Duration
	Log   *log.Logger
}

func NewService(db *gorm.DB, c cache.Cache, ttl time.Duration, l *log.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if l == nil {
		l = logging.Discard()
	}
	return &Service{DB: db, Cache: c, TTL: ttl, Log: l}
}

// Value is a setting as exposed over the API.
type Value struct {
	Key       Key             `json:"key"`
	Value     json.RawMessage `json:"value"`
	IsDefault bool            `json:"isDefault"`
}

// Raw returns the stored JSON for k, or its default.
func (s *Service) Raw(ctx context.Context, k Key) (Value, error) {
	if !Known(k) {
		return Value{}, errors.Wrap(ErrUnknownKey, string(k))
	}
	if b, ok, err := s.Cache.Get(ctx, cachePrefix+string(k)); err != nil {
		s.Log.WithError(err).WithField("key", k).Warn("settings cache read failed")
	} else if ok {
		return Value{Key: k, Value: b}, nil
	}

	var row models.Setting
	err := s.DB.WithContext(ctx).Where(&models.Setting{Key: string(k)}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := Defaults()[k]
		return Value{Key: k, Value: def, IsDefault: true}, nil
	}
	if err != nil {
		return Value{}, errors.Wrapf(err, "load setting %s", k)
	}
	if err := s.Cache.Set(ctx, cachePrefix+string(k), row.Raw(), s.TTL); err != nil {
		s.Log.WithError(err).WithField("key", k).Warn("settings cache write failed")
	}
	return Value{Key: k, Value: row.Raw()}, nil
}

// Put validates and upserts the value for k, then writes it through to the
// cache. A concurrent Raw that read the old row before the upsert can still
// cache it afterwards; that value lives at most TTL.
func (s *Service) Put(ctx context.Context, k Key, raw []byte) (Value, error) {
	canonical, err := Parse(k, raw)
	if err != nil {
		return Value{}, err
	}
	row := models.NewSetting(string(k), canonical)
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return Value{}, errors.Wrapf(err, "save setting %s", k)
	}
	if err := s.Cache.Set(ctx, cachePrefix+string(k), canonical, s.TTL); err != nil {
		s.Log.WithError(err).WithField("key", k).Warn("settings cache write failed, invalidating")
		if err := s.Cache.Delete(ctx, cachePrefix+string(k)); err != nil {
			s.Log.WithError(err).WithField("key", k).Warn("settings cache invalidation failed")
		}
	}
	return Value{Key: k, Value: canonical}, nil
}

// Get decodes the value for k into T.
func Get[T any](ctx context.Context, s *Service, k Key) (T, error) {
	var out T
	v, err := s.Raw(ctx, k)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(v.Value, &out); err != nil {
		// A stored value no longer matching its type falls back to the default.
		s.Log.WithError(err).WithField("key", k).Warn("stored setting unreadable, using default")
		def, _ := Default(k)
		if typed, ok := def.(T); ok {
			return typed, nil
		}
		return out, errors.Wrapf(err, "decode setting %s", k)
	}
	return out, nil
}

func (s *Service) BusinessInfo(ctx context.Context) (BusinessInfo, error) {
	return Get[BusinessInfo](ctx, s, KeyBusinessInfo)
}

// ValidityPeriod is how long a new quote stays valid.
func (s *Service) ValidityPeriod(ctx context.Context) (time.Duration, error) {
	days, err := Get[int](ctx, s, KeyDefaultValidityDays)
	if err != nil {
		return 0, err
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

// DeliveryLead is the time between a document's creation and its estimated delivery.
func (s *Service) DeliveryLead(ctx context.Context) (time.Duration, error) {
	hours, err := Get[int](ctx, s, KeyDefaultDeliveryHours)
	if err != nil {
		return 0, err
	}
	return time.Duration(hours) * time.Hour, nil
}
