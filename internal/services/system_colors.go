package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SystemColorInput struct {
	ID       uint   `json:"id,omitempty"`
	Name     string `json:"name"`
	HexCode  string `json:"hexCode"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type SystemColorService struct{ DB *gorm.DB }

func NewSystemColorService(db *gorm.DB) *SystemColorService { return &SystemColorService{DB: db} }

func (s *SystemColorService) List(ctx context.Context) ([]models.SystemColor, error) {
	out := []models.SystemColor{}
	err := s.DB.WithContext(ctx).Order("name").Order("id").Find(&out).Error
	return out, errors.Wrap(err, "list system colors")
}

// Sync makes the stored list equal to in. Entries keep their id when sent with one.
func (s *SystemColorService) Sync(ctx context.Context, in []SystemColorInput) ([]models.SystemColor, error) {
	vs := validation.Violations{}
	seen := make(map[string]int, len(in))
	colors := make([]models.SystemColor, len(in))
	for i, c := range in {
		name := strings.TrimSpace(c.Name)
		validation.Required(fmt.Sprintf("colors[%d].name", i), name, vs)
		validation.Required(fmt.Sprintf("colors[%d].hexCode", i), c.HexCode, vs)
		if j, dup := seen[strings.ToLower(name)]; dup && name != "" {
			vs[fmt.Sprintf("colors[%d].name", i)] = fmt.Sprintf("duplicate_of_%d", j)
		}
		seen[strings.ToLower(name)] = i
		colors[i] = models.SystemColor{ID: c.ID, Name: name, HexCode: strings.TrimSpace(c.HexCode), IsActive: c.IsActive == nil || *c.IsActive}
	}
	if !vs.Empty() {
		return nil, vs
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := syncCollection(tx, colors, collection[models.SystemColor]{
			field:   "colors",
			scope:   func(db *gorm.DB) *gorm.DB { return db },
			id:      func(c *models.SystemColor) uint { return c.ID },
			columns: []string{"name", "hex_code", "is_active", "updated_at"},
		})
		return duplicateAs(err, ErrDuplicateName)
	})
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}
