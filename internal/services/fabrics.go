package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/internal/numbering"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ColorInput is a fabric color in a request. A bare JSON string is a new color with that name.
type ColorInput struct {
	ID       uint   `json:"id,omitempty"`
	Name     string `json:"name"`
	HexCode  string `json:"hexCode,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (c *ColorInput) UnmarshalJSON(b []byte) error {
	if b = bytes.TrimSpace(b); len(b) > 0 && b[0] == '"' {
		*c = ColorInput{}
		return json.Unmarshal(b, &c.Name)
	}
	type plain ColorInput
	return json.Unmarshal(b, (*plain)(c))
}

type FabricInput struct {
	Name          string       `json:"name"`
	Code          string       `json:"code"`
	PricePerSqm   float64      `json:"pricePerSqm"`
	ResellerPrice float64      `json:"resellerPrice"`
	Description   string       `json:"description"`
	IsActive      *bool        `json:"isActive"`
	Colors        []ColorInput `json:"colors"`
}

func (in FabricInput) validate() validation.Violations {
	vs := validation.Violations{}
	validation.Required("name", in.Name, vs)
	validation.Required("code", in.Code, vs)
	validation.NonNegativeFloat("pricePerSqm", in.PricePerSqm, vs)
	validation.NonNegativeFloat("resellerPrice", in.ResellerPrice, vs)
	for i, c := range in.Colors {
		validation.Required(fmt.Sprintf("colors[%d].name", i), c.Name, vs)
	}
	return vs
}

// FabricPatch changes scalar fields only; colors are never touched.
type FabricPatch struct {
	Name          *string  `json:"name"`
	Code          *string  `json:"code"`
	PricePerSqm   *float64 `json:"pricePerSqm"`
	ResellerPrice *float64 `json:"resellerPrice"`
	Description   *string  `json:"description"`
	IsActive      *bool    `json:"isActive"`
}

type FabricService struct{ DB *gorm.DB }

func NewFabricService(db *gorm.DB) *FabricService { return &FabricService{DB: db} }

func preloadColors(db *gorm.DB) *gorm.DB { return db.Order("name").Order("id") }

func (s *FabricService) List(ctx context.Context) ([]models.FabricType, error) {
	var out []models.FabricType
	err := s.DB.WithContext(ctx).Preload("Colors", preloadColors).Order("name").Find(&out).Error
	return out, errors.Wrap(err, "list fabric types")
}

func (s *FabricService) Get(ctx context.Context, id uint) (*models.FabricType, error) {
	var ft models.FabricType
	if err := s.DB.WithContext(ctx).Preload("Colors", preloadColors).First(&ft, id).Error; err != nil {
		return nil, notFound(err, "fabric type")
	}
	return &ft, nil
}

func (s *FabricService) codeTaken(tx *gorm.DB, code string, exceptID uint) (bool, error) {
	var n int64
	q := tx.Model(&models.FabricType{}).Where("code = ?", code)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check fabric code")
	}
	return n > 0, nil
}

func duplicateAs(err, sentinel error) error {
	if numbering.IsDuplicate(err) {
		return sentinel
	}
	return err
}

// Create adds a fabric type with its colors. Codes are unique.
func (s *FabricService) Create(ctx context.Context, in FabricInput) (*models.FabricType, error) {
	if vs := in.validate(); !vs.Empty() {
		return nil, vs
	}
	code := strings.TrimSpace(in.Code)
	ft := models.FabricType{
		Name:          strings.TrimSpace(in.Name),
		Code:          code,
		PricePerSqm:   in.PricePerSqm,
		ResellerPrice: in.ResellerPrice,
		Description:   in.Description,
		IsActive:      in.IsActive == nil || *in.IsActive,
	}
	for _, c := range in.Colors {
		ft.Colors = append(ft.Colors, models.FabricColor{Name: strings.TrimSpace(c.Name), HexCode: c.HexCode, IsActive: c.IsActive == nil || *c.IsActive})
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.codeTaken(tx, code, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCode
		}
		return duplicateAs(tx.Create(&ft).Error, ErrDuplicateCode)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ft.ID)
}

// Update replaces every field and synchronizes the color list by id.
func (s *FabricService) Update(ctx context.Context, id uint, in FabricInput) (*models.FabricType, error) {
	if vs := in.validate(); !vs.Empty() {
		return nil, vs
	}
	code := strings.TrimSpace(in.Code)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ft models.FabricType
		if err := tx.First(&ft, id).Error; err != nil {
			return notFound(err, "fabric type")
		}
		taken, err := s.codeTaken(tx, code, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCode
		}
		ft.Name = strings.TrimSpace(in.Name)
		ft.Code = code
		ft.PricePerSqm = in.PricePerSqm
		ft.ResellerPrice = in.ResellerPrice
		ft.Description = in.Description
		if in.IsActive != nil {
			ft.IsActive = *in.IsActive
		}
		if err := tx.Omit("Colors").Save(&ft).Error; err != nil {
			return duplicateAs(err, ErrDuplicateCode)
		}

		colors := make([]models.FabricColor, len(in.Colors))
		for i, c := range in.Colors {
			colors[i] = models.FabricColor{ID: c.ID, Name: strings.TrimSpace(c.Name), HexCode: c.HexCode, IsActive: c.IsActive == nil || *c.IsActive}
		}
		err = syncCollection(tx, colors, collection[models.FabricColor]{
			field:   "colors",
			scope:   func(db *gorm.DB) *gorm.DB { return db.Where("fabric_type_id = ?", id) },
			id:      func(c *models.FabricColor) uint { return c.ID },
			prepare: func(c *models.FabricColor) { c.FabricTypeID = id },
			columns: []string{"name", "hex_code", "is_active", "updated_at"},
		})
		return duplicateAs(err, ErrDuplicateName)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Patch applies the provided scalar fields.
func (s *FabricService) Patch(ctx context.Context, id uint, p FabricPatch) (*models.FabricType, error) {
	updates := map[string]any{}
	vs := validation.Violations{}
	if p.Name != nil {
		validation.Required("name", *p.Name, vs)
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Code != nil {
		validation.Required("code", *p.Code, vs)
		updates["code"] = strings.TrimSpace(*p.Code)
	}
	if p.PricePerSqm != nil {
		validation.NonNegativeFloat("pricePerSqm", *p.PricePerSqm, vs)
		updates["price_per_sqm"] = *p.PricePerSqm
	}
	if p.ResellerPrice != nil {
		validation.NonNegativeFloat("resellerPrice", *p.ResellerPrice, vs)
		updates["reseller_price"] = *p.ResellerPrice
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if !vs.Empty() {
		return nil, vs
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ft models.FabricType
		if err := tx.First(&ft, id).Error; err != nil {
			return notFound(err, "fabric type")
		}
		if code, ok := updates["code"].(string); ok {
			taken, err := s.codeTaken(tx, code, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateCode
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return duplicateAs(tx.Model(&ft).Updates(updates).Error, ErrDuplicateCode)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a fabric type and its colors.
func (s *FabricService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ft models.FabricType
		if err := tx.First(&ft, id).Error; err != nil {
			return notFound(err, "fabric type")
		}
		if err := tx.Where("fabric_type_id = ?", id).Delete(&models.FabricColor{}).Error; err != nil {
			return errors.Wrap(err, "delete fabric colors")
		}
		return errors.Wrap(tx.Delete(&ft).Error, "delete fabric type")
	})
}
