package services

import (
	"context"
	"strings"

	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ClientInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	DNI      string `json:"dni"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	Notes    string `json:"notes"`
}

func (in ClientInput) validate() validation.Violations {
	vs := validation.Violations{}
	validation.Required("name", in.Name, vs)
	validation.Required("phone", in.Phone, vs)
	if in.Type != "" && !models.ClientType(in.Type).Valid() {
		vs["type"] = "invalid_value"
	}
	return vs
}

type ClientService struct{ DB *gorm.DB }

func NewClientService(db *gorm.DB) *ClientService { return &ClientService{DB: db} }

// List returns clients newest first with their document counts.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&clients).Error; err != nil {
		return nil, errors.Wrap(err, "list clients")
	}
	type row struct {
		ClientID uint
		Count    int64
	}
	var counts []row
	err := s.DB.WithContext(ctx).Model(&models.Document{}).
		Select("client_id, COUNT(*) AS count").Group("client_id").Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "count client documents")
	}
	byClient := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byClient[c.ClientID] = c.Count
	}
	for i := range clients {
		clients[i].DocumentCount = byClient[clients[i].ID]
	}
	return clients, nil
}

// Create registers a client. A phone already on file is a conflict.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	if vs := in.validate(); !vs.Empty() {
		return nil, vs
	}
	phone := strings.TrimSpace(in.Phone)
	var exists int64
	if err := s.DB.WithContext(ctx).Model(&models.Client{}).Where("phone = ?", phone).Count(&exists).Error; err != nil {
		return nil, errors.Wrap(err, "check phone")
	}
	if exists > 0 {
		return nil, ErrDuplicatePhone
	}
	c := models.Client{
		Name:     strings.TrimSpace(in.Name),
		Type:     models.ClientType(in.Type),
		DNI:      in.DNI,
		Phone:    phone,
		Email:    in.Email,
		Address:  in.Address,
		City:     in.City,
		Province: in.Province,
		Notes:    in.Notes,
	}
	if c.Type == "" {
		c.Type = models.ClientRetail
	}
	if c.City == "" {
		c.City = models.DefaultCity
	}
	if c.Province == "" {
		c.Province = models.DefaultProvince
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	return &c, nil
}

// Get loads a client with its documents, newest first.
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	err := s.DB.WithContext(ctx).
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC").Order("id DESC") }).
		First(&c, id).Error
	if err != nil {
		return nil, notFound(err, "client")
	}
	c.DocumentCount = int64(len(c.Documents))
	return &c, nil
}

// FindOrCreateByPhone returns the client owning phone, creating a retail client if none does.
func FindOrCreateByPhone(tx *gorm.DB, name, phone string) (*models.Client, error) {
	phone = strings.TrimSpace(phone)
	var c models.Client
	err := tx.Where("phone = ?", phone).Order("id").First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "find client by phone")
	}
	c = models.Client{
		Name:     strings.TrimSpace(name),
		Phone:    phone,
		Type:     models.ClientRetail,
		City:     models.DefaultCity,
		Province: models.DefaultProvince,
	}
	if err := tx.Create(&c).Error; err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	return &c, nil
}
