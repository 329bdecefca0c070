package db

import (
	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedFabric struct {
	fabric models.FabricType
	colors []models.FabricColor
}

var seedFabrics = []seedFabric{
	{
		fabric: models.FabricType{Name: "Black Out", Code: "BLACKOUT", PricePerSqm: 15000, ResellerPrice: 12000, Description: "Tela opaca que bloquea completamente la luz", IsActive: true},
		colors: []models.FabricColor{
			{Name: "Blanco", HexCode: "#FFFFFF"},
			{Name: "Crudo", HexCode: "#F5F5DC"},
			{Name: "Beige", HexCode: "#F5E6D3"},
			{Name: "Gris Claro", HexCode: "#D3D3D3"},
			{Name: "Gris", HexCode: "#808080"},
			{Name: "Gris Oscuro", HexCode: "#4A4A4A"},
			{Name: "Negro", HexCode: "#000000"},
		},
	},
	{
		fabric: models.FabricType{Name: "Sunscreen", Code: "SUNSCREEN", PricePerSqm: 18000, ResellerPrice: 14500, Description: "Tela traslúcida que filtra la luz solar", IsActive: true},
		colors: []models.FabricColor{
			{Name: "Blanco", HexCode: "#FFFFFF"},
			{Name: "Crudo", HexCode: "#F5F5DC"},
			{Name: "Gris Perla", HexCode: "#C0C0C0"},
			{Name: "Gris", HexCode: "#808080"},
			{Name: "Lino", HexCode: "#E8DCC4"},
			{Name: "Arena", HexCode: "#C2B280"},
		},
	},
}

var seedSystemColors = []models.SystemColor{
	{Name: "Blanco", HexCode: "#FFFFFF", IsActive: true},
	{Name: "Negro", HexCode: "#000000", IsActive: true},
	{Name: "Aluminio", HexCode: "#A8A9AD", IsActive: true},
	{Name: "Champagne", HexCode: "#F7E7CE", IsActive: true},
}

var seedClients = []models.Client{
	{Name: "María González", Type: models.ClientRetail, Phone: "3534-123456", Email: "maria@email.com", Address: "Av. San Martín 450", City: models.DefaultCity, Province: models.DefaultProvince},
	{Name: "Juan Pérez - Revendedor", Type: models.ClientReseller, Phone: "3534-654321", Email: "juan@revendedor.com", Address: "Calle Corrientes 123", City: models.DefaultCity, Province: models.DefaultProvince, Notes: "Cliente mayorista"},
	{Name: "Ana Martínez", Type: models.ClientRetail, Phone: "3534-789012", Address: "Bv. Roca 890", City: models.DefaultCity, Province: models.DefaultProvince},
}

// Seed inserts reference data. Existing rows are left untouched, so it can run repeatedly.
func Seed(conn *gorm.DB) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		admin := models.User{Email: models.DefaultUserEmail, Name: models.DefaultUserName, Role: models.RoleAdmin}
		if err := tx.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
			return errors.Wrap(err, "seed admin user")
		}

		for _, sf := range seedFabrics {
			ft := sf.fabric
			if err := tx.Where(models.FabricType{Code: ft.Code}).FirstOrCreate(&ft).Error; err != nil {
				return errors.Wrapf(err, "seed fabric %s", ft.Code)
			}
			for _, c := range sf.colors {
				c.FabricTypeID = ft.ID
				c.IsActive = true
				if err := tx.Where(models.FabricColor{FabricTypeID: ft.ID, Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
					return errors.Wrapf(err, "seed color %s/%s", ft.Code, c.Name)
				}
			}
		}

		for _, sc := range seedSystemColors {
			if err := tx.Where(models.SystemColor{Name: sc.Name}).FirstOrCreate(&sc).Error; err != nil {
				return errors.Wrapf(err, "seed system color %s", sc.Name)
			}
		}

		for _, c := range seedClients {
			if err := tx.Where(models.Client{Phone: c.Phone}).FirstOrCreate(&c).Error; err != nil {
				return errors.Wrapf(err, "seed client %s", c.Phone)
			}
		}

		for k, raw := range settings.Defaults() {
			row := models.NewSetting(string(k), raw)
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return errors.Wrapf(err, "seed setting %s", k)
			}
		}
		return nil
	})
}
