package services

import (
	"testing"

	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorInputAcceptsNamesAndObjects(t *testing.T) {
	in := decodeInput[FabricInput](t, `{"name":"Blackout","code":"BO","pricePerSqm":15000,"resellerPrice":12000,
		"colors":["Blanco",{"id":4,"name":"Gris","hexCode":"#808080","isActive":false}]}`)
	require.Len(t, in.Colors, 2)
	assert.Equal(t, ColorInput{Name: "Blanco"}, in.Colors[0])
	assert.Equal(t, uint(4), in.Colors[1].ID)
	assert.Equal(t, "#808080", in.Colors[1].HexCode)
	require.NotNil(t, in.Colors[1].IsActive)
	assert.False(t, *in.Colors[1].IsActive)
}

func TestFabricCreateAndDuplicateCode(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewFabricService(conn)

	in := decodeInput[FabricInput](t, `{"name":"Blackout","code":"BLACKOUT","pricePerSqm":15000,"resellerPrice":12000,"colors":["Blanco","Negro"]}`)
	ft, err := svc.Create(testCtx(), in)
	require.NoError(t, err)
	assert.True(t, ft.IsActive)
	require.Len(t, ft.Colors, 2)
	assert.Equal(t, "Blanco", ft.Colors[0].Name)
	assert.True(t, ft.Colors[0].IsActive)

	_, err = svc.Create(testCtx(), in)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = svc.Create(testCtx(), FabricInput{Name: "", Code: "X", PricePerSqm: -1})
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.Equal(t, "required", vs["name"])
	assert.Equal(t, "must_not_be_negative", vs["pricePerSqm"])

	list, err := svc.List(testCtx())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFabricUpdateSyncsColorsPreservingIDs(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewFabricService(conn)

	ft, err := svc.Create(testCtx(), FabricInput{Name: "Sunscreen", Code: "SUN", PricePerSqm: 18000, ResellerPrice: 14500,
		Colors: []ColorInput{{Name: "Blanco"}, {Name: "Gris"}, {Name: "Negro"}}})
	require.NoError(t, err)
	ids := map[string]uint{}
	for _, c := range ft.Colors {
		ids[c.Name] = c.ID
	}

	inactive := false
	updated, err := svc.Update(testCtx(), ft.ID, FabricInput{Name: "Sunscreen 5%", Code: "SUN", PricePerSqm: 19000, ResellerPrice: 15000,
		Colors: []ColorInput{{ID: ids["Gris"], Name: "Gris Perla", IsActive: &inactive}, {Name: "Beige"}}})
	require.NoError(t, err)

	assert.Equal(t, "Sunscreen 5%", updated.Name)
	assert.Equal(t, 19000.0, updated.PricePerSqm)
	require.Len(t, updated.Colors, 2)
	byName := map[string]models.FabricColor{}
	for _, c := range updated.Colors {
		byName[c.Name] = c
	}
	assert.Equal(t, ids["Gris"], byName["Gris Perla"].ID)
	assert.False(t, byName["Gris Perla"].IsActive)
	assert.NotZero(t, byName["Beige"].ID)
	assert.Equal(t, int64(2), count(t, conn, &models.FabricColor{}))

	_, err = svc.Update(testCtx(), ft.ID, FabricInput{Name: "Sunscreen", Code: "SUN", Colors: []ColorInput{{ID: 999, Name: "Fantasma"}}})
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.Equal(t, "unknown", vs["colors[0].id"])

	_, err = svc.Update(testCtx(), 12345, FabricInput{Name: "X", Code: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFabricUpdateRejectsTakenCode(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewFabricService(conn)
	_, err := svc.Create(testCtx(), FabricInput{Name: "A", Code: "A"})
	require.NoError(t, err)
	b, err := svc.Create(testCtx(), FabricInput{Name: "B", Code: "B"})
	require.NoError(t, err)

	_, err = svc.Update(testCtx(), b.ID, FabricInput{Name: "B", Code: "A"})
	assert.ErrorIs(t, err, ErrDuplicateCode)
	code := "A"
	_, err = svc.Patch(testCtx(), b.ID, FabricPatch{Code: &code})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestFabricPatchAndDelete(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewFabricService(conn)
	ft, err := svc.Create(testCtx(), FabricInput{Name: "Blackout", Code: "BO", PricePerSqm: 15000, Colors: []ColorInput{{Name: "Blanco"}}})
	require.NoError(t, err)

	price, active := 16000.0, false
	patched, err := svc.Patch(testCtx(), ft.ID, FabricPatch{PricePerSqm: &price, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, 16000.0, patched.PricePerSqm)
	assert.False(t, patched.IsActive)
	assert.Equal(t, "Blackout", patched.Name)
	assert.Len(t, patched.Colors, 1)

	negative := -1.0
	_, err = svc.Patch(testCtx(), ft.ID, FabricPatch{ResellerPrice: &negative})
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)

	require.NoError(t, svc.Delete(testCtx(), ft.ID))
	assert.Zero(t, count(t, conn, &models.FabricType{}))
	assert.Zero(t, count(t, conn, &models.FabricColor{}))
	assert.ErrorIs(t, svc.Delete(testCtx(), ft.ID), ErrNotFound)
}

func TestSystemColorSync(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewSystemColorService(conn)

	initial, err := svc.Sync(testCtx(), []SystemColorInput{
		{Name: "A", HexCode: "#000001"}, {Name: "B", HexCode: "#000002"}, {Name: "C", HexCode: "#000003"},
	})
	require.NoError(t, err)
	require.Len(t, initial, 3)
	ids := map[string]uint{}
	for _, c := range initial {
		ids[c.Name] = c.ID
	}

	synced, err := svc.Sync(testCtx(), []SystemColorInput{
		{ID: ids["B"], Name: "B2", HexCode: "#0000FF"},
		{Name: "D", HexCode: "#000004"},
	})
	require.NoError(t, err)
	require.Len(t, synced, 2)
	assert.Equal(t, "B2", synced[0].Name)
	assert.Equal(t, ids["B"], synced[0].ID)
	assert.Equal(t, "#0000FF", synced[0].HexCode)
	assert.Equal(t, "D", synced[1].Name)
	assert.True(t, synced[1].IsActive)

	_, err = svc.Sync(testCtx(), []SystemColorInput{{Name: "X", HexCode: "#1"}, {Name: "x", HexCode: "#2"}})
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.Equal(t, "duplicate_of_0", vs["colors[1].name"])

	list, err := svc.List(testCtx())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := svc.Sync(testCtx(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClientCreateListAndGet(t *testing.T) {
	conn := setupTestDB(t)
	clients := NewClientService(conn)
	docs := newDocumentService(t, conn)

	c, err := clients.Create(testCtx(), ClientInput{Name: "María", Phone: " 3534111111 "})
	require.NoError(t, err)
	assert.Equal(t, "3534111111", c.Phone)
	assert.Equal(t, models.ClientRetail, c.Type)
	assert.Equal(t, models.DefaultCity, c.City)
	assert.Equal(t, models.DefaultProvince, c.Province)

	_, err = clients.Create(testCtx(), ClientInput{Name: "Otra", Phone: "3534111111"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)

	_, err = clients.Create(testCtx(), ClientInput{Name: "Bad", Phone: "1", Type: "VIP"})
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.Equal(t, "invalid_value", vs["type"])

	reseller, err := clients.Create(testCtx(), ClientInput{Name: "Revendedor", Phone: "3534222222", Type: "RESELLER", City: "Río Cuarto"})
	require.NoError(t, err)
	assert.Equal(t, "Río Cuarto", reseller.City)

	_, err = docs.Create(testCtx(), quoteFor("3534111111", 100))
	require.NoError(t, err)
	_, err = docs.Create(testCtx(), quoteFor("3534111111", 200))
	require.NoError(t, err)

	list, err := clients.List(testCtx())
	require.NoError(t, err)
	require.Len(t, list, 2)
	counts := map[uint]int64{}
	for _, cl := range list {
		counts[cl.ID] = cl.DocumentCount
	}
	assert.Equal(t, int64(2), counts[c.ID])
	assert.Equal(t, int64(0), counts[reseller.ID])

	got, err := clients.Get(testCtx(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "María", got.Name)
	require.Len(t, got.Documents, 2)
	assert.Equal(t, 2, got.Documents[0].Number)

	_, err = clients.Get(testCtx(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
