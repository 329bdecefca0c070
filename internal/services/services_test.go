package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/azuldeco/azul-admin/internal/db"
	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(conn))
	return conn
}

func newDocumentService(t *testing.T, conn *gorm.DB) *DocumentService {
	t.Helper()
	svc := NewDocumentService(conn, settings.NewService(conn, nil, time.Minute, nil), 5, nil)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func decodeInput[T any](t *testing.T, body string) T {
	t.Helper()
	var in T
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func quoteFor(phone string, unitPrice float64) CreateDocumentInput {
	return CreateDocumentInput{
		Type:   models.DocumentQuote,
		Client: DocumentClientInput{Name: "Juan Pérez", Phone: phone},
		Items:  []DocumentItemInput{{ProductName: "Roller Blackout", Width: "150", Height: "200", UnitPrice: unitPrice}},
	}
}

func count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(model).Count(&n).Error)
	return n
}

func testCtx() context.Context { return context.Background() }
