package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/azuldeco/azul-admin/internal/logging"
	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/internal/money"
	"github.com/azuldeco/azul-admin/internal/numbering"
	"github.com/azuldeco/azul-admin/internal/pricing"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/azuldeco/azul-admin/internal/whatsapp"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DocumentClientInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DocumentItemInput is one requested line. squareMeters and subtotal are
// accepted for compatibility and recomputed on the server.
type DocumentItemInput struct {
	ProductName    string         `json:"productName"`
	Width          pricing.Length `json:"width"`
	Height         pricing.Length `json:"height"`
	WidthUnit      string         `json:"widthUnit"`
	HeightUnit     string         `json:"heightUnit"`
	UnitPrice      float64        `json:"unitPrice"`
	WholesalePrice *float64       `json:"wholesalePrice"`
	PriceTier      string         `json:"priceTier"`
	Quantity       *int           `json:"quantity"`
	Location       string         `json:"location"`
	SquareMeters   *float64       `json:"squareMeters,omitempty"`
	Subtotal       *float64       `json:"subtotal,omitempty"`
}

type CreateDocumentInput struct {
	Type         models.DocumentType `json:"type"`
	Client       DocumentClientInput `json:"client"`
	Items        []DocumentItemInput `json:"items"`
	Observations string              `json:"observations"`
	Total        *float64            `json:"total,omitempty"`
}

func (in CreateDocumentInput) validate() validation.Violations {
	vs := validation.Violations{}
	if !in.Type.Valid() {
		vs["type"] = "invalid_value"
	}
	validation.Required("client.name", in.Client.Name, vs)
	validation.Required("client.phone", in.Client.Phone, vs)
	if len(in.Items) == 0 {
		vs["items"] = "required"
	}
	for i, it := range in.Items {
		validation.Required(fmt.Sprintf("items[%d].productName", i), it.ProductName, vs)
		validation.PositiveInt(fmt.Sprintf("items[%d].quantity", i), pricing.QuantityOrDefault(it.Quantity), vs)
		validation.NonNegativeFloat(fmt.Sprintf("items[%d].unitPrice", i), it.UnitPrice, vs)
		if it.WholesalePrice != nil {
			validation.NonNegativeFloat(fmt.Sprintf("items[%d].wholesalePrice", i), *it.WholesalePrice, vs)
		}
	}
	return vs
}

// priceLines runs every requested item through the pricer.
func (in CreateDocumentInput) priceLines() ([]pricing.Line, error) {
	lines := make([]pricing.Line, len(in.Items))
	for i, it := range in.Items {
		line, err := pricing.PriceItem(pricing.ItemInput{
			WidthCm:        it.Width.Centimeters(pricing.ParseUnit(it.WidthUnit)),
			HeightCm:       it.Height.Centimeters(pricing.ParseUnit(it.HeightUnit)),
			Quantity:       pricing.QuantityOrDefault(it.Quantity),
			Tier:           pricing.ParseTier(strings.ToUpper(strings.TrimSpace(it.PriceTier))),
			RetailPrice:    it.UnitPrice,
			WholesalePrice: it.WholesalePrice,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		lines[i] = line
	}
	return lines, nil
}

// DocumentFilter narrows List. Zero values mean no filter.
type DocumentFilter struct {
	Type       models.DocumentType
	Status     models.DocumentStatus
	Production models.ProductionStatus
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type DocumentPage struct {
	Items  []models.Document `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type DocumentStats struct {
	Total         int64                         `json:"total"`
	ByType        map[models.DocumentType]int64 `json:"byType"`
	ApprovedValue float64                       `json:"approvedValue"`
}

type ProductionGroup struct {
	Status    models.ProductionStatus `json:"status"`
	Documents []models.Document       `json:"documents"`
}

type Dashboard struct {
	Clients            int64             `json:"clients"`
	DocumentsThisMonth int64             `json:"documentsThisMonth"`
	PendingProduction  int64             `json:"pendingProduction"`
	MonthRevenue       float64           `json:"monthRevenue"`
	Recent             []models.Document `json:"recent"`
}

type WhatsAppMessage struct {
	Text     string `json:"text"`
	DeepLink string `json:"deepLink"`
}

// DocumentService creates and queries documents.
type DocumentService struct {
	DB          *gorm.DB
	Settings    *settings.Service
	Allocator   numbering.Allocator
	MaxAttempts int
	Log         *log.Logger
	Now         func() time.Time
}

func NewDocumentService(db *gorm.DB, st *settings.Service, maxAttempts int, l *log.Logger) *DocumentService {
	if l == nil {
		l = logging.Discard()
	}
	if st == nil {
		st = settings.NewService(db, nil, 0, l)
	}
	return &DocumentService{
		DB:          db,
		Settings:    st,
		Allocator:   numbering.CounterAllocator{},
		MaxAttempts: maxAttempts,
		Log:         l,
		Now:         time.Now,
	}
}

// now is always UTC; document dates and month boundaries are UTC.
func (s *DocumentService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func withGraph(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").Preload("CreatedBy").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

// Create validates the request, prices its items and stores the document
// with a freshly allocated number. Everything happens in one transaction,
// retried as a whole when the number collides.
func (s *DocumentService) Create(ctx context.Context, in CreateDocumentInput) (*models.Document, error) {
	if vs := in.validate(); !vs.Empty() {
		return nil, vs
	}
	lines, err := in.priceLines()
	if err != nil {
		return nil, validation.Violations{"items": "invalid_quantity"}
	}
	totals := pricing.Totalize(lines)
	if in.Total != nil && pricing.Round2(*in.Total) != pricing.Round2(totals.Total) {
		s.Log.WithFields(log.Fields{"sent": *in.Total, "computed": totals.Total}).Warn("client total differs, using computed total")
	}

	validity, err := s.Settings.ValidityPeriod(ctx)
	if err != nil {
		return nil, err
	}
	lead, err := s.Settings.DeliveryLead(ctx)
	if err != nil {
		return nil, err
	}

	var id uint
	err = numbering.WithRetry(ctx, s.MaxAttempts, func(attempt int) error {
		if attempt > 1 {
			s.Log.WithFields(log.Fields{"type": in.Type, "attempt": attempt}).Warn("document number collided, retrying")
		}
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			client, err := FindOrCreateByPhone(tx, in.Client.Name, in.Client.Phone)
			if err != nil {
				return err
			}
			user, err := defaultUser(tx)
			if err != nil {
				return err
			}
			number, err := s.Allocator.Next(tx, in.Type)
			if err != nil {
				return err
			}

			now := s.now()
			estimated := now.Add(lead)
			doc := models.Document{
				Type:             in.Type,
				Number:           number,
				ClientID:         client.ID,
				UserID:           user.ID,
				Status:           models.StatusDraft,
				ProductionStatus: models.ProductionPending,
				Date:             now,
				EstimatedDate:    &estimated,
				Subtotal:         totals.Subtotal,
				Total:            totals.Total,
				Observations:     strings.TrimSpace(in.Observations),
			}
			if in.Type == models.DocumentQuote {
				valid := now.Add(validity)
				doc.ValidUntil = &valid
			}
			for i, line := range lines {
				doc.Items = append(doc.Items, models.DocumentItem{
					Position:     i,
					ProductName:  strings.TrimSpace(in.Items[i].ProductName),
					Width:        line.Width,
					Height:       line.Height,
					PricePerSqm:  line.PricePerSqm,
					SquareMeters: line.SquareMeters,
					Quantity:     line.Quantity,
					PriceTier:    string(line.Tier),
					UnitPrice:    line.UnitPrice,
					Subtotal:     line.Subtotal,
					Location:     strings.TrimSpace(in.Items[i].Location),
					Status:       models.ProductionPending,
				})
			}
			if err := tx.Create(&doc).Error; err != nil {
				return errors.Wrap(err, "insert document")
			}
			id = doc.ID
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	s.Log.WithFields(log.Fields{"id": id, "type": in.Type}).Info("document created")
	return s.Get(ctx, id)
}

// labelAreas fills the two-decimal area shown next to each item.
func labelAreas(doc *models.Document) {
	for i := range doc.Items {
		doc.Items[i].Area = pricing.DisplaySquareMeters(doc.Items[i].SquareMeters)
	}
}

// defaultUser returns the first user, creating the administrator when none exists.
func defaultUser(tx *gorm.DB) (*models.User, error) {
	var u models.User
	err := tx.Order("id").First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "find user")
	}
	u = models.User{Email: models.DefaultUserEmail, Name: models.DefaultUserName, Role: models.RoleAdmin}
	if err := tx.Create(&u).Error; err != nil {
		return nil, errors.Wrap(err, "create default user")
	}
	return &u, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := withGraph(s.DB.WithContext(ctx)).First(&doc, id).Error; err != nil {
		return nil, notFound(err, "document")
	}
	labelAreas(&doc)
	return &doc, nil
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns one page of documents, newest first.
func (s *DocumentService) List(ctx context.Context, f DocumentFilter) (*DocumentPage, error) {
	q := s.DB.WithContext(ctx).Model(&models.Document{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Production != "" {
		q = q.Where("production_status = ?", f.Production)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		clients := s.DB.Model(&models.Client{}).Select("id").
			Where(`LOWER(name) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\'`, like, like)
		if n, err := strconv.Atoi(strings.TrimPrefix(term, "#")); err == nil {
			q = q.Where("client_id IN (?) OR number = ?", clients, n)
		} else {
			q = q.Where("client_id IN (?)", clients)
		}
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("date < ?", *f.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count documents")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	docs := []models.Document{}
	err := q.Preload("Client").Order("date DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&docs).Error
	if err != nil {
		return nil, errors.Wrap(err, "list documents")
	}
	return &DocumentPage{Items: docs, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *DocumentService) Stats(ctx context.Context) (*DocumentStats, error) {
	db := s.DB.WithContext(ctx)
	stats := &DocumentStats{ByType: map[models.DocumentType]int64{}}
	for _, t := range models.DocumentTypes {
		stats.ByType[t] = 0
	}

	var rows []struct {
		Type  models.DocumentType
		Count int64
	}
	if err := db.Model(&models.Document{}).Select("type, COUNT(*) AS count").Group("type").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count documents by type")
	}
	for _, r := range rows {
		stats.ByType[r.Type] = r.Count
		stats.Total += r.Count
	}

	err := db.Model(&models.Document{}).
		Where("status IN ?", []models.DocumentStatus{models.StatusApproved, models.StatusCompleted}).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.ApprovedValue).Error
	if err != nil {
		return nil, errors.Wrap(err, "sum approved documents")
	}
	return stats, nil
}

// ProductionBoard groups the documents the workshop tracks by production
// status, in pipeline order, each group ordered by estimated date.
func (s *DocumentService) ProductionBoard(ctx context.Context) ([]ProductionGroup, error) {
	var docs []models.Document
	err := s.DB.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("type IN ?", []models.DocumentType{models.DocumentQuote, models.DocumentReceipt}).
		Where("status <> ?", models.StatusCancelled).
		Order("estimated_date").Order("id").
		Find(&docs).Error
	if err != nil {
		return nil, errors.Wrap(err, "load production board")
	}

	groups := make([]ProductionGroup, len(models.ProductionStatuses))
	index := make(map[models.ProductionStatus]int, len(groups))
	for i, st := range models.ProductionStatuses {
		groups[i] = ProductionGroup{Status: st, Documents: []models.Document{}}
		index[st] = i
	}
	for _, d := range docs {
		labelAreas(&d)
		if i, ok := index[d.ProductionStatus]; ok {
			groups[i].Documents = append(groups[i].Documents, d)
		}
	}
	for i := range groups {
		docs := groups[i].Documents
		sort.SliceStable(docs, func(a, b int) bool { return earlier(docs[a].EstimatedDate, docs[b].EstimatedDate) })
	}
	return groups, nil
}

// earlier orders nil dates last.
func earlier(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

func (s *DocumentService) UpdateStatus(ctx context.Context, id uint, st models.DocumentStatus) (*models.Document, error) {
	if !st.Valid() {
		return nil, errors.Wrap(ErrInvalidStatus, string(st))
	}
	return s.updateColumn(ctx, id, "status", st)
}

func (s *DocumentService) UpdateProductionStatus(ctx context.Context, id uint, st models.ProductionStatus) (*models.Document, error) {
	if !st.Valid() {
		return nil, errors.Wrap(ErrInvalidStatus, string(st))
	}
	return s.updateColumn(ctx, id, "production_status", st)
}

func (s *DocumentService) updateColumn(ctx context.Context, id uint, column string, value any) (*models.Document, error) {
	res := s.DB.WithContext(ctx).Model(&models.Document{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "update document %s", column)
	}
	if res.RowsAffected == 0 {
		return nil, errors.Wrap(ErrNotFound, "document")
	}
	return s.Get(ctx, id)
}

func (s *DocumentService) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.DB.WithContext(ctx)
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := &Dashboard{Recent: []models.Document{}}

	if err := db.Model(&models.Client{}).Count(&out.Clients).Error; err != nil {
		return nil, errors.Wrap(err, "count clients")
	}
	if err := db.Model(&models.Document{}).Where("date >= ?", monthStart).Count(&out.DocumentsThisMonth).Error; err != nil {
		return nil, errors.Wrap(err, "count month documents")
	}
	err := db.Model(&models.Document{}).
		Where("production_status IN ?", []models.ProductionStatus{models.ProductionPending, models.ProductionInProduction}).
		Count(&out.PendingProduction).Error
	if err != nil {
		return nil, errors.Wrap(err, "count pending production")
	}
	err = db.Model(&models.Document{}).
		Where("date >= ?", monthStart).
		Where("type IN ?", []models.DocumentType{models.DocumentQuote, models.DocumentReceipt}).
		Select("COALESCE(SUM(total), 0)").Scan(&out.MonthRevenue).Error
	if err != nil {
		return nil, errors.Wrap(err, "sum month revenue")
	}
	if err := db.Preload("Client").Order("created_at DESC").Order("id DESC").Limit(5).Find(&out.Recent).Error; err != nil {
		return nil, errors.Wrap(err, "recent documents")
	}
	return out, nil
}

// WhatsApp renders the stored document as a chat message and a wa.me link
// to the client's phone.
func (s *DocumentService) WhatsApp(ctx context.Context, id uint) (*WhatsAppMessage, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := Snapshot(doc)

	info, err := s.Settings.BusinessInfo(ctx)
	if err != nil {
		return nil, err
	}
	// The stock business info keeps the message's own footer.
	if def, _ := settings.Default(settings.KeyBusinessInfo); info != def {
		snap.BusinessName = info.Name
		snap.BusinessLocation = info.Address
	}

	text := whatsapp.Message(snap)
	phone := ""
	if doc.Client != nil {
		phone = doc.Client.Phone
	}
	return &WhatsAppMessage{Text: text, DeepLink: whatsapp.Link(phone, text)}, nil
}

// Snapshot freezes a loaded document into preformatted message fields.
func Snapshot(doc *models.Document) whatsapp.Snapshot {
	snap := whatsapp.Snapshot{
		Kind:          whatsapp.Kind(doc.Type),
		Number:        doc.Number,
		Date:          money.FormatDate(&doc.Date),
		EstimatedDate: money.FormatDate(doc.EstimatedDate),
		Total:         money.Format(doc.Total),
		Observations:  doc.Observations,
	}
	if doc.IsQuote() {
		snap.ValidUntil = money.FormatDate(doc.ValidUntil)
	}
	if doc.Client != nil {
		snap.ClientName = doc.Client.Name
	}
	for _, it := range doc.Items {
		snap.Items = append(snap.Items, whatsapp.Item{
			ProductName: it.ProductName,
			Width:       it.Width,
			Height:      it.Height,
			Quantity:    it.Quantity,
			Location:    it.Location,
			UnitPrice:   money.Format(it.UnitPrice),
			Subtotal:    money.Format(it.Subtotal),
		})
	}
	return snap
}
