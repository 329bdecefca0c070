package models

// DocumentType distinguishes quotes, receipts and delivery notes. Numbers are sequential per type.
type DocumentType string

const (
	DocumentQuote        DocumentType = "QUOTE"
	DocumentReceipt      DocumentType = "RECEIPT"
	DocumentDeliveryNote DocumentType = "DELIVERY_NOTE"
)

var DocumentTypes = []DocumentType{DocumentQuote, DocumentReceipt, DocumentDeliveryNote}

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentQuote, DocumentReceipt, DocumentDeliveryNote:
		return true
	}
	return false
}

// DocumentStatus is the commercial state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusSent      DocumentStatus = "SENT"
	StatusApproved  DocumentStatus = "APPROVED"
	StatusCompleted DocumentStatus = "COMPLETED"
	StatusCancelled DocumentStatus = "CANCELLED"
	StatusExpired   DocumentStatus = "EXPIRED"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusApproved, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// ProductionStatus tracks the workshop pipeline, for whole documents and single items.
type ProductionStatus string

const (
	ProductionPending      ProductionStatus = "PENDING"
	ProductionInProduction ProductionStatus = "IN_PRODUCTION"
	ProductionReady        ProductionStatus = "READY"
	ProductionDelivered    ProductionStatus = "DELIVERED"
)

var ProductionStatuses = []ProductionStatus{ProductionPending, ProductionInProduction, ProductionReady, ProductionDelivered}

func (s ProductionStatus) Valid() bool {
	switch s {
	case ProductionPending, ProductionInProduction, ProductionReady, ProductionDelivered:
		return true
	}
	return false
}

// ClientType decides which catalog price tier usually applies.
type ClientType string

const (
	ClientRetail   ClientType = "RETAIL"
	ClientReseller ClientType = "RESELLER"
)

func (c ClientType) Valid() bool { return c == ClientRetail || c == ClientReseller }

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{}, &Client{}, &FabricType{}, &FabricColor{}, &SystemColor{},
		&Document{}, &DocumentItem{}, &DocumentCounter{}, &Setting{},
	}
}
