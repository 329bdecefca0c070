// Package whatsapp renders documents as chat messages and wa.me links.
// Everything here is pure: callers pass figures already formatted.
package whatsapp

import (
	"fmt"
	"strings"
)

const (
	DefaultBusinessName     = "Azul Deco - Fábrica de Cortinas Roller"
	DefaultBusinessLocation = "Villa María, Córdoba"

	rule = "━━━━━━━━━━━━━━━━━━"
)

// Kind mirrors the document type without importing the persistence models.
type Kind string

const (
	Quote        Kind = "QUOTE"
	Receipt      Kind = "RECEIPT"
	DeliveryNote Kind = "DELIVERY_NOTE"
)

type Item struct {
	ProductName string
	Width       int
	Height      int
	Quantity    int
	Location    string
	UnitPrice   string
	Subtotal    string
}

// Snapshot is a fully resolved document. Money and dates are preformatted.
type Snapshot struct {
	Kind             Kind
	Number           int
	ClientName       string
	Date             string
	ValidUntil       string
	EstimatedDate    string
	Items            []Item
	Total            string
	Observations     string
	BusinessName     string
	BusinessLocation string
}

func header(k Kind) (emoji, title string) {
	switch k {
	case Quote:
		return "📋", "PRESUPUESTO"
	case DeliveryNote:
		return "🚚", "REMITO"
	default:
		return "🧾", "RECIBO"
	}
}

// Message renders the snapshot with the fixed section layout.
func Message(s Snapshot) string {
	var b strings.Builder
	emoji, title := header(s.Kind)

	fmt.Fprintf(&b, "%s *%s #%d*\n", emoji, title, s.Number)
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", s.ClientName)
	fmt.Fprintf(&b, "📅 *Fecha:* %s\n", s.Date)
	if s.ValidUntil != "" {
		fmt.Fprintf(&b, "⏰ *Válido hasta:* %s\n", s.ValidUntil)
	}
	if s.EstimatedDate != "" {
		fmt.Fprintf(&b, "🚚 *Entrega estimada:* %s\n", s.EstimatedDate)
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("📦 *PRODUCTOS*\n")
	b.WriteString(rule + "\n\n")

	for i, it := range s.Items {
		fmt.Fprintf(&b, "*%d. %s*\n", i+1, it.ProductName)
		fmt.Fprintf(&b, "   📏 Medidas: %dcm × %dcm\n", it.Width, it.Height)
		fmt.Fprintf(&b, "   🔢 Cantidad: %d\n", it.Quantity)
		if strings.TrimSpace(it.Location) != "" {
			fmt.Fprintf(&b, "   📍 Ubicación: %s\n", it.Location)
		}
		fmt.Fprintf(&b, "   💰 Precio: %s\n", it.UnitPrice)
		if it.Quantity > 1 {
			fmt.Fprintf(&b, "   💵 Subtotal: %s\n", it.Subtotal)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "💵 *TOTAL: %s*\n", s.Total)
	b.WriteString(rule + "\n")

	if obs := strings.TrimSpace(s.Observations); obs != "" {
		fmt.Fprintf(&b, "\n📝 *Observaciones:*\n%s\n", obs)
	}

	name, location := s.BusinessName, s.BusinessLocation
	if name == "" {
		name = DefaultBusinessName
	}
	if location == "" {
		location = DefaultBusinessLocation
	}
	fmt.Fprintf(&b, "\n✨ *%s*\n", name)
	fmt.Fprintf(&b, "📍 %s\n", location)
	if s.Kind == Quote {
		b.WriteString("\n_Para confirmar tu pedido, respondé este mensaje._")
	} else {
		b.WriteString("\n_¡Gracias por tu compra!_")
	}
	return b.String()
}
