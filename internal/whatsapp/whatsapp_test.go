package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteSnapshot() Snapshot {
	return Snapshot{
		Kind:          Quote,
		Number:        12,
		ClientName:    "María González",
		Date:          "07/03/2025",
		ValidUntil:    "14/03/2025",
		EstimatedDate: "10/03/2025",
		Items: []Item{{
			ProductName: "Roller Black Out Blanco",
			Width:       150,
			Height:      200,
			Quantity:    1,
			UnitPrice:   "$ 15.000,00",
			Subtotal:    "$ 15.000,00",
		}},
		Total: "$ 15.000,00",
	}
}

func TestQuoteMessageLayout(t *testing.T) {
	msg := Message(quoteSnapshot())

	assert.True(t, strings.HasPrefix(msg, "📋 *PRESUPUESTO #12*\n"))
	assert.Contains(t, msg, "👤 *Cliente:* María González\n")
	assert.Contains(t, msg, "📅 *Fecha:* 07/03/2025\n")
	assert.Contains(t, msg, "⏰ *Válido hasta:* 14/03/2025\n")
	assert.Contains(t, msg, "🚚 *Entrega estimada:* 10/03/2025\n")
	assert.Contains(t, msg, "📦 *PRODUCTOS*\n")
	assert.Contains(t, msg, "*1. Roller Black Out Blanco*\n")
	assert.Contains(t, msg, "   📏 Medidas: 150cm × 200cm\n")
	assert.Contains(t, msg, "   🔢 Cantidad: 1\n")
	assert.Contains(t, msg, "   💰 Precio: $ 15.000,00\n")
	assert.Contains(t, msg, "💵 *TOTAL: $ 15.000,00*\n")
	assert.Contains(t, msg, "✨ *Azul Deco - Fábrica de Cortinas Roller*\n📍 Villa María, Córdoba\n")
	assert.True(t, strings.HasSuffix(msg, "_Para confirmar tu pedido, respondé este mensaje._"))
}

func TestSingleQuantityOmitsSubtotalLine(t *testing.T) {
	msg := Message(quoteSnapshot())
	assert.NotContains(t, msg, "Subtotal:")

	s := quoteSnapshot()
	s.Items[0].Quantity = 3
	s.Items[0].Subtotal = "$ 45.000,00"
	msg = Message(s)
	assert.Contains(t, msg, "   🔢 Cantidad: 3\n")
	assert.Contains(t, msg, "   💵 Subtotal: $ 45.000,00\n")
}

func TestLocationLineOnlyWhenPresent(t *testing.T) {
	assert.NotContains(t, Message(quoteSnapshot()), "Ubicación")

	s := quoteSnapshot()
	s.Items[0].Location = "Living"
	assert.Contains(t, Message(s), "   📍 Ubicación: Living\n")
}

func TestObservationsBlock(t *testing.T) {
	for _, obs := range []string{"", "   ", "\n\t"} {
		s := quoteSnapshot()
		s.Observations = obs
		assert.NotContains(t, Message(s), "Observaciones")
	}

	s := quoteSnapshot()
	s.Observations = "Instalación incluida"
	assert.Contains(t, Message(s), "\n📝 *Observaciones:*\nInstalación incluida\n")
}

func TestFooterAndHeaderByKind(t *testing.T) {
	s := quoteSnapshot()
	s.Kind = Receipt
	s.ValidUntil = ""
	msg := Message(s)
	assert.True(t, strings.HasPrefix(msg, "🧾 *RECIBO #12*\n"))
	assert.NotContains(t, msg, "Válido hasta")
	assert.True(t, strings.HasSuffix(msg, "_¡Gracias por tu compra!_"))
	assert.NotContains(t, msg, "Para confirmar")

	s.Kind = DeliveryNote
	msg = Message(s)
	assert.True(t, strings.HasPrefix(msg, "🚚 *REMITO #12*\n"))
	assert.True(t, strings.HasSuffix(msg, "_¡Gracias por tu compra!_"))
}

func TestCustomBusinessFooter(t *testing.T) {
	s := quoteSnapshot()
	s.BusinessName = "Azul Deco"
	s.BusinessLocation = "Villa María, Córdoba, Argentina"
	msg := Message(s)
	assert.Contains(t, msg, "✨ *Azul Deco*\n📍 Villa María, Córdoba, Argentina\n")
}

func TestMessageIsDeterministic(t *testing.T) {
	assert.Equal(t, Message(quoteSnapshot()), Message(quoteSnapshot()))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"3534123456", "543534123456"},
		{"5493534123456", "5493534123456"},
		{"3534-123456", "543534123456"},
		{"+54 9 353 412-3456", "5493534123456"},
		{"(0353) 412 3456", "5403534123456"},
		{"", "54"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}

func TestLinkEncodesMessage(t *testing.T) {
	link := Link("3534123456", "Hola María! (total) *50%* a+b")
	require.True(t, strings.HasPrefix(link, "https://wa.me/543534123456?text="))

	encoded := strings.TrimPrefix(link, "https://wa.me/543534123456?text=")
	assert.Equal(t, "Hola%20Mar%C3%ADa!%20(total)%20*50%25*%20a%2Bb", encoded)
	assert.NotContains(t, encoded, "+")

	decoded, err := url.PathUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Hola María! (total) *50%* a+b", decoded)
}

func TestLinkRoundTripsFullMessage(t *testing.T) {
	msg := Message(quoteSnapshot())
	link := Link("5493534123456", msg)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/5493534123456", u.Path)
	assert.Equal(t, msg, u.Query().Get("text"))
}
