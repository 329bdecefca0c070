// Package settings is a typed registry over the key/value settings table.
// Each known key has one Go type and a default returned while nothing is stored.
package settings

import (
	"bytes"
	"encoding/json"

	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
)

type Key string

const (
	KeyBusinessInfo         Key = "business_info"
	KeyPaymentSurcharges    Key = "payment_surcharges"
	KeyDefaultValidityDays  Key = "default_validity_days"
	KeyDefaultDeliveryHours Key = "default_delivery_hours"
)

// Keys lists the registry in a stable order.
var Keys = []Key{KeyBusinessInfo, KeyPaymentSurcharges, KeyDefaultValidityDays, KeyDefaultDeliveryHours}

type BusinessInfo struct {
	Name    string `json:"name"`
	Slogan  string `json:"slogan"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// PaymentSurcharges are percentages per payment plan. They are shown to
// customers but never added to document totals.
type PaymentSurcharges struct {
	Contado  float64 `json:"CONTADO"`
	Cuotas3  float64 `json:"CUOTAS_3"`
	Cuotas6  float64 `json:"CUOTAS_6"`
	Cuotas12 float64 `json:"CUOTAS_12"`
}

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
)

type spec struct {
	def      func() any
	decode   func([]byte) (any, error)
	validate func(any, validation.Violations)
}

func decodeAs[T any](raw []byte) (any, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

var registry = map[Key]spec{
	KeyBusinessInfo: {
		def: func() any {
			return BusinessInfo{
				Name:    "Azul Deco",
				Slogan:  "⚡️ Tus cortinas en 72 hs",
				Address: "Villa María, Córdoba, Argentina",
				Phone:   "3534-XXXXXX",
				Email:   "info@azuldeco.com",
				Website: "linktr.ee/AzulDeco",
			}
		},
		decode: decodeAs[BusinessInfo],
		validate: func(v any, vs validation.Violations) {
			validation.Required("name", v.(BusinessInfo).Name, vs)
		},
	},
	KeyPaymentSurcharges: {
		def:    func() any { return PaymentSurcharges{Contado: 0, Cuotas3: 10, Cuotas6: 20, Cuotas12: 35} },
		decode: decodeAs[PaymentSurcharges],
		validate: func(v any, vs validation.Violations) {
			p := v.(PaymentSurcharges)
			validation.NonNegativeFloat("CONTADO", p.Contado, vs)
			validation.NonNegativeFloat("CUOTAS_3", p.Cuotas3, vs)
			validation.NonNegativeFloat("CUOTAS_6", p.Cuotas6, vs)
			validation.NonNegativeFloat("CUOTAS_12", p.Cuotas12, vs)
		},
	},
	KeyDefaultValidityDays: {
		def:    func() any { return 7 },
		decode: decodeAs[int],
		validate: func(v any, vs validation.Violations) {
			validation.PositiveInt("value", v.(int), vs)
		},
	},
	KeyDefaultDeliveryHours: {
		def:    func() any { return 72 },
		decode: decodeAs[int],
		validate: func(v any, vs validation.Violations) {
			validation.PositiveInt("value", v.(int), vs)
		},
	},
}

// Known reports whether k is a registered key.
func Known(k Key) bool {
	_, ok := registry[k]
	return ok
}

// Default returns the documented default for k.
func Default(k Key) (any, error) {
	s, ok := registry[k]
	if !ok {
		return nil, errors.Wrap(ErrUnknownKey, string(k))
	}
	return s.def(), nil
}

// Defaults encodes every default, keyed by setting name.
func Defaults() map[Key]json.RawMessage {
	out := make(map[Key]json.RawMessage, len(registry))
	for k, s := range registry {
		b, _ := json.Marshal(s.def())
		out[k] = b
	}
	return out
}

// Parse decodes and validates raw JSON for k and returns it re-encoded in canonical form.
func Parse(k Key, raw []byte) (json.RawMessage, error) {
	s, ok := registry[k]
	if !ok {
		return nil, errors.Wrap(ErrUnknownKey, string(k))
	}
	v, err := s.decode(raw)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidValue, err.Error())
	}
	vs := validation.Violations{}
	s.validate(v, vs)
	if !vs.Empty() {
		return nil, vs
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode setting")
	}
	return b, nil
}
