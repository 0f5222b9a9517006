// Package pricing implements the freight pricing and vehicle-selection
// engine: itemized cargo weights, vehicle classification thresholds and
// the distance-based price formula.
//
// Everything here is a pure function of its inputs so quotes can be
// recomputed on every draft change and verified independently of the
// BRL formatting.
package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// VehicleClass is a pricing/capacity tier derived from estimated weight.
type VehicleClass string

const (
	// VehicleVan handles loads up to 800 kg
	VehicleVan VehicleClass = "van"
	// VehicleBoxTruck handles loads up to 3000 kg
	VehicleBoxTruck VehicleClass = "box_truck"
	// VehicleTruck handles anything heavier
	VehicleTruck VehicleClass = "truck"
)

// Per-item estimated weights in kg. Must stay consistent between
// classification and any display of the estimated weight.
const (
	WeightRefrigeratorKg = 80
	WeightSofaKg         = 60
	WeightTableKg        = 40
	WeightFurnitureKg    = 30
	WeightBoxKg          = 15
)

// Vehicle classification thresholds (inclusive upper bounds) in kg.
const (
	VanMaxWeightKg      = 800
	BoxTruckMaxWeightKg = 3000
)

// Base fare and per-kilometer rates per vehicle class, in BRL.
const (
	VanBase       = 120.0
	VanPerKm      = 4.5
	BoxTruckBase  = 250.0
	BoxTruckPerKm = 7.0
	TruckBase     = 550.0
	TruckPerKm    = 12.0
)

// Add-on service surcharges, in BRL. Additive and order-insensitive.
const (
	AddonHelpers     = 120.0
	AddonDisassembly = 100.0
	// AddonStairs applies when the building has NO elevator.
	AddonStairs = 50.0
)

// PendingPriceLabel is shown while the route distance is unresolved.
const PendingPriceLabel = "A calcular"

// ItemCounts holds the itemized cargo entry of a quote draft.
// One field per item kind; counts are never negative.
type ItemCounts struct {
	Refrigerator int `json:"refrigerator"`
	Sofa         int `json:"sofa"`
	Table        int `json:"table"`
	Furniture    int `json:"furniture"`
	Boxes        int `json:"boxes"`
}

// EstimatedWeightKg returns the weighted sum over the item counts.
func (c ItemCounts) EstimatedWeightKg() int {
	return c.Refrigerator*WeightRefrigeratorKg +
		c.Sofa*WeightSofaKg +
		c.Table*WeightTableKg +
		c.Furniture*WeightFurnitureKg +
		c.Boxes*WeightBoxKg
}

// Empty reports whether all counts are zero.
func (c ItemCounts) Empty() bool {
	return c.Refrigerator == 0 && c.Sofa == 0 && c.Table == 0 && c.Furniture == 0 && c.Boxes == 0
}

// Describe builds the human cargo description: comma-joined labels per
// nonzero item kind, a generic label when everything is zero, and the
// free-text observation appended parenthetically when present.
func (c ItemCounts) Describe(observation string) string {
	var parts []string
	if c.Refrigerator > 0 {
		parts = append(parts, fmt.Sprintf("%dx Geladeira", c.Refrigerator))
	}
	if c.Sofa > 0 {
		parts = append(parts, fmt.Sprintf("%dx Sofá", c.Sofa))
	}
	if c.Table > 0 {
		parts = append(parts, fmt.Sprintf("%dx Mesa", c.Table))
	}
	if c.Furniture > 0 {
		parts = append(parts, fmt.Sprintf("%dx Móveis", c.Furniture))
	}
	if c.Boxes > 0 {
		parts = append(parts, fmt.Sprintf("%dx Caixas", c.Boxes))
	}

	desc := strings.Join(parts, ", ")
	if desc == "" {
		desc = "Carga Diversa"
	}
	if obs := strings.TrimSpace(observation); obs != "" {
		desc += fmt.Sprintf(" (Obs: %s)", obs)
	}
	return desc
}

// ClassifyVehicle maps an estimated weight to its vehicle class.
// The 800 kg and 3000 kg boundaries are inclusive on the lighter class.
func ClassifyVehicle(weightKg int) VehicleClass {
	switch {
	case weightKg > BoxTruckMaxWeightKg:
		return VehicleTruck
	case weightKg > VanMaxWeightKg:
		return VehicleBoxTruck
	default:
		return VehicleVan
	}
}

// DisplayName returns the customer-facing vehicle name.
func (v VehicleClass) DisplayName() string {
	switch v {
	case VehicleBoxTruck:
		return "VUC (Carreto)"
	case VehicleTruck:
		return "Caminhão Toco"
	default:
		return "Van Utilitária"
	}
}

func (v VehicleClass) rates() (base, perKm float64) {
	switch v {
	case VehicleBoxTruck:
		return BoxTruckBase, BoxTruckPerKm
	case VehicleTruck:
		return TruckBase, TruckPerKm
	default:
		return VanBase, VanPerKm
	}
}

// Addons holds the three boolean add-on service flags of a quote.
type Addons struct {
	NeedsHelpers bool `json:"needs_helpers"`
	Disassembly  bool `json:"disassembly"`
	HasElevator  bool `json:"has_elevator"`
}

// Surcharge returns the total add-on amount. Stairs apply when there is
// no elevator.
func (a Addons) Surcharge() float64 {
	var total float64
	if a.NeedsHelpers {
		total += AddonHelpers
	}
	if a.Disassembly {
		total += AddonDisassembly
	}
	if !a.HasElevator {
		total += AddonStairs
	}
	return total
}

// Quote is a computed price with its numeric amount kept recoverable
// independent of the BRL formatting.
type Quote struct {
	Available bool         `json:"available"`
	Amount    float64      `json:"amount"`
	Formatted string       `json:"formatted"`
	Vehicle   VehicleClass `json:"vehicle"`
}

// Price computes the raw price for a vehicle class over a distance with
// the given add-ons: base + distance_km × per_km + surcharges.
func Price(class VehicleClass, distanceKm float64, addons Addons) float64 {
	base, perKm := class.rates()
	return base + distanceKm*perKm + addons.Surcharge()
}

// QuoteFor builds a full quote. distanceKnown=false yields the pending
// quote: never a guessed number.
func QuoteFor(class VehicleClass, distanceKm float64, distanceKnown bool, addons Addons) Quote {
	if !distanceKnown {
		return Quote{Available: false, Formatted: PendingPriceLabel, Vehicle: class}
	}
	amount := Price(class, distanceKm, addons)
	return Quote{
		Available: true,
		Amount:    amount,
		Formatted: FormatBRL(amount),
		Vehicle:   class,
	}
}

// FormatBRL formats an amount as Brazilian currency: "R$ 1.234,56".
func FormatBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(amount*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), frac)
}

// ParseBRL recovers the numeric amount from a formatted BRL string.
func ParseBRL(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency value %q: %w", s, err)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}
