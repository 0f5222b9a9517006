package pricing

import (
	"math"
	"testing"
)

func TestEstimatedWeight(t *testing.T) {
	tests := []struct {
		name   string
		counts ItemCounts
		want   int
	}{
		{"empty", ItemCounts{}, 0},
		{"one of each", ItemCounts{Refrigerator: 1, Sofa: 1, Table: 1, Furniture: 1, Boxes: 1}, 225},
		{"boxes only", ItemCounts{Boxes: 20}, 300},
		{"heavy move", ItemCounts{Refrigerator: 2, Sofa: 3, Furniture: 10, Boxes: 40}, 80*2 + 60*3 + 30*10 + 15*40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.counts.EstimatedWeightKg(); got != tt.want {
				t.Errorf("EstimatedWeightKg() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassifyVehicle(t *testing.T) {
	tests := []struct {
		weightKg int
		want     VehicleClass
	}{
		{0, VehicleVan},
		{799, VehicleVan},
		{800, VehicleVan}, // boundary is inclusive for the lighter class
		{801, VehicleBoxTruck},
		{3000, VehicleBoxTruck},
		{3001, VehicleTruck},
		{10000, VehicleTruck},
	}

	for _, tt := range tests {
		if got := ClassifyVehicle(tt.weightKg); got != tt.want {
			t.Errorf("ClassifyVehicle(%d) = %s, want %s", tt.weightKg, got, tt.want)
		}
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name       string
		class      VehicleClass
		distanceKm float64
		addons     Addons
		want       float64
	}{
		{
			name:       "van 10km no addons with elevator",
			class:      VehicleVan,
			distanceKm: 10,
			addons:     Addons{HasElevator: true},
			want:       165.00, // 120 + 10*4.5
		},
		{
			name:       "box truck 50km helpers and disassembly no elevator",
			class:      VehicleBoxTruck,
			distanceKm: 50,
			addons:     Addons{NeedsHelpers: true, Disassembly: true},
			want:       870.00, // 250 + 50*7 + 120 + 100 + 50
		},
		{
			name:       "truck base fare only",
			class:      VehicleTruck,
			distanceKm: 0,
			addons:     Addons{HasElevator: true},
			want:       550.00,
		},
		{
			name:       "stairs surcharge applies without elevator",
			class:      VehicleVan,
			distanceKm: 0,
			addons:     Addons{},
			want:       170.00, // 120 + 50
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(tt.class, tt.distanceKm, tt.addons)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Price() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestQuoteForUnknownDistance(t *testing.T) {
	q := QuoteFor(VehicleVan, 0, false, Addons{})
	if q.Available {
		t.Error("quote with unknown distance should not be available")
	}
	if q.Formatted != PendingPriceLabel {
		t.Errorf("Formatted = %q, want %q", q.Formatted, PendingPriceLabel)
	}
	if q.Amount != 0 {
		t.Errorf("Amount = %.2f, want 0 (never a guessed value)", q.Amount)
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{165.00, "R$ 165,00"},
		{870.00, "R$ 870,00"},
		{1234.56, "R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{0.5, "R$ 0,50"},
		{0, "R$ 0,00"},
	}

	for _, tt := range tests {
		if got := FormatBRL(tt.amount); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestParseBRLRoundTrip(t *testing.T) {
	amounts := []float64{0, 90, 165, 450.5, 1234.56, 987654.32}
	for _, amount := range amounts {
		got, err := ParseBRL(FormatBRL(amount))
		if err != nil {
			t.Fatalf("ParseBRL(FormatBRL(%v)) error: %v", amount, err)
		}
		if math.Abs(got-amount) > 0.005 {
			t.Errorf("round trip %v -> %v", amount, got)
		}
	}
}

func TestParseBRLInvalid(t *testing.T) {
	if _, err := ParseBRL("Sob Consulta"); err == nil {
		t.Error("expected error for non-numeric price")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name        string
		counts      ItemCounts
		observation string
		want        string
	}{
		{"all zero", ItemCounts{}, "", "Carga Diversa"},
		{"single kind", ItemCounts{Sofa: 2}, "", "2x Sofá"},
		{
			"multiple kinds keep fixed order",
			ItemCounts{Refrigerator: 1, Boxes: 10},
			"",
			"1x Geladeira, 10x Caixas",
		},
		{
			"observation appended",
			ItemCounts{Table: 1},
			"mesa de vidro",
			"1x Mesa (Obs: mesa de vidro)",
		},
		{
			"observation on generic cargo",
			ItemCounts{},
			"piano de cauda",
			"Carga Diversa (Obs: piano de cauda)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.counts.Describe(tt.observation); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
