package models

import "time"

// Base is the driver's depot location (Tatuapé, São Paulo east side).
var Base = struct {
	Lat float64
	Lng float64
}{Lat: -23.5409, Lng: -46.5744}

// SeedJobs returns the demo delivery queue a driver session starts with.
// Prices are stored with both the formatted string and the numeric
// amount so earnings aggregation never re-parses formatting.
func SeedJobs() []*FreightJob {
	now := time.Now()
	return []*FreightJob{
		{
			ID:               "j1",
			ClientName:       "Roberto Carlos",
			Address:          "Rua Emilia Marengo, 500",
			CargoDescription: "Mudança Residencial (Sofá, Geladeira)",
			WeightLabel:      "350kg",
			Price:            "R$ 450,00",
			PriceAmount:      450,
			Status:           StatusPending,
			PhotoURL:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=150&h=150&fit=crop",
			Latitude:         -23.5613,
			Longitude:        -46.5600,
			CreatedAt:        now,
		},
		{
			ID:               "j2",
			ClientName:       "Loja Móveis Planejados",
			Address:          "Av. Regente Feijó, 1739",
			CargoDescription: "Entrega Armário Cozinha",
			WeightLabel:      "80kg",
			Price:            "R$ 120,00",
			PriceAmount:      120,
			Status:           StatusPending,
			PhotoURL:         "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=150&h=150&fit=crop",
			Latitude:         -23.5610,
			Longitude:        -46.5650,
			CreatedAt:        now,
		},
		{
			ID:               "j3",
			ClientName:       "Escritório Tech",
			Address:          "Rua Eleonora Cintra, 200",
			CargoDescription: "20 Caixas de Arquivo",
			WeightLabel:      "200kg",
			Price:            "R$ 180,00",
			PriceAmount:      180,
			Status:           StatusPending,
			PhotoURL:         "https://images.unsplash.com/photo-1503959638915-d996e93d2391?w=150&h=150&fit=crop",
			Latitude:         -23.5539,
			Longitude:        -46.5617,
			CreatedAt:        now,
		},
		{
			ID:               "j4",
			ClientName:       "Ana Maria Braga",
			Address:          "Rua Padre Adelino, 800",
			CargoDescription: "Mesa de Jantar Vidro",
			WeightLabel:      "40kg",
			Price:            "R$ 90,00",
			PriceAmount:      90,
			Status:           StatusPending,
			PhotoURL:         "https://images.unsplash.com/photo-1533090481720-856c6e3c1fdc?w=150&h=150&fit=crop",
			Latitude:         -23.5411,
			Longitude:        -46.5911,
			CreatedAt:        now,
		},
		{
			ID:               "j5",
			ClientName:       "Depósito Construção",
			Address:          "Rua da Mooca, 3000",
			CargoDescription: "Palete de Cimento",
			WeightLabel:      "1000kg",
			Price:            "R$ 300,00",
			PriceAmount:      300,
			Status:           StatusPending,
			PhotoURL:         "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?w=150&h=150&fit=crop",
			Latitude:         -23.5580,
			Longitude:        -46.5900,
			CreatedAt:        now,
		},
	}
}
