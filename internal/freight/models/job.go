package models

import (
	"time"
)

// JobStatus represents the lifecycle status of a freight job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusInTransit JobStatus = "in_transit"
	StatusDelivered JobStatus = "delivered"
	StatusCanceled  JobStatus = "canceled"
)

// Valid reports whether the status is a known lifecycle state.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// Requirement tags attached to a job at finalization
const (
	RequirementHelpers     = "Carga e Descarga"
	RequirementDisassembly = "Desmontagem"
	RequirementElevator    = "Elevador"
	RequirementStairs      = "Escada"
)

// FreightJob is a unit of cargo to move. Created by the quote wizard
// with status pending; only the lifecycle service mutates its status.
type FreightJob struct {
	ID               string    `json:"id" example:"#583920"`
	ClientName       string    `json:"client_name" example:"Roberto Carlos"`
	PickupAddress    string    `json:"pickup_address,omitempty" example:"Rua Emilia Marengo, 500"`
	Address          string    `json:"address" example:"Av. Regente Feijó, 1739"`
	CargoDescription string    `json:"cargo_description" example:"1x Geladeira, 2x Sofá"`
	WeightLabel      string    `json:"weight" example:"Van Utilitária"`
	Price            string    `json:"price" example:"R$ 450,00"`
	PriceAmount      float64   `json:"price_amount" example:"450.00"`
	Status           JobStatus `json:"status" example:"pending"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	Latitude         float64   `json:"lat" example:"-23.5613"`
	Longitude        float64   `json:"lng" example:"-46.5600"`
	Requirements     []string  `json:"requirements,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Stats are aggregate job statistics, always derived fresh from the
// queue so they can never desynchronize from job state.
type Stats struct {
	Pending              int     `json:"pending"`
	InTransit            int     `json:"in_transit"`
	Delivered            int     `json:"delivered"`
	Canceled             int     `json:"canceled"`
	TotalEarned          float64 `json:"total_earned"`
	TotalEarnedFormatted string  `json:"total_earned_formatted" example:"R$ 630,00"`
}

// TransitionRequest asks for a job status change
type TransitionRequest struct {
	Status JobStatus `json:"status" example:"in_transit"`
}
