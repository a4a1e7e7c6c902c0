package response

import (
	"pawsuite/internal/usecase/queries"

	"github.com/google/uuid"
)

// All list endpoints share the data/pagination envelope.

type Pagination struct {
	TotalCount int64   `json:"totalCount"`
	NextCursor *string `json:"nextCursor,omitempty"`
}

type ReservationResponse struct {
	Data struct {
		Reservation *queries.ReservationView `json:"reservation"`
	} `json:"data"`
}

func FromReservationView(view *queries.ReservationView) ReservationResponse {
	var resp ReservationResponse
	resp.Data.Reservation = view
	return resp
}

type ReservationListResponse struct {
	Data struct {
		Reservations []*queries.ReservationListItem `json:"reservations"`
	} `json:"data"`
	Pagination Pagination `json:"pagination"`
	Warnings   []string   `json:"warnings,omitempty"`
}

func FromListResult(result *queries.ListResult) ReservationListResponse {
	var resp ReservationListResponse
	resp.Data.Reservations = result.Items
	if resp.Data.Reservations == nil {
		resp.Data.Reservations = []*queries.ReservationListItem{}
	}
	resp.Pagination = Pagination{
		TotalCount: result.TotalCount,
		NextCursor: result.NextCursor,
	}
	resp.Warnings = result.Warnings
	return resp
}

type AvailabilityResponse struct {
	Data struct {
		Available                 bool        `json:"available"`
		ConflictingReservationIDs []uuid.UUID `json:"conflictingReservationIds"`
	} `json:"data"`
}

func FromAvailability(available bool, conflicts []uuid.UUID) AvailabilityResponse {
	var resp AvailabilityResponse
	resp.Data.Available = available
	if conflicts == nil {
		conflicts = []uuid.UUID{}
	}
	resp.Data.ConflictingReservationIDs = conflicts
	return resp
}

type ResourceListResponse struct {
	Data struct {
		Resources []*queries.ResourceView `json:"resources"`
	} `json:"data"`
}

func FromResourceViews(views []*queries.ResourceView) ResourceListResponse {
	var resp ResourceListResponse
	resp.Data.Resources = views
	if resp.Data.Resources == nil {
		resp.Data.Resources = []*queries.ResourceView{}
	}
	return resp
}
