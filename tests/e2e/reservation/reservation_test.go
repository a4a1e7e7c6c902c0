//go:build e2e

package reservation_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"pawsuite/internal/domain/reservation"
	"pawsuite/internal/domain/staff"
	"pawsuite/internal/handler/dto/request"
	"pawsuite/internal/handler/dto/response"
	"pawsuite/internal/infra/uow"
	"pawsuite/internal/usecase/queries"
	"pawsuite/internal/usecase/shared"
	"pawsuite/tests/common/authtest"
	"pawsuite/tests/common/dbtest"
	"pawsuite/tests/common/httptest"
	"pawsuite/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	availabilityURL = "/api/availability?resourceId=%s&startDate=%s&endDate=%s"
)

// Fields that depend on generated ids or database clocks are asserted
// separately from the cmp diff.
var viewCmpOpts = []cmp.Option{
	cmpopts.IgnoreFields(queries.ReservationView{},
		"ID", "OrderNumber", "StartDate", "EndDate", "CreatedAt", "UpdatedAt"),
}

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

type tenantFixture struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	PetID      uuid.UUID
	ServiceID  uuid.UUID
	ResourceID uuid.UUID
}

func (s *ReservationSuite) seedBookingFixture(t *testing.T) tenantFixture {
	t.Helper()

	tenantID := dbtest.TenantIDBySlug(t, s.DB, dbtest.DefaultTenantSlug)
	customerID := dbtest.CreateTestCustomer(t, s.DB, tenantID, "Dana Whitfield", "dana@example.com")
	petID := dbtest.CreateTestPet(t, s.DB, tenantID, customerID, "Biscuit", "dog")
	serviceID := dbtest.CreateTestService(t, s.DB, tenantID, "Overnight Boarding", "BOARDING")
	resourceID := dbtest.CreateTestResource(t, s.DB, tenantID, "Suite A01", "standard")

	return tenantFixture{
		TenantID:   tenantID,
		CustomerID: customerID,
		PetID:      petID,
		ServiceID:  serviceID,
		ResourceID: resourceID,
	}
}

func (s *ReservationSuite) staffToken(t *testing.T) string {
	t.Helper()
	return authtest.MintStaffToken(t, s.Config, uuid.New(), staff.RoleManager)
}

func createRequest(f tenantFixture, start, end time.Time) request.CreateReservationRequest {
	resourceID := f.ResourceID
	return request.CreateReservationRequest{
		CustomerID: f.CustomerID,
		PetID:      f.PetID,
		ServiceID:  f.ServiceID,
		ResourceID: &resourceID,
		StartDate:  start,
		EndDate:    end,
		PriceCents: 15000,
	}
}

func window(days int) (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	return start, start.Add(time.Duration(days) * 24 * time.Hour)
}

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("books an explicit resource and returns the persisted view", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w.Code, "should create reservation: %s", w.Body.String())

		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		actual := created.Data.Reservation
		require.NotNil(t, actual)

		resourceID := f.ResourceID
		resourceName := "Suite A01"
		expected := &queries.ReservationView{
			TenantID:     f.TenantID,
			CustomerID:   f.CustomerID,
			CustomerName: "Dana Whitfield",
			PetID:        f.PetID,
			PetName:      "Biscuit",
			ServiceID:    f.ServiceID,
			ServiceName:  "Overnight Boarding",
			Category:     "BOARDING",
			ResourceID:   &resourceID,
			ResourceName: &resourceName,
			Status:       "PENDING",
			PriceCents:   15000,
		}
		if diff := cmp.Diff(expected, actual, viewCmpOpts...); diff != "" {
			t.Errorf("reservation view mismatch (-want +got):\n%s", diff)
		}

		require.Regexp(t, `^RES-\d{8}-\d{3}$`, actual.OrderNumber)
		require.True(t, actual.StartDate.Equal(start), "start date should round-trip")
		require.True(t, actual.EndDate.Equal(end), "end date should round-trip")
	})

	s.Run("assigns sequential order numbers per day", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		secondResource := dbtest.CreateTestResource(t, s.DB, f.TenantID, "Suite A02", "standard")
		start, end := window(2)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w1.Code)

		second := createRequest(f, start, end)
		second.ResourceID = &secondResource
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, second, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w2.Code)

		var r1, r2 response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w1.Body, &r1))
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &r2))

		day := time.Now().UTC().Format("20060102")
		require.Equal(t, fmt.Sprintf("RES-%s-001", day), r1.Data.Reservation.OrderNumber)
		require.Equal(t, fmt.Sprintf("RES-%s-002", day), r2.Data.Reservation.OrderNumber)
	})

	s.Run("rejects an overlapping booking but allows a back-to-back one", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		start, end := window(2)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w1.Code)

		overlapping := createRequest(f, start.Add(24*time.Hour), end.Add(24*time.Hour))
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, overlapping, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusConflict, w2.Code, "overlapping window must be rejected")

		// Checkout day equals checkin day: half-open windows do not collide.
		adjacent := createRequest(f, end, end.Add(24*time.Hour))
		w3 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, adjacent, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w3.Code, "back-to-back booking must be allowed: %s", w3.Body.String())
	})

	s.Run("allocates the first free unit of a suite type by name", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		dbtest.CreateTestResource(t, s.DB, f.TenantID, "Suite A02", "standard")
		start, end := window(2)

		// Occupy A01 so the allocator has to skip it.
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w1.Code)

		suiteType := "standard"
		byType := request.CreateReservationRequest{
			CustomerID: f.CustomerID,
			PetID:      f.PetID,
			ServiceID:  f.ServiceID,
			SuiteType:  &suiteType,
			StartDate:  start,
			EndDate:    end,
			PriceCents: 15000,
		}
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, byType, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w2.Code, "allocation should succeed: %s", w2.Body.String())

		var allocated response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &allocated))
		require.NotNil(t, allocated.Data.Reservation.ResourceName)
		require.Equal(t, "Suite A02", *allocated.Data.Reservation.ResourceName)
	})

	s.Run("refuses references owned by another tenant", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)

		otherTenantID := dbtest.TenantIDBySlug(t, s.DB, dbtest.SecondTenantSlug)
		foreignCustomer := dbtest.CreateTestCustomer(t, s.DB, otherTenantID, "Sam Okafor", "sam@example.com")

		start, end := window(2)
		req := createRequest(f, start, end)
		req.CustomerID = foreignCustomer

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusForbidden, w.Code, "cross-tenant reference must be refused")
	})

	s.Run("requires authentication and a tenant header", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), "", dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), s.staffToken(t), "")
		require.Equal(t, http.StatusBadRequest, w.Code, "missing tenant header must be rejected")
	})
}

func (s *ReservationSuite) TestAvailability() {
	s.Run("reports a blocking reservation and clears after cancellation", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		reservationID := created.Data.Reservation.ID

		checkURL := fmt.Sprintf(availabilityURL, f.ResourceID,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, checkURL, nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, aw.Code)

		var availability response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &availability))
		require.False(t, availability.Data.Available)
		require.Contains(t, availability.Data.ConflictingReservationIDs, reservationID)

		// Cancelling frees the window.
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+reservationID.String()+"/cancel", nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, cw.Code)

		aw2 := httptest.PerformRequest(t, s.Router, http.MethodGet, checkURL, nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, aw2.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, aw2.Body, &availability))
		require.True(t, availability.Data.Available)
		require.Empty(t, availability.Data.ConflictingReservationIDs)
	})
}

func (s *ReservationSuite) TestUpdateReservation() {
	s.Run("price patch does not clobber a concurrent reschedule", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		reservationID := created.Data.Reservation.ID

		newStart := start.Add(72 * time.Hour)
		newEnd := end.Add(72 * time.Hour)

		// A second writer reschedules the stay in its own transaction and
		// lingers between the snapshot read and the commit. The snapshot
		// read locks the row, so the price patch below must wait for the
		// reschedule instead of writing the old window back over it.
		u := uow.NewPostgresUoW(s.DB)
		snapshotHeld := make(chan struct{})
		rescheduleDone := make(chan error, 1)
		go func() {
			rescheduleDone <- u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
				snap, err := tx.Reads().ReservationByID(ctx, f.TenantID, reservationID)
				if err != nil {
					return err
				}
				close(snapshotHeld)
				time.Sleep(500 * time.Millisecond)

				period, err := reservation.NewStayPeriod(newStart, newEnd)
				if err != nil {
					return err
				}
				var note reservation.Note
				if snap.Note != nil {
					note = reservation.NewNote(*snap.Note)
				}
				entity := reservation.ReconstructReservation(
					snap.ID, snap.TenantID, snap.CustomerID, snap.PetID, snap.ServiceID,
					snap.ResourceID, snap.SuiteType, period,
					reservation.Status(snap.Status), snap.OrderNumber,
					snap.PriceCents, snap.ExternalID, note,
					snap.CreatedAt, snap.UpdatedAt,
				)
				return tx.Reservations().Update(ctx, entity)
			})
		}()

		<-snapshotHeld
		newPrice := int64(19900)
		pw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+reservationID.String(),
			request.UpdateReservationRequest{PriceCents: &newPrice}, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, pw.Code, "price patch should succeed: %s", pw.Body.String())
		require.NoError(t, <-rescheduleDone)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+reservationID.String(), nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, gw.Code)
		var final response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &final))
		require.True(t, final.Data.Reservation.StartDate.Equal(newStart), "reschedule must survive the price patch")
		require.True(t, final.Data.Reservation.EndDate.Equal(newEnd))
		require.Equal(t, newPrice, final.Data.Reservation.PriceCents)
	})
}

func (s *ReservationSuite) TestStatusLifecycle() {
	s.Run("walks pending through confirmed to completed", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		base := reservationsURL + "/" + created.Data.Reservation.ID.String()

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/confirm", nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, cw.Code)
		var confirmed response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &confirmed))
		require.Equal(t, "CONFIRMED", confirmed.Data.Reservation.Status)

		dw := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/complete", nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, dw.Code)
		var completed response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &completed))
		require.Equal(t, "COMPLETED", completed.Data.Reservation.Status)

		// Completed is terminal.
		xw := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/cancel", nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusBadRequest, xw.Code, "terminal status must not transition")
	})

	s.Run("refuses completion from a caregiver", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		managerToken := s.staffToken(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), managerToken, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		base := reservationsURL + "/" + created.Data.Reservation.ID.String()

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/confirm", nil, managerToken, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, cw.Code)

		caregiverToken := authtest.MintStaffToken(t, s.Config, uuid.New(), staff.RoleCaregiver)
		dw := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/complete", nil, caregiverToken, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusForbidden, dw.Code, "caregivers must not close out a stay")

		dw2 := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/complete", nil, managerToken, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, dw2.Code)
	})

	s.Run("rejects completing a reservation that was never confirmed", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)
		start, end := window(2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, createRequest(f, start, end), token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusCreated, w.Code)
		var created response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		dw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.Data.Reservation.ID.String()+"/complete", nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusBadRequest, dw.Code)
	})
}

func (s *ReservationSuite) TestListReservations() {
	s.Run("pages through results with a keyset cursor", func() {
		t := s.T()
		f := s.seedBookingFixture(t)
		token := s.staffToken(t)

		for i := range 3 {
			name := fmt.Sprintf("Suite B%02d", i+1)
			resourceID := dbtest.CreateTestResource(t, s.DB, f.TenantID, name, "standard")
			start := time.Now().UTC().Truncate(time.Hour).Add(time.Duration(24*(i+1)) * time.Hour)
			dbtest.CreateTestReservation(t, s.DB, f.TenantID, f.CustomerID, f.PetID, f.ServiceID,
				&resourceID, start, start.Add(24*time.Hour), "PENDING", fmt.Sprintf("RES-20260830-%03d", i+1))
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?limit=2", nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, w.Code)

		var page1 response.ReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &page1))
		require.Len(t, page1.Data.Reservations, 2)
		require.Equal(t, int64(3), page1.Pagination.TotalCount)
		require.NotNil(t, page1.Pagination.NextCursor)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"?limit=2&after="+*page1.Pagination.NextCursor, nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, w2.Code)

		var page2 response.ReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &page2))
		require.Len(t, page2.Data.Reservations, 1)
		require.Nil(t, page2.Pagination.NextCursor)

		// No row appears on both pages.
		seen := map[uuid.UUID]bool{}
		for _, item := range page1.Data.Reservations {
			seen[item.ID] = true
		}
		for _, item := range page2.Data.Reservations {
			require.False(t, seen[item.ID], "cursor must not repeat rows")
		}
	})

	s.Run("never returns another tenant's reservations", func() {
		t := s.T()
		s.seedBookingFixture(t)
		token := s.staffToken(t)

		otherTenantID := dbtest.TenantIDBySlug(t, s.DB, dbtest.SecondTenantSlug)
		otherCustomer := dbtest.CreateTestCustomer(t, s.DB, otherTenantID, "Sam Okafor", "sam@example.com")
		otherPet := dbtest.CreateTestPet(t, s.DB, otherTenantID, otherCustomer, "Rex", "dog")
		otherService := dbtest.CreateTestService(t, s.DB, otherTenantID, "Daycare", "DAYCARE")
		otherResource := dbtest.CreateTestResource(t, s.DB, otherTenantID, "Yard 1", "yard")
		start, end := window(1)
		dbtest.CreateTestReservation(t, s.DB, otherTenantID, otherCustomer, otherPet, otherService,
			&otherResource, start, end, "PENDING", "RES-20260830-001")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token, dbtest.DefaultTenantSlug)
		require.Equal(t, http.StatusOK, w.Code)

		var list response.ReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &list))
		require.Empty(t, list.Data.Reservations)
		require.Equal(t, int64(0), list.Pagination.TotalCount)
	})
}
