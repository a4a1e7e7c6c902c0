//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"pawsuite/internal/domain/reservation"
	"pawsuite/internal/handler/api"
	"pawsuite/internal/pkg/errs"
	"pawsuite/internal/usecase/queries"
	"pawsuite/tests/common/builder"
	"pawsuite/tests/common/httptest"
	commandsmock "pawsuite/tests/mock/commands"
	queriesmock "pawsuite/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	tenantID     uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.tenantID = uuid.New()

	// Stand-ins for the auth and tenant middleware
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Next()
	}
	tenantMiddleware := func(c *gin.Context) {
		if c.GetHeader("X-Tenant") == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "X-Tenant header required"}})
			return
		}
		c.Set("tenant_id", s.tenantID)
		c.Next()
	}

	group := s.router.Group("", authMiddleware, tenantMiddleware)
	group.POST("/reservations", s.handler.CreateReservation)
	group.GET("/reservations", s.handler.ListReservations)
	group.GET("/reservations/:id", s.handler.GetReservation)
	group.PATCH("/reservations/:id", s.handler.UpdateReservation)
	group.POST("/reservations/:id/confirm", s.handler.ConfirmReservation)
	group.POST("/reservations/:id/cancel", s.handler.CancelReservation)
	group.POST("/reservations/:id/complete", s.handler.CompleteReservation)
	group.POST("/reservations/:id/no-show", s.handler.MarkNoShow)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	s.Run("201 on success", func() {
		b := builder.NewReservationBuilder().WithTenantID(s.tenantID)
		view := b.BuildView()

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "token", "sunnypaws")

		var resp struct {
			Data struct {
				Reservation queries.ReservationView `json:"reservation"`
			} `json:"data"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.OrderNumber, resp.Data.Reservation.OrderNumber)
		s.Equal(view.Status, resp.Data.Reservation.Status)
	})

	s.Run("401 without a token", func() {
		b := builder.NewReservationBuilder()

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("400 without a tenant header", func() {
		b := builder.NewReservationBuilder()

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "token", "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "X-Tenant")
	})

	s.Run("400 on malformed body", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", gin.H{"startDate": "not-a-date"}, "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("409 on overlap", func() {
		b := builder.NewReservationBuilder()

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errs.ErrReservationOverlap)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "overlaps")
	})

	s.Run("409 when no unit of the suite type is free", func() {
		b := builder.NewReservationBuilder()

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errs.ErrNoResourceAvailable)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "No resource")
	})

	s.Run("403 on cross-tenant reference", func() {
		b := builder.NewReservationBuilder()

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errs.ErrCrossTenantReference)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "not accessible")
	})

	s.Run("400 when boarding lacks resource and suite type", func() {
		b := builder.NewReservationBuilder().WithResourceID(nil)

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errs.ErrResourceRequired)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.BuildCreateRequestDTO(), "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "require a resource or suite type")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("200 on success", func() {
		view := builder.NewReservationBuilder().WithTenantID(s.tenantID).BuildView()

		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "token", "sunnypaws")

		var resp struct {
			Data struct {
				Reservation queries.ReservationView `json:"reservation"`
			} `json:"data"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.Data.Reservation.ID)
	})

	s.Run("400 on malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("404 when unknown", func() {
		id := uuid.New()

		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, id).Return(nil, errs.ErrReservationNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	s.Run("200 with pagination envelope", func() {
		b := builder.NewReservationBuilder().WithTenantID(s.tenantID)
		items := []*queries.ReservationListItem{b.BuildListItem(), b.BuildListItem()}
		cursor := "djE6MTIzNDU2"

		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, gomock.Any(), 0, "").Return(&queries.ListResult{
			Items:      items,
			TotalCount: 41,
			NextCursor: &cursor,
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "token", "sunnypaws")

		var resp struct {
			Data struct {
				Reservations []queries.ReservationListItem `json:"reservations"`
			} `json:"data"`
			Pagination struct {
				TotalCount int64   `json:"totalCount"`
				NextCursor *string `json:"nextCursor"`
			} `json:"pagination"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp.Data.Reservations, 2)
		s.Equal(int64(41), resp.Pagination.TotalCount)
		s.NotNil(resp.Pagination.NextCursor)
	})

	s.Run("200 with clamp warning surfaced", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, gomock.Any(), 10000, "").Return(&queries.ListResult{
			Items:      nil,
			TotalCount: 0,
			Warnings:   []string{"limit 10000 exceeds maximum 500; clamped"},
		}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?limit=10000", nil, "token", "sunnypaws")

		var resp struct {
			Warnings []string `json:"warnings"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp.Warnings, 1)
		s.Contains(resp.Warnings[0], "clamped")
	})
}

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	s.Run("400 when stripping a required resource", func() {
		id := uuid.New()

		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, id, gomock.Any()).
			Return(nil, errs.ErrResourceRemovalBlocked)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+id.String(),
			gin.H{"removeResource": true}, "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "cannot be removed")
	})

	s.Run("409 when the new window collides", func() {
		id := uuid.New()

		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, id, gomock.Any()).
			Return(nil, errs.ErrReservationOverlap)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+id.String(),
			gin.H{"startDate": "2026-09-01T09:00:00Z", "endDate": "2026-09-04T09:00:00Z"}, "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "overlaps")
	})
}

func (s *ReservationHandlerTestSuite) TestTransitions() {
	s.Run("cancel returns the updated view", func() {
		b := builder.NewReservationBuilder().WithTenantID(s.tenantID).WithStatus(reservation.StatusCancelled)
		view := b.BuildView()

		s.mockCommands.EXPECT().Transition(gomock.Any(), s.tenantID, view.ID, reservation.StatusCancelled).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+view.ID.String()+"/cancel", nil, "token", "sunnypaws")

		var resp struct {
			Data struct {
				Reservation queries.ReservationView `json:"reservation"`
			} `json:"data"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("CANCELLED", resp.Data.Reservation.Status)
	})

	s.Run("invalid transition maps to 400", func() {
		id := uuid.New()

		s.mockCommands.EXPECT().Transition(gomock.Any(), s.tenantID, id, reservation.StatusCompleted).
			Return(nil, errs.ErrInvalidStatusTransition)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/complete", nil, "token", "sunnypaws")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid status transition")
	})
}
