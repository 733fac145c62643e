package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vijayfix/handlers"
	"vijayfix/models"
	"vijayfix/services/booking"
	"vijayfix/services/catalog"
	"vijayfix/services/notification"
	"vijayfix/services/payment"
	"vijayfix/services/tracking"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type staticDiagnosis string

func (s staticDiagnosis) Diagnose(context.Context, []byte, string) string { return string(s) }

type APITestSuite struct {
	suite.Suite
	engine     *gin.Engine
	ctrl       *booking.Controller
	customer   *notification.RoleView
	technician *notification.RoleView
	tracker    *tracking.Tracker
	bus        *notification.Bus
	cancel     context.CancelFunc
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	dir, err := catalog.Default()
	s.Require().NoError(err)

	s.customer = notification.NewRoleView(models.SenderCustomer)
	s.technician = notification.NewRoleView(models.SenderTechnician)
	s.bus, err = notification.NewBus(logger, s.customer, s.technician)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() { _ = s.bus.Run(ctx) }()
	select {
	case <-s.bus.Running():
	case <-time.After(2 * time.Second):
		s.FailNow("bus did not start")
	}

	s.tracker = tracking.NewTracker(5*time.Millisecond, logger)
	s.ctrl = booking.NewController(booking.Options{
		Directory:        dir,
		Publisher:        notification.NewEventPublisher(s.bus.Publisher(), logger),
		Tracker:          s.tracker,
		Logger:           logger,
		DefaultLocation:  "Benz Circle, Vijayawada",
		ServiceLocation:  models.Coordinate{Lat: 16.5062, Lng: 80.6480},
		TrackingDuration: 50 * time.Millisecond,
		ServiceCharge:    decimal.NewFromInt(250),
		Currency:         "INR",
	})
	provider := payment.NewProvider(payment.Config{
		ProcessingDelay: 20 * time.Millisecond,
		SuccessDelay:    20 * time.Millisecond,
		Currency:        "INR",
	}, logger)

	bookingH := handlers.NewBookingHandler(s.ctrl, dir, s.tracker)
	hb := handlers.NewHandlerBundle(
		handlers.NewCatalogHandler(dir),
		handlers.NewDiagnosisHandler(staticDiagnosis("AC unit. Gas leak suspected.")),
		bookingH,
		handlers.NewPaymentHandler(provider, s.ctrl, logger),
		handlers.NewChatHandler(s.ctrl),
		handlers.NewFeedHandler(s.customer, s.technician),
		handlers.NewAdminHandler(s.ctrl, dir),
	)

	s.engine = gin.New()
	RegisterRoutes(s.engine, hb)
}

func (s *APITestSuite) TearDownTest() {
	s.tracker.Stop()
	s.cancel()
	_ = s.bus.Close()
}

func (s *APITestSuite) do(method, path, role string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("role", role)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *APITestSuite) createBooking() models.Booking {
	w := s.do(http.MethodPost, "/api/customer/bookings", "customer", gin.H{
		"serviceType":  "AC Repair",
		"technicianId": "T001",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var b models.Booking
	s.decode(w, &b)
	return b
}

func (s *APITestSuite) setStatus(status string) *httptest.ResponseRecorder {
	return s.do(http.MethodPut, "/api/technician/job/status", "technician", gin.H{"status": status})
}

func (s *APITestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}

func (s *APITestSuite) TestFullLifecycle() {
	b := s.createBooking()
	s.Equal(models.BookingConfirmed, b.Status)
	s.Equal("Benz Circle, Vijayawada", b.Location)

	w := s.do(http.MethodPost, "/api/customer/bookings", "customer", gin.H{"serviceType": "AC Repair", "technicianId": "T004"})
	s.Equal(http.StatusConflict, w.Code)

	for _, st := range []string{"ACCEPTED", "ON_WAY", "IN_PROGRESS", "PAYMENT_PENDING"} {
		w := s.setStatus(st)
		s.Require().Equal(http.StatusOK, w.Code, st+": "+w.Body.String())
	}
	s.Equal(http.StatusBadRequest, s.setStatus("COMPLETED").Code)

	w = s.do(http.MethodGet, "/api/customer/bill", "customer", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var bill models.Bill
	s.decode(w, &bill)
	s.True(bill.Total.Equal(decimal.NewFromInt(700)), bill.Total.String())

	techFeed := s.technician.Feed()
	s.Require().NotNil(techFeed.Active)
	s.Equal(models.JobPaymentPending, techFeed.Active.JobStatus)

	w = s.do(http.MethodPost, "/api/customer/payments", "customer", gin.H{"method": "upi"})
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())
	var checkout payment.View
	s.decode(w, &checkout)
	s.Equal(models.StepProcessing, checkout.Step)

	s.Eventually(func() bool {
		_, active := s.ctrl.ActiveBooking()
		return !active
	}, 2*time.Second, 5*time.Millisecond)

	s.Equal(models.PageRating, s.ctrl.Page())
	s.Eventually(func() bool {
		_, customerActive := s.customer.ActiveBooking()
		return !customerActive
	}, 2*time.Second, 5*time.Millisecond)

	w = s.do(http.MethodGet, "/api/customer/payments/"+checkout.ID, "customer", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &checkout)
	s.Equal(models.StepSuccess, checkout.Step)
	s.Require().NotNil(checkout.Invoice)

	w = s.do(http.MethodPost, "/api/customer/bookings/"+b.ID+"/rating", "customer", gin.H{"stars": 5, "comment": "Cooling is back"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/customer/bookings", "customer", nil)
	var history struct {
		Active []models.Booking `json:"active"`
		Past   []models.Booking `json:"past"`
	}
	s.decode(w, &history)
	s.Empty(history.Active)
	s.Require().Len(history.Past, 1)
	s.Equal(models.BookingCompleted, history.Past[0].Status)
	s.Require().NotNil(history.Past[0].Review)

	w = s.do(http.MethodGet, "/api/admin/overview", "", nil)
	var ov handlers.Overview
	s.decode(w, &ov)
	s.Equal(1, ov.TotalBookings)
	s.True(ov.CompletedRevenue.Equal(decimal.NewFromInt(450)))
}

func (s *APITestSuite) TestStatusGuards() {
	s.Equal(http.StatusNotFound, s.setStatus("ACCEPTED").Code)

	s.createBooking()
	s.Equal(http.StatusConflict, s.setStatus("IN_PROGRESS").Code)
	s.Equal(http.StatusBadRequest, s.setStatus("SHIPPED").Code)

	w := s.do(http.MethodPut, "/api/technician/job/status", "customer", gin.H{"status": "ACCEPTED"})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestCreateBooking_MissingSelection() {
	w := s.do(http.MethodPost, "/api/customer/bookings", "customer", gin.H{"serviceType": "AC Repair"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(s.ctrl.Bookings())
}

func (s *APITestSuite) TestTrackingWhileOnWay() {
	s.createBooking()
	s.Require().Equal(http.StatusOK, s.setStatus("ACCEPTED").Code)
	s.Require().Equal(http.StatusOK, s.setStatus("ON_WAY").Code)

	s.Eventually(func() bool {
		return s.tracker.Snapshot().Progress >= 1
	}, 2*time.Second, 5*time.Millisecond)

	w := s.do(http.MethodGet, "/api/customer/tracking", "customer", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var body struct {
		Tracking tracking.Snapshot `json:"tracking"`
	}
	s.decode(w, &body)
	s.Equal(models.Coordinate{Lat: 16.5062, Lng: 80.6480}, body.Tracking.Position)
}

func (s *APITestSuite) TestChatAndFeed() {
	s.createBooking()

	w := s.do(http.MethodPost, "/api/chat", "technician", gin.H{"text": "Reaching in 10 minutes"})
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/chat", "customer", gin.H{"text": " "}).Code)

	var unread struct {
		Unread int `json:"unread"`
	}
	s.decode(s.do(http.MethodGet, "/api/chat/unread", "customer", nil), &unread)
	s.Equal(1, unread.Unread)
	s.Equal(1, s.customer.Unread())

	var marked struct {
		Marked int `json:"marked"`
	}
	s.decode(s.do(http.MethodPost, "/api/chat/read", "customer", nil), &marked)
	s.Equal(1, marked.Marked)

	var feed notification.Feed
	s.decode(s.do(http.MethodGet, "/api/feed", "customer", nil), &feed)
	s.Equal(models.SenderCustomer, feed.Role)
	s.Zero(feed.Unread)
	s.Require().Len(feed.Notices, 1)
	s.Equal("Booking Request Sent. Waiting for technician to accept.", feed.Notices[0].Text)

	w = s.do(http.MethodGet, "/api/chat", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestSessionPage() {
	var page struct {
		Page models.Page `json:"page"`
	}
	s.decode(s.do(http.MethodGet, "/api/session/page", "customer", nil), &page)
	s.Equal(models.PageHome, page.Page)

	w := s.do(http.MethodPut, "/api/session/page", "customer", gin.H{"page": "HISTORY"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(models.PageHistory, s.ctrl.Page())

	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/api/session/page", "customer", gin.H{"page": "SETTINGS"}).Code)
}

func (s *APITestSuite) TestCloseCheckoutAbandonsPayment() {
	s.createBooking()
	for _, st := range []string{"ACCEPTED", "ON_WAY", "IN_PROGRESS", "PAYMENT_PENDING"} {
		s.Require().Equal(http.StatusOK, s.setStatus(st).Code)
	}

	w := s.do(http.MethodPost, "/api/customer/payments", "customer", gin.H{"method": "card"})
	s.Require().Equal(http.StatusAccepted, w.Code)
	var checkout payment.View
	s.decode(w, &checkout)

	w = s.do(http.MethodPost, "/api/customer/payments/"+checkout.ID+"/close", "customer", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	time.Sleep(80 * time.Millisecond)
	b, ok := s.ctrl.ActiveBooking()
	s.True(ok)
	s.Equal(models.JobPaymentPending, b.JobStatus)
}

func (s *APITestSuite) TestPaymentRejectedBeforePaymentPending() {
	s.createBooking()

	for _, st := range []string{"", "ACCEPTED", "ON_WAY", "IN_PROGRESS"} {
		if st != "" {
			s.Require().Equal(http.StatusOK, s.setStatus(st).Code)
		}
		w := s.do(http.MethodPost, "/api/customer/payments", "customer", gin.H{"method": "upi"})
		s.Equal(http.StatusConflict, w.Code, w.Body.String())
		s.Equal(http.StatusConflict, s.do(http.MethodGet, "/api/customer/bill", "customer", nil).Code)
	}

	time.Sleep(80 * time.Millisecond)
	b, ok := s.ctrl.ActiveBooking()
	s.Require().True(ok)
	s.Equal(models.JobInProgress, b.JobStatus)
}

func (s *APITestSuite) TestSecondPaymentRejected() {
	s.createBooking()
	for _, st := range []string{"ACCEPTED", "ON_WAY", "IN_PROGRESS", "PAYMENT_PENDING"} {
		s.Require().Equal(http.StatusOK, s.setStatus(st).Code)
	}

	w := s.do(http.MethodPost, "/api/customer/payments", "customer", gin.H{"method": "upi"})
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())
	var first payment.View
	s.decode(w, &first)

	w = s.do(http.MethodPost, "/api/customer/payments", "customer", gin.H{"method": "card"})
	s.Equal(http.StatusConflict, w.Code, w.Body.String())

	s.Eventually(func() bool {
		_, active := s.ctrl.ActiveBooking()
		return !active
	}, 2*time.Second, 5*time.Millisecond)

	w = s.do(http.MethodPost, "/api/customer/payments", "customer", gin.H{"method": "card"})
	s.Equal(http.StatusNotFound, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/customer/payments/"+first.ID, "customer", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var done payment.View
	s.decode(w, &done)
	s.Equal(models.StepSuccess, done.Step)
	s.Require().Len(s.ctrl.Bookings(), 1)
	s.Equal(models.JobCompleted, s.ctrl.Bookings()[0].JobStatus)
}

func TestCatalogRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir, err := catalog.Default()
	require.NoError(t, err)

	r := gin.New()
	RegisterCatalogRoutes(r, &handlers.HandlerBundle{
		GetServices:    handlers.NewCatalogHandler(dir).GetServices,
		GetTechnicians: handlers.NewCatalogHandler(dir).GetTechnicians,
		GetTechnician:  handlers.NewCatalogHandler(dir).GetTechnician,
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/services", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	assert.Len(t, services, 6)
}
