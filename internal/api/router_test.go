package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rentomobile/internal/catalog"
	"rentomobile/internal/entities"
	"rentomobile/internal/repository"
	"rentomobile/internal/service"
)

const testAdminToken = "secret-token"

type testServer struct {
	router *mux.Router
	store  *repository.MemoryStore
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		store: repository.NewMemoryStore(),
		now:   time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC),
	}
	clock := service.Clock{Now: func() time.Time { return ts.now }, Location: time.UTC}
	logger := zap.NewNop()

	bookingRepo := repository.NewBookingRepository(ts.store)
	profiles := service.NewProfileService(repository.NewProfileRepository(ts.store), clock, logger)
	listings := service.NewListingService(catalog.Builtin(), profiles)
	selections := service.NewSelectionService(repository.NewSelectionRepository(ts.store, 0), clock, logger)
	sender := service.NewSenderService(nil, nil, "", "", clock, logger)
	bookings := service.NewBookingService(bookingRepo, selections, profiles, sender, clock, "", logger)
	jobs := service.NewJobService(bookingRepo, clock, logger)
	content, err := service.NewContentService(bookings, clock)
	require.NoError(t, err)

	ts.router = NewRouter(
		NewUserHandler(listings, selections, bookings, profiles, content, logger),
		NewAdminHandler(service.NewAdminService(bookings, jobs), logger),
		testAdminToken,
	)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCategoriesAndListings(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cats := decode[struct {
		Categories []string `json:"categories"`
		Default    string   `json:"default"`
	}](t, rec)
	assert.Len(t, cats.Categories, 7)
	assert.Equal(t, "Car Rental", cats.Default)

	rec = ts.do(t, http.MethodGet, "/api/listings?category=Bike+Rental&q=road", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Category string         `json:"category"`
		Total    int            `json:"total"`
		Items    []catalog.Item `json:"items"`
	}](t, rec)
	assert.Equal(t, "Bike Rental", list.Category)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Road Bike", list.Items[0].Name)

	rec = ts.do(t, http.MethodGet, "/api/listings?category=Boats", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListingDetailsProfileGate(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/listings/1", nil)
	require.Equal(t, http.StatusPreconditionRequired, rec.Code)
	e := decode[map[string]string](t, rec)
	assert.Equal(t, "Profile Required", e["error"])

	rec = ts.do(t, http.MethodPut, "/api/profile", map[string]string{"name": "Nimal", "email": "nimal@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/listings/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	item := decode[catalog.Item](t, rec)
	assert.Equal(t, "Toyota Camry", item.Name)

	rec = ts.do(t, http.MethodGet, "/api/listings/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[map[string]string](t, rec)
	assert.Equal(t, "Cash Payment", p["paymentMethod"])

	rec = ts.do(t, http.MethodPut, "/api/profile", map[string]string{"name": " ", "email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/profile", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarAndSelectionFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/calendar?month=2024-05&session=s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cal := decode[entities.CalendarResponse](t, rec)
	assert.Equal(t, "2024-05", cal.Month)
	assert.Equal(t, "May 2024", cal.Title)
	assert.Equal(t, "2024-04", cal.Prev)
	assert.Equal(t, "2024-06", cal.Next)
	require.Len(t, cal.Cells, 3+31)
	assert.Nil(t, cal.Cells[0].Date)
	require.NotNil(t, cal.Cells[3].Date)
	assert.Equal(t, "2024-05-01", *cal.Cells[3].Date)
	assert.True(t, cal.Cells[3].Disabled)
	assert.False(t, cal.Cells[3+9].Disabled)

	pick := func(date string) entities.SelectionResponse {
		rec := ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: date})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[entities.SelectionResponse](t, rec)
	}

	sel := pick("2024-05-15")
	assert.Equal(t, "2024-05-15", *sel.Start)
	assert.Nil(t, sel.End)
	assert.False(t, sel.Complete)

	sel = pick("2024-05-12")
	assert.Equal(t, "2024-05-12", *sel.Start)
	assert.Equal(t, "2024-05-15", *sel.End)
	assert.Equal(t, "5/12/2024 - 5/15/2024", sel.Label)
	assert.Equal(t, 4, sel.Days)

	sel = pick("2024-05-01")
	require.NotNil(t, sel.Accepted)
	assert.False(t, *sel.Accepted)
	assert.Equal(t, "2024-05-12", *sel.Start)

	rec = ts.do(t, http.MethodGet, "/api/calendar?month=2024-05&session=s1", nil)
	cal = decode[entities.CalendarResponse](t, rec)
	assert.True(t, cal.Cells[3+11].Selected)
	assert.True(t, cal.Cells[3+12].InRange)

	rec = ts.do(t, http.MethodDelete, "/api/selections/s1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/selections/s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sel = decode[entities.SelectionResponse](t, rec)
	assert.Nil(t, sel.Start)

	rec = ts.do(t, http.MethodGet, "/api/calendar?month=May", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "15/05/2024"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/bookings", map[string]string{"session": "s1", "item_id": "1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decode[map[string]string](t, rec)
	assert.Equal(t, "Please select a date range", e["message"])

	ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "2024-05-15"})
	ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "2024-05-20"})

	rec = ts.do(t, http.MethodPost, "/api/bookings", map[string]string{"session": "s1", "item_id": "1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[entities.BookingResponse](t, rec)
	assert.Equal(t, "Toyota Camry", resp.Booking.VehicleName)
	assert.Equal(t, "5/15/2024 - 5/20/2024", resp.Booking.DateRange)
	assert.Equal(t, "CONFIRMED", string(resp.Booking.Status))
	assert.True(t, resp.Booking.IsUpcoming)
	assert.Contains(t, resp.Confirmation.WebURL, "https://wa.me/94767806639?text=")
	assert.Empty(t, resp.Channel)

	rec = ts.do(t, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[entities.BookingsList](t, rec)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Upcoming, 1)
	assert.Empty(t, list.Past)

	raw := decode[struct {
		Upcoming []map[string]any `json:"upcoming"`
	}](t, rec)
	for _, key := range []string{"id", "vehicleName", "vehicleType", "price", "startDate", "endDate", "dateRange", "status", "image", "isUpcoming", "createdAt"} {
		assert.Contains(t, raw.Upcoming[0], key)
	}
}

func TestCreateBookingWithSerializedItem(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "2024-05-15"})
	ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "2024-05-15"})

	body := `{"session":"s1","item":{"id":"x","name":"Surf Board","category":"Surf Package","price":"$20/day","image":"https://img.example/s.jpg"}}`
	rec := ts.do(t, http.MethodPost, "/api/bookings", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[entities.BookingResponse](t, rec)
	assert.Equal(t, "Surf Board", resp.Booking.VehicleName)
	assert.Equal(t, 20.0, resp.Booking.Price)
	assert.Equal(t, "5/15/2024 - 5/15/2024", resp.Booking.DateRange)

	rec = ts.do(t, http.MethodPost, "/api/bookings", `{"session":"s1","item":{"id":"x","name":"Boat","category":"Boats"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/bookings", `{"item_id":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/bookings", `{"session":"s1","item_id":"999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	n := decode[entities.NotificationsResponse](t, rec)
	assert.Equal(t, "Stay updated with your bookings", n.Subtitle)
	assert.NotNil(t, n.Notifications)

	rec = ts.do(t, http.MethodGet, "/api/privacy-policy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[entities.PrivacyPolicy](t, rec)
	assert.Equal(t, "5/10/2024", p.LastUpdated)
	assert.NotEmpty(t, p.Sections)
}

func TestAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/admin/bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/admin/bookings", nil, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "2024-05-11"})
	ts.do(t, http.MethodPost, "/api/selections/s1/picks", entities.PickRequest{Date: "2024-05-12"})
	rec = ts.do(t, http.MethodPost, "/api/bookings", map[string]string{"session": "s1", "item_id": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	auth := []string{"Authorization", "Bearer " + testAdminToken}
	rec = ts.do(t, http.MethodGet, "/admin/bookings", nil, auth...)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[struct {
		Total int `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, all.Total)

	ts.now = time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	rec = ts.do(t, http.MethodPost, "/admin/bookings/refresh", nil, auth...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"changed": 1}, decode[map[string]int](t, rec))
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
