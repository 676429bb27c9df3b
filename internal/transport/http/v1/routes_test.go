package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/harborgrid/gridiq/internal/domain"
)

func TestRouteCRUD(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	// Create
	body := `{"name":"Rotterdam - Bilbao","vessel_id":"mv-aurora","waypoints":[{"lat":51.9,"lon":4.1}],"distance_nm":702.5}`
	req := httptest.NewRequest(http.MethodPost, "/v1/routes", bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.CreateRoute(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var route domain.Route
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.NotEmpty(t, route.RouteID)
	assert.Equal(t, "Rotterdam - Bilbao", route.Name)

	// Update
	req = httptest.NewRequest(http.MethodPut, "/v1/routes/"+route.RouteID,
		bytes.NewReader([]byte(`{"name":"Rotterdam - Bilbao (diversion)"}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/v1/routes/:route_id")
	c.SetParamNames("route_id")
	c.SetParamValues(route.RouteID)

	assert.NoError(t, h.UpdateRoute(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Route
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Rotterdam - Bilbao (diversion)", updated.Name)
	assert.Equal(t, 702.5, updated.DistanceNm) // untouched fields survive

	// List
	req = httptest.NewRequest(http.MethodGet, "/v1/routes?vessel_id=mv-aurora", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	assert.NoError(t, h.ListRoutes(c))
	var listResp struct {
		Routes []domain.Route `json:"routes"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Routes, 1)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/v1/routes/"+route.RouteID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/v1/routes/:route_id")
	c.SetParamNames("route_id")
	c.SetParamValues(route.RouteID)

	assert.NoError(t, h.DeleteRoute(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Get after delete
	req = httptest.NewRequest(http.MethodGet, "/v1/routes/"+route.RouteID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/v1/routes/:route_id")
	c.SetParamNames("route_id")
	c.SetParamValues(route.RouteID)

	assert.NoError(t, h.GetRoute(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRouteValidation(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/routes", bytes.NewReader([]byte(`{"name":"no vessel"}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.CreateRoute(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFleetPositions(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/fleet/positions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.FleetPositions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Vessels []domain.VesselPosition `json:"vessels"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Vessels)
	for _, v := range resp.Vessels {
		assert.NotEmpty(t, v.VesselID)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
