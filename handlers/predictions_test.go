package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation failures must be rejected before any storage access, so these
// run against a handler with no database behind it.

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/predictions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreatePredictionMissingRace(t *testing.T) {
	h := New(nil, nil)
	c, _ := postJSON(`{"prediction_model_name":"gpt-4o"}`)

	err := h.CreatePrediction(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreatePredictionMissingModelName(t *testing.T) {
	h := New(nil, nil)
	c, _ := postJSON(`{"race":"202309020811","prediction_model_name":"  "}`)

	err := h.CreatePrediction(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUpdatePredictionBadID(t *testing.T) {
	h := New(nil, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/predictions/abc", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.UpdatePrediction(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestDeletePredictionBadID(t *testing.T) {
	h := New(nil, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/predictions/not-a-number", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-number")

	err := h.DeletePrediction(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
