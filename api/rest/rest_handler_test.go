package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Rebyuu/draw4friends/api/rest"
	storemocks "github.com/Rebyuu/draw4friends/store/mocks"
)

func TestHandleCanvas_ReturnsPersistedLog(t *testing.T) {
	entry := json.RawMessage(`{"fromX":0,"fromY":0,"toX":10,"toY":10,"color":"#000000","width":5,"save":true}`)
	mockStore := new(storemocks.MockStore)
	mockStore.On("Load", mock.Anything).Return([]json.RawMessage{entry}, nil)

	handler := rest.NewHandler(mockStore)
	w := httptest.NewRecorder()
	handler.HandleCanvas(w, httptest.NewRequest(http.MethodGet, "/canvas", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []json.RawMessage{entry}, resp.Data)
}

func TestHandleCanvas_EmptyLog(t *testing.T) {
	mockStore := new(storemocks.MockStore)
	mockStore.On("Load", mock.Anything).Return([]json.RawMessage{}, nil)

	handler := rest.NewHandler(mockStore)
	w := httptest.NewRecorder()
	handler.HandleCanvas(w, httptest.NewRequest(http.MethodGet, "/canvas", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestHandleCanvas_StoreFailure(t *testing.T) {
	mockStore := new(storemocks.MockStore)
	mockStore.On("Load", mock.Anything).Return([]json.RawMessage{}, errors.New("disk on fire"))

	handler := rest.NewHandler(mockStore)
	w := httptest.NewRecorder()
	handler.HandleCanvas(w, httptest.NewRequest(http.MethodGet, "/canvas", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleCanvas_MethodNotAllowed(t *testing.T) {
	handler := rest.NewHandler(new(storemocks.MockStore))
	w := httptest.NewRecorder()
	handler.HandleCanvas(w, httptest.NewRequest(http.MethodPost, "/canvas", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
