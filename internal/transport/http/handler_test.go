package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regscope/internal/platform/logger"
	"regscope/internal/regulation/catalog"
	"regscope/internal/scan/service"
	"regscope/internal/scan/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	svc, err := service.New(cat, store.NewInMemory())
	require.NoError(t, err)
	return NewRouter(NewHandler(svc, logger.New("error")))
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func carpentryPayload() map[string]any {
	return map[string]any{
		"profile": map[string]any{
			"industry":        "tischlerei",
			"employeeCount":   "6-10",
			"workshopPresent": true,
			"dataCategories":  []string{"kundendaten"},
			"privacyPolicy":   true,
		},
	}
}

func TestRunScanEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := postJSON(t, router, "/api/v1/scans", carpentryPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var scan struct {
		ID      uuid.UUID `json:"id"`
		Score   int       `json:"score"`
		Results []struct {
			ID        string `json:"id"`
			RiskLevel string `json:"riskLevel"`
			Status    string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&scan))
	assert.NotEqual(t, uuid.Nil, scan.ID)
	assert.NotEmpty(t, scan.Results)

	// Fetch it back through the API.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+scan.ID.String(), nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)
	assert.Equal(t, http.StatusOK, getRec.Code)

	// And replay it.
	replayRec := httptest.NewRecorder()
	router.ServeHTTP(replayRec, httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/scans/%s/replay", scan.ID), bytes.NewReader([]byte("{}"))))
	assert.Equal(t, http.StatusOK, replayRec.Code)
}

func TestEvaluateEndpointIsStateless(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/scans/evaluate", carpentryPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []json.RawMessage `json:"results"`
		Score   int               `json:"score"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Results)

	// Nothing persisted: history stays empty.
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))
	require.Equal(t, http.StatusOK, listRec.Code)
	var scans []json.RawMessage
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&scans))
	assert.Empty(t, scans)
}

func TestRunScanRejectsMissingProfile(t *testing.T) {
	router := newTestRouter(t)
	rec := postJSON(t, router, "/api/v1/scans", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScanErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRegulationsAndQuestionnaire(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/regulations", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var regs []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&regs))
	assert.NotEmpty(t, regs)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/questionnaire", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var layers []struct {
		ID     string            `json:"id"`
		Fields []json.RawMessage `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&layers))
	assert.Len(t, layers, 4)
}

func TestValidateLayerEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("missing answers reported as data with 200", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/questionnaire/basics/validate",
			map[string]any{"answers": map[string]any{}})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Valid  bool              `json:"valid"`
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.False(t, resp.Valid)
		assert.Equal(t, "textRequired", resp.Errors["companyName"])
		assert.Equal(t, "selectRequired", resp.Errors["industry"])
	})

	t.Run("complete answers are valid", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/questionnaire/basics/validate",
			map[string]any{"answers": map[string]any{
				"companyName":   "Tischlerei Huber",
				"industry":      "tischlerei",
				"employeeCount": "6-10",
			}})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Valid bool `json:"valid"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Valid)
	})

	t.Run("unknown layer is 404", func(t *testing.T) {
		rec := postJSON(t, router, "/api/v1/questionnaire/ghost/validate",
			map[string]any{"answers": map[string]any{}})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
