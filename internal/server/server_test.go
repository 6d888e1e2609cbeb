package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titledesk/title-review/constants"
	"github.com/titledesk/title-review/internal/entity"
	"github.com/titledesk/title-review/internal/export"
	"github.com/titledesk/title-review/internal/extract"
	"github.com/titledesk/title-review/internal/push"
	"github.com/titledesk/title-review/internal/review"
	"github.com/titledesk/title-review/internal/session"
	"github.com/titledesk/title-review/internal/upload"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	uploads, err := upload.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	mgr := session.NewManager(session.Deps{
		Extractor: extract.NewSimulated(0, nil),
		Reviews:   &review.NoopStore{},
		Publisher: push.NewLogPublisher(nil),
	})

	e := echo.New()
	RegisterRoutes(e, New(Dependencies{
		Session: mgr,
		Uploads: uploads,
		Export:  export.NewService(nil),
		Version: "test",
	}))
	return e
}

func do(e *echo.Echo, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func uploadFiles(t *testing.T, e *echo.Echo, names ...string) []entity.Document {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	rec := do(e, http.MethodPost, "/api/documents", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var docs []entity.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	return docs
}

func runExtraction(t *testing.T, e *echo.Echo) session.Snapshot {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/extraction", nil, "")
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var snap session.Snapshot
	require.Eventually(t, func() bool {
		rec := do(e, http.MethodGet, "/api/extraction", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		return !snap.IsProcessing && snap.Phase != constants.PhaseIdle
	}, 5*time.Second, 5*time.Millisecond)

	require.Equal(t, constants.PhaseSucceeded, snap.Phase)
	require.NotNil(t, snap.Result)
	return snap
}

func fieldPath(vehicleID, fieldName string) string {
	return "/api/vehicles/" + vehicleID + "/fields/" + url.PathEscape(fieldName)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestUploadRejectsEmptyAndBadTypes(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/documents", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", "notes.txt")
	require.NoError(t, err)
	fw.Write([]byte("nope"))
	require.NoError(t, mw.Close())

	rec = do(e, http.MethodPost, "/api/documents", &buf, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentLifecycle(t *testing.T) {
	e := newTestServer(t)

	docs := uploadFiles(t, e, "front.png", "back.jpg")
	require.Len(t, docs, 2)

	rec := do(e, http.MethodGet, "/api/documents", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []entity.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)

	rec = do(e, http.MethodDelete, "/api/documents/"+docs[0].ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/api/documents", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestStartExtractionRequiresDocuments(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/extraction", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewFlow(t *testing.T) {
	e := newTestServer(t)
	uploadFiles(t, e, "title_1.png", "title_2.png")
	snap := runExtraction(t, e)

	require.GreaterOrEqual(t, len(snap.Result.VehicleTitles), 1)
	vehicle := snap.Result.VehicleTitles[0]

	// Edit a field.
	body := bytes.NewBufferString(`{"value":"Jonathan Smith"}`)
	rec := do(e, http.MethodPut, fieldPath(vehicle.ID, "Owner Name"), body, echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var after session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.True(t, after.HasUnsavedChanges)
	assert.Equal(t, 1, after.EditedFieldCount)

	// Push is blocked until the review is saved.
	rec = do(e, http.MethodPost, "/api/push", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Save, then push.
	rec = do(e, http.MethodPost, "/api/review/save", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.False(t, after.HasUnsavedChanges)

	rec = do(e, http.MethodPost, "/api/push", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Revert restores the original value and dirties the session again.
	rec = do(e, http.MethodDelete, fieldPath(vehicle.ID, "Owner Name")+"/edit", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.True(t, after.HasUnsavedChanges)
	assert.Equal(t, 0, after.EditedFieldCount)
}

func TestUpdateFieldErrors(t *testing.T) {
	e := newTestServer(t)

	// No result yet.
	body := bytes.NewBufferString(`{"value":"x"}`)
	rec := do(e, http.MethodPut, fieldPath("v1", "Make"), body, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	uploadFiles(t, e, "title.png")
	snap := runExtraction(t, e)
	vehicle := snap.Result.VehicleTitles[0]

	body = bytes.NewBufferString(`{"value":"x"}`)
	rec = do(e, http.MethodPut, fieldPath("missing", "Make"), body, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body = bytes.NewBufferString(`{"value":"x"}`)
	rec = do(e, http.MethodPut, fieldPath(vehicle.ID, "Horsepower"), body, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetVehicle(t *testing.T) {
	e := newTestServer(t)
	uploadFiles(t, e, "title.png")
	snap := runExtraction(t, e)
	vehicle := snap.Result.VehicleTitles[0]

	rec := do(e, http.MethodGet, "/api/vehicles/"+vehicle.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.VehicleTitle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, vehicle.VINEnding, got.VINEnding)
	assert.Len(t, got.Fields, len(constants.TitleFields))

	rec = do(e, http.MethodGet, "/api/vehicles/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportXLSXEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/export/xlsx", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "no result, nothing to export")

	uploadFiles(t, e, "title.png")
	runExtraction(t, e)

	rec = do(e, http.MethodGet, "/api/export/xlsx", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Vehicle_Titles_")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestVehicleFormEndpoints(t *testing.T) {
	e := newTestServer(t)
	uploadFiles(t, e, "title.png")
	snap := runExtraction(t, e)
	honda := snap.Result.VehicleTitles[0]

	rec := do(e, http.MethodGet, "/api/vehicles/"+honda.ID+"/form", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "REG 227")

	// Incomplete form: required entries missing.
	rec = do(e, http.MethodPost, "/api/vehicles/"+honda.ID+"/form",
		bytes.NewBufferString(`{"values":{}}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload := `{"values":{"city":"Anytown","state":"CA","zipCode":"12345","signatureDate":"2026-03-14"},"checks":{"reasonLost":true}}`
	rec = do(e, http.MethodPost, "/api/vehicles/"+honda.ID+"/form",
		bytes.NewBufferString(payload), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "California_Duplicate_Title_1481.txt")
	assert.Contains(t, rec.Body.String(), "Title is Lost: ☑ Yes")
}

func TestCitationEndpoints(t *testing.T) {
	e := newTestServer(t)

	payload := `{"page_number":2,"bounding_box":{"x":10,"y":15,"width":35,"height":5}}`
	rec := do(e, http.MethodPost, "/api/citation", bytes.NewBufferString(payload), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.True(t, snap.ViewerOpen)
	require.NotNil(t, snap.ActiveCitation)
	assert.Equal(t, 2, snap.ActiveCitation.PageNumber)

	rec = do(e, http.MethodPost, "/api/citation",
		bytes.NewBufferString(`{"page_number":0}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodDelete, "/api/citation", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.False(t, snap.ViewerOpen)
	assert.Nil(t, snap.ActiveCitation)
}

func TestResetEndpoint(t *testing.T) {
	e := newTestServer(t)
	uploadFiles(t, e, "title.png")
	runExtraction(t, e)

	rec := do(e, http.MethodDelete, "/api/extraction", nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/api/extraction", nil, "")
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Empty(t, snap.Documents)
	assert.Nil(t, snap.Result)
	assert.Equal(t, constants.PhaseIdle, snap.Phase)
}
