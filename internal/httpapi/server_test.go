package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/luxedir/internal/app"
	"github.com/mesh-intelligence/luxedir/internal/sqlite"
	"github.com/mesh-intelligence/luxedir/pkg/listing"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func newTestServer(t *testing.T, anonymous bool) (*Server, *app.Directory) {
	t.Helper()
	b := sqlite.NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = b.Detach() })

	cfg := types.DefaultSystemConfig()
	cfg.AnonymousAccess = anonymous
	require.NoError(t, b.Save(types.Patch{
		Parts:  types.PartAll,
		Schema: sqlite.DemoSchema(),
		Records: []types.Record{
			{ID: "r1", OwnerID: "admin-1", Category: types.CategoryPremium, Name: "One",
				Data: types.Data{"State_01": types.List("Gujarat"), "Rating_01": types.Number(4.5)}},
			{ID: "r2", OwnerID: "owner-1", Category: types.CategoryPremium, Name: "Two",
				Data: types.Data{"State_01": types.List("Maharashtra"), "Rating_01": types.Number(4.1)}},
			{ID: "r3", OwnerID: "owner-1", Category: types.CategoryExecutive, Name: "Three",
				Data: types.Data{"State_01": types.List("Gujarat", "Maharashtra"), "Rating_01": types.Number(4.9)}},
		},
		Config: cfg,
		Users: []types.User{
			{ID: "admin-1", Email: "admin@luxedir.com", Name: "Super Admin", Role: types.RoleAdmin, IsActive: true},
			{ID: "owner-1", Email: "owner@luxedir.com", Name: "John Luxury", Role: types.RoleOwner, IsActive: true},
			{ID: "user-1", Email: "guest@luxedir.com", Name: "Guest User", Role: types.RoleUser, IsActive: true},
		},
	}))

	dir, err := app.New(b, nil)
	require.NoError(t, err)
	return NewServer(dir, nil), dir
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListingsFilterAndSort(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(t, s, http.MethodGet, "/v1/listings?filter=State_01:Gujarat&sort=Rating_01&dir=desc", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res listing.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Records, 2)
	assert.Equal(t, "r3", res.Records[0].ID)
	assert.Equal(t, "r1", res.Records[1].ID)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"Gujarat", "Maharashtra"}, res.Facets[0].AvailableValues)
}

func TestListingsOrWithinField(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(t, s, http.MethodGet, "/v1/listings?filter=State_01:Gujarat&filter=State_01:Maharashtra", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res listing.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Count)
}

func TestListingsBadFilter(t *testing.T) {
	s, _ := newTestServer(t, true)
	rec := do(t, s, http.MethodGet, "/v1/listings?filter=Gujarat", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrowseGate(t *testing.T) {
	s, dir := newTestServer(t, false)

	for _, path := range []string{"/v1/listings", "/v1/schema", "/v1/facets", "/v1/records/r1", "/v1/settings"} {
		rec := do(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	_, err := dir.SwitchRole(types.RoleUser)
	require.NoError(t, err)
	rec := do(t, s, http.MethodGet, "/v1/listings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecord(t *testing.T) {
	s, _ := newTestServer(t, true)

	rec := do(t, s, http.MethodGet, "/v1/records/r2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var r types.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, "Two", r.Name)

	rec = do(t, s, http.MethodGet, "/v1/records/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestAdminRoutesNeedAdminOrOwner(t *testing.T) {
	s, dir := newTestServer(t, true)

	rec := do(t, s, http.MethodGet, "/v1/form/pages", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := dir.SwitchRole(types.RoleUser)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/v1/export", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err = dir.SwitchRole(types.RoleAdmin)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/v1/form/pages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"default"`)
}

func TestExportOwnerSeesOwnRecords(t *testing.T) {
	s, dir := newTestServer(t, true)
	_, err := dir.SwitchRole(types.RoleOwner)
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/v1/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "directory-records-")

	var records []types.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "r2", records[0].ID)
}

func TestImport(t *testing.T) {
	s, dir := newTestServer(t, true)
	_, err := dir.SwitchRole(types.RoleAdmin)
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/v1/import", `[{"id":"r1","name":"Twin","category":"Boutique"}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"imported":1}`, rec.Body.String())
	assert.Len(t, dir.Records(), 4)

	rec = do(t, s, http.MethodPost, "/v1/import", `{"id":"r1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, dir.Records(), 4, "nothing imported on structure mismatch")
}
