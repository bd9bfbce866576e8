package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errMissingToken = []byte(`{"detail": "usuario no autenticado"}`)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func initServer() (*server, *store) {
	st := openStore()
	srv := NewServer(&Options{
		SecretKey:      []byte("test-secret"),
		TokenLifetime:  time.Hour,
		DisableReqLogs: true,
	}, st).(*server)
	return srv, st
}

func getToken(t *testing.T, s *server, email string) string {
	t.Helper()
	usr, ok := s.store.userByEmail(email)
	if !ok {
		t.Fatalf("getToken() failed: no user %s", email)
	}
	token, err := s.signToken(usr)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func TestAuthEndpoints(t *testing.T) {
	srv, _ := initServer()
	docenteToken := getToken(t, srv, "docente@uni.edu")

	tests := []httpTest{
		{
			name: "login ok", method: http.MethodPost, path: "/api/auth/login",
			body:     []byte(`{"email": "docente@uni.edu", "contrasena": "docente1234"}`),
			wantCode: http.StatusOK,
		},
		{
			name: "login bad password", method: http.MethodPost, path: "/api/auth/login",
			body:     []byte(`{"email": "docente@uni.edu", "contrasena": "nope"}`),
			wantCode: http.StatusUnauthorized,
			wantData: []byte(`{"detail": "credenciales inválidas"}`),
		},
		{
			name: "login missing fields", method: http.MethodPost, path: "/api/auth/login",
			body:     []byte(`{"email": "not-an-email"}`),
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "me without token", method: http.MethodGet, path: "/api/auth/me",
			wantCode: http.StatusUnauthorized,
			wantData: errMissingToken,
		},
		{
			name: "me", method: http.MethodGet, path: "/api/auth/me", token: docenteToken,
			wantCode: http.StatusOK,
			wantData: []byte(`{"id": 2, "name": "Diego Docente", "email": "docente@uni.edu", "rol": "docente", "is_active": true}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestRestrictionEndpoints(t *testing.T) {
	srv, st := initServer()
	docenteToken := getToken(t, srv, "docente@uni.edu")
	adminToken := getToken(t, srv, "admin@uni.edu")
	studentToken := getToken(t, srv, "estudiante@uni.edu")

	seeded, _ := st.restrictionByID(1)

	tests := []httpTest{
		{
			name: "docente lists own", method: http.MethodGet,
			path: "/api/restricciones-horario/docente/mis-restricciones", token: docenteToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []*fakeRestriction{seeded}),
		},
		{
			name: "student forbidden", method: http.MethodGet,
			path: "/api/restricciones-horario/docente/mis-restricciones", token: studentToken,
			wantCode: http.StatusForbidden,
			wantData: []byte(`{"detail": "permiso denegado"}`),
		},
		{
			name: "admin lists all in english shape", method: http.MethodGet,
			path: "/api/restricciones-horario", token: adminToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []englishRestriction{toEnglish(seeded)}),
		},
		{
			name: "docente forbidden on admin listing", method: http.MethodGet,
			path: "/api/restricciones-horario", token: docenteToken,
			wantCode: http.StatusForbidden,
		},
		{
			name: "create", method: http.MethodPost,
			path: "/api/restricciones-horario/docente/mis-restricciones", token: docenteToken,
			body:     []byte(`{"dia_semana": 5, "hora_inicio": "11:00", "hora_fin": "13:00", "disponible": true}`),
			wantCode: http.StatusCreated,
		},
		{
			name: "create inverted slot", method: http.MethodPost,
			path: "/api/restricciones-horario/docente/mis-restricciones", token: docenteToken,
			body:     []byte(`{"dia_semana": 5, "hora_inicio": "13:00", "hora_fin": "11:00"}`),
			wantCode: http.StatusUnprocessableEntity,
			wantData: []byte(`{"errors": {"hora_fin": "debe ser posterior a hora_inicio"}}`),
		},
		{
			name: "non-docente cannot delete", method: http.MethodDelete,
			path: "/api/restricciones-horario/docente/mis-restricciones/1", token: adminToken,
			wantCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestRejectedPatchLeavesRecordUnchanged(t *testing.T) {
	srv, st := initServer()
	docenteToken := getToken(t, srv, "docente@uni.edu")

	before := *mustRestriction(t, st, 1)

	req, rec := newAuthRequest(http.MethodPatch,
		"/api/restricciones-horario/docente/mis-restricciones/1", docenteToken,
		[]byte(`{"hora_inicio": "11:00"}`))
	srv.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusUnprocessableEntity,
		wantData: []byte(`{"errors": {"hora_fin": "debe ser posterior a hora_inicio"}}`),
	}, rec)
	if after := *mustRestriction(t, st, 1); after != before {
		t.Errorf("rejected patch mutated the stored record: %+v, want %+v", after, before)
	}

	// a valid patch still commits
	req, rec = newAuthRequest(http.MethodPatch,
		"/api/restricciones-horario/docente/mis-restricciones/1", docenteToken,
		[]byte(`{"hora_inicio": "09:00"}`))
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid patch failed: code = %d body = %s", rec.Code, rec.Body.String())
	}
	if got := mustRestriction(t, st, 1); got.HoraInicio != "09:00:00" {
		t.Errorf("hora_inicio = %s, want 09:00:00", got.HoraInicio)
	}
}

func mustRestriction(t *testing.T, st *store, id int) *fakeRestriction {
	t.Helper()
	rec, ok := st.restrictionByID(id)
	if !ok {
		t.Fatalf("restriction #%d missing", id)
	}
	return rec
}

func TestEventEndpoints(t *testing.T) {
	srv, st := initServer()
	docenteToken := getToken(t, srv, "docente@uni.edu")

	seeded, _ := st.eventByID(1)

	tests := []httpTest{
		{
			name: "list", method: http.MethodGet, path: "/api/eventos", token: docenteToken,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []*fakeEvent{seeded}),
		},
		{
			name: "create", method: http.MethodPost, path: "/api/eventos", token: docenteToken,
			body:     []byte(`{"nombre": "Semana cultural", "fecha": "2026-09-07", "active": true}`),
			wantCode: http.StatusCreated,
		},
		{
			name: "create without title", method: http.MethodPost, path: "/api/eventos", token: docenteToken,
			body:     []byte(`{"fecha": "2026-09-07"}`),
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "get missing", method: http.MethodGet, path: "/api/eventos/99", token: docenteToken,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"detail": "no encontrado"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
