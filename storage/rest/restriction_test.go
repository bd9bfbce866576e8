package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/restriction"
)

func TestNormalizeRestrictionShapes(t *testing.T) {
	spanish := `{
		"id": 12, "docente_id": 3, "dia_semana": 2,
		"hora_inicio": "08:00:00", "hora_fin": "10:00:00",
		"disponible": false, "descripcion": "consejo de facultad", "activa": true
	}`
	english := `{
		"id": 12, "teacher_id": 3, "day_of_week": 2,
		"start_time": "08:00", "end_time": "10:00",
		"available": false, "description": "consejo de facultad", "active": true
	}`

	var a, b wireRestriction
	if err := json.Unmarshal([]byte(spanish), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(english), &b); err != nil {
		t.Fatal(err)
	}

	recA, recB := normalizeRestriction(a), normalizeRestriction(b)
	if !reflect.DeepEqual(recA, recB) {
		t.Errorf("shapes normalize differently:\n  spanish: %+v\n  english: %+v", recA, recB)
	}

	want := restriction.Record{
		ID:          12,
		TeacherID:   3,
		Day:         core.Martes,
		Start:       "08:00",
		End:         "10:00",
		Available:   false,
		Description: "consejo de facultad",
		Active:      true,
	}
	if recA != want {
		t.Errorf("normalized = %+v, want %+v", recA, want)
	}
}

func TestNormalizeRestrictionDefaults(t *testing.T) {
	// neither alias present: activa defaults true, disponible defaults false
	var w wireRestriction
	if err := json.Unmarshal([]byte(`{"id": 1, "dia_semana": 1, "hora_inicio": "08:00", "hora_fin": "09:00"}`), &w); err != nil {
		t.Fatal(err)
	}
	rec := normalizeRestriction(w)
	if !rec.Active {
		t.Error("activa should default to true")
	}
	if rec.Available {
		t.Error("disponible should default to false")
	}
}

func TestRestrictionRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/restricciones-horario/docente/mis-restricciones", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// spanish shape with seconds, as the teacher endpoints answer
			w.Write([]byte(`[
				{"id": 2, "docente_id": 1, "dia_semana": 3, "hora_inicio": "14:00:00", "hora_fin": "16:00:00", "disponible": false, "activa": true},
				{"id": 1, "docente_id": 1, "dia_semana": 1, "hora_inicio": "08:00:00", "hora_fin": "10:00:00", "disponible": true, "activa": true}
			]`))
		case http.MethodPost:
			var nr restriction.NewRestriction
			if err := json.NewDecoder(r.Body).Decode(&nr); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 3, "docente_id": 1, "dia_semana": int(nr.Day),
				"hora_inicio": nr.Start + ":00", "hora_fin": nr.End + ":00",
				"disponible": nr.Available, "activa": true,
			})
		}
	})
	mux.HandleFunc("/restricciones-horario/", func(w http.ResponseWriter, r *http.Request) {
		// admin listing answers the english shape
		w.Write([]byte(`[
			{"id": 1, "teacher_id": 1, "day_of_week": 1, "start_time": "08:00", "end_time": "10:00", "available": true, "active": true}
		]`))
	})

	repo := NewRestrictionRepository(newTestClient(t, mux, staticToken("tok")))

	t.Run("ListMine normalizes and truncates times", func(t *testing.T) {
		recs, err := repo.ListMine(context.Background())
		if err != nil {
			t.Fatalf("ListMine() failed: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("got %d records, want 2", len(recs))
		}
		if recs[0].Start != "14:00" || recs[0].End != "16:00" {
			t.Errorf("slot = %s-%s, want seconds truncated", recs[0].Start, recs[0].End)
		}
	})

	t.Run("ListAll accepts the english shape", func(t *testing.T) {
		recs, err := repo.ListAll(context.Background())
		if err != nil {
			t.Fatalf("ListAll() failed: %v", err)
		}
		if len(recs) != 1 || recs[0].TeacherID != 1 || recs[0].Day != core.Lunes {
			t.Errorf("records = %+v", recs)
		}
	})

	t.Run("CreateMine round trip", func(t *testing.T) {
		rec, err := repo.CreateMine(context.Background(), restriction.NewRestriction{
			Day: core.Viernes, Start: "11:00", End: "13:00", Available: true,
		})
		if err != nil {
			t.Fatalf("CreateMine() failed: %v", err)
		}
		if rec.ID != 3 || rec.Day != core.Viernes || rec.Start != "11:00" {
			t.Errorf("record = %+v", rec)
		}
	})
}

func TestAuthRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var pl loginPayload
		if err := json.NewDecoder(r.Body).Decode(&pl); err != nil || pl.Password == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": [{"loc": ["body", "contrasena"], "msg": "field required"}]}`))
			return
		}
		json.NewEncoder(w).Encode(loginResponse{AccessToken: "tok-abc", TokenType: "bearer"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		// older backend answers fullName + rol
		w.Write([]byte(`{"id": 7, "fullName": "Diego Rivas", "email": "drivas@uni.edu", "rol": "docente"}`))
	})

	repo := NewAuthRepository(newTestClient(t, mux, nil))

	t.Run("login", func(t *testing.T) {
		tok, err := repo.Login(context.Background(), "drivas@uni.edu", "pwd")
		if err != nil {
			t.Fatalf("Login() failed: %v", err)
		}
		if tok != "tok-abc" {
			t.Errorf("token = %q", tok)
		}
	})

	t.Run("me normalizes aliases", func(t *testing.T) {
		usr, err := repo.Me(context.Background())
		if err != nil {
			t.Fatalf("Me() failed: %v", err)
		}
		if usr.Name != "Diego Rivas" || usr.Role != "teacher" || !usr.IsActive {
			t.Errorf("user = %+v", usr)
		}
	})
}

func TestAuthRepositoryEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": ""}`))
	}))
	t.Cleanup(srv.Close)

	conf := &core.Config{}
	conf.API.BaseURL = srv.URL
	repo := NewAuthRepository(NewClient(conf, nil))

	_, err := repo.Login(context.Background(), "x@uni.edu", "pwd")
	if err != core.ErrMalformedToken {
		t.Errorf("Login() error = %v, want %v", err, core.ErrMalformedToken)
	}
}
