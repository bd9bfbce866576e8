package session

import (
	"testing"
	"time"

	"github.com/ucvirtual/horario/core/user"
	"github.com/ucvirtual/horario/storage/kv"
)

var testSecret = []byte("test-secret")

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(kv.NewMemStore(), testSecret)

	if _, ok := store.Get(); ok {
		t.Fatal("Get() on empty store returned a session")
	}

	sess := Session{
		Token:  "tok-123",
		UserID: 7,
		Email:  "docente@uni.edu",
		Role:   user.RoleTeacher,
		Expiry: time.Now().Add(time.Hour).Truncate(time.Second),
	}
	if err := store.Set(sess); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, ok := store.Get()
	if !ok {
		t.Fatal("Get() returned no session after Set()")
	}
	if got.Token != sess.Token || got.UserID != sess.UserID || got.Role != sess.Role {
		t.Errorf("Get() = %+v, want %+v", got, sess)
	}

	store.Clear()
	if _, ok := store.Get(); ok {
		t.Error("Get() after Clear() returned a session")
	}
}

// Malformed stored data must never crash the app, only force re-authentication.
func TestStoreMalformedBlob(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "garbage", blob: "lmaooolol"},
		{name: "empty", blob: ""},
		{name: "plain json", blob: `{"token":"tok"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kvs := kv.NewMemStore()
			_ = kvs.Set("session", tt.blob)

			store := NewStore(kvs, testSecret)
			if _, ok := store.Get(); ok {
				t.Error("Get() accepted a malformed blob")
			}
			// the bad blob is gone; the next Get does not retry it
			if _, ok, _ := kvs.Get("session"); ok {
				t.Error("malformed blob was not discarded")
			}
		})
	}
}

// A blob sealed under a different key reads as malformed: tampered local data
// forces re-login instead of a bogus session.
func TestStoreTamperedBlob(t *testing.T) {
	kvs := kv.NewMemStore()
	other := NewStore(kvs, []byte("other-secret"))
	_ = other.Set(Session{Token: "tok", Role: user.RoleAdmin})

	store := NewStore(kvs, testSecret)
	if _, ok := store.Get(); ok {
		t.Error("Get() accepted a blob sealed under a different key")
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{name: "future", expiry: now.Add(time.Minute), want: false},
		{name: "past", expiry: now.Add(-time.Minute), want: true},
		{name: "zero means no expiry", expiry: time.Time{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := Session{Expiry: tt.expiry}
			if got := sess.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	store := NewStore(kv.NewMemStore(), testSecret)
	if _, ok := store.Token(); ok {
		t.Error("Token() on empty store returned a token")
	}

	_ = store.Set(Session{Token: "tok-xyz", Role: user.RoleStudent})
	tok, ok := store.Token()
	if !ok || tok != "tok-xyz" {
		t.Errorf("Token() = %q, %v", tok, ok)
	}
}
