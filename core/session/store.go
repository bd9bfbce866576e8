package session

import (
	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"

	"github.com/ucvirtual/horario/storage/kv"
)

const storageKey = "session"

// Store persists the current Session across restarts. The blob is sealed with
// an HMAC so tampered or truncated local data reads back as malformed, which
// only ever forces a re-login and never crashes the app.
type Store struct {
	kv     kv.Store
	sealer *securecookie.SecureCookie
}

func NewStore(kvs kv.Store, secret []byte) *Store {
	sealer := securecookie.New(secret, nil)
	sealer.SetSerializer(securecookie.JSONEncoder{})
	return &Store{kv: kvs, sealer: sealer}
}

// Get returns the stored Session, if any. Malformed data is discarded silently.
func (st *Store) Get() (Session, bool) {
	sealed, ok, err := st.kv.Get(storageKey)
	if err != nil || !ok {
		return Session{}, false
	}

	var sess Session
	if err := st.sealer.Decode(storageKey, sealed, &sess); err != nil {
		st.Clear()
		return Session{}, false
	}
	if sess.Token == "" {
		st.Clear()
		return Session{}, false
	}
	return sess, true
}

func (st *Store) Set(sess Session) error {
	sealed, err := st.sealer.Encode(storageKey, sess)
	if err != nil {
		return errors.Wrap(err, "sealing session")
	}
	return st.kv.Set(storageKey, sealed)
}

func (st *Store) Clear() {
	_ = st.kv.Remove(storageKey)
}

// Token implements the token source the HTTP client authenticates with.
func (st *Store) Token() (string, bool) {
	sess, ok := st.Get()
	if !ok {
		return "", false
	}
	return sess.Token, true
}
