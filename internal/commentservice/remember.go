package commentservice

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	RememberNameKey  = "name"
	RememberEmailKey = "email"

	rememberMaxAge = 365 * 24 * time.Hour
)

// NewRemember returns a cookie store signed with hashKey. blockKey may be nil
// to leave values unencrypted.
func NewRemember(hashKey, blockKey []byte, secure bool) *Remember {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(rememberMaxAge.Seconds()))

	return &Remember{sc: sc, secure: secure}
}

// Save stores both values for later visits.
func (r *Remember) Save(w http.ResponseWriter, name, email string) error {
	values := [][2]string{{RememberNameKey, name}, {RememberEmailKey, email}}
	for _, kv := range values {
		encoded, err := r.sc.Encode(kv[0], kv[1])
		if err != nil {
			return err
		}

		http.SetCookie(w, r.cookie(kv[0], encoded, int(rememberMaxAge.Seconds())))
	}

	return nil
}

// Forget expires both cookies.
func (r *Remember) Forget(w http.ResponseWriter) {
	http.SetCookie(w, r.cookie(RememberNameKey, "", -1))
	http.SetCookie(w, r.cookie(RememberEmailKey, "", -1))
}

// Load returns the stored values. Missing or tampered cookies yield empty strings.
func (r *Remember) Load(req *http.Request) (name, email string) {
	return r.read(req, RememberNameKey), r.read(req, RememberEmailKey)
}

func (r *Remember) read(req *http.Request, key string) string {
	c, err := req.Cookie(key)
	if err != nil {
		return ""
	}

	var value string
	if err := r.sc.Decode(key, c.Value, &value); err != nil {
		return ""
	}

	return value
}

func (r *Remember) cookie(key, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
