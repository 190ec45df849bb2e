package snapshot

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"
)

// CookieJar is the request/response cookie access a CookieStore needs.
// *gin.Context satisfies it.
type CookieJar interface {
	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int, path, domain string, secure, httpOnly bool)
}

type sameSiteSetter interface {
	SetSameSite(http.SameSite)
}

// CookieStore keeps each key in its own cookie, so the record lives in the
// browser. Values are base64url-encoded to stay cookie safe. Writes made
// during the request are visible to later reads in the same request.
type CookieStore struct {
	jar     CookieJar
	maxAge  time.Duration
	secure  bool
	pending map[string]*string
}

// NewCookieStore binds a store to one request. maxAge is the cookie lifetime.
func NewCookieStore(jar CookieJar, maxAge time.Duration, secure bool) *CookieStore {
	return &CookieStore{jar: jar, maxAge: maxAge, secure: secure, pending: make(map[string]*string)}
}

func (s *CookieStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", ErrNotFound
		}
		return *v, nil
	}
	raw, err := s.jar.Cookie(key)
	if err != nil || raw == "" {
		return "", ErrNotFound
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		// An undecodable cookie is handed on as-is and fails validation.
		return raw, nil
	}
	return string(data), nil
}

func (s *CookieStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.sameSite()
	s.jar.SetCookie(key, base64.RawURLEncoding.EncodeToString([]byte(value)), int(s.maxAge.Seconds()), "/", "", s.secure, true)
	s.pending[key] = &value
	return nil
}

func (s *CookieStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.sameSite()
	s.jar.SetCookie(key, "", -1, "/", "", s.secure, true)
	s.pending[key] = nil
	return nil
}

func (s *CookieStore) sameSite() {
	if ss, ok := s.jar.(sameSiteSetter); ok {
		ss.SetSameSite(http.SameSiteStrictMode)
	}
}
