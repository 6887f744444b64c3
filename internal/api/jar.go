package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Cookie persistence for the scriptable CLI: each subcommand is a fresh
// process, so the jar's cookies for the configured origin are mirrored to a
// file between invocations. The rest of the program only ever sees the jar.

type savedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
	Secure  bool      `json:"secure,omitempty"`
	HTTP    bool      `json:"httpOnly,omitempty"`
}

// PersistCookies loads previously saved cookies for this client's origin and
// keeps the file updated after every request. A missing file is fine.
func (c *Client) PersistCookies(path string) error {
	c.jarPath = path

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var saved []savedCookie
	if err := json.Unmarshal(b, &saved); err != nil {
		// A corrupt file just means logging in again.
		c.log.Debug("cookie file unreadable; ignoring", "path", path, "err", err)
		return nil
	}

	u, err := url.Parse(c.origin)
	if err != nil {
		return err
	}
	var cookies []*http.Cookie
	now := time.Now()
	for _, s := range saved {
		if !s.Expires.IsZero() && s.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     s.Name,
			Value:    s.Value,
			Path:     s.Path,
			Domain:   s.Domain,
			Expires:  s.Expires,
			Secure:   s.Secure,
			HttpOnly: s.HTTP,
		})
	}
	c.http.Jar.SetCookies(u, cookies)
	return nil
}

func (c *Client) saveCookies() error {
	u, err := url.Parse(c.origin)
	if err != nil {
		return err
	}
	var saved []savedCookie
	for _, ck := range c.http.Jar.Cookies(u) {
		saved = append(saved, savedCookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Path:    ck.Path,
			Domain:  ck.Domain,
			Expires: ck.Expires,
			Secure:  ck.Secure,
			HTTP:    ck.HttpOnly,
		})
	}
	b, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.jarPath), 0o755); err != nil {
		return err
	}
	// 0600: the cookie is a credential.
	return os.WriteFile(c.jarPath, b, 0o600)
}
