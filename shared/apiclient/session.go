package apiclient

import (
	"encoding/json"
	"io"
	"net/http"
)

// HasSession reports whether the jar would attach any cookie to API requests.
// It cannot tell whether the server still accepts that cookie.
func (c *APIClient) HasSession() bool {
	return len(c.jar.Cookies(c.base)) > 0
}

// storedCookie is the on-disk form of a jar entry. Jars only expose name and
// value, which is all a later request needs.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SaveSession writes the cookies held for the API to w, so a short-lived
// process (the CLI) can resume the session next time.
func (c *APIClient) SaveSession(w io.Writer) error {
	var stored []storedCookie
	for _, ck := range c.jar.Cookies(c.base) {
		stored = append(stored, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stored)
}

// LoadSession puts cookies written by SaveSession back into the jar.
func (c *APIClient) LoadSession(r io.Reader) error {
	var stored []storedCookie
	if err := json.NewDecoder(r).Decode(&stored); err != nil {
		return err
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	c.jar.SetCookies(c.base, cookies)
	return nil
}
