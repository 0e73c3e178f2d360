package domain

// Account is the authenticated identity pushed on a subject's authentication-state stream.
// A nil *Account means nobody is logged in.
type Account struct {
	Login       string   `json:"login"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Authorities []string `json:"authorities"`
	LangKey     string   `json:"langKey"`
}

// Clone returns a deep copy so stream listeners never share mutable state
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Authorities = append([]string(nil), a.Authorities...)
	return &c
}
