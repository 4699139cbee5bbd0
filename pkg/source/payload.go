package source

import (
	"strings"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// URLPayload normalizes a URL for encoding. Input without a scheme is
// treated as an https URL.
func URLPayload(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", errors.New(errors.ErrCodeEmptySource, "no URL given")
	}
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	if err := errors.ValidateURL(u); err != nil {
		return "", err
	}
	return u, nil
}

// Contact is a person or organization encoded as a vCard.
type Contact struct {
	Name         string
	Organization string
	Title        string
	Phone        string
	Email        string
	URL          string
	Address      string
	Note         string
}

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// Payload renders the contact as vCard 3.0 text. At least a name, email or
// phone number is required.
func (c Contact) Payload() (string, error) {
	c = c.trimmed()
	if c.Name == "" && c.Email == "" && c.Phone == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "contact needs a name, email or phone")
	}

	lines := []string{"BEGIN:VCARD", "VERSION:3.0"}
	add := func(prop, v string) {
		if v != "" {
			lines = append(lines, prop+":"+vcardEscaper.Replace(v))
		}
	}

	if c.Name != "" {
		lines = append(lines, "N:"+vcardEscaper.Replace(c.Name)+";;;;")
	}
	fn := c.Name
	if fn == "" {
		fn = c.Organization
	}
	add("FN", fn)
	add("ORG", c.Organization)
	add("TITLE", c.Title)
	add("TEL;TYPE=CELL", c.Phone)
	add("EMAIL", c.Email)
	add("URL", c.URL)
	if c.Address != "" {
		lines = append(lines, "ADR:;;"+vcardEscaper.Replace(c.Address)+";;;;")
	}
	add("NOTE", c.Note)
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\r\n"), nil
}

func (c Contact) trimmed() Contact {
	return Contact{
		Name:         strings.TrimSpace(c.Name),
		Organization: strings.TrimSpace(c.Organization),
		Title:        strings.TrimSpace(c.Title),
		Phone:        strings.TrimSpace(c.Phone),
		Email:        strings.TrimSpace(c.Email),
		URL:          strings.TrimSpace(c.URL),
		Address:      strings.TrimSpace(c.Address),
		Note:         strings.TrimSpace(c.Note),
	}
}
