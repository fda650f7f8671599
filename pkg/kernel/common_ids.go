package kernel

import (
	"regexp"
	"strings"
)

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (c CompanyID) String() string     { return string(c) }
func (c CompanyID) IsEmpty() bool      { return string(c) == "" }

// Email is the identity key of companies and job seekers. Comparison is exact.
type Email string

// local part, single @, dotted domain; no consecutive dots anywhere
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}$`)

func NewEmail(email string) Email { return Email(strings.TrimSpace(email)) }
func (e Email) String() string    { return string(e) }
func (e Email) IsEmpty() bool     { return string(e) == "" }

// IsValid checks the address format accepted at signup and lookup
func (e Email) IsValid() bool {
	s := string(e)
	if s == "" || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

type SessionID string

func (s SessionID) String() string { return string(s) }
func (s SessionID) IsEmpty() bool  { return string(s) == "" }
