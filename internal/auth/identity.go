package auth

import (
	"fmt"
	"strings"

	"github.com/leadintake/internal/model"
)

// Entry is one row of the identity table: an identity plus its secret.
// Secret is either a literal password or a bcrypt hash.
type Entry struct {
	model.Identity
	Secret string
}

// UnmarshalText parses "email|secret|role|Display Name".
func (e *Entry) UnmarshalText(text []byte) error {
	parts := strings.SplitN(strings.TrimSpace(string(text)), "|", 4)
	if len(parts) != 4 {
		return fmt.Errorf("identity entry: want email|secret|role|name, got %d fields", len(parts))
	}
	email, secret, role, name := strings.TrimSpace(parts[0]), parts[1], strings.TrimSpace(parts[2]), strings.TrimSpace(parts[3])
	if email == "" || secret == "" {
		return fmt.Errorf("identity entry: email and secret are required")
	}
	r := model.ParseRole(role)
	if r == model.RoleUnknown {
		return fmt.Errorf("identity entry %q: unknown role %q", email, role)
	}
	*e = Entry{
		Identity: model.Identity{Email: email, DisplayName: name, Role: r},
		Secret:   secret,
	}
	return nil
}

// Table is the static identity table. It is read-only after construction.
type Table []Entry

// ForRole returns the first identity holding role.
func (t Table) ForRole(role model.Role) (model.Identity, bool) {
	for _, e := range t {
		if e.Role == role {
			return e.Identity, true
		}
	}
	return model.Identity{}, false
}
