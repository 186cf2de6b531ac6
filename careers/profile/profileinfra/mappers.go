package profileinfra

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/careerlens/careers/profile"
	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
)

// userRow is a row of the users table
type userRow struct {
	UID       string    `db:"uid"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Provider  string    `db:"provider"`
	Profile   []byte    `db:"profile"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *userRow) toDomain() (*profile.User, error) {
	u := &profile.User{
		UID:       kernel.NewUserID(r.UID),
		Email:     kernel.Email(r.Email),
		Name:      r.Name,
		Role:      iam.RoleOrDefault(r.Role),
		Provider:  r.Provider,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.Profile) > 0 {
		if err := json.Unmarshal(r.Profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile of %s: %w", r.UID, err)
		}
	}
	return u, nil
}

func marshalProfile(p profile.Profile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return data, nil
}
