package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB       Pinger
	Profiles []string
	Timeout  time.Duration
}

// Status is the health payload.
type Status struct {
	OK       bool     `json:"ok"`
	Storage  string   `json:"storage"`
	Profiles []string `json:"profiles"`
}

// NewService constructs a new health service. db may be nil when repositories are in memory.
func NewService(db Pinger, profiles []string) *Service {
	return &Service{DB: db, Profiles: profiles, Timeout: 2 * time.Second}
}

// Status reports whether the service can reach its database.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Storage: "memory", Profiles: s.Profiles}
	if st.Profiles == nil {
		st.Profiles = []string{}
	}
	if s.DB == nil {
		return st
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		st.OK = false
		st.Storage = "postgres:down"
		return st
	}
	st.Storage = "postgres"
	return st
}
