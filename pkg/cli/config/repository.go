package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/interfaces"
	"github.com/secmon-lab/kassa/pkg/repository/memory"
	"github.com/secmon-lab/kassa/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory)",
			Value:       "memory",
			Sources:     cli.EnvVars("KASSA_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure() (interfaces.Repository, error) {
	switch r.backend {
	case "memory", "":
		logging.Default().Info("Using in-memory repository, checkouts are lost on restart")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V("backend", r.backend))
	}
}
