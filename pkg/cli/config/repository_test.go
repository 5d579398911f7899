package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kassa/pkg/cli/config"
)

func TestRepository_Configure(t *testing.T) {
	repo, err := config.NewRepositoryForTest("memory").Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, repo).NotNil()
	gt.NoError(t, repo.Close())

	_, err = config.NewRepositoryForTest("firestore").Configure()
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}
