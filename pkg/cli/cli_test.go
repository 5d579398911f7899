package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kassa/pkg/cli"
)

func TestRun_Catalog(t *testing.T) {
	err := cli.Run(context.Background(), []string{"kassa", "--log-level", "error", "catalog", "--no-color"}, "test")
	gt.NoError(t, err)
}

func TestRun_CatalogMissingFile(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"kassa", "--log-level", "error", "catalog", "--catalog", filepath.Join(t.TempDir(), "none.toml"),
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_SubmitRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.toml")
	content := `
delivery = "pickup"
payment = "swish"

[fields]
firstName = ""

[[item]]
id = "mug"
name = "Mug"
price = 12900
amount = 1
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

	err := cli.Run(context.Background(), []string{"kassa", "--log-level", "error", "submit", "--no-color", path}, "test")
	gt.Error(t, err).Is(cli.ErrOrderRejected)
}
