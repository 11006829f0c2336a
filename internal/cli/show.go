package cli

import (
	"os"

	"github.com/stokesdev/ghkey/internal/config"
	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/keygen"
	"github.com/stokesdev/ghkey/internal/report"
)

// runShow reprints the completion report for an already-generated key.
func runShow() error {
	cfg, err := config.LoadDefault(cfgFile)
	if err != nil {
		return err
	}

	keyPath, err := deviceKeyPath(cfg)
	if err != nil {
		return err
	}

	if !keygen.Exists(keyPath) {
		return errors.New(errors.ErrKeygen,
			"No key has been generated for this machine yet",
			"Run ghkey to create one")
	}

	return report.Print(os.Stdout, keygen.PublicPath(keyPath), cfg.Host)
}
