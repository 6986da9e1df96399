// Package ldrive is the local side: reading files to upload and writing
// downloaded ones.
package ldrive

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
)

type Drive struct {
	log contracts.Logger
}

var _ contracts.LocalStore = (*Drive)(nil)

func New(log contracts.Logger) *Drive {
	return &Drive{log: log}
}

func (d *Drive) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read file %s", path)
	}
	return data, nil
}

func (d *Drive) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "could not create dir %s", dir)
	}
	return nil
}

// WriteFile writes data to path replacing whatever was there. If writing
// fails the partly written file is removed.
func (d *Drive) WriteFile(path string, data []byte) error {
	lf, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "could not create file %s", path)
	}

	if _, err = io.Copy(lf, bytes.NewReader(data)); err != nil {
		lf.Close()
		if remErr := os.Remove(path); remErr != nil {
			d.log.Error("could not remove failed file", path, remErr)
		}
		return errors.Wrapf(err, "could not write into %s", path)
	}
	if err = lf.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", path)
	}
	d.log.Debug("written local file", struct {
		path string
		size int
	}{path, len(data)})
	return nil
}
