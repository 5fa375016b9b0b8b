package sql

import (
	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
)

// RegisterAll registers an adapter for every known kind in reg.
func RegisterAll(reg *adapter.Registry) error {
	for _, k := range adapter.Kinds() {
		if err := reg.Register(k, New(k)); err != nil {
			return err
		}
	}

	return nil
}
