package viewload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFromFile builds a Loader from a YAML file carrying the
// NewFromMap argument surface, aliases included:
//
//	dsn: dbi:postgres:dbname=warehouse
//	user: reporting
//	namespace: reports
//	include: ^sales_
//	import_classes:
//	  - audit
//
// Import classes are referred to by registered name; see
// RegisterImportClass.
func ConfigFromFile(path string) (*Loader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("viewload: read config: %w", err)
	}
	var args map[string]any
	if err := yaml.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("viewload: parse config %s: %w", path, err)
	}
	return NewFromMap(args)
}
