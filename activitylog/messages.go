/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package activitylog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultCatalogYAML []byte

var (
	defaultCatalog     Catalog
	defaultCatalogOnce sync.Once
)

// Catalog maps an activity type to its message format.
type Catalog map[Type]string

// LoadCatalog parses a YAML document of type: format pairs.
func LoadCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

// DefaultCatalog returns the built-in message formats.
func DefaultCatalog() Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(defaultCatalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Format returns the message format registered for t, or "".
func (c Catalog) Format(t Type) string {
	return c[t]
}

// Render substitutes args into the {0}, {1}, ... placeholders of format.
// Placeholders without a matching argument are left as they are.
func Render(format string, args []string) string {
	if len(args) == 0 || format == "" {
		return format
	}
	pairs := make([]string, 0, 2*len(args))
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(format)
}
