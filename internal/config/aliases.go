package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"placementcms/internal/errors"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AliasFile is the on-disk shape of extra header aliases, keyed by canonical
// field name:
//
//	[aliases]
//	rollNo = ["Enrollment No", "Reg. No"]
type AliasFile struct {
	Aliases map[string][]string `toml:"aliases" yaml:"aliases"`
}

// LoadAliases reads an alias file and flattens it to header -> field.
// The format is chosen by extension (.toml, .yaml, .yml).
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read aliases file %s", path)
	}

	var file AliasFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unsupported aliases file extension %q", ext))
	}
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to parse aliases file %s", path))
	}

	out := make(map[string]string)
	for field, headers := range file.Aliases {
		for _, header := range headers {
			if prev, ok := out[header]; ok && prev != field {
				return nil, errors.ConfigInvalid(fmt.Sprintf("header %q is aliased to both %s and %s", header, prev, field))
			}
			out[header] = field
		}
	}
	return out, nil
}
