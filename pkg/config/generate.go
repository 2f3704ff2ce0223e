package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/cursync/cursync/pkg/errors"
)

const generatedHeader = `# cursync configuration.
# Values shown are the defaults; uncomment and edit to override.

`

// Generate renders a starter .cursync.toml with every default value
// commented out, for the init command to drop at the repository root.
func Generate() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(Default()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode default config")
	}

	out := []byte(generatedHeader)
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		switch {
		case len(trimmed) == 0,
			bytes.HasPrefix(trimmed, []byte("#")),
			bytes.HasPrefix(trimmed, []byte("[")):
			out = append(out, line...)
		default:
			out = append(out, '#', ' ')
			out = append(out, line...)
		}
		out = append(out, '\n')
	}
	return out, nil
}
