package spec

import (
	"encoding/json"

	"drfspec/internal/shared/util"
)

// WriteFile persists the document as pretty-printed UTF-8 JSON, creating
// parent directories as needed.
func WriteFile(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFileWithDirs(path, append(data, '\n'), 0o644)
}
