package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// recordSidecar updates (or creates) a JSON build-cache sidecar mapping
// each source file to the hash of its content and the executable it last
// produced. gjson reads the existing entry (if any) to decide whether a
// rebuild actually changed anything; sjson patches the single entry back
// in place, never re-encoding the whole document.
func recordSidecar(path, sourceFile, sourceContent, outputFile string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("sidecar: %w", err)
		}
		doc = []byte("{}")
	}

	sum := sha256.Sum256([]byte(sourceContent))
	hash := hex.EncodeToString(sum[:])

	result := gjson.GetBytes(doc, jsonPath(sourceFile)+".hash")
	if result.Exists() && result.String() == hash {
		return nil
	}

	doc, err = sjson.SetBytes(doc, jsonPath(sourceFile)+".hash", hash)
	if err != nil {
		return fmt.Errorf("sidecar: %w", err)
	}
	doc, err = sjson.SetBytes(doc, jsonPath(sourceFile)+".output", outputFile)
	if err != nil {
		return fmt.Errorf("sidecar: %w", err)
	}

	return os.WriteFile(path, doc, 0o644)
}

// jsonPath escapes a filesystem path into a gjson/sjson object-key path
// segment: dots, backslashes and the wildcards * and ? need escaping
// since both libraries give them special meaning in a path.
func jsonPath(file string) string {
	escaped := make([]byte, 0, len(file))
	for i := 0; i < len(file); i++ {
		c := file[i]
		if c == '.' || c == '*' || c == '?' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped)
}
