package cmd

import (
	"fmt"
	"os"

	"erd-builder/internal/schema"
)

// writeDocument saves doc to path, or prints it to stdout when path is empty.
func writeDocument(path string, doc schema.Document) error {
	if path == "" {
		return schema.EncodeDocument(os.Stdout, doc)
	}
	return schema.SaveDocument(path, doc)
}

func writeText(path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
