package archive

import (
	"errors"
	"fmt"
	"os"

	"stagehand/internal/fileutil"
	"stagehand/internal/shows"
)

// renameFile is a seam so tests can inject a failure between the temp-file
// write and the rename.
var renameFile = os.Rename

// WriteDocument persists doc to path without ever leaving the target
// missing or truncated:
//
//  1. serialize to an adjacent temp file
//  2. re-read and re-parse the temp file (guards against a torn write)
//  3. copy the current target aside as a rollback point
//  4. atomically rename temp over target
//  5. drop the rollback copy
//
// Any failure rolls the target back and removes the temp file.
func WriteDocument(path string, doc *shows.Document) error {
	data, err := shows.Encode(doc)
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	backupPath := path + ".backup"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	written, err := os.ReadFile(tempPath)
	if err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if err := shows.ValidateDocument(written); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("temp file failed verification: %w", err)
	}

	if err := fileutil.CopyFile(path, backupPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("stage rollback copy: %w", err)
	}

	if err := renameFile(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		if restoreErr := restoreFromBackup(path, backupPath); restoreErr != nil {
			return errors.Join(fmt.Errorf("replace target: %w", err), restoreErr)
		}
		return fmt.Errorf("replace target: %w", err)
	}

	_ = os.Remove(backupPath)
	return nil
}

func restoreFromBackup(path, backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return nil
	}
	if err := fileutil.CopyFile(backupPath, path); err != nil {
		return fmt.Errorf("restore target from rollback copy: %w", err)
	}
	_ = os.Remove(backupPath)
	return nil
}
