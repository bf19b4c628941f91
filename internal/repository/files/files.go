// Package files persists definition snapshots and diff reports as JSON files.
// All writes go through a temp file in the destination directory followed by
// a rename, so a failed run never leaves a half-written file behind.
package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jafarshop/metasync/internal/domain"
	apperrors "github.com/jafarshop/metasync/pkg/errors"
)

// Kind identifies what a JSON input file contains
type Kind int

const (
	KindUnknown Kind = iota
	KindSnapshot
	KindDiff
)

// Sniff reports whether a file holds a snapshot (top-level object keyed by
// owner type) or a diff report (top-level array of entries).
func Sniff(path string) (Kind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("failed to read %s: %w", path, err)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return KindUnknown, &apperrors.ErrFileFormat{Path: path, Reason: "file is empty"}
	}
	switch trimmed[0] {
	case '{':
		return KindSnapshot, nil
	case '[':
		return KindDiff, nil
	default:
		return KindUnknown, &apperrors.ErrFileFormat{Path: path, Reason: "not a JSON object or array"}
	}
}

// LoadSnapshot reads and validates an export file. Owner types are
// normalized, each definition gets its owner type stamped on, and malformed
// input is rejected up front rather than propagated downstream.
func LoadSnapshot(path string) (domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string][]domain.Definition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &apperrors.ErrFileFormat{Path: path, Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	snap := make(domain.Snapshot, len(raw))
	for key, defs := range raw {
		ownerType, err := domain.ParseOwnerType(key)
		if err != nil {
			return nil, &apperrors.ErrFileFormat{Path: path, Reason: err.Error()}
		}
		for i := range defs {
			defs[i].OwnerType = ownerType
			if err := validateDefinition(defs[i]); err != nil {
				return nil, &apperrors.ErrFileFormat{Path: path, Reason: err.Error()}
			}
		}
		snap[ownerType] = defs
	}
	return snap, nil
}

// SaveSnapshot writes an export file atomically. Owner type keys marshal in
// sorted order, definitions keep their in-memory (API) order.
func SaveSnapshot(path string, snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return writeAtomic(path, data)
}

// LoadDiff reads and validates a diff report file
func LoadDiff(path string) ([]domain.DiffEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []domain.DiffEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &apperrors.ErrFileFormat{Path: path, Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	for i, entry := range entries {
		if err := validateDiffEntry(entry); err != nil {
			return nil, &apperrors.ErrFileFormat{Path: path, Reason: fmt.Sprintf("entry %d: %v", i, err)}
		}
		// Definitions nested in a diff don't serialize their owner type;
		// restore it from the entry identity.
		if entries[i].Source != nil {
			entries[i].Source.OwnerType = entry.OwnerType
		}
		if entries[i].Target != nil {
			entries[i].Target.OwnerType = entry.OwnerType
		}
	}
	return entries, nil
}

// SaveDiff writes a diff report atomically, preserving entry order
func SaveDiff(path string, entries []domain.DiffEntry) error {
	if entries == nil {
		entries = []domain.DiffEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal diff: %w", err)
	}
	return writeAtomic(path, data)
}

func validateDefinition(d domain.Definition) error {
	if d.Namespace == "" {
		return fmt.Errorf("definition missing namespace")
	}
	if d.Key == "" {
		return fmt.Errorf("definition %s missing key", d.Namespace)
	}
	if d.Type == "" {
		return fmt.Errorf("definition %s.%s missing type", d.Namespace, d.Key)
	}
	return nil
}

func validateDiffEntry(e domain.DiffEntry) error {
	if !e.OwnerType.IsValid() {
		return fmt.Errorf("unknown owner type %q", string(e.OwnerType))
	}
	if e.Namespace == "" || e.Key == "" {
		return fmt.Errorf("entry missing namespace or key")
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("unknown status %q", string(e.Status))
	}
	switch e.Status {
	case domain.DiffStatusMissingInTarget:
		if e.Source == nil {
			return fmt.Errorf("missing_in_target entry %s has no source definition", e.Identity)
		}
	case domain.DiffStatusExtraInTarget:
		if e.Target == nil {
			return fmt.Errorf("extra_in_target entry %s has no target definition", e.Identity)
		}
	case domain.DiffStatusChanged:
		if e.Source == nil || e.Target == nil {
			return fmt.Errorf("changed entry %s needs both source and target definitions", e.Identity)
		}
		if len(e.ChangedFields) == 0 {
			return fmt.Errorf("changed entry %s has no changed fields", e.Identity)
		}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".metasync-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", tmpName, err)
	}
	return nil
}
