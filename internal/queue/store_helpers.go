package queue

import (
	"database/sql"
	"time"
)

const itemColumns = "id, source_path, working_path, status, type_label, provenance, category, destination, final_path, move_kind, rename_suffix, error_message, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id           int64
		sourcePath   string
		workingPath  sql.NullString
		statusStr    string
		typeLabel    sql.NullString
		provenance   sql.NullString
		category     sql.NullString
		destination  sql.NullString
		finalPath    sql.NullString
		moveKind     sql.NullString
		renameSuffix sql.NullString
		errorMessage sql.NullString
		createdRaw   string
		updatedRaw   string
	)

	if err := scanner.Scan(
		&id,
		&sourcePath,
		&workingPath,
		&statusStr,
		&typeLabel,
		&provenance,
		&category,
		&destination,
		&finalPath,
		&moveKind,
		&renameSuffix,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:           id,
		SourcePath:   sourcePath,
		WorkingPath:  workingPath.String,
		Status:       Status(statusStr),
		TypeLabel:    typeLabel.String,
		Provenance:   Provenance(provenance.String),
		Category:     category.String,
		Destination:  destination.String,
		FinalPath:    finalPath.String,
		MoveKind:     MoveKind(moveKind.String),
		RenameSuffix: renameSuffix.String,
		ErrorMessage: errorMessage.String,
	}
	if item.WorkingPath == "" {
		item.WorkingPath = sourcePath
	}
	item.CreatedAt = parseTimestamp(createdRaw)
	item.UpdatedAt = parseTimestamp(updatedRaw)
	return item, nil
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
