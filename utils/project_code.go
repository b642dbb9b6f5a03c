package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// GenerateProjectCode generates a unique project code in the format PRJ-YYYY-NNNN
// where YYYY is the current year and NNNN is a sequential number within the organization.
func GenerateProjectCode(ctx context.Context, db interface{}, organizationID string) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("PRJ-%d-", year)

	// Query to find the latest project code for this year
	query := `
		SELECT code
		FROM projects
		WHERE organization_id = $1 AND code LIKE $2
		ORDER BY code DESC
		LIMIT 1
	`
	pattern := fmt.Sprintf("PRJ-%d-%%", year)

	var lastCode string
	var err error

	// Handle both pgxpool.Pool and pgx.Tx types
	switch v := db.(type) {
	case *pgxpool.Pool:
		err = v.QueryRow(ctx, query, organizationID, pattern).Scan(&lastCode)
	case pgx.Tx:
		err = v.QueryRow(ctx, query, organizationID, pattern).Scan(&lastCode)
	default:
		return "", fmt.Errorf("unsupported database type")
	}

	// If no project exists for this year, start at 0001
	if err != nil {
		if err.Error() == "no rows in result set" {
			return fmt.Sprintf("%s%04d", prefix, 1), nil
		}
		return "", fmt.Errorf("failed to query last project code: %w", err)
	}

	// Extract the sequential number from the last code
	var lastSeq int
	_, err = fmt.Sscanf(lastCode, prefix+"%d", &lastSeq)
	if err != nil {
		// If parsing fails, start fresh
		return fmt.Sprintf("%s%04d", prefix, 1), nil
	}

	newSeq := lastSeq + 1
	return fmt.Sprintf("%s%04d", prefix, newSeq), nil
}
