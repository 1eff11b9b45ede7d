package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository backed by Postgres.
func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// InsertBatch writes the whole fan-out in one transaction with a prepared
// statement, so a 100k-farmer audience is one round of inserts rather than
// 100k independent commits.
func (r *notificationRepository) InsertBatch(ctx context.Context, ns []entity.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, related_id, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, n := range ns {
		_, err := stmt.ExecContext(ctx, n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.RelatedID, n.IsRead, n.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert notification for %s: %w", n.RecipientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindForRecipient(ctx context.Context, recipientID string, onlyUnread bool, limit int) ([]entity.Notification, error) {
	query := `SELECT id, recipient_id, sender_id, type, title, message, related_id, is_read, created_at
		FROM notifications WHERE recipient_id = $1`
	if onlyUnread {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $2"

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var ns []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2",
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return requireRow(res)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, recipientID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE id = $1 AND recipient_id = $2",
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return requireRow(res)
}
