package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pagalworld/verifybot/core/logger"
)

// EnsureOwner restores the invariant that the configured owner account is
// a super-admin on the roster. A missing row is created under a
// placeholder username, a demoted row is promoted back. Creation is
// skipped when the placeholder username is already taken by another row;
// that state is left for an operator to resolve.
func (s *PostgresStore) EnsureOwner(ctx context.Context, ownerID int64) error {
	owner, err := s.FindByUserID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("roster ensure_owner: %w", err)
	}

	if owner == nil {
		placeholder := OwnerPlaceholderUsername(ownerID)
		taken, err := s.FindByUsername(ctx, placeholder)
		if err != nil {
			return fmt.Errorf("roster ensure_owner: %w", err)
		}
		if taken != nil {
			logger.LogEvent(ctx, logger.SEED, slog.LevelWarn, "owner.placeholder_taken",
				slog.Int64("admin_id", taken.ID),
				slog.String("username", placeholder),
			)
			return nil
		}
		created, err := s.createOwner(ctx, ownerID, placeholder)
		if err != nil {
			return fmt.Errorf("roster ensure_owner: %w", err)
		}
		logger.LogEvent(ctx, logger.SEED, slog.LevelInfo, "owner.created",
			slog.Int64("admin_id", created.ID),
			slog.Int64("user_id", ownerID),
			slog.String("username", placeholder),
		)
		return nil
	}

	if !owner.IsSuperAdmin {
		if err := s.SetRole(ctx, owner.ID, true); err != nil {
			return fmt.Errorf("roster ensure_owner: %w", err)
		}
		logger.LogEvent(ctx, logger.SEED, slog.LevelInfo, "owner.promoted",
			slog.Int64("admin_id", owner.ID),
			slog.Int64("user_id", ownerID),
		)
		return nil
	}

	logger.LogEvent(ctx, logger.SEED, slog.LevelInfo, "owner.ok",
		slog.Int64("admin_id", owner.ID),
		slog.Int64("user_id", ownerID),
	)
	return nil
}

func (s *PostgresStore) createOwner(ctx context.Context, ownerID int64, username string) (*Admin, error) {
	var admin Admin
	err := s.db.GetContext(ctx, &admin,
		"INSERT INTO admins (user_id, username, is_super_admin) VALUES ($1, $2, TRUE) RETURNING "+adminColumns,
		ownerID, username)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
