// Package postgres implements model.Directory on PostgreSQL for self-hosted and
// local deployments.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/idlink/internal/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	statusConfirmed = "CONFIRMED"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ model.Directory = (*Directory)(nil)

type Directory struct {
	db       querier
	hashCost int
}

func NewDirectory(db *Connection) *Directory {
	return &Directory{
		db:       db,
		hashCost: bcrypt.DefaultCost,
	}
}

func (d *Directory) FindByEmail(ctx context.Context, directoryID, email string) (model.DirectoryUser, bool, error) {
	// The window count is evaluated before LIMIT, so one row carries the match total.
	query := `SELECT username, email, attributes, count(*) OVER ()
			  FROM directory_users
			  WHERE directory_id = $1 AND lower(email) = lower($2)
			  ORDER BY created_at, username
			  LIMIT 1`

	var (
		user    model.DirectoryUser
		matches int64
	)
	err := d.db.QueryRow(ctx, query, directoryID, email).Scan(&user.Username, &user.Email, &user.Attributes, &matches)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.DirectoryUser{}, false, nil
		}
		return model.DirectoryUser{}, false, mapError("find user by email", err)
	}

	if matches > 1 {
		return model.DirectoryUser{}, false, fmt.Errorf("%w: %s", model.ErrAmbiguousUser, email)
	}

	return user, true, nil
}

func (d *Directory) CreateNativeUser(ctx context.Context, directoryID string, profile model.NativeProfile) (model.DirectoryUser, error) {
	attrs, err := encodeAttributes(profile.Attributes())
	if err != nil {
		return model.DirectoryUser{}, err
	}

	query := `INSERT INTO directory_users (directory_id, username, email, attributes)
			  VALUES ($1, $2, $3, $4::jsonb)
			  RETURNING username, email, attributes`

	var user model.DirectoryUser
	err = d.db.QueryRow(ctx, query, directoryID, profile.Email, profile.Email, attrs).Scan(
		&user.Username, &user.Email, &user.Attributes,
	)
	if err != nil {
		return model.DirectoryUser{}, mapError("create user", err)
	}

	return user, nil
}

func (d *Directory) SetPermanentPassword(ctx context.Context, directoryID, username, secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), d.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `UPDATE directory_users
			  SET password_hash = $3, status = $4, updated_at = now()
			  WHERE directory_id = $1 AND username = $2`

	tag, err := d.db.Exec(ctx, query, directoryID, username, hash, statusConfirmed)
	if err != nil {
		return mapError("set user password", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to set user password: %w: %s", model.ErrUserNotFound, username)
	}

	return nil
}

func (d *Directory) LinkFederatedIdentity(ctx context.Context, directoryID, username string, identity model.FederatedIdentity) error {
	insert := `INSERT INTO federated_identities (directory_id, provider_name, provider_subject_id, username)
			   VALUES ($1, $2, $3, $4)
			   ON CONFLICT (directory_id, provider_name, provider_subject_id) DO NOTHING`

	tag, err := d.db.Exec(ctx, insert, directoryID, identity.ProviderName, identity.ProviderSubjectID, username)
	if err != nil {
		return mapError("link federated identity", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	owner := `SELECT username FROM federated_identities
			  WHERE directory_id = $1 AND provider_name = $2 AND provider_subject_id = $3`

	var linkedTo string
	err = d.db.QueryRow(ctx, owner, directoryID, identity.ProviderName, identity.ProviderSubjectID).Scan(&linkedTo)
	if err != nil {
		return mapError("get federated identity owner", err)
	}

	if linkedTo != username {
		return fmt.Errorf("failed to link %s to %s: %w (owner %s)", identity, username, model.ErrAlreadyLinked, linkedTo)
	}

	return nil
}

func (d *Directory) UpdateAttributes(ctx context.Context, directoryID, username string, updates ...model.AttributeUpdate) error {
	if err := model.ValidateUpdates(updates); err != nil {
		return err
	}

	attrs, err := encodeAttributes(updates)
	if err != nil {
		return err
	}

	query := `UPDATE directory_users
			  SET attributes = attributes || $3::jsonb,
			      email = COALESCE($3::jsonb ->> 'email', email),
			      updated_at = now()
			  WHERE directory_id = $1 AND username = $2`

	tag, err := d.db.Exec(ctx, query, directoryID, username, attrs)
	if err != nil {
		return mapError("update user attributes", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update user attributes: %w: %s", model.ErrUserNotFound, username)
	}

	return nil
}

func encodeAttributes(updates []model.AttributeUpdate) (string, error) {
	m := make(map[string]string, len(updates))
	for _, u := range updates {
		m[string(u.Key)] = u.Value
	}

	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode attributes: %w", err)
	}

	return string(b), nil
}

func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUserAlreadyExists, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("failed to %s: %w: %w", op, model.ErrUserNotFound, err)
		}
	}

	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrDirectoryUnavailable, err)
}
