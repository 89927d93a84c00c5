package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, phone, password_hash, avatar, google_id,
	login_otp_hash, login_otp_expires_at, reset_otp_hash, reset_otp_expires_at,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&u.Avatar,
		&u.GoogleID,
		&u.LoginOTPHash,
		&u.LoginOTPExpiresAt,
		&u.ResetOTPHash,
		&u.ResetOTPExpiresAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, name, email, phone, password_hash, avatar, google_id, created_at, updated_at)
        VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Avatar,
		user.GoogleID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with this email or phone already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1;`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = lower($1);`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE phone = $1;`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET name = $1, email = lower($2), phone = $3, password_hash = $4,
            avatar = $5, google_id = $6, updated_at = $7
        WHERE user_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Avatar,
		user.GoogleID,
		user.UpdatedAt,
		user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email or phone already in use: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	// Owned tasks/habits/moods/push subscriptions cascade via FK constraints.
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// otpSlotColumns maps an OTP purpose onto its pair of credential columns.
func otpSlotColumns(purpose domain.OTPPurpose) (hashCol string, expiryCol string, err error) {
	switch purpose {
	case domain.OTPPurposeLogin:
		return "login_otp_hash", "login_otp_expires_at", nil
	case domain.OTPPurposeReset:
		return "reset_otp_hash", "reset_otp_expires_at", nil
	default:
		return "", "", fmt.Errorf("unknown OTP purpose %q: %w", purpose, apperrors.ErrValidation)
	}
}

func (r *PgxUserRepository) SetOTP(ctx context.Context, userID string, purpose domain.OTPPurpose, otpHash string, expiresAt time.Time) error {
	hashCol, expiryCol, err := otpSlotColumns(purpose)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE users SET %s = $1, %s = $2 WHERE user_id = $3;`, hashCol, expiryCol)
	cmdTag, err := r.db.Exec(ctx, query, otpHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set %s OTP: %w", purpose, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearOTP(ctx context.Context, userID string, purpose domain.OTPPurpose) error {
	hashCol, expiryCol, err := otpSlotColumns(purpose)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE users SET %s = NULL, %s = NULL WHERE user_id = $1;`, hashCol, expiryCol)
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear %s OTP: %w", purpose, err)
	}
	return nil
}

// ConsumeOTP clears the slot and returns the user in one conditional UPDATE.
// Postgres single-statement atomicity is what makes the code single-use: of two
// concurrent verifications only one statement matches the still-set digest.
func (r *PgxUserRepository) ConsumeOTP(ctx context.Context, email string, purpose domain.OTPPurpose, otpHash string) (*domain.User, error) {
	hashCol, expiryCol, err := otpSlotColumns(purpose)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
        UPDATE users
        SET %[1]s = NULL, %[2]s = NULL
        WHERE email = lower($1) AND %[1]s = $2 AND %[2]s > now()
        RETURNING %[3]s;
    `, hashCol, expiryCol, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, email, otpHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Wrong code, expired, already consumed, or no such user: one error.
			return nil, apperrors.ErrInvalidOrExpiredCode
		}
		return nil, fmt.Errorf("failed to consume %s OTP: %w", purpose, err)
	}
	return user, nil
}
