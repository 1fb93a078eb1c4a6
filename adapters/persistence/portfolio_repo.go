package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var portfolioColumns = []string{
	"id", "user_id", "username", "name", "email", "profile_pic", "headline", "about",
	"experiences", "education", "projects", "skills", "socials", "template", "updated_at",
}

const upsertPortfolioSuffix = `ON CONFLICT (user_id) DO UPDATE SET
	username = EXCLUDED.username,
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	profile_pic = EXCLUDED.profile_pic,
	headline = EXCLUDED.headline,
	about = EXCLUDED.about,
	experiences = EXCLUDED.experiences,
	education = EXCLUDED.education,
	projects = EXCLUDED.projects,
	skills = EXCLUDED.skills,
	socials = EXCLUDED.socials,
	template = EXCLUDED.template,
	updated_at = EXCLUDED.updated_at
RETURNING id, updated_at`

const lockOwnerQuery = `
	SELECT COALESCE(p.username, '')
	FROM users u
	LEFT JOIN portfolio p ON p.user_id = u.id
	WHERE u.id = $1
	FOR UPDATE OF u`

type postgresPortfolioRepo struct {
	db     DBTX
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db DBTX, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

type portfolioDocs struct {
	experiences []byte
	education   []byte
	projects    []byte
	skills      []byte
	socials     []byte
}

func marshalDocs(p *portfolio.Portfolio) (portfolioDocs, error) {
	var d portfolioDocs
	var err error
	if d.experiences, err = json.Marshal(p.Experiences); err != nil {
		return d, fmt.Errorf("marshal experiences: %w", err)
	}
	if d.education, err = json.Marshal(p.Education); err != nil {
		return d, fmt.Errorf("marshal education: %w", err)
	}
	if d.projects, err = json.Marshal(p.Projects); err != nil {
		return d, fmt.Errorf("marshal projects: %w", err)
	}
	if d.skills, err = json.Marshal(p.Skills); err != nil {
		return d, fmt.Errorf("marshal skills: %w", err)
	}
	if d.socials, err = json.Marshal(p.Socials); err != nil {
		return d, fmt.Errorf("marshal socials: %w", err)
	}
	return d, nil
}

// Upsert locks the owning user row so publishes by the same user serialize,
// reads the username being replaced, then writes the whole document with
// ON CONFLICT (user_id).
func (r *postgresPortfolioRepo) Upsert(ctx context.Context, p *portfolio.Portfolio) (previousUsername string, err error) {
	docs, err := marshalDocs(p)
	if err != nil {
		return "", apperror.NewInternal("failed to encode portfolio", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", apperror.NewStorage("Failed to save portfolio", "begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Warn("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRow(ctx, lockOwnerQuery, p.UserID).Scan(&previousUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperror.NewUnauthorized("Unauthorized", "portfolio owner does not exist", err)
		}
		return "", apperror.NewStorage("Failed to save portfolio", "lock portfolio owner", err)
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query, args, err := psql.Insert("portfolio").
		Columns(portfolioColumns...).
		Values(
			id, p.UserID, p.Username, p.Name, p.Email, p.ProfilePic, p.Headline, p.About,
			docs.experiences, docs.education, docs.projects, docs.skills, docs.socials,
			string(p.Template), p.UpdatedAt,
		).
		Suffix(upsertPortfolioSuffix).
		ToSql()
	if err != nil {
		return "", apperror.NewInternal("failed to build upsert query", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&p.ID, &p.UpdatedAt); err != nil {
		return "", mapPortfolioWriteError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", mapPortfolioWriteError(err)
	}
	return previousUsername, nil
}

func mapPortfolioWriteError(err error) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == "portfolio_username_key":
		return apperror.NewConflict("Username already taken", "portfolio_username_key violated")
	case code == pgForeignKeyViolation:
		return apperror.NewUnauthorized("Unauthorized", "portfolio owner does not exist", err)
	default:
		return apperror.NewStorage("Failed to save portfolio", "upsert portfolio", err)
	}
}

func (r *postgresPortfolioRepo) FindByUsername(ctx context.Context, username string) (*portfolio.Portfolio, error) {
	query, args, err := psql.Select(portfolioColumns...).
		From("portfolio").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build query", err)
	}

	p, err := r.scanPortfolio(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("Portfolio", username)
		}
		return nil, apperror.NewStorage("Failed to load portfolio", "query portfolio by username", err)
	}
	return p, nil
}

func (r *postgresPortfolioRepo) ListRecent(ctx context.Context, limit int) ([]*portfolio.Portfolio, error) {
	query, args, err := psql.Select(portfolioColumns...).
		From("portfolio").
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewStorage("Failed to list portfolios", "query recent portfolios", err)
	}
	defer rows.Close()

	portfolios := make([]*portfolio.Portfolio, 0, limit)
	for rows.Next() {
		p, err := r.scanPortfolio(rows)
		if err != nil {
			return nil, apperror.NewStorage("Failed to list portfolios", "scan portfolio row", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStorage("Failed to list portfolios", "iterate portfolio rows", err)
	}
	return portfolios, nil
}

func (r *postgresPortfolioRepo) scanPortfolio(row pgx.Row) (*portfolio.Portfolio, error) {
	p := &portfolio.Portfolio{}
	var docs portfolioDocs
	var template string

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Username,
		&p.Name,
		&p.Email,
		&p.ProfilePic,
		&p.Headline,
		&p.About,
		&docs.experiences,
		&docs.education,
		&docs.projects,
		&docs.skills,
		&docs.socials,
		&template,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Template = portfolio.Template(template)

	r.decode(p, "experiences", docs.experiences, &p.Experiences)
	r.decode(p, "education", docs.education, &p.Education)
	r.decode(p, "projects", docs.projects, &p.Projects)
	r.decode(p, "skills", docs.skills, &p.Skills)
	r.decode(p, "socials", docs.socials, &p.Socials)

	p.Normalize()
	return p, nil
}

// decode leaves dst at its zero value when a stored column cannot be parsed.
func (r *postgresPortfolioRepo) decode(p *portfolio.Portfolio, column string, raw []byte, dst any) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("Ignoring malformed portfolio column",
			zap.String("column", column),
			zap.String("portfolio_id", p.ID.String()),
			zap.Error(err),
		)
	}
}
