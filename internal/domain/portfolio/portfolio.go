package portfolio

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
}

// Socials always serializes all four keys.
type Socials struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Website  string `json:"website"`
}

// Portfolio is the published document. There is at most one per user.
type Portfolio struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Username    string       `json:"username"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	ProfilePic  string       `json:"profilePic"`
	Headline    string       `json:"headline"`
	About       string       `json:"about"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Projects    []Project    `json:"projects"`
	Skills      []string     `json:"skills"`
	Socials     Socials      `json:"socials"`
	Template    Template     `json:"template"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidUsername  = errors.New("username may only contain lowercase letters, numbers, '-' and '_' and must start with a letter or number")
	usernameRegex       = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)
)

// NormalizeUsername is applied both when publishing and when fetching so the
// two sides agree on the key.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Normalize fills every optional field with its empty value so the stored and
// served shape never contains null lists.
func (p *Portfolio) Normalize() {
	p.Username = NormalizeUsername(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	p.Template = Template(strings.ToLower(strings.TrimSpace(string(p.Template))))

	if p.Experiences == nil {
		p.Experiences = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Template == "" {
		p.Template = TemplateDefault
	}
}

func (p *Portfolio) Validate() error {
	if p.Username == "" {
		return ErrUsernameRequired
	}
	if !usernameRegex.MatchString(p.Username) {
		return ErrInvalidUsername
	}
	return nil
}

type Repository interface {
	// Upsert creates or fully replaces the portfolio owned by p.UserID in a
	// single transaction. On success p.ID and p.UpdatedAt hold the persisted
	// values and the username stored before the write is returned ("" on
	// first publish).
	Upsert(ctx context.Context, p *Portfolio) (previousUsername string, err error)
	FindByUsername(ctx context.Context, username string) (*Portfolio, error)
	ListRecent(ctx context.Context, limit int) ([]*Portfolio, error)
}
