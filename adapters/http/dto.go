package http

import (
	"time"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/user"
)

// Auth DTOs

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

type RegisterResponse struct {
	User UserDTO `json:"user"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// Portfolio DTOs

// PublishPortfolioRequest is the full document the wizard submits. Ownership
// comes from the token, so id and userId are not accepted.
type PublishPortfolioRequest struct {
	Username    string                 `json:"username"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	ProfilePic  string                 `json:"profilePic"`
	Headline    string                 `json:"headline"`
	About       string                 `json:"about"`
	Experiences []portfolio.Experience `json:"experiences"`
	Education   []portfolio.Education  `json:"education"`
	Projects    []portfolio.Project    `json:"projects"`
	Skills      []string               `json:"skills"`
	Socials     portfolio.Socials      `json:"socials"`
	Template    string                 `json:"template"`
}

func (r *PublishPortfolioRequest) ToDomain() portfolio.Portfolio {
	return portfolio.Portfolio{
		Username:    r.Username,
		Name:        r.Name,
		Email:       r.Email,
		ProfilePic:  r.ProfilePic,
		Headline:    r.Headline,
		About:       r.About,
		Experiences: r.Experiences,
		Education:   r.Education,
		Projects:    r.Projects,
		Skills:      r.Skills,
		Socials:     r.Socials,
		Template:    portfolio.Template(r.Template),
	}
}

type PortfolioDTO struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"userId"`
	Username    string                 `json:"username"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	ProfilePic  string                 `json:"profilePic"`
	Headline    string                 `json:"headline"`
	About       string                 `json:"about"`
	Experiences []portfolio.Experience `json:"experiences"`
	Education   []portfolio.Education  `json:"education"`
	Projects    []portfolio.Project    `json:"projects"`
	Skills      []string               `json:"skills"`
	Socials     portfolio.Socials      `json:"socials"`
	Template    string                 `json:"template"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func ToPortfolioDTO(p *portfolio.Portfolio) PortfolioDTO {
	return PortfolioDTO{
		ID:          p.ID.String(),
		UserID:      p.UserID.String(),
		Username:    p.Username,
		Name:        p.Name,
		Email:       p.Email,
		ProfilePic:  p.ProfilePic,
		Headline:    p.Headline,
		About:       p.About,
		Experiences: p.Experiences,
		Education:   p.Education,
		Projects:    p.Projects,
		Skills:      p.Skills,
		Socials:     p.Socials,
		Template:    string(p.Template),
		UpdatedAt:   p.UpdatedAt,
	}
}

type UploadProfilePictureResponse struct {
	URL string `json:"url"`
}
