package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FillsDefaults(t *testing.T) {
	p := &Portfolio{Username: "  Jane ", Name: "Jane"}

	p.Normalize()

	assert.Equal(t, "jane", p.Username)
	assert.Equal(t, TemplateDefault, p.Template)
	assert.NotNil(t, p.Experiences)
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Projects)
	assert.NotNil(t, p.Skills)

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var shape map[string]any
	require.NoError(t, json.Unmarshal(raw, &shape))
	assert.Equal(t, []any{}, shape["skills"])
	assert.Equal(t, []any{}, shape["experiences"])
	assert.Equal(t, map[string]any{"github": "", "linkedin": "", "twitter": "", "website": ""}, shape["socials"])
}

func TestNormalize_KeepsProvidedValues(t *testing.T) {
	p := &Portfolio{
		Username: "jane",
		Skills:   []string{"go", "sql"},
		Template: " Modern ",
		Socials:  Socials{GitHub: "https://github.com/jane"},
	}

	p.Normalize()

	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, TemplateModern, p.Template)
	assert.Equal(t, "https://github.com/jane", p.Socials.GitHub)
	assert.Empty(t, p.Socials.Twitter)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		username string
		wantErr  error
	}{
		{"", ErrUsernameRequired},
		{"jane", nil},
		{"jane-doe_2", nil},
		{"-jane", ErrInvalidUsername},
		{"jane doe", ErrInvalidUsername},
		{"jane/../admin", ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			p := &Portfolio{Username: tt.username}
			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTemplateResolve(t *testing.T) {
	assert.Equal(t, TemplateMinimal, TemplateMinimal.Resolve())
	assert.Equal(t, TemplateDark, TemplateDark.Resolve())
	assert.Equal(t, TemplateDefault, Template("").Resolve())
	assert.Equal(t, TemplateDefault, Template("retro").Resolve())
	assert.Len(t, Templates(), 5)
}
