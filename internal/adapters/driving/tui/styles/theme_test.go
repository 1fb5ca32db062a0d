package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

func TestDefaultTheme_StatusColoursDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]string)
	for name, c := range map[string]lipgloss.Color{
		"primary":   theme.Primary,
		"secondary": theme.Secondary,
		"success":   theme.Success,
		"warning":   theme.Warning,
		"error":     theme.Error,
	} {
		require.NotEmpty(t, string(c), name)
		if other, dup := seen[c]; dup {
			t.Errorf("%s and %s share %s", name, other, c)
		}
		seen[c] = name
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles.Theme())
	assert.Equal(t, DefaultTheme(), styles.Theme())
	assert.Equal(t, DefaultTheme().Primary, styles.Title.GetForeground())
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Warning = "#FFAA00"
	theme.KeywordML = "#0000FF"

	styles := NewStyles(theme)

	assert.Same(t, theme, styles.Theme())
	assert.Equal(t, lipgloss.Color("#FFAA00"), styles.Warning.GetForeground())
	assert.Equal(t, lipgloss.Color("#0000FF"), styles.Keyword(domain.KeywordML).GetForeground())
}

func TestStyles_Attributes(t *testing.T) {
	styles := DefaultStyles()

	assert.True(t, styles.Title.GetBold())
	assert.True(t, styles.Header.GetUnderline())
	assert.True(t, styles.Selected.GetBold())
	assert.Equal(t, DefaultTheme().Primary, styles.Selected.GetBackground())
	assert.Equal(t, DefaultTheme().Bar, styles.StatusBar.GetBackground())
	assert.Equal(t, 2, styles.InputField.GetHorizontalPadding())
}

func TestStyles_KeywordColours(t *testing.T) {
	styles := DefaultStyles()

	tests := []struct {
		kind domain.KeywordType
		want lipgloss.Color
	}{
		{domain.KeywordManual, "#A6A6A6"},
		{domain.KeywordModelType, "#66FF66"},
		{domain.KeywordML, "#3399FF"},
		{domain.KeywordType("OTHER"), "#A6A6A6"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, styles.Keyword(tt.kind).GetForeground())
		})
	}
}

func TestStyles_Level(t *testing.T) {
	styles := DefaultStyles()
	theme := styles.Theme()

	assert.Equal(t, theme.Error, styles.Level(domain.NotifyError).GetForeground())
	assert.Equal(t, theme.Warning, styles.Level(domain.NotifyWarning).GetForeground())
	assert.Equal(t, theme.Success, styles.Level(domain.NotifyInfo).GetForeground())
}
