package cli

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/upstream/internal/model"
	"github.com/inovacc/upstream/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForm struct {
	fields    settings.Fields
	fieldsErr error
	submitErr error
	submitted []model.Record
}

func (f *fakeForm) Fields() (settings.Fields, error) {
	return f.fields, f.fieldsErr
}

func (f *fakeForm) Submit(raw model.Record) error {
	f.submitted = append(f.submitted, raw)

	return f.submitErr
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m *ConfigureModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewConfigureModel_Defaults(t *testing.T) {
	m, err := NewConfigureModel(&fakeForm{fields: settings.Fields{UpdateType: model.UpdateTypePlugin}})
	require.NoError(t, err)

	assert.Equal(t, model.UpdateTypePlugin, m.UpdateType())
	assert.Equal(t, model.Record{
		model.KeyUpdateType:  "plugin",
		model.KeyRepoURL:     "",
		model.KeyAccessToken: "",
	}, m.Record())
}

func TestNewConfigureModel_Prefills(t *testing.T) {
	m, err := NewConfigureModel(&fakeForm{fields: settings.Fields{
		UpdateType:  model.UpdateTypeBoth,
		RepoURL:     "https://github.com/acme/widget",
		AccessToken: "tok123",
	}})
	require.NoError(t, err)

	assert.Equal(t, model.UpdateTypeBoth, m.UpdateType())
	assert.Equal(t, "https://github.com/acme/widget", m.Record()[model.KeyRepoURL])
	assert.Equal(t, "tok123", m.Record()[model.KeyAccessToken])
	assert.NotContains(t, m.View(), "tok123")
}

func TestNewConfigureModel_FieldsError(t *testing.T) {
	_, err := NewConfigureModel(&fakeForm{fieldsErr: errors.New("boom")})
	assert.Error(t, err)
}

func TestConfigureModel_SelectCycles(t *testing.T) {
	m, err := NewConfigureModel(&fakeForm{fields: settings.Fields{UpdateType: model.UpdateTypePlugin}})
	require.NoError(t, err)

	m.Update(key(tea.KeyRight))
	assert.Equal(t, model.UpdateTypeTheme, m.UpdateType())

	m.Update(key(tea.KeyRight))
	m.Update(key(tea.KeyRight))
	assert.Equal(t, model.UpdateTypePlugin, m.UpdateType())

	m.Update(key(tea.KeyLeft))
	assert.Equal(t, model.UpdateTypeBoth, m.UpdateType())
}

func TestConfigureModel_FillAndSubmit(t *testing.T) {
	form := &fakeForm{fields: settings.Fields{UpdateType: model.UpdateTypePlugin}}

	m, err := NewConfigureModel(form)
	require.NoError(t, err)

	m.Update(key(tea.KeyRight))
	m.Update(key(tea.KeyTab))
	typeText(m, "https://github.com/acme/widget")
	m.Update(key(tea.KeyTab))
	typeText(m, "tok123")
	m.Update(key(tea.KeyTab))

	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.IsType(t, successMsg{}, msg)

	require.Len(t, form.submitted, 1)
	assert.Equal(t, model.Record{
		model.KeyUpdateType:  "theme",
		model.KeyRepoURL:     "https://github.com/acme/widget",
		model.KeyAccessToken: "tok123",
	}, form.submitted[0])

	m.Update(msg)
	assert.True(t, m.Saved)
	assert.Contains(t, m.View(), "saved")
}

func TestConfigureModel_SubmitError(t *testing.T) {
	form := &fakeForm{submitErr: errors.New("disk full")}

	m, err := NewConfigureModel(form)
	require.NoError(t, err)

	m.Update(key(tea.KeyShiftTab))

	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)

	m.Update(cmd())
	require.Error(t, m.Err)
	assert.Contains(t, m.View(), "disk full")
}

func TestConfigureModel_ViewShowsHelp(t *testing.T) {
	m, err := NewConfigureModel(&fakeForm{})
	require.NoError(t, err)

	view := m.View()
	assert.Contains(t, view, settings.Banner)
	assert.Contains(t, view, settings.RepoURLHelp)
	assert.Contains(t, view, settings.AccessTokenHelp)
	assert.Contains(t, view, "Both (Auto-detect)")
}
