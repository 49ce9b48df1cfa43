package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docubot-labs/docubot/internal/adapters/driving/chat"
	"github.com/docubot-labs/docubot/internal/core/domain"
)

type stubAnswer struct {
	answer *domain.Answer
}

func (s *stubAnswer) Answer(context.Context, string) (*domain.Answer, error) {
	return s.answer, nil
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	router := chat.NewRouter(&stubAnswer{answer: &domain.Answer{Text: "42.", Grounded: true}}, nil, nil)
	return NewModel(context.Background(), router)
}

func TestNewModel_ShowsWelcome(t *testing.T) {
	m := newTestModel(t)
	require.NotEmpty(t, m.transcript)
	assert.Contains(t, m.transcript[0], "/list")
}

func TestModel_WindowSizeMakesReady(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	got := updated.(*Model)
	assert.True(t, got.ready)
	assert.Equal(t, 100, got.width)
}

func TestModel_EnterDispatchesQuestion(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("What is the answer?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(*Model)

	assert.True(t, got.waiting)
	require.NotNil(t, cmd)

	// The transcript records the user's line immediately
	joined := strings.Join(got.transcript, "\n")
	assert.Contains(t, joined, "What is the answer?")
}

func TestModel_ReplyAppendsToTranscript(t *testing.T) {
	m := newTestModel(t)
	m.waiting = true

	updated, _ := m.Update(replyMsg{reply: chat.Reply{Text: "42."}})
	got := updated.(*Model)

	assert.False(t, got.waiting)
	assert.Contains(t, strings.Join(got.transcript, "\n"), "42.")
}

func TestModel_QuitReplyEndsSession(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(replyMsg{reply: chat.Reply{Text: "Bye!", Quit: true}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_EmptyEnterIgnored(t *testing.T) {
	m := newTestModel(t)
	before := len(m.transcript)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(*Model)

	assert.Nil(t, cmd)
	assert.False(t, got.waiting)
	assert.Len(t, got.transcript, before)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
