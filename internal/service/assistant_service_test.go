package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/memory"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/assistant/router"
	"research-assistant-be/pkg/extract"
	"research-assistant-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

type fakeSessionRepo struct {
	session       *entity.ChatSession
	updatedTitles []string
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.updatedTitles = append(r.updatedTitles, session.Title)
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	return r.session, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeMessageRepo struct {
	created []*entity.ChatMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.created = append(r.created, message)
	return nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, message *entity.ChatMessage) error { return nil }
func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }
func (r *fakeMessageRepo) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return nil, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeRunRepo struct{}

func (r *fakeRunRepo) Create(ctx context.Context, run *entity.ResearchRun) error { return nil }
func (r *fakeRunRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchRun, error) {
	return nil, nil
}

func (r *fakeRunRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchRun, error) {
	return nil, nil
}

func (r *fakeRunRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeUnitOfWork struct {
	sessions  *fakeSessionRepo
	messages  *fakeMessageRepo
	runs      *fakeRunRepo
	committed bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error {
	u.committed = true
	return nil
}
func (u *fakeUnitOfWork) Rollback() error { return nil }

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository { return u.sessions }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *fakeUnitOfWork) ResearchRunRepository() contract.ResearchRunRepository { return u.runs }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newTestAssistantService(provider llm.LLMProvider, uow *fakeUnitOfWork) *assistantService {
	discard := log.New(io.Discard, "", 0)
	return &assistantService{
		uowFactory:  &fakeFactory{uow: uow},
		sessionRepo: memory.NewSessionRepository(),
		turnRouter:  router.NewRouter(provider, nil, discard),
		extractor:   extract.NewPDFExtractor(),
		llmLogger:   discard,
	}
}

func newFakeUnitOfWork(title string) *fakeUnitOfWork {
	return &fakeUnitOfWork{
		sessions: &fakeSessionRepo{
			session: &entity.ChatSession{Id: uuid.New(), Title: title},
		},
		messages: &fakeMessageRepo{},
		runs:     &fakeRunRepo{},
	}
}

func TestSendChatSuccessSetsTitle(t *testing.T) {
	uow := newFakeUnitOfWork(constant.DefaultSessionTitle)
	svc := newTestAssistantService(&stubProvider{reply: "The moon is a rocky satellite."}, uow)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		ChatSessionId: uow.sessions.session.Id,
		Chat:          "Tell me about the moon",
	})
	require.NoError(t, err)

	assert.Equal(t, "Tell me about the moon", resp.ChatSessionTitle)
	assert.Equal(t, []string{"Tell me about the moon"}, uow.sessions.updatedTitles)
	assert.True(t, uow.committed)
}

func TestSendChatFailureKeepsDefaultTitle(t *testing.T) {
	uow := newFakeUnitOfWork(constant.DefaultSessionTitle)
	svc := newTestAssistantService(&stubProvider{err: errors.New("backend down")}, uow)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		ChatSessionId: uow.sessions.session.Id,
		Chat:          "Tell me about the moon",
	})
	require.NoError(t, err)

	// A failed turn still persists both messages, but never names the session
	assert.Equal(t, constant.DefaultSessionTitle, resp.ChatSessionTitle)
	assert.Empty(t, uow.sessions.updatedTitles)
	assert.Equal(t, constant.GenericFailureReply, resp.Reply.Chat)
	assert.Empty(t, resp.Intent)
	assert.True(t, uow.committed)
	require.Len(t, uow.messages.created, 2)
}

func TestSendChatKeepsExistingTitle(t *testing.T) {
	uow := newFakeUnitOfWork("Moon research")
	svc := newTestAssistantService(&stubProvider{reply: "ok"}, uow)

	resp, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		ChatSessionId: uow.sessions.session.Id,
		Chat:          "Another question",
	})
	require.NoError(t, err)

	assert.Equal(t, "Moon research", resp.ChatSessionTitle)
	assert.Empty(t, uow.sessions.updatedTitles)
}
