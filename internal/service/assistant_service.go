package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/repository/memory"
	"research-assistant-be/internal/repository/specification"
	"research-assistant-be/internal/repository/unitofwork"
	"research-assistant-be/pkg/assistant/router"
	"research-assistant-be/pkg/extract"
	"research-assistant-be/pkg/fetch"
	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// IAssistantService defines the conversational assistant interface
type IAssistantService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) error
	ExtractDocument(data []byte) (*dto.ExtractResponse, error)
}

// assistantService coordinates the turn router with persistence
type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
	turnRouter  *router.Router
	extractor   *extract.PDFExtractor
	publisher   IPublisherService
	llmLogger   *log.Logger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	fetcher *fetch.Fetcher,
	sessionRepo *memory.SessionRepository,
	publisher IPublisherService,
) IAssistantService {

	llmLogger := initAssistantLogger()

	return &assistantService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		turnRouter:  router.NewRouter(llmProvider, fetcher, llmLogger),
		extractor:   extract.NewPDFExtractor(),
		publisher:   publisher,
		llmLogger:   llmLogger,
	}
}

func initAssistantLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_assistant.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-ASSISTANT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession creates a new chat session seeded with the greeting
func (as *assistantService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		Title:     constant.DefaultSessionTitle,
		CreatedAt: now,
	}

	greeting := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          constant.InitialGreeting,
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	as.sessionRepo.Save(&store.Session{
		ID:            chatSession.Id.String(),
		Mode:          store.ModeResearch,
		SummaryLength: store.LengthShort,
	})

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

// GetAllSessions retrieves all chat sessions, newest first
func (as *assistantService) GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

// GetChatHistory retrieves chat history for a session
func (as *assistantService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found")
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			Intent:    msg.Intent,
			CreatedAt: msg.CreatedAt,
		})
	}

	return resp, nil
}

// SendChat routes the user turn and persists both sides of the exchange
func (as *assistantService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: request.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if chatSession == nil {
		return nil, fmt.Errorf("session not found")
	}

	sess := as.resolveSession(request)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()

	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          request.Chat,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: request.ChatSessionId,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	result, routeErr := as.turnRouter.Route(ctx, sess, router.Input{
		Text:                 request.Chat,
		AttachedDocumentText: request.AttachedDocumentText,
		Mode:                 sess.Mode,
	})

	reply := constant.GenericFailureReply
	resolvedIntent := ""
	sessionMutated := false
	if routeErr != nil {
		as.llmLogger.Printf("[ERROR] Turn failed for session %s: %v", sess.ID, routeErr)
	} else {
		reply = result.Reply
		resolvedIntent = string(result.Intent)
		sessionMutated = result.SessionMutated
	}

	modelMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          reply,
		Role:          constant.ChatMessageRoleModel,
		Intent:        resolvedIntent,
		ChatSessionId: request.ChatSessionId,
		CreatedAt:     now.Add(1 * time.Second),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &modelMessage); err != nil {
		return nil, err
	}

	if routeErr == nil && chatSession.Title == constant.DefaultSessionTitle {
		chatSession.Title = deriveTitle(request.Chat)
		if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	as.sessionRepo.Save(sess)

	if sessionMutated && as.publisher != nil {
		if err := as.publisher.Publish(ctx, constant.EventSummaryCreated, map[string]interface{}{
			"chat_session_id": chatSession.Id.String(),
			"source_type":     sess.SourceType,
			"intent":          resolvedIntent,
		}); err != nil {
			as.llmLogger.Printf("[WARN] Failed to publish %s: %v", constant.EventSummaryCreated, err)
		}
	}

	return &dto.SendChatResponse{
		ChatSessionId:    chatSession.Id,
		ChatSessionTitle: chatSession.Title,
		Intent:           resolvedIntent,
		SourceType:       sess.SourceType,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Chat:      userMessage.Chat,
			Role:      userMessage.Role,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        modelMessage.Id,
			Chat:      modelMessage.Chat,
			Role:      modelMessage.Role,
			Intent:    modelMessage.Intent,
			CreatedAt: modelMessage.CreatedAt,
		},
	}, nil
}

// resolveSession loads the volatile session state, creating it when the
// cache entry has expired. Request fields override the stored settings.
func (as *assistantService) resolveSession(request *dto.SendChatRequest) *store.Session {
	sessionId := request.ChatSessionId.String()

	sess, found := as.sessionRepo.Get(sessionId)
	if !found {
		sess = &store.Session{
			ID:            sessionId,
			Mode:          store.ModeResearch,
			SummaryLength: store.LengthShort,
		}
	}

	if request.Mode != "" {
		sess.Mode = request.Mode
	}
	if request.SummaryLength != "" {
		sess.SummaryLength = request.SummaryLength
	}

	return sess
}

func deriveTitle(chat string) string {
	runes := []rune(chat)
	if len(runes) > constant.SessionTitleMaxLength {
		return string(runes[:constant.SessionTitleMaxLength])
	}
	return chat
}

// DeleteSession removes a chat session and its volatile state
func (as *assistantService) DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) error {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: request.ChatSessionId})
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}

	as.sessionRepo.Delete(request.ChatSessionId.String())

	return uow.Commit()
}

// ExtractDocument converts an uploaded PDF into plain text
func (as *assistantService) ExtractDocument(data []byte) (*dto.ExtractResponse, error) {
	text, err := as.extractor.Extract(data)
	if err != nil {
		return nil, err
	}
	return &dto.ExtractResponse{
		Text:      text,
		WordCount: fetch.WordCount(text),
	}, nil
}
