package telegram

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	app "label-image-tool/internal/application"
	"label-image-tool/internal/domain/entity"
	"label-image-tool/internal/infrastructure/storage"
)

type fakeLabeler struct {
	result entity.ClassificationResult
	got    []entity.Invocation
}

func (f *fakeLabeler) Run(ctx context.Context, inv entity.Invocation) entity.ClassificationResult {
	f.got = append(f.got, inv)
	return f.result
}

func (f *fakeLabeler) ClassifyImage(ctx context.Context, image []byte) (entity.ClassificationResult, error) {
	return f.result, nil
}

// telegramServer отвечает на getMe и sendMessage и запоминает тексты
type telegramServer struct {
	mu    sync.Mutex
	texts []string
}

func (s *telegramServer) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func (s *telegramServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"label_bot"}}`)
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		s.mu.Lock()
		s.texts = append(s.texts, r.PostForm.Get("text"))
		s.mu.Unlock()
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":10,"type":"private"}}}`)
	default:
		http.NotFound(w, r)
	}
}

func newTestBot(t *testing.T, labeler Labeler) (*Bot, *telegramServer, *app.SessionService) {
	t.Helper()
	ts := &telegramServer{}
	srv := httptest.NewServer(ts)
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("token", srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	sessions := app.NewSessionService(storage.NewMemorySessionRepository())
	defaults := func(recordID string) entity.Properties {
		return entity.Properties{
			entity.PropRecordID:  recordID,
			entity.PropFormDefID: "F1",
		}
	}
	return newBot(api, sessions, labeler, defaults, slog.New(slog.NewTextHandler(io.Discard, nil))), ts, sessions
}

func command(text string) *tgbotapi.Message {
	name := strings.Fields(text)[0]
	return &tgbotapi.Message{
		From:     &tgbotapi.User{ID: 1},
		Chat:     &tgbotapi.Chat{ID: 10},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

func TestBot_LabelWithRecordID(t *testing.T) {
	labeler := &fakeLabeler{result: entity.ClassificationResult{Label: "tabby", Probability: 87.43}}
	bot, ts, sessions := newTestBot(t, labeler)
	ctx := context.Background()

	bot.handleMessage(ctx, command("/label R1"))

	require.Len(t, labeler.got, 1)
	require.Equal(t, "R1", labeler.got[0].RecordID)
	require.Equal(t, "F1", labeler.got[0].FormDefID)
	require.Contains(t, ts.sent(), "🏷 tabby (87.43%)")

	s, err := sessions.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, s.State)
}

func TestBot_LabelAsksForRecordThenRuns(t *testing.T) {
	labeler := &fakeLabeler{result: entity.FallbackResult()}
	bot, ts, sessions := newTestBot(t, labeler)
	ctx := context.Background()

	bot.handleMessage(ctx, command("/label"))
	s, err := sessions.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingRecord, s.State)
	require.Empty(t, labeler.got)

	bot.handleMessage(ctx, &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1},
		Chat: &tgbotapi.Chat{ID: 10},
		Text: " R7 ",
	})
	require.Len(t, labeler.got, 1)
	require.Equal(t, "R7", labeler.got[0].RecordID)
	require.Contains(t, ts.sent(), "⚠️ Не удалось классифицировать фото записи R7.")
}

func TestBot_TextInMainMenuAsksForPhoto(t *testing.T) {
	labeler := &fakeLabeler{}
	bot, ts, _ := newTestBot(t, labeler)

	bot.handleMessage(context.Background(), &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1},
		Chat: &tgbotapi.Chat{ID: 10},
		Text: "hello",
	})
	require.Empty(t, labeler.got)
	require.Equal(t, []string{msgSendPhoto}, ts.sent())
}
