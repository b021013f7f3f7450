package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/services"
)

type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Text
}

func (f *fakeAPI) anySent(fragment string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.sent {
		if strings.Contains(m.Text, fragment) {
			return true
		}
	}
	return false
}

func (f *fakeAPI) callbackAnswers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.requests {
		if cb, ok := r.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb.Text)
		}
	}
	return out
}

func (f *fakeAPI) deleted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if _, ok := r.(tgbotapi.DeleteMessageConfig); ok {
			n++
		}
	}
	return n
}

type fakeBackend struct {
	users    map[string]string // email -> password
	tasks    map[int]models.Task
	profiles []models.Profile
	nextID   int
	signOuts int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: map[string]string{"ama@example.com": "secret1"},
		tasks: map[int]models.Task{},
	}
}

func (f *fakeBackend) SignIn(_ context.Context, email, password string, chatID int64) (*models.User, error) {
	if pw, ok := f.users[email]; !ok || pw != password {
		return nil, services.ErrInvalidCredentials
	}
	return &models.User{ID: "u-" + email, Email: email, ChatID: chatID}, nil
}

func (f *fakeBackend) SignUp(_ context.Context, email, password string, chatID int64) (*models.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, services.ErrUserExists
	}
	f.users[email] = password
	return &models.User{ID: "u-" + email, Email: email, ChatID: chatID}, nil
}

func (f *fakeBackend) SignOut(context.Context, string) error {
	f.signOuts++
	return nil
}

func (f *fakeBackend) ListTasks(_ context.Context, ownerID string) ([]models.Task, error) {
	var out []models.Task
	for id := 1; id <= f.nextID; id++ {
		if t, ok := f.tasks[id]; ok && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetTask(_ context.Context, ownerID string, id int) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, services.ErrNotFound
	}
	return &t, nil
}

func (f *fakeBackend) InsertTask(_ context.Context, t models.Task) (*models.Task, error) {
	f.nextID++
	t.ID = f.nextID
	f.tasks[t.ID] = t
	return &t, nil
}

func (f *fakeBackend) UpdateTask(_ context.Context, t models.Task) error {
	old, ok := f.tasks[t.ID]
	if !ok || old.OwnerID != t.OwnerID {
		return services.ErrNotFound
	}
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeBackend) DeleteTask(_ context.Context, ownerID string, id int) error {
	t, ok := f.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return services.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeBackend) ListProfiles(_ context.Context, userID string) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) InsertProfile(_ context.Context, p models.Profile) (*models.Profile, error) {
	p.ID = len(f.profiles) + 1
	p.UpdatedAt = time.Now()
	f.profiles = append(f.profiles, p)
	return &p, nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, p models.Profile) error {
	for i := range f.profiles {
		if f.profiles[i].ID == p.ID && f.profiles[i].UserID == p.UserID {
			f.profiles[i] = p
			return nil
		}
	}
	return services.ErrNotFound
}

func (f *fakeBackend) DeleteProfile(_ context.Context, userID string, id int) error {
	for i := range f.profiles {
		if f.profiles[i].ID == id && f.profiles[i].UserID == userID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

const testChat int64 = 100

type harness struct {
	bot     *Bot
	api     *fakeAPI
	backend *fakeBackend
	msgID   int
}

func newHarness() *harness {
	api := &fakeAPI{}
	backend := newFakeBackend()
	return &harness{
		bot:     New(api, backend, zap.NewNop(), 0),
		api:     api,
		backend: backend,
	}
}

func (h *harness) nextMessage(text string) *tgbotapi.Message {
	h.msgID++
	return &tgbotapi.Message{MessageID: h.msgID, Chat: &tgbotapi.Chat{ID: testChat}, Text: text}
}

func (h *harness) command(text string) {
	msg := h.nextMessage(text)
	cmd := strings.SplitN(text, " ", 2)[0]
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: msg})
}

func (h *harness) text(text string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: h.nextMessage(text)})
}

func (h *harness) click(data string) {
	h.bot.HandleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: testChat}},
	}})
}

// clickOnStep нажимает кнопку сообщения текущего шага.
func (h *harness) clickOnStep(prefix string) {
	h.click(stepData(prefix, h.session().wizard.Current()))
}

// fillParcel проходит мастер до шага подтверждения.
func (h *harness) fillParcel() {
	h.command("/send")
	h.click(cbSize + "medium")
	h.click(cbWeight + "1-5kg")
	h.clickOnStep(cbContinue)
	h.click(cbMethod + "pickup")
	h.clickOnStep(cbContinue)
	h.text("Ama Mensah")
	h.text("0241234567")
	h.text("Kofi Boateng")
	h.text("0209876543")
	h.click(cbSkipLandmark)
}

func (h *harness) login() {
	h.command("/login")
	h.text("ama@example.com")
	h.text("secret1")
}

func (h *harness) session() *Session {
	return h.bot.session(testChat)
}

// drainSubmit ждёт события таймера и обрабатывает его, как это делает Run.
func (h *harness) drainSubmit() bool {
	select {
	case ev := <-h.bot.events:
		h.bot.finishSubmit(context.Background(), ev.chatID)
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}
