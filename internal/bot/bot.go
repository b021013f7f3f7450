package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
)

// API — методы *tgbotapi.BotAPI, которыми пользуется бот.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Backend — внешний backend-as-a-service (реализован в services.Backend).
type Backend interface {
	SignIn(ctx context.Context, email, password string, chatID int64) (*models.User, error)
	SignUp(ctx context.Context, email, password string, chatID int64) (*models.User, error)
	SignOut(ctx context.Context, userID string) error

	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID string, id int) (*models.Task, error)
	InsertTask(ctx context.Context, t models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, t models.Task) error
	DeleteTask(ctx context.Context, ownerID string, id int) error

	ListProfiles(ctx context.Context, userID string) ([]models.Profile, error)
	InsertProfile(ctx context.Context, p models.Profile) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) error
	DeleteProfile(ctx context.Context, userID string, id int) error
}

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start the bot"},
	{Command: "help", Description: "Help"},
	{Command: "login", Description: "Sign in"},
	{Command: "signup", Description: "Create an account"},
	{Command: "logout", Description: "Sign out"},
	{Command: "send", Description: "Send a parcel"},
	{Command: "back", Description: "Previous step"},
	{Command: "cancel", Description: "Cancel the current action"},
	{Command: "tasks", Description: "Your tasks"},
	{Command: "addtask", Description: "Add a task"},
	{Command: "profile", Description: "Your profile"},
	{Command: "editprofile", Description: "Edit your profile"},
}

// NewBotAPI инициализирует *tgbotapi.BotAPI и регистрирует меню команд.
func NewBotAPI(token string, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = false

	if _, err := api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		return nil, err
	}
	log.Info("бот успешно инициализирован", zap.String("username", api.Self.UserName))
	return api, nil
}

// submitDone приходит в цикл Run, когда истекла имитация оплаты.
type submitDone struct {
	chatID int64
}

// Bot держит сессии всех чатов. Апдейты обрабатываются по одному
// в цикле Run, поэтому сессии не требуют блокировок.
type Bot struct {
	api         API
	backend     Backend
	log         *zap.Logger
	sessions    map[int64]*Session
	submitDelay time.Duration
	events      chan submitDone
	now         func() time.Time
}

func New(api API, backend Backend, log *zap.Logger, submitDelay time.Duration) *Bot {
	return &Bot{
		api:         api,
		backend:     backend,
		log:         log,
		sessions:    make(map[int64]*Session),
		submitDelay: submitDelay,
		events:      make(chan submitDone, 64),
		now:         time.Now,
	}
}

// Run запускает основной цикл: чтение апдейтов и их обработку.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-b.events:
			b.finishSubmit(ctx, ev.chatID)
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Inline-кнопки (CallbackQuery)
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
	} else {
		// Пользователь в процессе пошагового ввода
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) session(chatID int64) *Session {
	s, ok := b.sessions[chatID]
	if !ok {
		s = &Session{}
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) send(chatID int64, text string) {
	b.sendMsg(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.sendMsg(msg)
}

func (b *Bot) sendMsg(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("не удалось отправить сообщение", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	cfg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := b.api.Request(cfg); err != nil {
		b.log.Warn("не удалось изменить сообщение", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	if _, err := b.api.Request(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.log.Warn("не удалось изменить сообщение", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Debug("ошибка ответа на callback", zap.Error(err))
	}
}

// showError выводит текст ошибки как есть (ошибки валидации и бэкенда не различаются).
func (b *Bot) showError(chatID int64, err error) {
	b.send(chatID, "⚠️ "+err.Error())
}
