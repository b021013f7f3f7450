package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/bot"
	"github.com/natindo/ParcelBot/internal/config"
	"github.com/natindo/ParcelBot/internal/database"
	"github.com/natindo/ParcelBot/internal/httpapi"
	"github.com/natindo/ParcelBot/internal/services"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot, the reminder worker and the quote API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// 1. Читаем конфиг из env
			cfg := config.LoadConfig(log)

			// 2. Подключаемся к БД и создаём таблицы
			pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				log.Error("не удалось подключиться к PostgreSQL", zap.Error(err))
				return err
			}
			defer pool.Close()

			if err := database.Migrate(ctx, pool); err != nil {
				log.Error("ошибка миграции", zap.Error(err))
				return err
			}

			// 3. Создаём инстанс бота
			api, err := bot.NewBotAPI(cfg.TelegramToken, log)
			if err != nil {
				log.Error("ошибка при создании бота", zap.Error(err))
				return err
			}
			backend := services.NewBackend(pool)

			// 4. Запускаем воркер уведомлений (notifier)
			go services.StartNotifier(ctx, api, backend, log, cfg.NotifyInterval, cfg.RemindBefore)

			// 5. HTTP API расчёта стоимости
			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           httpapi.NewRouter(log),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				log.Info("HTTP API запущен", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("ошибка HTTP сервера", zap.Error(err))
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			// 6. Запускаем основной цикл обработки
			u := tgbotapi.NewUpdate(0)
			u.Timeout = 60
			updates := api.GetUpdatesChan(u)
			defer api.StopReceivingUpdates()

			b := bot.New(api, backend, log, cfg.SubmitDelay)
			if err := b.Run(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("ошибка запуска бота", zap.Error(err))
				return err
			}
			log.Info("бот остановлен")
			return nil
		},
	}
}
