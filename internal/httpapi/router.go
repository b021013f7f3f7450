package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/pricing"
)

// Quote — ответ GET /quote.
type Quote struct {
	Size       models.SizeClass   `json:"size"`
	Weight     models.WeightRange `json:"weight"`
	Method     string             `json:"method,omitempty"`
	BasePrice  int                `json:"base_price"`
	ExtraFees  int                `json:"extra_fees"`
	TotalPrice int                `json:"total_price"`
	Formatted  string             `json:"formatted"`
}

func NewRouter(log *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			log.Debug("ошибка записи ответа /health", zap.Error(err))
		}
	}).Methods("GET")
	r.HandleFunc("/delivery-methods", deliveryMethodsHandler(log)).Methods("GET")
	r.HandleFunc("/quote", quoteHandler(log)).Methods("GET")
	r.Use(logRequests(log))
	return r
}

func deliveryMethodsHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, pricing.DeliveryMethods)
	}
}

// quoteHandler считает цену так же, как мастер: неизвестный размер даёт
// минимальную базу, неизвестный вес — множитель 1.0. Способ доставки
// необязателен, но если указан, он должен быть из каталога.
func quoteHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		quote := Quote{
			Size:   models.SizeClass(q.Get("size")),
			Weight: models.WeightRange(q.Get("weight")),
			Method: q.Get("method"),
		}
		quote.BasePrice = pricing.ComputeBasePrice(quote.Size, quote.Weight)

		if quote.Method != "" {
			m, ok := pricing.DeliveryMethodByID(quote.Method)
			if !ok {
				http.Error(w, "unknown delivery method: "+quote.Method, http.StatusBadRequest)
				return
			}
			quote.ExtraFees = m.AdditionalCost
		}
		quote.TotalPrice = pricing.ComputeTotal(quote.BasePrice, quote.ExtraFees)
		quote.Formatted = pricing.FormatPrice(quote.TotalPrice)

		writeJSON(w, log, quote)
	}
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("ошибка кодирования JSON", zap.Error(err))
	}
}

func logRequests(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("http запрос",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		})
	}
}
