package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/natindo/ParcelBot/internal/pricing"
	"github.com/natindo/ParcelBot/internal/wizard"
)

const (
	cbSize         = "size:"
	cbWeight       = "weight:"
	cbCategory     = "cat:"
	cbMethod       = "method:"
	cbContinue     = "continue:"
	cbBack         = "back:"
	cbCancel       = "cancel"
	cbKeep         = "keep:"
	cbSkipLandmark = "skip_landmark"
	cbTerms        = "terms"
	cbPay          = "pay"
)

const emptyValue = "—"

func progressBar(ctrl *wizard.Controller) string {
	cur, total := ctrl.Progress()
	return fmt.Sprintf("Step %d/%d %s%s", cur, total,
		strings.Repeat("●", cur), strings.Repeat("○", total-cur))
}

func header(ctrl *wizard.Controller) string {
	return progressBar(ctrl) + "\n" + ctrl.Current().Title() + "\n\n"
}

func mark(selected bool, label string) string {
	if selected {
		return "✓ " + label
	}
	return label
}

// stepData привязывает кнопку к шагу, на котором она показана:
// кнопки старых сообщений не должны срабатывать на другом шаге.
func stepData(prefix string, step wizard.Step) string {
	return prefix + strconv.Itoa(int(step))
}

// parseStepData возвращает шаг из данных кнопки с префиксом prefix.
func parseStepData(data, prefix string) (wizard.Step, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return 0, false
	}
	return wizard.Step(n), true
}

func navRow(ctrl *wizard.Controller, withBack bool) []tgbotapi.InlineKeyboardButton {
	row := []tgbotapi.InlineKeyboardButton{}
	if withBack {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("‹ Back", stepData(cbBack, ctrl.Current())))
	}
	return append(row, tgbotapi.NewInlineKeyboardButtonData("✕ Cancel", cbCancel))
}

// renderSizeStep — шаг 1: размер, вес, категория и предварительная цена.
func renderSizeStep(ctrl *wizard.Controller, d wizard.SizeDraft) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(header(ctrl))
	sb.WriteString("Select size, weight and category.\n")
	sb.WriteString("Nationwide delivery in Ghana: tracking included, secure handover with PIN.\n")
	if d.Ready() {
		sb.WriteString("\nEstimated price: " + pricing.FormatPrice(d.EstimatedPrice()))
	}

	var sizes, weights []tgbotapi.InlineKeyboardButton
	for _, s := range pricing.Sizes {
		label := fmt.Sprintf("%s %s", s.Label, s.Dimensions)
		sizes = append(sizes, tgbotapi.NewInlineKeyboardButtonData(mark(d.Size == s.ID, label), cbSize+string(s.ID)))
	}
	for _, w := range pricing.WeightRanges {
		weights = append(weights, tgbotapi.NewInlineKeyboardButtonData(mark(d.Weight == w.ID, w.Label), cbWeight+string(w.ID)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(sizes...),
		tgbotapi.NewInlineKeyboardRow(weights[:2]...),
		tgbotapi.NewInlineKeyboardRow(weights[2:]...),
	}
	var cats []tgbotapi.InlineKeyboardButton
	for i, c := range pricing.Categories {
		cats = append(cats, tgbotapi.NewInlineKeyboardButtonData(mark(d.Category == c, c), cbCategory+c))
		if len(cats) == 3 || i == len(pricing.Categories)-1 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(cats...))
			cats = nil
		}
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Continue ›", stepData(cbContinue, ctrl.Current()))),
		navRow(ctrl, false),
	)
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderMethodStep — шаг 2: выбор способа доставки из каталога.
func renderMethodStep(ctrl *wizard.Controller) (string, tgbotapi.InlineKeyboardMarkup) {
	st := ctrl.State()
	var sb strings.Builder
	sb.WriteString(header(ctrl))
	sb.WriteString("Choose how you want to hand the parcel over.\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range pricing.DeliveryMethods {
		selected := st.DeliveryMethod != nil && st.DeliveryMethod.ID == m.ID
		cost := ""
		if m.AdditionalCost > 0 {
			cost = " (+ " + pricing.FormatPrice(m.AdditionalCost) + ")"
		}
		sb.WriteString(fmt.Sprintf("\n• %s%s\n  %s", m.Label, cost, m.Description))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark(selected, m.Label+cost), cbMethod+m.ID)))
	}
	sb.WriteString("\n\n" + priceSummary(st))

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Continue ›", stepData(cbContinue, ctrl.Current()))),
		navRow(ctrl, true),
	)
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderPartyStep — шаги 3 и 4: ввод имени/телефона текстом.
func renderPartyStep(ctrl *wizard.Controller, prefill wizard.PartyDraft, prompt string) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(header(ctrl))
	if prefill.Name != "" {
		sb.WriteString(fmt.Sprintf("Current: %s, %s", prefill.Name, prefill.Phone))
		if prefill.Landmark != "" {
			sb.WriteString(", " + prefill.Landmark)
		}
		sb.WriteString("\n\n")
	}
	sb.WriteString(prompt)

	var rows [][]tgbotapi.InlineKeyboardButton
	if prefill.Name != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Keep current ›", stepData(cbKeep, ctrl.Current()))))
	}
	rows = append(rows, navRow(ctrl, true))
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func priceSummary(st wizard.State) string {
	var sb strings.Builder
	if st.Parcel != nil {
		sb.WriteString("Parcel: " + sizeLabel(st) + "\n")
	}
	if st.DeliveryMethod != nil && st.DeliveryMethod.AdditionalCost > 0 {
		sb.WriteString(fmt.Sprintf("%s: %s\n", st.DeliveryMethod.Label, pricing.FormatPrice(st.DeliveryMethod.AdditionalCost)))
	}
	sb.WriteString("Total: " + pricing.FormatPrice(st.TotalPrice()))
	return sb.String()
}

func sizeLabel(st wizard.State) string {
	if st.Parcel == nil {
		return emptyValue
	}
	if s, ok := pricing.SizeByID(string(st.Parcel.Size)); ok {
		return s.Label
	}
	return string(st.Parcel.Size)
}

func orEmpty(v string) string {
	if v == "" {
		return emptyValue
	}
	return v
}

// renderSummaryStep — шаг 5: сводка, согласие с условиями и оплата.
func renderSummaryStep(ctrl *wizard.Controller) (string, tgbotapi.InlineKeyboardMarkup) {
	st := ctrl.State()
	var sb strings.Builder
	sb.WriteString(header(ctrl))
	sb.WriteString("Confirm the details before you pay.\n\n")

	weight, category := emptyValue, emptyValue
	if st.Parcel != nil {
		weight = string(st.Parcel.Weight)
		category = orEmpty(st.Parcel.Category)
	}
	sb.WriteString(fmt.Sprintf("Parcel\n  Size: %s\n  Weight: %s\n  Category: %s\n", sizeLabel(st), weight, category))

	method := emptyValue
	if st.DeliveryMethod != nil {
		method = st.DeliveryMethod.Label
	}
	sb.WriteString(fmt.Sprintf("Delivery\n  Method: %s\n  Extra cost: %s\n", method, pricing.FormatPrice(st.ExtraFees())))

	name, phone := emptyValue, emptyValue
	if st.Sender != nil {
		name, phone = st.Sender.Name, st.Sender.Phone
	}
	sb.WriteString(fmt.Sprintf("Sender\n  Name: %s\n  Phone: %s\n", name, phone))

	name, phone, landmark := emptyValue, emptyValue, emptyValue
	if st.Recipient != nil {
		name, phone, landmark = st.Recipient.Name, st.Recipient.Phone, orEmpty(st.Recipient.Landmark)
	}
	sb.WriteString(fmt.Sprintf("Recipient\n  Name: %s\n  Phone: %s\n  Landmark: %s\n", name, phone, landmark))

	sb.WriteString(fmt.Sprintf("Payment\n  Base price: %s\n  Extra fees: %s\n  Total: %s\n  Payment method: Mobile Money",
		pricing.FormatPrice(st.BasePrice()), pricing.FormatPrice(st.ExtraFees()), pricing.FormatPrice(st.TotalPrice())))

	terms := "☐ I accept the terms and conditions"
	if ctrl.TermsAccepted() {
		terms = "☑ I accept the terms and conditions"
	}
	pay := "Pay " + pricing.FormatPrice(st.TotalPrice())
	if ctrl.Submitting() {
		pay = "Processing…"
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(terms, cbTerms)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(pay, cbPay)),
		navRow(ctrl, true),
	)
	return sb.String(), kb
}

// showStep отправляет новое сообщение с текущим шагом мастера и
// готовит локальный ввод шага из Store.
func (b *Bot) showStep(chatID int64, s *Session) {
	ctrl := s.wizard
	var (
		text string
		kb   tgbotapi.InlineKeyboardMarkup
	)
	switch ctrl.Current() {
	case wizard.StepSize:
		s.dialog = dialogNone
		s.sizeDraft = ctrl.DraftSize()
		text, kb = renderSizeStep(ctrl, s.sizeDraft)
	case wizard.StepDeliveryMethod:
		s.dialog = dialogNone
		text, kb = renderMethodStep(ctrl)
	case wizard.StepSender:
		s.dialog = dialogSenderName
		s.partyDraft = wizard.PartyDraft{}
		text, kb = renderPartyStep(ctrl, ctrl.DraftSender(), "Enter the sender’s full name:")
	case wizard.StepRecipient:
		s.dialog = dialogRecipientName
		s.partyDraft = wizard.PartyDraft{}
		text, kb = renderPartyStep(ctrl, ctrl.DraftRecipient(), "Enter the receiver’s full name:")
	case wizard.StepSummary:
		s.dialog = dialogNone
		text, kb = renderSummaryStep(ctrl)
	}
	b.sendWithKeyboard(chatID, text, kb)
}

// refreshStep перерисовывает сообщение шага после выбора в inline-клавиатуре.
func (b *Bot) refreshStep(chatID int64, messageID int, s *Session) {
	ctrl := s.wizard
	switch ctrl.Current() {
	case wizard.StepSize:
		text, kb := renderSizeStep(ctrl, s.sizeDraft)
		b.edit(chatID, messageID, text, kb)
	case wizard.StepDeliveryMethod:
		text, kb := renderMethodStep(ctrl)
		b.edit(chatID, messageID, text, kb)
	case wizard.StepSummary:
		text, kb := renderSummaryStep(ctrl)
		b.edit(chatID, messageID, text, kb)
	}
}

func receiptText(r wizard.Receipt) string {
	return fmt.Sprintf("✅ Payment received, your parcel is booked!\n\n"+
		"Tracking ID: %s\nShipment code: %s\nSender PIN: %s\n\n"+
		"Base price: %s\nExtra fees: %s\nTotal paid: %s\n\n"+
		"Give the shipment code and PIN to the agent at handover.",
		r.TrackingID, r.ShipmentCode, r.SenderPIN,
		pricing.FormatPrice(r.BasePrice), pricing.FormatPrice(r.ExtraFees), pricing.FormatPrice(r.TotalPrice))
}
