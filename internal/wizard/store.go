package wizard

import "github.com/natindo/ParcelBot/internal/models"

// Store хранит State одного прохождения мастера.
// Принадлежит одному Controller; синхронизация не нужна, так как
// все изменения идут из цикла обработки апдейтов.
type Store struct {
	state       State
	subscribers []func(State)
}

func NewStore() *Store {
	return &Store{}
}

// State возвращает копию состояния; срезы копируются, чтобы снаружи
// нельзя было поменять их в обход сеттеров.
func (s *Store) State() State {
	var out State
	if s.state.Parcel != nil {
		p := *s.state.Parcel
		out.Parcel = &p
	}
	if s.state.DeliveryMethod != nil {
		m := *s.state.DeliveryMethod
		out.DeliveryMethod = &m
	}
	if s.state.Sender != nil {
		snd := *s.state.Sender
		out.Sender = &snd
	}
	if s.state.Recipient != nil {
		r := *s.state.Recipient
		out.Recipient = &r
	}
	return out
}

func (s *Store) BasePrice() int { return s.state.BasePrice() }
func (s *Store) TotalPrice() int { return s.state.TotalPrice() }

// Subscribe регистрирует функцию, вызываемую после каждого изменения.
func (s *Store) Subscribe(fn func(State)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) SetParcelDetails(p models.ParcelDetails) {
	s.state.Parcel = &p
	s.notify()
}

func (s *Store) SetDeliveryMethod(m models.DeliveryMethod) {
	s.state.DeliveryMethod = &m
	s.notify()
}

func (s *Store) SetSender(snd models.SenderInfo) {
	s.state.Sender = &snd
	s.notify()
}

func (s *Store) SetRecipient(r models.RecipientInfo) {
	s.state.Recipient = &r
	s.notify()
}

// Reset очищает все срезы.
func (s *Store) Reset() {
	s.state = State{}
	s.notify()
}

func (s *Store) notify() {
	if len(s.subscribers) == 0 {
		return
	}
	snapshot := s.State()
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
}
