package flashcard

import "github.com/verte-zerg/lexideck/internal/model"

// Review walks through a deck. Known cards leave the session; unknown cards
// stay and come back after the others.
type Review struct {
	cards    []model.Flashcard
	index    int
	revealed bool
}

// NewReview starts a session over a copy of cards.
func NewReview(cards []model.Flashcard) *Review {
	return &Review{cards: append([]model.Flashcard(nil), cards...)}
}

// Done reports whether no cards remain.
func (r *Review) Done() bool {
	return len(r.cards) == 0
}

// Current returns the card under review.
func (r *Review) Current() (model.Flashcard, bool) {
	if r.Done() {
		return model.Flashcard{}, false
	}
	return r.cards[r.index], true
}

// Position returns the 1-based index of the current card and the number of
// remaining cards.
func (r *Review) Position() (int, int) {
	if r.Done() {
		return 0, 0
	}
	return r.index + 1, len(r.cards)
}

// Revealed reports whether the back of the current card is shown.
func (r *Review) Revealed() bool {
	return r.revealed
}

// Reveal shows the back of the current card.
func (r *Review) Reveal() {
	if !r.Done() {
		r.revealed = true
	}
}

// Know removes the current card from the session.
func (r *Review) Know() {
	if r.Done() {
		return
	}
	r.cards = append(r.cards[:r.index], r.cards[r.index+1:]...)
	if r.index >= len(r.cards) {
		r.index = 0
	}
	r.revealed = false
}

// DontKnow keeps the current card and moves to the next one.
func (r *Review) DontKnow() {
	if r.Done() {
		return
	}
	r.index = (r.index + 1) % len(r.cards)
	r.revealed = false
}
