package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const (
	MinSeats       = 1
	MaxSeats       = 4
	DefaultBalance = 1000
)

// ParseBet accepts a whole number of chips between 0 and balance. An empty
// answer sits the round out.
func ParseBet(balance int) Parser {
	return func(input string) (any, error) {
		if input == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number of chips", input)
		}
		if n < 0 || n > balance {
			return nil, fmt.Errorf("bet must be between 0 and %d", balance)
		}
		return n, nil
	}
}

// ParseAction accepts h/hit or s/stand
func ParseAction(input string) (any, error) {
	switch strings.ToLower(input) {
	case "h", "hit":
		return game.Hit, nil
	case "s", "stand":
		return game.Stand, nil
	default:
		return nil, errors.New("type h to hit or s to stand")
	}
}

// ParseYesNo accepts y/yes or n/no. An empty answer means yes.
func ParseYesNo(input string) (any, error) {
	switch strings.ToLower(input) {
	case "", "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return nil, errors.New("type y or n")
	}
}

// ParseSeatCount never rejects: anything outside 1..4 seats one player
func ParseSeatCount(input string) (any, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < MinSeats || n > MaxSeats {
		return MinSeats, nil
	}
	return n, nil
}

// ParseName uses fallback for an empty answer and rejects names already
// in taken
func ParseName(fallback string, taken map[string]bool) Parser {
	return func(input string) (any, error) {
		if input == "" {
			input = fallback
		}
		if taken[input] {
			return nil, fmt.Errorf("%s is already seated", input)
		}
		return input, nil
	}
}

// ParseBalance accepts a positive whole number; empty means DefaultBalance
func ParseBalance(input string) (any, error) {
	if input == "" {
		return DefaultBalance, nil
	}
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return nil, errors.New("balance must be a positive whole number")
	}
	return n, nil
}

// NewBetPrompt asks a player for their wager
func NewBetPrompt(view game.PlayerView) *PromptModel {
	return NewPromptModel(
		fmt.Sprintf("%s, place your bet", view.Name),
		[]string{HandInfoStyle.Render(fmt.Sprintf("Balance: $%d", view.Balance))},
		fmt.Sprintf("0-%d, enter to sit out", view.Balance),
		ParseBet(view.Balance))
}

// NewActionPrompt asks a player to hit or stand
func NewActionPrompt(view game.PlayerView) *PromptModel {
	h := game.NewHand(view.Cards...)
	context := []string{
		HandInfoStyle.Render(fmt.Sprintf("Your hand: %s", h)),
	}
	if !view.DealerUpCard.IsZero() {
		dealer := game.NewHand(view.DealerUpCard, deck.Card{})
		context = append(context, fmt.Sprintf("Dealer shows: %s", dealer.PartialString()))
	}
	return NewPromptModel(
		fmt.Sprintf("%s, hit or stand? (bet $%d)", view.Name, view.Wager),
		context,
		HintStyle.Render("h")+" hit  "+HintStyle.Render("s")+" stand",
		ParseAction)
}

// NewContinuePrompt asks whether to play another round
func NewContinuePrompt() *PromptModel {
	return NewPromptModel("Play another round?", nil, "y/n, enter for yes", ParseYesNo)
}

// NewSeatCountPrompt asks how many players sit down
func NewSeatCountPrompt() *PromptModel {
	return NewPromptModel(
		fmt.Sprintf("How many players? (%d-%d)", MinSeats, MaxSeats),
		nil,
		fmt.Sprintf("anything else seats %d", MinSeats),
		ParseSeatCount)
}

// NewNamePrompt asks for seat n's name (1-based)
func NewNamePrompt(n int, taken map[string]bool) *PromptModel {
	fallback := fmt.Sprintf("Player%d", n)
	return NewPromptModel(
		fmt.Sprintf("Name for player %d", n),
		nil,
		"enter for "+fallback,
		ParseName(fallback, taken))
}

// NewBalancePrompt asks for a player's starting balance
func NewBalancePrompt(name string) *PromptModel {
	return NewPromptModel(
		fmt.Sprintf("Starting balance for %s", name),
		nil,
		fmt.Sprintf("enter for $%d", DefaultBalance),
		ParseBalance)
}
