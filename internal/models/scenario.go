// Package models defines data structures for the chat-sale demo and the landing site.
package models

import (
	"strconv"
	"strings"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single authored chat turn.
type Message struct {
	ID   string `yaml:"id" json:"id"`
	Role Role   `yaml:"role" json:"role"`
	Text string `yaml:"text" json:"text"`
}

// ProductInfo describes a rich-content card shown inside the conversation.
// Prices are whole baht.
type ProductInfo struct {
	Image         string   `yaml:"image" json:"image"`
	Title         string   `yaml:"title" json:"title"`
	Price         *int     `yaml:"price,omitempty" json:"price,omitempty"`
	OriginalPrice *int     `yaml:"original_price,omitempty" json:"originalPrice,omitempty"`
	Stock         *int     `yaml:"stock,omitempty" json:"stock,omitempty"`
	Specs         []string `yaml:"specs,omitempty" json:"specs,omitempty"`
	Category      string   `yaml:"category,omitempty" json:"category,omitempty"`
}

// Scenario is one scripted exchange: user turns, an assistant reply and a content card.
type Scenario struct {
	UserMsgs      []Message     `yaml:"user_msgs" json:"userMsgs"`
	AssistantText string        `yaml:"assistant_text" json:"assistantText"`
	Product       ProductInfo   `yaml:"product" json:"product"`
	Products      []ProductInfo `yaml:"products,omitempty" json:"products,omitempty"`
}

// CardStyle is how a scenario's card is presented.
type CardStyle string

const (
	// CardCarousel shows every entry of Products side by side.
	CardCarousel CardStyle = "carousel"
	// CardChart shows Product.Image and must wait for the image to load.
	CardChart CardStyle = "chart"
	// CardTable is an image-less summary card.
	CardTable CardStyle = "table"
)

// CardStyle returns the card presentation. Products always win over Product.
func (s Scenario) CardStyle() CardStyle {
	switch {
	case len(s.Products) > 0:
		return CardCarousel
	case s.Product.Image != "":
		return CardChart
	default:
		return CardTable
	}
}

// AwaitsImage reports whether the card reserves its layout only after an image loads.
func (s Scenario) AwaitsImage() bool {
	return s.CardStyle() == CardChart
}

// FormatTHB renders a whole-baht amount with thousands separators, e.g. ฿8,990.
func FormatTHB(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "฿" + b.String()
}
