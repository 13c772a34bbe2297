package models

import "strings"

// Card is one canonical Flesh and Blood card, independent of printing.
// JSON names follow the public card dataset.
type Card struct {
	UniqueID            string     `json:"unique_id"`
	Name                string     `json:"name"`
	Pitch               string     `json:"pitch"`
	Cost                string     `json:"cost"`
	Power               string     `json:"power"`
	Defense             string     `json:"defense"`
	Health              string     `json:"health"`
	Intelligence        string     `json:"intelligence"`
	Types               []string   `json:"types"`
	CardKeywords        []string   `json:"card_keywords"`
	AbilitiesAndEffects []string   `json:"abilities_and_effects"`
	TypeText            string     `json:"type_text"`
	FunctionalText      string     `json:"functional_text"`
	FunctionalTextPlain string     `json:"functional_text_plain"`
	BlitzLegal          bool       `json:"blitz_legal"`
	CCLegal             bool       `json:"cc_legal"`
	CommonerLegal       bool       `json:"commoner_legal"`
	LLLegal             bool       `json:"ll_legal"`
	Printings           []Printing `json:"printings"`
}

// Printing is one physical or digital print of a Card.
type Printing struct {
	UniqueID string `json:"unique_id"`

	// ID is the human-facing identifier, set code plus collector number (e.g. "MST131").
	ID string `json:"id"`

	SetID    string `json:"set_id"`
	Edition  string `json:"edition"`
	Foiling  string `json:"foiling"`
	Rarity   string `json:"rarity"`
	ImageURL string `json:"image_url"`

	// TCGPlayerProductID is the pricing source product id. Often empty.
	TCGPlayerProductID string `json:"tcgplayer_product_id"`
}

// Set is a flat reference entry for a card set.
type Set struct {
	UniqueID string `json:"unique_id"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Edition  string `json:"edition,omitempty"`
}

// Keyword is a flat reference entry for a rules keyword.
type Keyword struct {
	UniqueID    string `json:"unique_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RawSet is the sets.json entry shape. Editions are nested per set printing in
// the upstream dataset; a top-level edition wins when present.
type RawSet struct {
	UniqueID  string           `json:"unique_id"`
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Edition   string           `json:"edition"`
	Printings []RawSetPrinting `json:"printings"`
}

// RawSetPrinting is one edition entry nested in a RawSet.
type RawSetPrinting struct {
	Edition string `json:"edition"`
}

// ToSet flattens a RawSet.
func (r RawSet) ToSet() Set {
	s := Set{UniqueID: r.UniqueID, ID: r.ID, Name: r.Name, Edition: r.Edition}
	if s.Edition == "" && len(r.Printings) > 0 {
		s.Edition = r.Printings[0].Edition
	}
	return s
}

// Validate checks that the card has the fields the index keys on.
func (c Card) Validate() string {
	if strings.TrimSpace(c.UniqueID) == "" {
		return "missing unique_id"
	}
	if strings.TrimSpace(c.Name) == "" {
		return "missing name"
	}
	return ""
}

// IsFoil reports whether the printing is a foil variant (R, C or G foiling codes;
// S is standard).
func (p Printing) IsFoil() bool {
	switch strings.ToUpper(p.Foiling) {
	case "", "S":
		return false
	default:
		return true
	}
}
